package domain

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
)

const (
	SleepCreated = "created"
	SleepUpdated = "updated"
)

// Sleep holds at most one record per (child, date). Date is a wall clock
// string in the exact form YYYY-MM-DD HH:MM:SS.
type Sleep struct {
	SleepID       int       `gorm:"primaryKey;autoIncrement" json:"sleep_id"`
	ChildID       int       `gorm:"not null;uniqueIndex:uidx_sleep_child_date" json:"child_id"`
	Child         Child     `gorm:"foreignKey:ChildID;references:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Date          string    `gorm:"type:varchar(19);not null;uniqueIndex:uidx_sleep_child_date" json:"date"`
	NapHours      float64   `gorm:"not null;default:0" json:"nap_hours"`
	NightHours    float64   `gorm:"not null;default:0" json:"night_hours"`
	SleepProgress int       `json:"sleep_progress"`
	Notes         string    `gorm:"type:text" json:"notes"`
	AutoFilled    bool      `gorm:"default:false" json:"auto_filled"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TotalHours is derived from nap and night hours and is never stored.
func (s Sleep) TotalHours() float64 {
	return s.NapHours + s.NightHours
}

func (s Sleep) MarshalJSON() ([]byte, error) {
	type plain Sleep
	return sonic.Marshal(struct {
		plain
		TotalHours float64 `json:"total_hours"`
	}{
		plain:      plain(s),
		TotalHours: s.TotalHours(),
	})
}

type SleepPayload struct {
	Date          *string  `json:"date" valid:"optional"`
	NapHours      *float64 `json:"nap_hours" valid:"optional"`
	NightHours    *float64 `json:"night_hours" valid:"optional"`
	TotalHours    *float64 `json:"total_hours" valid:"optional"`
	SleepProgress *int     `json:"sleep_progress" valid:"optional"`
	Notes         *string  `json:"notes" valid:"optional"`
}

type SleepUpsertResult struct {
	Outcome string `json:"outcome"`
	Sleep   *Sleep `json:"sleep"`
}

// SleepSummary is the per-day (or per-period) accumulator for sleep records.
type SleepSummary struct {
	Date              string  `json:"date,omitempty"`
	Records           int     `json:"records"`
	NapHours          float64 `json:"nap_hours"`
	NightHours        float64 `json:"night_hours"`
	TotalHours        float64 `json:"total_hours"`
	AutoFilled        int     `json:"auto_filled"`
	AverageTotalHours float64 `json:"average_total_hours"`
}

func (s *SleepSummary) Add(r Sleep) {
	s.Records++
	s.NapHours += r.NapHours
	s.NightHours += r.NightHours
	s.TotalHours += r.TotalHours()
	if r.AutoFilled {
		s.AutoFilled++
	}
	s.AverageTotalHours = s.TotalHours / float64(s.Records)
}

type SleepPeriodSummary struct {
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Totals    SleepSummary   `json:"totals"`
	Days      []SleepSummary `json:"days"`
}

type SleepRepo interface {
	// UpsertSleep writes the record keyed by (child_id, date) in one
	// conditional write and reports whether a new row was created.
	UpsertSleep(ctx context.Context, sleep *Sleep) (bool, error)
	// InsertSleepIfAbsent never overwrites; it reports whether a row was added.
	InsertSleepIfAbsent(ctx context.Context, sleep *Sleep) (bool, error)
	FindSleep(ctx context.Context, id int) (*Sleep, error)
	ExistsSleepBetween(ctx context.Context, childID int, from, to string) (bool, error)
	ListSleep(ctx context.Context, childID int, from, to string) ([]Sleep, error)
	UpdateSleep(ctx context.Context, sleep *Sleep) error
	DeleteSleep(ctx context.Context, id int) error
}

// AutoFillLock guards one auto-fill run per day across instances. A run
// that fails releases the key so a later run can retry the day.
type AutoFillLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type SleepUseCase interface {
	Upsert(ctx context.Context, userID, childID int, req *SleepPayload) (*SleepUpsertResult, error)
	ListByChild(ctx context.Context, userID, childID int) ([]Sleep, error)
	ByDate(ctx context.Context, userID, childID int, date string) ([]Sleep, error)
	Get(ctx context.Context, userID, id int) (*Sleep, error)
	Update(ctx context.Context, userID, id int, req *SleepPayload) (*Sleep, error)
	Delete(ctx context.Context, userID, id int) error
	Weekly(ctx context.Context, userID, childID int) (*SleepPeriodSummary, error)
	Monthly(ctx context.Context, userID, childID int, month string) (*SleepPeriodSummary, error)
	AutoFill(ctx context.Context) (int, error)
}
