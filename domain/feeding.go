package domain

import (
	"context"
	"time"
)

const (
	FeedingBreast = "breast"
	FeedingBottle = "bottle"
	FeedingSolid  = "solid"

	SideLeft  = "left"
	SideRight = "right"
)

// Feeding is a tagged variant on Type: breast feedings carry the
// start/end/duration/side group, bottle and solid feedings carry Amount.
// Exactly one group is populated.
type Feeding struct {
	FeedingID int       `gorm:"primaryKey;autoIncrement" json:"feeding_id"`
	ChildID   int       `gorm:"not null;index" json:"child_id"`
	Child     Child     `gorm:"foreignKey:ChildID;references:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"type:varchar(10);not null" json:"type"`
	StartTime *string   `gorm:"type:varchar(19)" json:"start_time"`
	EndTime   *string   `gorm:"type:varchar(19)" json:"end_time"`
	Duration  *int      `json:"duration"`
	Side      *string   `gorm:"type:varchar(5)" json:"side"`
	Amount    *float64  `json:"amount"`
	Date      string    `gorm:"type:varchar(10);not null;index" json:"date"`
	Timestamp string    `gorm:"type:varchar(19);not null" json:"timestamp"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type FeedingPayload struct {
	Type      *string  `json:"type" valid:"optional,in(breast|bottle|solid)~Type must be breast, bottle or solid"`
	StartTime *string  `json:"start_time" valid:"optional"`
	EndTime   *string  `json:"end_time" valid:"optional"`
	Duration  *int     `json:"duration" valid:"optional"`
	Side      *string  `json:"side" valid:"optional,in(left|right)~Side must be left or right"`
	Amount    *float64 `json:"amount" valid:"optional"`
	Timestamp *string  `json:"timestamp" valid:"optional"`
	Notes     *string  `json:"notes" valid:"optional"`
}

type BreastStats struct {
	Count        int `json:"count"`
	TotalMinutes int `json:"total_minutes"`
	LeftSide     int `json:"left_side"`
	RightSide    int `json:"right_side"`
}

type BottleStats struct {
	Count   int     `json:"count"`
	TotalMl float64 `json:"total_ml"`
}

type SolidStats struct {
	Count      int     `json:"count"`
	TotalGrams float64 `json:"total_grams"`
}

// FeedingSummary is the per-day accumulator for feedings.
type FeedingSummary struct {
	Date           string      `json:"date,omitempty"`
	TotalFeedings  int         `json:"total_feedings"`
	BreastFeedings BreastStats `json:"breast_feedings"`
	BottleFeedings BottleStats `json:"bottle_feedings"`
	SolidFeedings  SolidStats  `json:"solid_feedings"`
}

// Add accumulates a single feeding into the summary.
func (s *FeedingSummary) Add(f Feeding) {
	switch f.Type {
	case FeedingBreast:
		s.BreastFeedings.Count++
		if f.Duration != nil {
			s.BreastFeedings.TotalMinutes += *f.Duration
		}
		if f.Side != nil {
			switch *f.Side {
			case SideLeft:
				s.BreastFeedings.LeftSide++
			case SideRight:
				s.BreastFeedings.RightSide++
			}
		}
	case FeedingBottle:
		s.BottleFeedings.Count++
		if f.Amount != nil {
			s.BottleFeedings.TotalMl += *f.Amount
		}
	case FeedingSolid:
		s.SolidFeedings.Count++
		if f.Amount != nil {
			s.SolidFeedings.TotalGrams += *f.Amount
		}
	}
	s.TotalFeedings++
}

type FeedingPeriodSummary struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Totals    FeedingSummary   `json:"totals"`
	Days      []FeedingSummary `json:"days"`
}

type FeedingRepo interface {
	CreateFeeding(ctx context.Context, feeding *Feeding) error
	FindFeeding(ctx context.Context, id int) (*Feeding, error)
	// ListFeedings returns feedings whose date lies in the closed range
	// [from, to]; empty bounds are ignored.
	ListFeedings(ctx context.Context, childID int, from, to string) ([]Feeding, error)
	UpdateFeeding(ctx context.Context, feeding *Feeding) error
	DeleteFeeding(ctx context.Context, id int) error
}

type FeedingUseCase interface {
	Create(ctx context.Context, userID, childID int, req *FeedingPayload) (*Feeding, error)
	ListByChild(ctx context.Context, userID, childID int) ([]Feeding, error)
	Get(ctx context.Context, userID, id int) (*Feeding, error)
	Update(ctx context.Context, userID, id int, req *FeedingPayload) (*Feeding, error)
	Delete(ctx context.Context, userID, id int) error
	Today(ctx context.Context, userID, childID int) (*FeedingSummary, error)
	ByDate(ctx context.Context, userID, childID int, date string) (*FeedingSummary, []Feeding, error)
	Weekly(ctx context.Context, userID, childID int) (*FeedingPeriodSummary, error)
	Monthly(ctx context.Context, userID, childID int, month string) (*FeedingPeriodSummary, error)
	// MonthlyReport is Monthly plus the raw records, for exports.
	MonthlyReport(ctx context.Context, userID, childID int, month string) (*FeedingPeriodSummary, []Feeding, error)
}
