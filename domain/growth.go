package domain

import (
	"context"
	"time"
)

// Growth records anchor gain computations; the record flagged
// IsInitialRecord can be edited but never deleted.
type Growth struct {
	GrowthID                  int       `gorm:"primaryKey;autoIncrement" json:"growth_id"`
	ChildID                   int       `gorm:"not null;index" json:"child_id"`
	Child                     Child     `gorm:"foreignKey:ChildID;references:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Weight                    float64   `gorm:"not null" json:"weight"`
	Height                    float64   `gorm:"not null" json:"height"`
	HeadCircumference         float64   `json:"head_circumference"`
	WeightProgress            int       `json:"weight_progress"`
	HeightProgress            int       `json:"height_progress"`
	HeadCircumferenceProgress int       `json:"head_circumference_progress"`
	RecordDate                string    `gorm:"type:varchar(10);not null;index" json:"record_date"`
	Notes                     string    `gorm:"type:text" json:"notes"`
	IsInitialRecord           bool      `gorm:"default:false" json:"is_initial_record"`
	CreatedAt                 time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                 time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type GrowthPayload struct {
	Weight                    *float64 `json:"weight" valid:"optional"`
	Height                    *float64 `json:"height" valid:"optional"`
	HeadCircumference         *float64 `json:"head_circumference" valid:"optional"`
	WeightProgress            *int     `json:"weight_progress" valid:"optional"`
	HeightProgress            *int     `json:"height_progress" valid:"optional"`
	HeadCircumferenceProgress *int     `json:"head_circumference_progress" valid:"optional"`
	RecordDate                *string  `json:"record_date" valid:"optional"`
	Notes                     *string  `json:"notes" valid:"optional"`
}

type SeriesPoint struct {
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
	Progress int     `json:"progress"`
}

type GrowthStatistics struct {
	TotalRecords          int           `json:"total_records"`
	Weight                []SeriesPoint `json:"weight"`
	Height                []SeriesPoint `json:"height"`
	HeadCircumference     []SeriesPoint `json:"head_circumference"`
	FirstRecord           *Growth       `json:"first_record"`
	LatestRecord          *Growth       `json:"latest_record"`
	WeightGain            float64       `json:"weight_gain"`
	HeightGain            float64       `json:"height_gain"`
	HeadCircumferenceGain float64       `json:"head_circumference_gain"`
}

// GrowthDay is the per-day accumulator for growth measurements.
type GrowthDay struct {
	Date              string  `json:"date"`
	Measurements      int     `json:"measurements"`
	Weight            float64 `json:"weight"`
	Height            float64 `json:"height"`
	HeadCircumference float64 `json:"head_circumference"`
}

func (d *GrowthDay) Add(g Growth) {
	d.Measurements++
	d.Weight = g.Weight
	d.Height = g.Height
	d.HeadCircumference = g.HeadCircumference
}

type GrowthRepo interface {
	CreateGrowth(ctx context.Context, growth *Growth) error
	FindGrowth(ctx context.Context, id int) (*Growth, error)
	// ListGrowth returns the child's records ordered ascending by record date.
	ListGrowth(ctx context.Context, childID int) ([]Growth, error)
	// LatestGrowthBefore returns the most recent record dated on or before
	// date, or nil when none exists.
	LatestGrowthBefore(ctx context.Context, childID int, date string) (*Growth, error)
	UpdateGrowth(ctx context.Context, growth *Growth) error
	DeleteGrowth(ctx context.Context, id int) error
}

type GrowthUseCase interface {
	Create(ctx context.Context, userID, childID int, req *GrowthPayload) (*Growth, error)
	ListByChild(ctx context.Context, userID, childID int) ([]Growth, error)
	Get(ctx context.Context, userID, id int) (*Growth, error)
	Update(ctx context.Context, userID, id int, req *GrowthPayload) (*Growth, error)
	Delete(ctx context.Context, userID, id int) error
	Statistics(ctx context.Context, userID, childID int) (*GrowthStatistics, error)
	Daily(ctx context.Context, userID, childID int) ([]GrowthDay, error)
}
