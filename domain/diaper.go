package domain

import (
	"context"
	"time"
)

const (
	DiaperWet   = "wet"
	DiaperDirty = "dirty"
	DiaperBoth  = "both"
)

type Diaper struct {
	DiaperID    int       `gorm:"primaryKey;autoIncrement" json:"diaper_id"`
	ChildID     int       `gorm:"not null;index" json:"child_id"`
	Child       Child     `gorm:"foreignKey:ChildID;references:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Time        string    `gorm:"type:varchar(19);not null;index" json:"time"`
	Type        string    `gorm:"type:varchar(10);not null" json:"type"`
	Color       *string   `gorm:"type:varchar(50)" json:"color"`
	Consistency *string   `gorm:"type:varchar(50)" json:"consistency"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type DiaperPayload struct {
	Time        *string `json:"time" valid:"optional"`
	Type        *string `json:"type" valid:"optional,in(wet|dirty|both)~Type must be wet, dirty or both"`
	Color       *string `json:"color" valid:"optional"`
	Consistency *string `json:"consistency" valid:"optional"`
	Notes       *string `json:"notes" valid:"optional"`
}

type DiaperRepo interface {
	CreateDiaper(ctx context.Context, diaper *Diaper) error
	FindDiaper(ctx context.Context, id int) (*Diaper, error)
	ListDiapers(ctx context.Context, childID int, from, to string) ([]Diaper, error)
	UpdateDiaper(ctx context.Context, diaper *Diaper) error
	DeleteDiaper(ctx context.Context, id int) error
}

type DiaperUseCase interface {
	Create(ctx context.Context, userID, childID int, req *DiaperPayload) (*Diaper, error)
	ListByChild(ctx context.Context, userID, childID int, date string) ([]Diaper, error)
	Get(ctx context.Context, userID, id int) (*Diaper, error)
	Update(ctx context.Context, userID, id int, req *DiaperPayload) (*Diaper, error)
	Delete(ctx context.Context, userID, id int) error
}
