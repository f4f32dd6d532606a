package domain

import (
	"context"
	"time"
)

type Child struct {
	ChildID           int       `gorm:"primaryKey;autoIncrement" json:"child_id"`
	UserID            int       `gorm:"not null;index" json:"user_id"`
	User              User      `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name              string    `gorm:"type:varchar(150);not null" json:"name"`
	Age               string    `gorm:"type:varchar(50);not null" json:"age"`
	BirthDate         *string   `gorm:"type:varchar(10)" json:"birth_date"`
	Gender            string    `gorm:"type:varchar(10);not null" json:"gender"`
	ImageURL          *string   `gorm:"type:text" json:"image_url"`
	Weight            *float64  `json:"weight"`
	Height            *float64  `json:"height"`
	HeadCircumference *float64  `json:"head_circumference"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ChildPayload is used for both create and update. On update every nil field
// keeps its stored value.
type ChildPayload struct {
	Name              *string  `json:"name" valid:"optional"`
	Age               *string  `json:"age" valid:"optional"`
	BirthDate         *string  `json:"birth_date" valid:"optional"`
	Gender            *string  `json:"gender" valid:"optional,in(male|female|other)~Invalid gender"`
	ImageURL          *string  `json:"image_url" valid:"optional"`
	Weight            *float64 `json:"weight" valid:"optional"`
	Height            *float64 `json:"height" valid:"optional"`
	HeadCircumference *float64 `json:"head_circumference" valid:"optional"`
}

type ChildRepo interface {
	// CreateChild stores the child and, when given, its initial growth record
	// in a single transaction.
	CreateChild(ctx context.Context, child *Child, initial *Growth) error
	FindOwned(ctx context.Context, childID, userID int) (*Child, error)
	ListByUser(ctx context.Context, userID int) ([]Child, error)
	ListAll(ctx context.Context) ([]Child, error)
	UpdateChild(ctx context.Context, child *Child) error
	// DeleteChild removes the child and every child scoped record.
	DeleteChild(ctx context.Context, childID int) error
}

type ChildUseCase interface {
	Create(ctx context.Context, userID int, req *ChildPayload) (*Child, error)
	List(ctx context.Context, userID int) ([]Child, error)
	Get(ctx context.Context, userID, childID int) (*Child, error)
	Update(ctx context.Context, userID, childID int, req *ChildPayload) (*Child, error)
	Delete(ctx context.Context, userID, childID int) error
}
