package domain

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	UserID    int       `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" valid:"required~Name is required"`
	Email    string `json:"email" valid:"required~Email is required,email~Invalid email format"`
	Password string `json:"password" valid:"required~Password is required,minstringlength(6)~Password must be at least 6 characters"`
}

type LoginRequest struct {
	Email    string `json:"email" valid:"required~Email is required"`
	Password string `json:"password" valid:"required~Password is required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// CredentialService issues and verifies bearer tokens.
type CredentialService interface {
	GenerateJWT(user *User) (string, error)
	VerifyJWT(token string) (*Claims, error)
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id int) (*User, error)
}

type AuthUseCase interface {
	Register(ctx context.Context, req *RegisterRequest) (*User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Profile(ctx context.Context, userID int) (*User, error)
}
