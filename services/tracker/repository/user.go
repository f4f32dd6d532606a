package repository

import (
	"babycare/domain"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) domain.UserRepo {
	return &userRepository{
		db: database,
	}
}

func (ur *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if err := ur.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.InvalidInput("Email %s is already registered", user.Email)
		}
		return fmt.Errorf("could not create user: %w", err)
	}
	return nil
}

func (ur *userRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("User")
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &user, nil
}

func (ur *userRepository) FindUserByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("User")
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &user, nil
}
