package repository

import (
	"babycare/domain"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type childRepository struct {
	db *gorm.DB
}

func NewChildRepository(database *gorm.DB) domain.ChildRepo {
	return &childRepository{
		db: database,
	}
}

func (cr *childRepository) CreateChild(ctx context.Context, child *domain.Child, initial *domain.Growth) error {
	err := cr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(child).Error; err != nil {
			return fmt.Errorf("failed to insert child: %w", err)
		}

		if initial == nil {
			return nil
		}
		initial.ChildID = child.ChildID
		if err := tx.Omit(clause.Associations).Create(initial).Error; err != nil {
			return fmt.Errorf("failed to insert initial growth record: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to execute database transaction: %w", err)
	}
	return nil
}

// FindOwned is the single ownership lookup. A child that exists under another
// user is indistinguishable from one that does not exist.
func (cr *childRepository) FindOwned(ctx context.Context, childID, userID int) (*domain.Child, error) {
	var child domain.Child
	err := cr.db.WithContext(ctx).
		Where("child_id = ? AND user_id = ?", childID, userID).
		First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("Child")
		}
		return nil, fmt.Errorf("error fetching child: %w", err)
	}
	return &child, nil
}

func (cr *childRepository) ListByUser(ctx context.Context, userID int) ([]domain.Child, error) {
	var children []domain.Child
	err := cr.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("child_id ASC").
		Find(&children).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve children: %w", err)
	}
	return children, nil
}

func (cr *childRepository) ListAll(ctx context.Context) ([]domain.Child, error) {
	var children []domain.Child
	if err := cr.db.WithContext(ctx).Order("child_id ASC").Find(&children).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve children: %w", err)
	}
	return children, nil
}

func (cr *childRepository) UpdateChild(ctx context.Context, child *domain.Child) error {
	if err := cr.db.WithContext(ctx).Omit(clause.Associations, "user_id", "created_at").Save(child).Error; err != nil {
		return fmt.Errorf("could not update child: %w", err)
	}
	return nil
}

// DeleteChild removes dependents explicitly before the child row, inside one
// transaction. The foreign keys also cascade.
func (cr *childRepository) DeleteChild(ctx context.Context, childID int) error {
	dependents := []interface{}{
		&domain.Diaper{},
		&domain.Feeding{},
		&domain.Growth{},
		&domain.Sleep{},
		&domain.Vaccination{},
	}

	return cr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range dependents {
			if err := tx.Where("child_id = ?", childID).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete child records: %w", err)
			}
		}

		res := tx.Where("child_id = ?", childID).Delete(&domain.Child{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete child: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.NotFound("Child")
		}
		return nil
	})
}
