package repository

import (
	"babycare/domain"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type feedingRepository struct {
	db *gorm.DB
}

func NewFeedingRepository(database *gorm.DB) domain.FeedingRepo {
	return &feedingRepository{
		db: database,
	}
}

func (fr *feedingRepository) CreateFeeding(ctx context.Context, feeding *domain.Feeding) error {
	if err := fr.db.WithContext(ctx).Omit(clause.Associations).Create(feeding).Error; err != nil {
		return fmt.Errorf("could not create feeding: %w", err)
	}
	return nil
}

func (fr *feedingRepository) FindFeeding(ctx context.Context, id int) (*domain.Feeding, error) {
	var feeding domain.Feeding
	if err := fr.db.WithContext(ctx).Where("feeding_id = ?", id).First(&feeding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("Feeding")
		}
		return nil, fmt.Errorf("error fetching feeding: %w", err)
	}
	return &feeding, nil
}

func (fr *feedingRepository) ListFeedings(ctx context.Context, childID int, from, to string) ([]domain.Feeding, error) {
	var feedings []domain.Feeding
	err := fr.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Scopes(closedRange("date", from, to)).
		Order("timestamp ASC").
		Find(&feedings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve feedings: %w", err)
	}
	return feedings, nil
}

// UpdateFeeding writes every column so a type switch clears the group that
// no longer applies.
func (fr *feedingRepository) UpdateFeeding(ctx context.Context, feeding *domain.Feeding) error {
	if err := fr.db.WithContext(ctx).Omit(clause.Associations, "created_at").Save(feeding).Error; err != nil {
		return fmt.Errorf("could not update feeding: %w", err)
	}
	return nil
}

func (fr *feedingRepository) DeleteFeeding(ctx context.Context, id int) error {
	res := fr.db.WithContext(ctx).Where("feeding_id = ?", id).Delete(&domain.Feeding{})
	if res.Error != nil {
		return fmt.Errorf("could not delete feeding: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("Feeding")
	}
	return nil
}
