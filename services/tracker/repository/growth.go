package repository

import (
	"babycare/domain"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type growthRepository struct {
	db *gorm.DB
}

func NewGrowthRepository(database *gorm.DB) domain.GrowthRepo {
	return &growthRepository{
		db: database,
	}
}

func (gr *growthRepository) CreateGrowth(ctx context.Context, growth *domain.Growth) error {
	if err := gr.db.WithContext(ctx).Omit(clause.Associations).Create(growth).Error; err != nil {
		return fmt.Errorf("could not create growth record: %w", err)
	}
	return nil
}

func (gr *growthRepository) FindGrowth(ctx context.Context, id int) (*domain.Growth, error) {
	var growth domain.Growth
	if err := gr.db.WithContext(ctx).Where("growth_id = ?", id).First(&growth).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("Growth record")
		}
		return nil, fmt.Errorf("error fetching growth record: %w", err)
	}
	return &growth, nil
}

func (gr *growthRepository) ListGrowth(ctx context.Context, childID int) ([]domain.Growth, error) {
	var records []domain.Growth
	err := gr.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("record_date ASC, growth_id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve growth records: %w", err)
	}
	return records, nil
}

func (gr *growthRepository) LatestGrowthBefore(ctx context.Context, childID int, date string) (*domain.Growth, error) {
	var growth domain.Growth
	err := gr.db.WithContext(ctx).
		Where("child_id = ? AND record_date <= ?", childID, date).
		Order("record_date DESC, growth_id DESC").
		First(&growth).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching previous growth record: %w", err)
	}
	return &growth, nil
}

func (gr *growthRepository) UpdateGrowth(ctx context.Context, growth *domain.Growth) error {
	if err := gr.db.WithContext(ctx).Omit(clause.Associations, "created_at", "is_initial_record").Save(growth).Error; err != nil {
		return fmt.Errorf("could not update growth record: %w", err)
	}
	return nil
}

func (gr *growthRepository) DeleteGrowth(ctx context.Context, id int) error {
	res := gr.db.WithContext(ctx).Where("growth_id = ?", id).Delete(&domain.Growth{})
	if res.Error != nil {
		return fmt.Errorf("could not delete growth record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("Growth record")
	}
	return nil
}
