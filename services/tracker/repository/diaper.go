package repository

import (
	"babycare/domain"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type diaperRepository struct {
	db *gorm.DB
}

func NewDiaperRepository(database *gorm.DB) domain.DiaperRepo {
	return &diaperRepository{
		db: database,
	}
}

func (dr *diaperRepository) CreateDiaper(ctx context.Context, diaper *domain.Diaper) error {
	if err := dr.db.WithContext(ctx).Omit(clause.Associations).Create(diaper).Error; err != nil {
		return fmt.Errorf("could not create diaper: %w", err)
	}
	return nil
}

func (dr *diaperRepository) FindDiaper(ctx context.Context, id int) (*domain.Diaper, error) {
	var diaper domain.Diaper
	if err := dr.db.WithContext(ctx).Where("diaper_id = ?", id).First(&diaper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("Diaper")
		}
		return nil, fmt.Errorf("error fetching diaper: %w", err)
	}
	return &diaper, nil
}

func (dr *diaperRepository) ListDiapers(ctx context.Context, childID int, from, to string) ([]domain.Diaper, error) {
	var diapers []domain.Diaper
	err := dr.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Scopes(closedRange("time", from, to)).
		Order("time DESC").
		Find(&diapers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve diapers: %w", err)
	}
	return diapers, nil
}

func (dr *diaperRepository) UpdateDiaper(ctx context.Context, diaper *domain.Diaper) error {
	if err := dr.db.WithContext(ctx).Omit(clause.Associations, "created_at").Save(diaper).Error; err != nil {
		return fmt.Errorf("could not update diaper: %w", err)
	}
	return nil
}

func (dr *diaperRepository) DeleteDiaper(ctx context.Context, id int) error {
	res := dr.db.WithContext(ctx).Where("diaper_id = ?", id).Delete(&domain.Diaper{})
	if res.Error != nil {
		return fmt.Errorf("could not delete diaper: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("Diaper")
	}
	return nil
}
