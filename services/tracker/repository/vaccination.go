package repository

import (
	"babycare/domain"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type vaccinationRepository struct {
	db *gorm.DB
}

func NewVaccinationRepository(database *gorm.DB) domain.VaccinationRepo {
	return &vaccinationRepository{
		db: database,
	}
}

func (vr *vaccinationRepository) CreateVaccination(ctx context.Context, v *domain.Vaccination) error {
	if err := vr.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.InvalidInput("Vaccination %s already exists for this child", v.VaccineID)
		}
		return fmt.Errorf("could not create vaccination: %w", err)
	}
	return nil
}

func (vr *vaccinationRepository) FindVaccination(ctx context.Context, id int) (*domain.Vaccination, error) {
	var v domain.Vaccination
	if err := vr.db.WithContext(ctx).Where("vaccination_id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("Vaccination")
		}
		return nil, fmt.Errorf("error fetching vaccination: %w", err)
	}
	return &v, nil
}

func (vr *vaccinationRepository) FindByVaccineID(ctx context.Context, childID int, vaccineID string) (*domain.Vaccination, error) {
	var v domain.Vaccination
	err := vr.db.WithContext(ctx).
		Where("child_id = ? AND vaccine_id = ?", childID, vaccineID).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching vaccination: %w", err)
	}
	return &v, nil
}

func (vr *vaccinationRepository) ListVaccinations(ctx context.Context, childID int) ([]domain.Vaccination, error) {
	var list []domain.Vaccination
	err := vr.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("scheduled_date ASC, vaccination_id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve vaccinations: %w", err)
	}
	return list, nil
}

func (vr *vaccinationRepository) ListIncomplete(ctx context.Context, childID int, from, to string) ([]domain.Vaccination, error) {
	var list []domain.Vaccination
	err := vr.db.WithContext(ctx).
		Where("child_id = ? AND is_completed = ?", childID, false).
		Scopes(closedRange("scheduled_date", from, to)).
		Order("scheduled_date ASC, vaccination_id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve vaccinations: %w", err)
	}
	return list, nil
}

type vaccinationCounts struct {
	Total     int64
	Completed int64
}

func (vr *vaccinationRepository) CountVaccinations(ctx context.Context, childID int) (int64, int64, error) {
	var counts vaccinationCounts
	err := vr.db.WithContext(ctx).
		Model(&domain.Vaccination{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) AS completed").
		Where("child_id = ?", childID).
		Scan(&counts).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count vaccinations: %w", err)
	}
	return counts.Total, counts.Completed, nil
}

func (vr *vaccinationRepository) UpdateVaccination(ctx context.Context, v *domain.Vaccination) error {
	if err := vr.db.WithContext(ctx).Omit(clause.Associations, "created_at").Save(v).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.InvalidInput("Vaccination %s already exists for this child", v.VaccineID)
		}
		return fmt.Errorf("could not update vaccination: %w", err)
	}
	return nil
}

func (vr *vaccinationRepository) DeleteVaccination(ctx context.Context, id int) error {
	res := vr.db.WithContext(ctx).Where("vaccination_id = ?", id).Delete(&domain.Vaccination{})
	if res.Error != nil {
		return fmt.Errorf("could not delete vaccination: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("Vaccination")
	}
	return nil
}
