package repository

import (
	"babycare/domain"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sleepRepository struct {
	db *gorm.DB
}

func NewSleepRepository(database *gorm.DB) domain.SleepRepo {
	return &sleepRepository{
		db: database,
	}
}

// UpsertSleep locks the (child_id, date) row when it exists and updates it in
// place; otherwise it inserts. Two writers racing on a missing row both reach
// the insert, and the loser hits the unique index. That conflict is retried
// once, at which point the row is visible and the update path runs.
func (sr *sleepRepository) UpsertSleep(ctx context.Context, sleep *domain.Sleep) (bool, error) {
	var created bool
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		created, err = sr.upsertOnce(ctx, sleep)
		if err == nil || !isUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		return false, fmt.Errorf("failed to save sleep record: %w", err)
	}
	return created, nil
}

func (sr *sleepRepository) upsertOnce(ctx context.Context, sleep *domain.Sleep) (bool, error) {
	created := false
	err := sr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Sleep
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("child_id = ? AND date = ?", sleep.ChildID, sleep.Date).
			First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			sleep.SleepID = 0
			return tx.Omit(clause.Associations).Create(sleep).Error
		}
		if err != nil {
			return err
		}

		err = tx.Model(&existing).Updates(map[string]interface{}{
			"nap_hours":      sleep.NapHours,
			"night_hours":    sleep.NightHours,
			"sleep_progress": sleep.SleepProgress,
			"notes":          sleep.Notes,
			"auto_filled":    sleep.AutoFilled,
		}).Error
		if err != nil {
			return err
		}
		sleep.SleepID = existing.SleepID
		return tx.First(sleep).Error
	})
	return created, err
}

// InsertSleepIfAbsent is a single INSERT ... ON CONFLICT DO NOTHING, so an
// existing record for the day is never touched.
func (sr *sleepRepository) InsertSleepIfAbsent(ctx context.Context, sleep *domain.Sleep) (bool, error) {
	res := sr.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "child_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(sleep)
	if res.Error != nil {
		return false, fmt.Errorf("could not insert sleep record: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (sr *sleepRepository) FindSleep(ctx context.Context, id int) (*domain.Sleep, error) {
	var sleep domain.Sleep
	if err := sr.db.WithContext(ctx).Where("sleep_id = ?", id).First(&sleep).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("Sleep record")
		}
		return nil, fmt.Errorf("error fetching sleep record: %w", err)
	}
	return &sleep, nil
}

func (sr *sleepRepository) ExistsSleepBetween(ctx context.Context, childID int, from, to string) (bool, error) {
	var count int64
	err := sr.db.WithContext(ctx).
		Model(&domain.Sleep{}).
		Where("child_id = ?", childID).
		Scopes(closedRange("date", from, to)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count sleep records: %w", err)
	}
	return count > 0, nil
}

func (sr *sleepRepository) ListSleep(ctx context.Context, childID int, from, to string) ([]domain.Sleep, error) {
	var records []domain.Sleep
	err := sr.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Scopes(closedRange("date", from, to)).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sleep records: %w", err)
	}
	return records, nil
}

func (sr *sleepRepository) UpdateSleep(ctx context.Context, sleep *domain.Sleep) error {
	if err := sr.db.WithContext(ctx).Omit(clause.Associations, "created_at").Save(sleep).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.InvalidInput("A sleep record already exists for %s", sleep.Date)
		}
		return fmt.Errorf("could not update sleep record: %w", err)
	}
	return nil
}

func (sr *sleepRepository) DeleteSleep(ctx context.Context, id int) error {
	res := sr.db.WithContext(ctx).Where("sleep_id = ?", id).Delete(&domain.Sleep{})
	if res.Error != nil {
		return fmt.Errorf("could not delete sleep record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("Sleep record")
	}
	return nil
}
