package usecase

import (
	"babycare/aggregate"
	"babycare/childage"
	"babycare/domain"
	"babycare/temporal"
	"context"
	"strings"
	"time"
)

type growthUseCase struct {
	growth  domain.GrowthRepo
	guard   *OwnershipGuard
	clock   *temporal.Normalizer
	TimeOut time.Duration
}

func NewGrowthUseCase(growth domain.GrowthRepo, guard *OwnershipGuard, clock *temporal.Normalizer, to time.Duration) domain.GrowthUseCase {
	return &growthUseCase{
		growth:  growth,
		guard:   guard,
		clock:   clock,
		TimeOut: to,
	}
}

func (gu *growthUseCase) Create(ctx context.Context, userID, childID int, req *domain.GrowthPayload) (*domain.Growth, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.TimeOut)
	defer cancel()

	if _, err := gu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	if req.Weight == nil || req.Height == nil {
		return nil, domain.InvalidInput("Weight and height are required")
	}

	record := &domain.Growth{ChildID: childID, RecordDate: gu.clock.Today()}
	if err := gu.apply(record, req); err != nil {
		return nil, err
	}

	// progress is measured against the latest earlier record unless supplied
	prev, err := gu.growth.LatestGrowthBefore(ctx, childID, record.RecordDate)
	if err != nil {
		return nil, storageFault(err, "failed to load previous growth record")
	}
	if prev != nil {
		if req.WeightProgress == nil {
			record.WeightProgress = childage.ProgressPercent(prev.Weight, record.Weight)
		}
		if req.HeightProgress == nil {
			record.HeightProgress = childage.ProgressPercent(prev.Height, record.Height)
		}
		if req.HeadCircumferenceProgress == nil {
			record.HeadCircumferenceProgress = childage.ProgressPercent(prev.HeadCircumference, record.HeadCircumference)
		}
	}

	if err := gu.growth.CreateGrowth(ctx, record); err != nil {
		return nil, storageFault(err, "failed to create growth record")
	}
	return record, nil
}

func (gu *growthUseCase) ListByChild(ctx context.Context, userID, childID int) ([]domain.Growth, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.TimeOut)
	defer cancel()

	if _, err := gu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	return gu.list(ctx, childID)
}

func (gu *growthUseCase) Get(ctx context.Context, userID, id int) (*domain.Growth, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.TimeOut)
	defer cancel()

	return gu.owned(ctx, userID, id)
}

func (gu *growthUseCase) Update(ctx context.Context, userID, id int, req *domain.GrowthPayload) (*domain.Growth, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.TimeOut)
	defer cancel()

	record, err := gu.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := gu.apply(record, req); err != nil {
		return nil, err
	}

	if err := gu.growth.UpdateGrowth(ctx, record); err != nil {
		return nil, storageFault(err, "failed to update growth record")
	}
	return record, nil
}

func (gu *growthUseCase) Delete(ctx context.Context, userID, id int) error {
	ctx, cancel := context.WithTimeout(ctx, gu.TimeOut)
	defer cancel()

	record, err := gu.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if record.IsInitialRecord {
		return domain.Forbidden("The initial growth record cannot be deleted")
	}
	if err := gu.growth.DeleteGrowth(ctx, id); err != nil {
		return storageFault(err, "failed to delete growth record")
	}
	return nil
}

func (gu *growthUseCase) Statistics(ctx context.Context, userID, childID int) (*domain.GrowthStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.TimeOut)
	defer cancel()

	if _, err := gu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	records, err := gu.list(ctx, childID)
	if err != nil {
		return nil, err
	}
	return GrowthStatistics(records), nil
}

// GrowthStatistics expects records ordered ascending by record date. Gains
// stay zero until there are at least two records.
func GrowthStatistics(records []domain.Growth) *domain.GrowthStatistics {
	stats := &domain.GrowthStatistics{
		TotalRecords:      len(records),
		Weight:            make([]domain.SeriesPoint, 0, len(records)),
		Height:            make([]domain.SeriesPoint, 0, len(records)),
		HeadCircumference: make([]domain.SeriesPoint, 0, len(records)),
	}
	for _, r := range records {
		stats.Weight = append(stats.Weight, domain.SeriesPoint{Date: r.RecordDate, Value: r.Weight, Progress: r.WeightProgress})
		stats.Height = append(stats.Height, domain.SeriesPoint{Date: r.RecordDate, Value: r.Height, Progress: r.HeightProgress})
		stats.HeadCircumference = append(stats.HeadCircumference, domain.SeriesPoint{Date: r.RecordDate, Value: r.HeadCircumference, Progress: r.HeadCircumferenceProgress})
	}
	if len(records) == 0 {
		return stats
	}

	first, latest := records[0], records[len(records)-1]
	stats.FirstRecord = &first
	stats.LatestRecord = &latest
	if len(records) >= 2 {
		stats.WeightGain = latest.Weight - first.Weight
		stats.HeightGain = latest.Height - first.Height
		stats.HeadCircumferenceGain = latest.HeadCircumference - first.HeadCircumference
	}
	return stats
}

func (gu *growthUseCase) Daily(ctx context.Context, userID, childID int) ([]domain.GrowthDay, error) {
	ctx, cancel := context.WithTimeout(ctx, gu.TimeOut)
	defer cancel()

	if _, err := gu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	records, err := gu.list(ctx, childID)
	if err != nil {
		return nil, err
	}
	return aggregate.GrowthDays(records), nil
}

func (gu *growthUseCase) list(ctx context.Context, childID int) ([]domain.Growth, error) {
	records, err := gu.growth.ListGrowth(ctx, childID)
	if err != nil {
		return nil, storageFault(err, "failed to list growth records")
	}
	return records, nil
}

func (gu *growthUseCase) owned(ctx context.Context, userID, id int) (*domain.Growth, error) {
	return ownedRecord(ctx, gu.guard, userID, id, gu.growth.FindGrowth,
		func(g *domain.Growth) int { return g.ChildID }, "Growth record")
}

func (gu *growthUseCase) apply(g *domain.Growth, req *domain.GrowthPayload) error {
	if req.Weight != nil {
		if *req.Weight <= 0 {
			return domain.InvalidInput("Weight must be greater than 0")
		}
		g.Weight = *req.Weight
	}
	if req.Height != nil {
		if *req.Height <= 0 {
			return domain.InvalidInput("Height must be greater than 0")
		}
		g.Height = *req.Height
	}
	if req.HeadCircumference != nil {
		if *req.HeadCircumference < 0 {
			return domain.InvalidInput("Head circumference cannot be negative")
		}
		g.HeadCircumference = *req.HeadCircumference
	}
	if req.RecordDate != nil && strings.TrimSpace(*req.RecordDate) != "" {
		day, err := gu.clock.CanonicalDate(*req.RecordDate)
		if err != nil {
			return domain.InvalidInput("Invalid record date format")
		}
		g.RecordDate = day
	}
	if req.WeightProgress != nil {
		g.WeightProgress = *req.WeightProgress
	}
	if req.HeightProgress != nil {
		g.HeightProgress = *req.HeightProgress
	}
	if req.HeadCircumferenceProgress != nil {
		g.HeadCircumferenceProgress = *req.HeadCircumferenceProgress
	}
	if req.Notes != nil {
		g.Notes = *req.Notes
	}
	return nil
}
