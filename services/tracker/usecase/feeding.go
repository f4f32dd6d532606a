package usecase

import (
	"babycare/aggregate"
	"babycare/domain"
	"babycare/temporal"
	"context"
	"math"
	"strings"
	"time"
)

type feedingUseCase struct {
	feedings domain.FeedingRepo
	guard    *OwnershipGuard
	clock    *temporal.Normalizer
	TimeOut  time.Duration
}

func NewFeedingUseCase(feedings domain.FeedingRepo, guard *OwnershipGuard, clock *temporal.Normalizer, to time.Duration) domain.FeedingUseCase {
	return &feedingUseCase{
		feedings: feedings,
		guard:    guard,
		clock:    clock,
		TimeOut:  to,
	}
}

// NormalizeFeeding enforces the tagged variant on Type for both create and
// update: the group selected by Type must be complete and the other group is
// cleared. Timestamp falls back to the start time, then to now, and Date is
// always the day of Timestamp.
func NormalizeFeeding(f *domain.Feeding, clock *temporal.Normalizer) error {
	switch f.Type {
	case domain.FeedingBreast:
		if f.Duration == nil && f.StartTime != nil && f.EndTime != nil {
			minutes, err := minutesBetween(*f.StartTime, *f.EndTime)
			if err != nil {
				return err
			}
			f.Duration = &minutes
		}
		if f.Duration == nil || *f.Duration <= 0 {
			return domain.InvalidInput("Duration is required for breast feeding")
		}
		if f.Side == nil || (*f.Side != domain.SideLeft && *f.Side != domain.SideRight) {
			return domain.InvalidInput("Side must be left or right for breast feeding")
		}
		f.Amount = nil

	case domain.FeedingBottle, domain.FeedingSolid:
		if f.Amount == nil || *f.Amount <= 0 {
			return domain.InvalidInput("Amount is required for %s feeding", f.Type)
		}
		f.StartTime = nil
		f.EndTime = nil
		f.Duration = nil
		f.Side = nil

	default:
		return domain.InvalidInput("Type must be breast, bottle or solid")
	}

	if f.Timestamp == "" {
		if f.StartTime != nil {
			f.Timestamp = *f.StartTime
		} else {
			f.Timestamp = clock.NowDateTime()
		}
	}
	day, ok := temporal.ExtractDateKey(f.Timestamp)
	if !ok {
		return domain.InvalidInput("Invalid timestamp")
	}
	f.Date = day
	return nil
}

func minutesBetween(start, end string) (int, error) {
	s, err := time.Parse(temporal.DateTimeLayout, start)
	if err != nil {
		return 0, domain.InvalidInput("Invalid start time")
	}
	e, err := time.Parse(temporal.DateTimeLayout, end)
	if err != nil {
		return 0, domain.InvalidInput("Invalid end time")
	}
	if !e.After(s) {
		return 0, domain.InvalidInput("End time must be after start time")
	}
	return int(math.Round(e.Sub(s).Minutes())), nil
}

func (fu *feedingUseCase) Create(ctx context.Context, userID, childID int, req *domain.FeedingPayload) (*domain.Feeding, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	if _, err := fu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	if req.Type == nil {
		return nil, domain.InvalidInput("Type is required")
	}

	feeding := &domain.Feeding{ChildID: childID}
	if err := fu.apply(feeding, req); err != nil {
		return nil, err
	}

	if err := fu.feedings.CreateFeeding(ctx, feeding); err != nil {
		return nil, storageFault(err, "failed to create feeding")
	}
	return feeding, nil
}

func (fu *feedingUseCase) ListByChild(ctx context.Context, userID, childID int) ([]domain.Feeding, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	if _, err := fu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	return fu.list(ctx, childID, "", "")
}

func (fu *feedingUseCase) Get(ctx context.Context, userID, id int) (*domain.Feeding, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	return fu.owned(ctx, userID, id)
}

func (fu *feedingUseCase) Update(ctx context.Context, userID, id int, req *domain.FeedingPayload) (*domain.Feeding, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	feeding, err := fu.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := fu.apply(feeding, req); err != nil {
		return nil, err
	}

	if err := fu.feedings.UpdateFeeding(ctx, feeding); err != nil {
		return nil, storageFault(err, "failed to update feeding")
	}
	return feeding, nil
}

func (fu *feedingUseCase) Delete(ctx context.Context, userID, id int) error {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	if _, err := fu.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := fu.feedings.DeleteFeeding(ctx, id); err != nil {
		return storageFault(err, "failed to delete feeding")
	}
	return nil
}

func (fu *feedingUseCase) Today(ctx context.Context, userID, childID int) (*domain.FeedingSummary, error) {
	summary, _, err := fu.ByDate(ctx, userID, childID, fu.clock.Today())
	return summary, err
}

func (fu *feedingUseCase) ByDate(ctx context.Context, userID, childID int, date string) (*domain.FeedingSummary, []domain.Feeding, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	if _, err := fu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, nil, err
	}
	day, err := fu.clock.CanonicalDate(date)
	if err != nil {
		return nil, nil, domain.InvalidInput("Invalid date format")
	}

	records, err := fu.list(ctx, childID, day, day)
	if err != nil {
		return nil, nil, err
	}
	summary := aggregate.FeedingDay(records)
	summary.Date = day
	return &summary, records, nil
}

func (fu *feedingUseCase) Weekly(ctx context.Context, userID, childID int) (*domain.FeedingPeriodSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	if _, err := fu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	start, end := fu.clock.WeekWindow()
	records, err := fu.list(ctx, childID, start, end)
	if err != nil {
		return nil, err
	}
	period := aggregate.FeedingPeriod(start, end, records)
	return &period, nil
}

func (fu *feedingUseCase) Monthly(ctx context.Context, userID, childID int, month string) (*domain.FeedingPeriodSummary, error) {
	period, _, err := fu.MonthlyReport(ctx, userID, childID, month)
	return period, err
}

func (fu *feedingUseCase) MonthlyReport(ctx context.Context, userID, childID int, month string) (*domain.FeedingPeriodSummary, []domain.Feeding, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.TimeOut)
	defer cancel()

	if _, err := fu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, nil, err
	}
	start, end, err := monthWindow(fu.clock, month)
	if err != nil {
		return nil, nil, err
	}
	records, err := fu.list(ctx, childID, start, end)
	if err != nil {
		return nil, nil, err
	}
	period := aggregate.FeedingPeriod(start, end, records)
	return &period, records, nil
}

func (fu *feedingUseCase) list(ctx context.Context, childID int, from, to string) ([]domain.Feeding, error) {
	records, err := fu.feedings.ListFeedings(ctx, childID, from, to)
	if err != nil {
		return nil, storageFault(err, "failed to list feedings")
	}
	return records, nil
}

func (fu *feedingUseCase) owned(ctx context.Context, userID, id int) (*domain.Feeding, error) {
	return ownedRecord(ctx, fu.guard, userID, id, fu.feedings.FindFeeding,
		func(f *domain.Feeding) int { return f.ChildID }, "Feeding")
}

func (fu *feedingUseCase) apply(f *domain.Feeding, req *domain.FeedingPayload) error {
	if req.Type != nil {
		f.Type = strings.ToLower(strings.TrimSpace(*req.Type))
	}

	var err error
	if req.StartTime != nil {
		if f.StartTime, err = fu.optionalDateTime(*req.StartTime, "start time"); err != nil {
			return err
		}
		if req.Duration == nil {
			f.Duration = nil
		}
	}
	if req.EndTime != nil {
		if f.EndTime, err = fu.optionalDateTime(*req.EndTime, "end time"); err != nil {
			return err
		}
		if req.Duration == nil {
			f.Duration = nil
		}
	}
	if req.Duration != nil {
		d := *req.Duration
		f.Duration = &d
	}
	if req.Side != nil {
		side := strings.ToLower(strings.TrimSpace(*req.Side))
		f.Side = &side
	}
	if req.Amount != nil {
		a := *req.Amount
		f.Amount = &a
	}
	if req.Timestamp != nil && strings.TrimSpace(*req.Timestamp) != "" {
		ts, err := fu.clock.CanonicalDateTime(*req.Timestamp)
		if err != nil {
			return domain.InvalidInput("Invalid timestamp format")
		}
		f.Timestamp = ts
	}
	if req.Notes != nil {
		f.Notes = *req.Notes
	}
	return NormalizeFeeding(f, fu.clock)
}

func (fu *feedingUseCase) optionalDateTime(value, field string) (*string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	ts, err := fu.clock.CanonicalDateTime(value)
	if err != nil {
		return nil, domain.InvalidInput("Invalid %s format", field)
	}
	return &ts, nil
}

// monthWindow resolves a YYYY-MM selector, defaulting to the current month.
func monthWindow(clock *temporal.Normalizer, month string) (string, string, error) {
	if strings.TrimSpace(month) == "" {
		start, end := clock.CurrentMonthWindow()
		return start, end, nil
	}
	start, end, err := clock.MonthWindow(month)
	if err != nil {
		return "", "", domain.InvalidInput("Month must be in YYYY-MM format")
	}
	return start, end, nil
}
