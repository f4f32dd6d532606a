package usecase

import (
	"babycare/domain"
	"babycare/temporal"
	"context"
	"strings"
	"time"
)

type diaperUseCase struct {
	diapers domain.DiaperRepo
	guard   *OwnershipGuard
	clock   *temporal.Normalizer
	TimeOut time.Duration
}

func NewDiaperUseCase(diapers domain.DiaperRepo, guard *OwnershipGuard, clock *temporal.Normalizer, to time.Duration) domain.DiaperUseCase {
	return &diaperUseCase{
		diapers: diapers,
		guard:   guard,
		clock:   clock,
		TimeOut: to,
	}
}

// NormalizeDiaper enforces the type tag. Wet changes never carry color or
// consistency.
func NormalizeDiaper(d *domain.Diaper) error {
	switch d.Type {
	case domain.DiaperWet:
		d.Color = nil
		d.Consistency = nil
	case domain.DiaperDirty, domain.DiaperBoth:
	default:
		return domain.InvalidInput("Type must be wet, dirty or both")
	}
	return nil
}

func (du *diaperUseCase) Create(ctx context.Context, userID, childID int, req *domain.DiaperPayload) (*domain.Diaper, error) {
	ctx, cancel := context.WithTimeout(ctx, du.TimeOut)
	defer cancel()

	if _, err := du.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}

	diaper := &domain.Diaper{ChildID: childID, Time: du.clock.NowDateTime()}
	if req.Type == nil {
		return nil, domain.InvalidInput("Type is required")
	}
	if err := du.apply(diaper, req); err != nil {
		return nil, err
	}

	if err := du.diapers.CreateDiaper(ctx, diaper); err != nil {
		return nil, storageFault(err, "failed to create diaper")
	}
	return diaper, nil
}

func (du *diaperUseCase) ListByChild(ctx context.Context, userID, childID int, date string) ([]domain.Diaper, error) {
	ctx, cancel := context.WithTimeout(ctx, du.TimeOut)
	defer cancel()

	if _, err := du.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}

	var from, to string
	if strings.TrimSpace(date) != "" {
		var err error
		if from, to, err = du.clock.DateRangeForDay(date); err != nil {
			return nil, domain.InvalidInput("Invalid date format")
		}
	}

	list, err := du.diapers.ListDiapers(ctx, childID, from, to)
	if err != nil {
		return nil, storageFault(err, "failed to list diapers")
	}
	return list, nil
}

func (du *diaperUseCase) Get(ctx context.Context, userID, id int) (*domain.Diaper, error) {
	ctx, cancel := context.WithTimeout(ctx, du.TimeOut)
	defer cancel()

	return du.owned(ctx, userID, id)
}

func (du *diaperUseCase) Update(ctx context.Context, userID, id int, req *domain.DiaperPayload) (*domain.Diaper, error) {
	ctx, cancel := context.WithTimeout(ctx, du.TimeOut)
	defer cancel()

	diaper, err := du.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := du.apply(diaper, req); err != nil {
		return nil, err
	}

	if err := du.diapers.UpdateDiaper(ctx, diaper); err != nil {
		return nil, storageFault(err, "failed to update diaper")
	}
	return diaper, nil
}

func (du *diaperUseCase) Delete(ctx context.Context, userID, id int) error {
	ctx, cancel := context.WithTimeout(ctx, du.TimeOut)
	defer cancel()

	if _, err := du.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := du.diapers.DeleteDiaper(ctx, id); err != nil {
		return storageFault(err, "failed to delete diaper")
	}
	return nil
}

func (du *diaperUseCase) owned(ctx context.Context, userID, id int) (*domain.Diaper, error) {
	return ownedRecord(ctx, du.guard, userID, id, du.diapers.FindDiaper,
		func(d *domain.Diaper) int { return d.ChildID }, "Diaper")
}

func (du *diaperUseCase) apply(d *domain.Diaper, req *domain.DiaperPayload) error {
	if req.Type != nil {
		d.Type = strings.ToLower(strings.TrimSpace(*req.Type))
	}
	if req.Time != nil && strings.TrimSpace(*req.Time) != "" {
		ts, err := du.clock.CanonicalDateTime(*req.Time)
		if err != nil {
			return domain.InvalidInput("Invalid time format")
		}
		d.Time = ts
	}
	if req.Color != nil {
		d.Color = emptyToNil(*req.Color)
	}
	if req.Consistency != nil {
		d.Consistency = emptyToNil(*req.Consistency)
	}
	if req.Notes != nil {
		d.Notes = *req.Notes
	}
	return NormalizeDiaper(d)
}
