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

type vaccinationUseCase struct {
	vaccinations domain.VaccinationRepo
	guard        *OwnershipGuard
	clock        *temporal.Normalizer
	TimeOut      time.Duration
}

func NewVaccinationUseCase(vaccinations domain.VaccinationRepo, guard *OwnershipGuard, clock *temporal.Normalizer, to time.Duration) domain.VaccinationUseCase {
	return &vaccinationUseCase{
		vaccinations: vaccinations,
		guard:        guard,
		clock:        clock,
		TimeOut:      to,
	}
}

func (vu *vaccinationUseCase) Create(ctx context.Context, userID, childID int, req *domain.VaccinationPayload) (*domain.Vaccination, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	if _, err := vu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	switch {
	case isBlank(req.VaccineID):
		return nil, domain.InvalidInput("vaccine_id is required")
	case isBlank(req.VaccineName):
		return nil, domain.InvalidInput("vaccine_name is required")
	case isBlank(req.ScheduledDate):
		return nil, domain.InvalidInput("scheduled_date is required")
	}

	v := &domain.Vaccination{ChildID: childID}
	if err := vu.apply(v, req); err != nil {
		return nil, err
	}
	if err := vu.ensureUnique(ctx, v); err != nil {
		return nil, err
	}

	if err := vu.vaccinations.CreateVaccination(ctx, v); err != nil {
		return nil, storageFault(err, "failed to create vaccination")
	}
	return v, nil
}

func (vu *vaccinationUseCase) ListByChild(ctx context.Context, userID, childID int) ([]domain.Vaccination, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	if _, err := vu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	return vu.list(ctx, childID)
}

func (vu *vaccinationUseCase) Get(ctx context.Context, userID, id int) (*domain.Vaccination, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	return vu.owned(ctx, userID, id)
}

func (vu *vaccinationUseCase) Update(ctx context.Context, userID, id int, req *domain.VaccinationPayload) (*domain.Vaccination, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	v, err := vu.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	previousID := v.VaccineID
	if err := vu.apply(v, req); err != nil {
		return nil, err
	}
	if v.VaccineID != previousID {
		if err := vu.ensureUnique(ctx, v); err != nil {
			return nil, err
		}
	}

	if err := vu.vaccinations.UpdateVaccination(ctx, v); err != nil {
		return nil, storageFault(err, "failed to update vaccination")
	}
	return v, nil
}

func (vu *vaccinationUseCase) Complete(ctx context.Context, userID, id int, req *domain.CompletionPayload) (*domain.Vaccination, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	v, err := vu.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	completed := vu.clock.Today()
	if !isBlank(req.CompletedDate) {
		if completed, err = vu.clock.CanonicalDate(*req.CompletedDate); err != nil {
			return nil, domain.InvalidInput("Invalid completed date format")
		}
	}
	v.IsCompleted = true
	v.CompletedDate = &completed
	if req.CompletionNotes != nil {
		v.CompletionNotes = emptyToNil(*req.CompletionNotes)
	}

	if err := vu.vaccinations.UpdateVaccination(ctx, v); err != nil {
		return nil, storageFault(err, "failed to complete vaccination")
	}
	return v, nil
}

func (vu *vaccinationUseCase) Uncomplete(ctx context.Context, userID, id int) (*domain.Vaccination, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	v, err := vu.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	v.IsCompleted = false
	v.CompletedDate = nil
	v.CompletionNotes = nil

	if err := vu.vaccinations.UpdateVaccination(ctx, v); err != nil {
		return nil, storageFault(err, "failed to reset vaccination")
	}
	return v, nil
}

func (vu *vaccinationUseCase) Delete(ctx context.Context, userID, id int) error {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	if _, err := vu.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := vu.vaccinations.DeleteVaccination(ctx, id); err != nil {
		return storageFault(err, "failed to delete vaccination")
	}
	return nil
}

// Due lists incomplete vaccinations scheduled in the current calendar month.
func (vu *vaccinationUseCase) Due(ctx context.Context, userID, childID int) ([]domain.Vaccination, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	if _, err := vu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	start, end := vu.clock.CurrentMonthWindow()
	return vu.incomplete(ctx, childID, start, end)
}

// Overdue lists incomplete vaccinations scheduled before the current month.
func (vu *vaccinationUseCase) Overdue(ctx context.Context, userID, childID int) ([]domain.Vaccination, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	if _, err := vu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	start, _ := vu.clock.CurrentMonthWindow()
	return vu.incomplete(ctx, childID, "", dayBefore(start))
}

func (vu *vaccinationUseCase) Progress(ctx context.Context, userID, childID int) (*domain.VaccinationProgress, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	if _, err := vu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	return vu.progress(ctx, childID)
}

func (vu *vaccinationUseCase) Schedule(ctx context.Context, userID, childID int) ([]domain.VaccinationMonth, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	if _, err := vu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	records, err := vu.list(ctx, childID)
	if err != nil {
		return nil, err
	}
	return aggregate.VaccinationMonths(records), nil
}

// Card is the printable summary; NextDue is the earliest incomplete entry.
func (vu *vaccinationUseCase) Card(ctx context.Context, userID, childID int) (*domain.VaccinationCard, error) {
	ctx, cancel := context.WithTimeout(ctx, vu.TimeOut)
	defer cancel()

	child, err := vu.guard.VerifyChildOwnership(ctx, childID, userID)
	if err != nil {
		return nil, err
	}
	progress, err := vu.progress(ctx, childID)
	if err != nil {
		return nil, err
	}
	pending, err := vu.incomplete(ctx, childID, "", "")
	if err != nil {
		return nil, err
	}

	card := &domain.VaccinationCard{ChildName: child.Name, Progress: *progress}
	if len(pending) > 0 {
		card.NextDue = &pending[0]
	}
	return card, nil
}

func (vu *vaccinationUseCase) progress(ctx context.Context, childID int) (*domain.VaccinationProgress, error) {
	total, completed, err := vu.vaccinations.CountVaccinations(ctx, childID)
	if err != nil {
		return nil, storageFault(err, "failed to count vaccinations")
	}
	return &domain.VaccinationProgress{
		Completed:  int(completed),
		Total:      int(total),
		Percentage: childage.CompletionPercent(int(completed), int(total)),
	}, nil
}

func (vu *vaccinationUseCase) ensureUnique(ctx context.Context, v *domain.Vaccination) error {
	existing, err := vu.vaccinations.FindByVaccineID(ctx, v.ChildID, v.VaccineID)
	if err != nil {
		return storageFault(err, "failed to check vaccination")
	}
	if existing != nil && existing.VaccinationID != v.VaccinationID {
		return domain.InvalidInput("Vaccination %s already exists for this child", v.VaccineID)
	}
	return nil
}

func (vu *vaccinationUseCase) list(ctx context.Context, childID int) ([]domain.Vaccination, error) {
	records, err := vu.vaccinations.ListVaccinations(ctx, childID)
	if err != nil {
		return nil, storageFault(err, "failed to list vaccinations")
	}
	return records, nil
}

func (vu *vaccinationUseCase) incomplete(ctx context.Context, childID int, from, to string) ([]domain.Vaccination, error) {
	records, err := vu.vaccinations.ListIncomplete(ctx, childID, from, to)
	if err != nil {
		return nil, storageFault(err, "failed to list pending vaccinations")
	}
	return records, nil
}

func (vu *vaccinationUseCase) owned(ctx context.Context, userID, id int) (*domain.Vaccination, error) {
	return ownedRecord(ctx, vu.guard, userID, id, vu.vaccinations.FindVaccination,
		func(v *domain.Vaccination) int { return v.ChildID }, "Vaccination")
}

func (vu *vaccinationUseCase) apply(v *domain.Vaccination, req *domain.VaccinationPayload) error {
	if req.VaccineID != nil {
		if isBlank(req.VaccineID) {
			return domain.InvalidInput("vaccine_id cannot be empty")
		}
		v.VaccineID = strings.TrimSpace(*req.VaccineID)
	}
	if req.VaccineName != nil {
		if isBlank(req.VaccineName) {
			return domain.InvalidInput("vaccine_name cannot be empty")
		}
		v.VaccineName = strings.TrimSpace(*req.VaccineName)
	}
	if req.Dose != nil {
		v.Dose = strings.TrimSpace(*req.Dose)
	}
	if req.ScheduledDate != nil {
		day, err := vu.clock.CanonicalDate(*req.ScheduledDate)
		if err != nil {
			return domain.InvalidInput("Invalid scheduled date format")
		}
		v.ScheduledDate = day
	}
	if req.AgeMonths != nil {
		if *req.AgeMonths < 0 {
			return domain.InvalidInput("age_months cannot be negative")
		}
		m := *req.AgeMonths
		v.AgeMonths = &m
	}
	if req.AgeDays != nil {
		if *req.AgeDays < 0 {
			return domain.InvalidInput("age_days cannot be negative")
		}
		d := *req.AgeDays
		v.AgeDays = &d
	}
	if req.Notes != nil {
		v.Notes = *req.Notes
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func dayBefore(day string) string {
	t, err := time.Parse(temporal.DateLayout, day)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, -1).Format(temporal.DateLayout)
}
