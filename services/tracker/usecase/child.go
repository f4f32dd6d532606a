package usecase

import (
	"babycare/childage"
	"babycare/domain"
	"babycare/temporal"
	"context"
	"strings"
	"time"
)

var genders = map[string]bool{"male": true, "female": true, "other": true}

type childUseCase struct {
	children domain.ChildRepo
	guard    *OwnershipGuard
	clock    *temporal.Normalizer
	TimeOut  time.Duration
}

func NewChildUseCase(children domain.ChildRepo, guard *OwnershipGuard, clock *temporal.Normalizer, to time.Duration) domain.ChildUseCase {
	return &childUseCase{
		children: children,
		guard:    guard,
		clock:    clock,
		TimeOut:  to,
	}
}

func (cu *childUseCase) Create(ctx context.Context, userID int, req *domain.ChildPayload) (*domain.Child, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	child := &domain.Child{UserID: userID}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, domain.InvalidInput("Name is required")
	}
	if req.Gender == nil {
		return nil, domain.InvalidInput("Gender is required")
	}
	if err := cu.apply(child, req); err != nil {
		return nil, err
	}
	if child.Age == "" {
		return nil, domain.InvalidInput("Age or birth date is required")
	}

	// a full measurement at profile time becomes the anchor growth record
	var initial *domain.Growth
	if child.Weight != nil && child.Height != nil {
		initial = &domain.Growth{
			Weight:          *child.Weight,
			Height:          *child.Height,
			RecordDate:      cu.clock.Today(),
			Notes:           "Initial measurement",
			IsInitialRecord: true,
		}
		if child.HeadCircumference != nil {
			initial.HeadCircumference = *child.HeadCircumference
		}
	}

	if err := cu.children.CreateChild(ctx, child, initial); err != nil {
		return nil, storageFault(err, "failed to create child")
	}
	return child, nil
}

func (cu *childUseCase) List(ctx context.Context, userID int) ([]domain.Child, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	children, err := cu.children.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageFault(err, "failed to list children")
	}
	return children, nil
}

func (cu *childUseCase) Get(ctx context.Context, userID, childID int) (*domain.Child, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.guard.VerifyChildOwnership(ctx, childID, userID)
}

func (cu *childUseCase) Update(ctx context.Context, userID, childID int, req *domain.ChildPayload) (*domain.Child, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	child, err := cu.guard.VerifyChildOwnership(ctx, childID, userID)
	if err != nil {
		return nil, err
	}
	if err := cu.apply(child, req); err != nil {
		return nil, err
	}
	child.UserID = userID

	if err := cu.children.UpdateChild(ctx, child); err != nil {
		return nil, storageFault(err, "failed to update child")
	}
	return child, nil
}

func (cu *childUseCase) Delete(ctx context.Context, userID, childID int) error {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	if _, err := cu.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return err
	}
	if err := cu.children.DeleteChild(ctx, childID); err != nil {
		return storageFault(err, "failed to delete child")
	}
	return nil
}

// apply copies the non-nil payload fields onto child. A supplied birth date
// always recomputes the age label.
func (cu *childUseCase) apply(child *domain.Child, req *domain.ChildPayload) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.InvalidInput("Name cannot be empty")
		}
		child.Name = name
	}

	if req.Gender != nil {
		gender := strings.ToLower(strings.TrimSpace(*req.Gender))
		if !genders[gender] {
			return domain.InvalidInput("Gender must be male, female or other")
		}
		child.Gender = gender
	}

	switch {
	case req.BirthDate != nil && strings.TrimSpace(*req.BirthDate) != "":
		birth, err := cu.clock.ParseDate(*req.BirthDate)
		if err != nil {
			return domain.InvalidInput("Invalid birth date format")
		}
		day := birth.Format(temporal.DateLayout)
		child.BirthDate = &day
		child.Age = childage.DeriveAgeLabel(birth, cu.clock.Now())
	case req.Age != nil:
		child.Age = strings.TrimSpace(*req.Age)
	}

	if req.ImageURL != nil {
		child.ImageURL = emptyToNil(*req.ImageURL)
	}

	for _, m := range []struct {
		name string
		src  *float64
		dst  **float64
	}{
		{"Weight", req.Weight, &child.Weight},
		{"Height", req.Height, &child.Height},
		{"Head circumference", req.HeadCircumference, &child.HeadCircumference},
	} {
		if m.src == nil {
			continue
		}
		if *m.src <= 0 {
			return domain.InvalidInput("%s must be greater than 0", m.name)
		}
		v := *m.src
		*m.dst = &v
	}
	return nil
}

// childAgeMonths prefers the stored birth date and falls back to the age
// label.
func childAgeMonths(child *domain.Child, clock *temporal.Normalizer) int {
	if child.BirthDate != nil {
		if birth, err := time.ParseInLocation(temporal.DateLayout, *child.BirthDate, clock.Location()); err == nil {
			if months := childage.MonthsElapsed(birth, clock.Now()); months > 0 {
				return months
			}
			return 0
		}
	}
	return childage.AgeMonthsFromLabel(child.Age)
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
