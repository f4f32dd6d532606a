package usecase

import (
	"babycare/aggregate"
	"babycare/childage"
	"babycare/domain"
	"babycare/temporal"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	autoFillLockPrefix = "babycare:sleep-autofill:"
	autoFillLockTTL    = 26 * time.Hour
	autoFillNote       = "Auto-filled from recommended sleep hours"
)

type sleepUseCase struct {
	sleeps   domain.SleepRepo
	children domain.ChildRepo
	guard    *OwnershipGuard
	clock    *temporal.Normalizer
	lock     domain.AutoFillLock
	log      *logrus.Logger
	TimeOut  time.Duration
}

// NewSleepUseCase wires the sleep orchestrator. lock may be nil, in which case
// auto-fill relies on the (child_id, date) unique index alone.
func NewSleepUseCase(sleeps domain.SleepRepo, children domain.ChildRepo, guard *OwnershipGuard,
	clock *temporal.Normalizer, lock domain.AutoFillLock, log *logrus.Logger, to time.Duration) domain.SleepUseCase {
	return &sleepUseCase{
		sleeps:   sleeps,
		children: children,
		guard:    guard,
		clock:    clock,
		lock:     lock,
		log:      log,
		TimeOut:  to,
	}
}

func (su *sleepUseCase) Upsert(ctx context.Context, userID, childID int, req *domain.SleepPayload) (*domain.SleepUpsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	child, err := su.guard.VerifyChildOwnership(ctx, childID, userID)
	if err != nil {
		return nil, err
	}

	record := &domain.Sleep{ChildID: childID, Date: su.clock.Today() + " 00:00:00"}
	if err := su.apply(record, req); err != nil {
		return nil, err
	}
	if req.SleepProgress == nil {
		record.SleepProgress = childage.SleepProgress(childAgeMonths(child, su.clock), record.TotalHours())
	}

	created, err := su.sleeps.UpsertSleep(ctx, record)
	if err != nil {
		return nil, storageFault(err, "failed to save sleep record")
	}

	outcome := domain.SleepUpdated
	if created {
		outcome = domain.SleepCreated
	}
	return &domain.SleepUpsertResult{Outcome: outcome, Sleep: record}, nil
}

func (su *sleepUseCase) ListByChild(ctx context.Context, userID, childID int) ([]domain.Sleep, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	if _, err := su.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	return su.list(ctx, childID, "", "")
}

func (su *sleepUseCase) ByDate(ctx context.Context, userID, childID int, date string) ([]domain.Sleep, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	if _, err := su.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	from, to, err := su.clock.DateRangeForDay(date)
	if err != nil {
		return nil, domain.InvalidInput("Invalid date format")
	}
	return su.list(ctx, childID, from, to)
}

func (su *sleepUseCase) Get(ctx context.Context, userID, id int) (*domain.Sleep, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	return su.owned(ctx, userID, id)
}

func (su *sleepUseCase) Update(ctx context.Context, userID, id int, req *domain.SleepPayload) (*domain.Sleep, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	record, err := su.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	hoursBefore := record.TotalHours()
	if err := su.apply(record, req); err != nil {
		return nil, err
	}
	record.AutoFilled = false

	if req.SleepProgress == nil && record.TotalHours() != hoursBefore {
		child, err := su.guard.VerifyChildOwnership(ctx, record.ChildID, userID)
		if err != nil {
			return nil, err
		}
		record.SleepProgress = childage.SleepProgress(childAgeMonths(child, su.clock), record.TotalHours())
	}

	if err := su.sleeps.UpdateSleep(ctx, record); err != nil {
		return nil, storageFault(err, "failed to update sleep record")
	}
	return record, nil
}

func (su *sleepUseCase) Delete(ctx context.Context, userID, id int) error {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	if _, err := su.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := su.sleeps.DeleteSleep(ctx, id); err != nil {
		return storageFault(err, "failed to delete sleep record")
	}
	return nil
}

func (su *sleepUseCase) Weekly(ctx context.Context, userID, childID int) (*domain.SleepPeriodSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	if _, err := su.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	start, end := su.clock.WeekWindow()
	return su.period(ctx, childID, start, end)
}

func (su *sleepUseCase) Monthly(ctx context.Context, userID, childID int, month string) (*domain.SleepPeriodSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	if _, err := su.guard.VerifyChildOwnership(ctx, childID, userID); err != nil {
		return nil, err
	}
	start, end, err := monthWindow(su.clock, month)
	if err != nil {
		return nil, err
	}
	return su.period(ctx, childID, start, end)
}

// AutoFill writes the recommended hours for yesterday for every child that
// has no sleep record that day. Existing records are never overwritten. It
// returns how many records were added.
func (su *sleepUseCase) AutoFill(ctx context.Context) (int, error) {
	yesterday := su.clock.Yesterday()
	log := su.log.WithFields(logrus.Fields{"job": "sleep-autofill", "date": yesterday})

	key := autoFillLockPrefix + yesterday
	if su.lock != nil {
		acquired, err := su.lock.Acquire(ctx, key, autoFillLockTTL)
		if err != nil {
			return 0, storageFault(err, "failed to acquire auto-fill lock")
		}
		if !acquired {
			log.Info("auto-fill already ran for this day")
			return 0, nil
		}
	}

	filled, err := su.fillAll(ctx, yesterday, log)
	if err != nil && su.lock != nil {
		// a failed run must not block the retry for the same day
		relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), su.TimeOut)
		if relErr := su.lock.Release(relCtx, key); relErr != nil {
			log.Warnf("failed to release auto-fill lock: %v", relErr)
		}
		cancel()
	}
	return filled, err
}

func (su *sleepUseCase) fillAll(ctx context.Context, yesterday string, log *logrus.Entry) (int, error) {
	listCtx, cancel := context.WithTimeout(ctx, su.TimeOut)
	children, err := su.children.ListAll(listCtx)
	cancel()
	if err != nil {
		return 0, storageFault(err, "failed to list children")
	}

	from, to := temporal.DayBounds(yesterday, yesterday)
	filled := 0
	var failed []string
	for i := range children {
		child := &children[i]
		inserted, err := su.fillChild(ctx, child, yesterday, from, to)
		if err != nil {
			log.WithField("child_id", child.ChildID).Errorf("auto-fill failed: %v", err)
			failed = append(failed, fmt.Sprint(child.ChildID))
			continue
		}
		if inserted {
			filled++
		}
	}

	log.WithField("filled", filled).Info("auto-fill finished")
	if len(failed) > 0 {
		return filled, errors.Errorf("auto-fill failed for children %s", strings.Join(failed, ", "))
	}
	return filled, nil
}

func (su *sleepUseCase) fillChild(ctx context.Context, child *domain.Child, day, from, to string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	exists, err := su.sleeps.ExistsSleepBetween(ctx, child.ChildID, from, to)
	if err != nil || exists {
		return false, err
	}

	nap, night := childage.RecommendedSleepHours(childage.AgeMonthsFromLabel(child.Age))
	return su.sleeps.InsertSleepIfAbsent(ctx, &domain.Sleep{
		ChildID:       child.ChildID,
		Date:          day + " 00:00:00",
		NapHours:      nap,
		NightHours:    night,
		SleepProgress: 0,
		Notes:         autoFillNote,
		AutoFilled:    true,
	})
}

func (su *sleepUseCase) period(ctx context.Context, childID int, start, end string) (*domain.SleepPeriodSummary, error) {
	from, to := temporal.DayBounds(start, end)
	records, err := su.list(ctx, childID, from, to)
	if err != nil {
		return nil, err
	}
	period := aggregate.SleepPeriod(start, end, records)
	return &period, nil
}

func (su *sleepUseCase) list(ctx context.Context, childID int, from, to string) ([]domain.Sleep, error) {
	records, err := su.sleeps.ListSleep(ctx, childID, from, to)
	if err != nil {
		return nil, storageFault(err, "failed to list sleep records")
	}
	return records, nil
}

func (su *sleepUseCase) owned(ctx context.Context, userID, id int) (*domain.Sleep, error) {
	return ownedRecord(ctx, su.guard, userID, id, su.sleeps.FindSleep,
		func(s *domain.Sleep) int { return s.ChildID }, "Sleep record")
}

// apply rejects total_hours outright: it is always nap plus night hours.
// Dates are stored at the start of their calendar day so there is one record
// per child per day.
func (su *sleepUseCase) apply(s *domain.Sleep, req *domain.SleepPayload) error {
	if req.TotalHours != nil {
		return domain.InvalidInput("total_hours is derived from nap_hours and night_hours and cannot be set")
	}
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		start, _, err := su.clock.DateRangeForDay(*req.Date)
		if err != nil {
			return domain.InvalidInput("Invalid date format")
		}
		s.Date = start
	}
	if req.NapHours != nil {
		if err := checkHours("nap_hours", *req.NapHours); err != nil {
			return err
		}
		s.NapHours = *req.NapHours
	}
	if req.NightHours != nil {
		if err := checkHours("night_hours", *req.NightHours); err != nil {
			return err
		}
		s.NightHours = *req.NightHours
	}
	if req.SleepProgress != nil {
		s.SleepProgress = *req.SleepProgress
	}
	if req.Notes != nil {
		s.Notes = *req.Notes
	}
	return nil
}

func checkHours(field string, v float64) error {
	if v < 0 || v > 24 {
		return domain.InvalidInput("%s must be between 0 and 24", field)
	}
	return nil
}
