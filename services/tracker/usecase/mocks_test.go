package usecase

import (
	"babycare/domain"
	"babycare/temporal"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	ownerID    = 1
	strangerID = 2
	childID    = 10
	timeout    = 5 * time.Second
)

var (
	_ domain.ChildRepo         = (*childRepoMock)(nil)
	_ domain.UserRepo          = (*userRepoMock)(nil)
	_ domain.CredentialService = (*credsMock)(nil)
	_ domain.DiaperRepo        = (*diaperRepoMock)(nil)
	_ domain.FeedingRepo       = (*feedingRepoMock)(nil)
	_ domain.GrowthRepo        = (*growthRepoMock)(nil)
	_ domain.SleepRepo         = (*sleepRepoMock)(nil)
	_ domain.VaccinationRepo   = (*vaccinationRepoMock)(nil)
	_ domain.MediaRepo         = (*mediaRepoMock)(nil)
	_ domain.AutoFillLock      = (*lockMock)(nil)
	_ domain.AutoFillLock      = (*memoryLock)(nil)
)

// fixedClock pins "now" to 2024-03-05 10:00 in UTC+7.
func fixedClock() *temporal.Normalizer {
	loc := time.FixedZone("WIB", 7*60*60)
	return temporal.NewNormalizer(loc, func() time.Time {
		return time.Date(2024, 3, 5, 10, 0, 0, 0, loc)
	})
}

// arg returns the i-th return value as T, or T's zero value when it was set
// to nil.
func arg[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

// ownedChildren registers childID as owned by ownerID and foreign to
// strangerID.
func ownedChildren(child *domain.Child) *childRepoMock {
	repo := new(childRepoMock)
	repo.On("FindOwned", mock.Anything, child.ChildID, ownerID).Return(child, nil).Maybe()
	repo.On("FindOwned", mock.Anything, child.ChildID, strangerID).Return(nil, domain.NotFound("Child")).Maybe()
	return repo
}

type childRepoMock struct{ mock.Mock }

func (m *childRepoMock) CreateChild(ctx context.Context, child *domain.Child, initial *domain.Growth) error {
	return m.Called(ctx, child, initial).Error(0)
}

func (m *childRepoMock) FindOwned(ctx context.Context, childID, userID int) (*domain.Child, error) {
	args := m.Called(ctx, childID, userID)
	return arg[*domain.Child](args, 0), args.Error(1)
}

func (m *childRepoMock) ListByUser(ctx context.Context, userID int) ([]domain.Child, error) {
	args := m.Called(ctx, userID)
	return arg[[]domain.Child](args, 0), args.Error(1)
}

func (m *childRepoMock) ListAll(ctx context.Context) ([]domain.Child, error) {
	args := m.Called(ctx)
	return arg[[]domain.Child](args, 0), args.Error(1)
}

func (m *childRepoMock) UpdateChild(ctx context.Context, child *domain.Child) error {
	return m.Called(ctx, child).Error(0)
}

func (m *childRepoMock) DeleteChild(ctx context.Context, childID int) error {
	return m.Called(ctx, childID).Error(0)
}

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) CreateUser(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userRepoMock) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return arg[*domain.User](args, 0), args.Error(1)
}

func (m *userRepoMock) FindUserByID(ctx context.Context, id int) (*domain.User, error) {
	args := m.Called(ctx, id)
	return arg[*domain.User](args, 0), args.Error(1)
}

type credsMock struct{ mock.Mock }

func (m *credsMock) GenerateJWT(user *domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *credsMock) VerifyJWT(token string) (*domain.Claims, error) {
	args := m.Called(token)
	return arg[*domain.Claims](args, 0), args.Error(1)
}

type diaperRepoMock struct{ mock.Mock }

func (m *diaperRepoMock) CreateDiaper(ctx context.Context, diaper *domain.Diaper) error {
	return m.Called(ctx, diaper).Error(0)
}

func (m *diaperRepoMock) FindDiaper(ctx context.Context, id int) (*domain.Diaper, error) {
	args := m.Called(ctx, id)
	return arg[*domain.Diaper](args, 0), args.Error(1)
}

func (m *diaperRepoMock) ListDiapers(ctx context.Context, childID int, from, to string) ([]domain.Diaper, error) {
	args := m.Called(ctx, childID, from, to)
	return arg[[]domain.Diaper](args, 0), args.Error(1)
}

func (m *diaperRepoMock) UpdateDiaper(ctx context.Context, diaper *domain.Diaper) error {
	return m.Called(ctx, diaper).Error(0)
}

func (m *diaperRepoMock) DeleteDiaper(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type feedingRepoMock struct{ mock.Mock }

func (m *feedingRepoMock) CreateFeeding(ctx context.Context, feeding *domain.Feeding) error {
	return m.Called(ctx, feeding).Error(0)
}

func (m *feedingRepoMock) FindFeeding(ctx context.Context, id int) (*domain.Feeding, error) {
	args := m.Called(ctx, id)
	return arg[*domain.Feeding](args, 0), args.Error(1)
}

func (m *feedingRepoMock) ListFeedings(ctx context.Context, childID int, from, to string) ([]domain.Feeding, error) {
	args := m.Called(ctx, childID, from, to)
	return arg[[]domain.Feeding](args, 0), args.Error(1)
}

func (m *feedingRepoMock) UpdateFeeding(ctx context.Context, feeding *domain.Feeding) error {
	return m.Called(ctx, feeding).Error(0)
}

func (m *feedingRepoMock) DeleteFeeding(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type growthRepoMock struct{ mock.Mock }

func (m *growthRepoMock) CreateGrowth(ctx context.Context, growth *domain.Growth) error {
	return m.Called(ctx, growth).Error(0)
}

func (m *growthRepoMock) FindGrowth(ctx context.Context, id int) (*domain.Growth, error) {
	args := m.Called(ctx, id)
	return arg[*domain.Growth](args, 0), args.Error(1)
}

func (m *growthRepoMock) ListGrowth(ctx context.Context, childID int) ([]domain.Growth, error) {
	args := m.Called(ctx, childID)
	return arg[[]domain.Growth](args, 0), args.Error(1)
}

func (m *growthRepoMock) LatestGrowthBefore(ctx context.Context, childID int, date string) (*domain.Growth, error) {
	args := m.Called(ctx, childID, date)
	return arg[*domain.Growth](args, 0), args.Error(1)
}

func (m *growthRepoMock) UpdateGrowth(ctx context.Context, growth *domain.Growth) error {
	return m.Called(ctx, growth).Error(0)
}

func (m *growthRepoMock) DeleteGrowth(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type sleepRepoMock struct{ mock.Mock }

func (m *sleepRepoMock) UpsertSleep(ctx context.Context, sleep *domain.Sleep) (bool, error) {
	args := m.Called(ctx, sleep)
	return args.Bool(0), args.Error(1)
}

func (m *sleepRepoMock) InsertSleepIfAbsent(ctx context.Context, sleep *domain.Sleep) (bool, error) {
	args := m.Called(ctx, sleep)
	return args.Bool(0), args.Error(1)
}

func (m *sleepRepoMock) FindSleep(ctx context.Context, id int) (*domain.Sleep, error) {
	args := m.Called(ctx, id)
	return arg[*domain.Sleep](args, 0), args.Error(1)
}

func (m *sleepRepoMock) ExistsSleepBetween(ctx context.Context, childID int, from, to string) (bool, error) {
	args := m.Called(ctx, childID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *sleepRepoMock) ListSleep(ctx context.Context, childID int, from, to string) ([]domain.Sleep, error) {
	args := m.Called(ctx, childID, from, to)
	return arg[[]domain.Sleep](args, 0), args.Error(1)
}

func (m *sleepRepoMock) UpdateSleep(ctx context.Context, sleep *domain.Sleep) error {
	return m.Called(ctx, sleep).Error(0)
}

func (m *sleepRepoMock) DeleteSleep(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type vaccinationRepoMock struct{ mock.Mock }

func (m *vaccinationRepoMock) CreateVaccination(ctx context.Context, v *domain.Vaccination) error {
	return m.Called(ctx, v).Error(0)
}

func (m *vaccinationRepoMock) FindVaccination(ctx context.Context, id int) (*domain.Vaccination, error) {
	args := m.Called(ctx, id)
	return arg[*domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationRepoMock) FindByVaccineID(ctx context.Context, childID int, vaccineID string) (*domain.Vaccination, error) {
	args := m.Called(ctx, childID, vaccineID)
	return arg[*domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationRepoMock) ListVaccinations(ctx context.Context, childID int) ([]domain.Vaccination, error) {
	args := m.Called(ctx, childID)
	return arg[[]domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationRepoMock) ListIncomplete(ctx context.Context, childID int, from, to string) ([]domain.Vaccination, error) {
	args := m.Called(ctx, childID, from, to)
	return arg[[]domain.Vaccination](args, 0), args.Error(1)
}

func (m *vaccinationRepoMock) CountVaccinations(ctx context.Context, childID int) (int64, int64, error) {
	args := m.Called(ctx, childID)
	return arg[int64](args, 0), arg[int64](args, 1), args.Error(2)
}

func (m *vaccinationRepoMock) UpdateVaccination(ctx context.Context, v *domain.Vaccination) error {
	return m.Called(ctx, v).Error(0)
}

func (m *vaccinationRepoMock) DeleteVaccination(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mediaRepoMock struct{ mock.Mock }

func (m *mediaRepoMock) ListMedia(ctx context.Context) ([]bson.M, error) {
	args := m.Called(ctx)
	return arg[[]bson.M](args, 0), args.Error(1)
}

type lockMock struct{ mock.Mock }

func (m *lockMock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *lockMock) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// memoryLock is a SETNX-style lock kept in process memory.
type memoryLock struct {
	held map[string]bool
}

func newMemoryLock() *memoryLock {
	return &memoryLock{held: map[string]bool{}}
}

func (l *memoryLock) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *memoryLock) Release(_ context.Context, key string) error {
	delete(l.held, key)
	return nil
}
