package usecase

import (
	"babycare/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func newVaccinationUseCase(v *vaccinationRepoMock) domain.VaccinationUseCase {
	children := ownedChildren(&domain.Child{ChildID: childID, UserID: ownerID, Name: "Aira"})
	return NewVaccinationUseCase(v, NewOwnershipGuard(children), fixedClock(), timeout)
}

func TestVaccinationCreate(t *testing.T) {
	repo := new(vaccinationRepoMock)
	repo.On("FindByVaccineID", mock.Anything, childID, "hep-b-1").Return(nil, nil)
	repo.On("CreateVaccination", mock.Anything, mock.AnythingOfType("*domain.Vaccination")).Return(nil)
	uc := newVaccinationUseCase(repo)

	v, err := uc.Create(context.Background(), ownerID, childID, &domain.VaccinationPayload{
		VaccineID: strPtr(" hep-b-1 "), VaccineName: strPtr("Hepatitis B"), ScheduledDate: strPtr("15/03/2024"), AgeMonths: intPtr(0),
	})

	require.NoError(t, err)
	assert.Equal(t, "hep-b-1", v.VaccineID)
	assert.Equal(t, "2024-03-15", v.ScheduledDate)
	assert.False(t, v.IsCompleted)
	repo.AssertExpectations(t)
}

func TestVaccinationCreate_DuplicateRejected(t *testing.T) {
	repo := new(vaccinationRepoMock)
	repo.On("FindByVaccineID", mock.Anything, childID, "bcg").Return(&domain.Vaccination{VaccinationID: 3, ChildID: childID, VaccineID: "bcg"}, nil)
	uc := newVaccinationUseCase(repo)

	_, err := uc.Create(context.Background(), ownerID, childID, &domain.VaccinationPayload{
		VaccineID: strPtr("bcg"), VaccineName: strPtr("BCG"), ScheduledDate: strPtr("2024-03-10"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualError(t, err, "Vaccination bcg already exists for this child")
	repo.AssertNotCalled(t, "CreateVaccination", mock.Anything, mock.Anything)
}

func TestVaccinationCreate_RequiredFields(t *testing.T) {
	uc := newVaccinationUseCase(new(vaccinationRepoMock))
	ctx := context.Background()

	_, err := uc.Create(ctx, ownerID, childID, &domain.VaccinationPayload{VaccineName: strPtr("BCG"), ScheduledDate: strPtr("2024-03-10")})
	assert.EqualError(t, err, "vaccine_id is required")

	_, err = uc.Create(ctx, ownerID, childID, &domain.VaccinationPayload{VaccineID: strPtr("bcg"), ScheduledDate: strPtr("2024-03-10")})
	assert.EqualError(t, err, "vaccine_name is required")

	_, err = uc.Create(ctx, ownerID, childID, &domain.VaccinationPayload{VaccineID: strPtr("bcg"), VaccineName: strPtr("BCG")})
	assert.EqualError(t, err, "scheduled_date is required")
}

func TestVaccinationUpdate_RenameIntoExistingIDRejected(t *testing.T) {
	stored := &domain.Vaccination{VaccinationID: 4, ChildID: childID, VaccineID: "polio-1"}
	repo := new(vaccinationRepoMock)
	repo.On("FindVaccination", mock.Anything, 4).Return(stored, nil)
	repo.On("FindByVaccineID", mock.Anything, childID, "polio-2").Return(&domain.Vaccination{VaccinationID: 5, ChildID: childID}, nil)
	uc := newVaccinationUseCase(repo)

	_, err := uc.Update(context.Background(), ownerID, 4, &domain.VaccinationPayload{VaccineID: strPtr("polio-2")})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "UpdateVaccination", mock.Anything, mock.Anything)
}

func TestVaccinationCompleteAndUncomplete(t *testing.T) {
	stored := &domain.Vaccination{VaccinationID: 4, ChildID: childID, VaccineID: "bcg"}
	repo := new(vaccinationRepoMock)
	repo.On("FindVaccination", mock.Anything, 4).Return(stored, nil)
	repo.On("UpdateVaccination", mock.Anything, stored).Return(nil)
	uc := newVaccinationUseCase(repo)
	ctx := context.Background()

	v, err := uc.Complete(ctx, ownerID, 4, &domain.CompletionPayload{CompletionNotes: strPtr("left thigh")})
	require.NoError(t, err)
	assert.True(t, v.IsCompleted)
	assert.Equal(t, "2024-03-05", *v.CompletedDate)
	assert.Equal(t, "left thigh", *v.CompletionNotes)

	v, err = uc.Uncomplete(ctx, ownerID, 4)
	require.NoError(t, err)
	assert.False(t, v.IsCompleted)
	assert.Nil(t, v.CompletedDate)
	assert.Nil(t, v.CompletionNotes)

	_, err = uc.Complete(ctx, ownerID, 4, &domain.CompletionPayload{CompletedDate: strPtr("not-a-date")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVaccinationDueAndOverdueWindows(t *testing.T) {
	repo := new(vaccinationRepoMock)
	repo.On("ListIncomplete", mock.Anything, childID, "2024-03-01", "2024-03-31").
		Return([]domain.Vaccination{{VaccineID: "dtp-2", ScheduledDate: "2024-03-20"}}, nil)
	repo.On("ListIncomplete", mock.Anything, childID, "", "2024-02-29").
		Return([]domain.Vaccination{{VaccineID: "dtp-1", ScheduledDate: "2024-01-20"}}, nil)
	uc := newVaccinationUseCase(repo)
	ctx := context.Background()

	due, err := uc.Due(ctx, ownerID, childID)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "dtp-2", due[0].VaccineID)

	overdue, err := uc.Overdue(ctx, ownerID, childID)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "dtp-1", overdue[0].VaccineID)
}

func TestVaccinationProgress(t *testing.T) {
	tests := []struct {
		total, completed int64
		want             int
	}{
		{3, 1, 33},
		{3, 2, 67},
		{0, 0, 0},
		{4, 4, 100},
	}

	for _, tt := range tests {
		repo := new(vaccinationRepoMock)
		repo.On("CountVaccinations", mock.Anything, childID).Return(tt.total, tt.completed, nil)
		uc := newVaccinationUseCase(repo)

		p, err := uc.Progress(context.Background(), ownerID, childID)

		require.NoError(t, err)
		assert.Equal(t, tt.want, p.Percentage)
		assert.Equal(t, int(tt.total), p.Total)
	}
}

func TestVaccinationCard(t *testing.T) {
	repo := new(vaccinationRepoMock)
	repo.On("CountVaccinations", mock.Anything, childID).Return(int64(3), int64(1), nil)
	repo.On("ListIncomplete", mock.Anything, childID, "", "").Return([]domain.Vaccination{
		{VaccineID: "dtp-1", ScheduledDate: "2024-01-20"},
		{VaccineID: "dtp-2", ScheduledDate: "2024-03-20"},
	}, nil)
	uc := newVaccinationUseCase(repo)

	card, err := uc.Card(context.Background(), ownerID, childID)

	require.NoError(t, err)
	assert.Equal(t, "Aira", card.ChildName)
	assert.Equal(t, 33, card.Progress.Percentage)
	require.NotNil(t, card.NextDue)
	assert.Equal(t, "dtp-1", card.NextDue.VaccineID)
}

func TestVaccinationSchedule(t *testing.T) {
	repo := new(vaccinationRepoMock)
	repo.On("ListVaccinations", mock.Anything, childID).Return([]domain.Vaccination{
		{VaccineID: "a", ScheduledDate: "2024-01-02", IsCompleted: true},
		{VaccineID: "b", ScheduledDate: "2024-01-20"},
		{VaccineID: "c", ScheduledDate: "2024-03-01"},
	}, nil)
	uc := newVaccinationUseCase(repo)

	months, err := uc.Schedule(context.Background(), ownerID, childID)

	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "2024-01", months[0].Month)
	assert.Equal(t, 2, months[0].Total)
	assert.Equal(t, 1, months[0].Completed)
}

func TestMediaList(t *testing.T) {
	repo := new(mediaRepoMock)
	repo.On("ListMedia", mock.Anything).Return([]bson.M{{"title": "Tummy time"}}, nil).Once()
	repo.On("ListMedia", mock.Anything).Return(nil, nil).Once()
	uc := NewMediaUseCase(repo, timeout)
	ctx := context.Background()

	docs, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	_, err = uc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Media not found")
}
