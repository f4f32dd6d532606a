package usecase

import (
	"babycare/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDiaper(t *testing.T) {
	wet := &domain.Diaper{Type: domain.DiaperWet, Color: strPtr("yellow"), Consistency: strPtr("soft")}
	require.NoError(t, NormalizeDiaper(wet))
	assert.Nil(t, wet.Color)
	assert.Nil(t, wet.Consistency)

	dirty := &domain.Diaper{Type: domain.DiaperDirty, Color: strPtr("green")}
	require.NoError(t, NormalizeDiaper(dirty))
	assert.Equal(t, "green", *dirty.Color)

	err := NormalizeDiaper(&domain.Diaper{Type: "damp"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDiaperCreate_DefaultsAndNormalizes(t *testing.T) {
	children := ownedChildren(&domain.Child{ChildID: childID, UserID: ownerID})
	diapers := new(diaperRepoMock)
	diapers.On("CreateDiaper", mock.Anything, mock.AnythingOfType("*domain.Diaper")).Return(nil)
	uc := NewDiaperUseCase(diapers, NewOwnershipGuard(children), fixedClock(), timeout)

	d, err := uc.Create(context.Background(), ownerID, childID, &domain.DiaperPayload{
		Type: strPtr("WET"), Color: strPtr("yellow"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DiaperWet, d.Type)
	assert.Equal(t, "2024-03-05 10:00:00", d.Time)
	assert.Nil(t, d.Color)
	assert.Equal(t, childID, d.ChildID)
}

func TestDiaperCreate_CanonicalTime(t *testing.T) {
	children := ownedChildren(&domain.Child{ChildID: childID, UserID: ownerID})
	diapers := new(diaperRepoMock)
	diapers.On("CreateDiaper", mock.Anything, mock.Anything).Return(nil)
	uc := NewDiaperUseCase(diapers, NewOwnershipGuard(children), fixedClock(), timeout)

	d, err := uc.Create(context.Background(), ownerID, childID, &domain.DiaperPayload{
		Type: strPtr("both"), Time: strPtr("2024-03-04T22:15:00+07:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-04 22:15:00", d.Time)
}

func TestDiaperList_DateFilterIsClosedDayRange(t *testing.T) {
	children := ownedChildren(&domain.Child{ChildID: childID, UserID: ownerID})
	diapers := new(diaperRepoMock)
	diapers.On("ListDiapers", mock.Anything, childID, "2024-03-01 00:00:00", "2024-03-01 23:59:59").
		Return([]domain.Diaper{{DiaperID: 1}}, nil)
	uc := NewDiaperUseCase(diapers, NewOwnershipGuard(children), fixedClock(), timeout)

	list, err := uc.ListByChild(context.Background(), ownerID, childID, "01/03/2024")

	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.ListByChild(context.Background(), ownerID, childID, "not a date")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDiaperUpdate_SwitchToWetClearsDetails(t *testing.T) {
	children := ownedChildren(&domain.Child{ChildID: childID, UserID: ownerID})
	stored := &domain.Diaper{DiaperID: 3, ChildID: childID, Type: domain.DiaperDirty,
		Time: "2024-03-05 08:00:00", Color: strPtr("brown"), Consistency: strPtr("firm")}
	diapers := new(diaperRepoMock)
	diapers.On("FindDiaper", mock.Anything, 3).Return(stored, nil)
	diapers.On("UpdateDiaper", mock.Anything, stored).Return(nil)
	uc := NewDiaperUseCase(diapers, NewOwnershipGuard(children), fixedClock(), timeout)

	d, err := uc.Update(context.Background(), ownerID, 3, &domain.DiaperPayload{Type: strPtr("wet")})

	require.NoError(t, err)
	assert.Nil(t, d.Color)
	assert.Nil(t, d.Consistency)
	assert.Equal(t, "2024-03-05 08:00:00", d.Time)
	diapers.AssertExpectations(t)
}
