package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/golf-admin/models"
)

func TestUpdateKeepsOnePaymentOption(t *testing.T) {
	repo := newFakeTournamentRepo(openTournament())
	svc := NewTournamentService(repo, nil, nil)
	ctx := context.Background()
	off := false

	_, err := svc.Update(ctx, 1, models.UpdateTournamentInput{AllowStripe: &off})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, models.UpdateTournamentInput{AllowPayOnDay: &off})
	assert.ErrorIs(t, err, ErrNoPaymentOption)
	assert.Equal(t, 1, repo.updates)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.AllowPayOnDay)
}

func TestUpdateValidatesAndInvalidatesBoard(t *testing.T) {
	golfers := newFakeGolferRepo(golfer(1, "Ann", "Lee", models.RegistrationConfirmed, models.PaymentPaid))
	tournaments := newFakeTournamentRepo(openTournament())
	groups := NewGroupService(newFakeGroupRepo(golfers), golfers, tournaments, nil, nil)
	svc := NewTournamentService(tournaments, groups, nil)
	ctx := context.Background()

	b, err := groups.Board(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, b.TeamSize)

	_, err = svc.Update(ctx, 1, models.UpdateTournamentInput{Name: models.StringPtr("x")})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Update(ctx, 1, models.UpdateTournamentInput{TeamSize: models.IntPtr(2)})
	require.NoError(t, err)
	b, err = groups.Board(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, b.TeamSize)

	_, err = svc.Get(ctx, 9)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
