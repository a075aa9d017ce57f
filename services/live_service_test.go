package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/golf-admin/dashboard"
	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/realtime"
	"github.com/Dosada05/golf-admin/session"
)

type tokenStatsRepo struct {
	*fakeStatsRepo
	tokens []string
}

func (r *tokenStatsRepo) Get(ctx context.Context, tournamentID int) (*models.Stats, error) {
	r.tokens = append(r.tokens, session.Token(ctx))
	return r.fakeStatsRepo.Get(ctx, tournamentID)
}

func TestLiveEventsSpliceAndRefreshStats(t *testing.T) {
	golfers := newFakeGolferRepo(fourGolfers()...)
	stats := &tokenStatsRepo{fakeStatsRepo: &fakeStatsRepo{golfers: golfers}}
	registry := dashboard.NewRegistry()
	pub := &recordingPublisher{}
	dash := NewDashboardService(golfers, stats, registry, pub, nil)
	ctx := context.Background()

	_, err := dash.State(ctx, 1)
	require.NoError(t, err)

	h := NewLiveService(registry, stats, nil, pub, "svc-token", nil).Handlers()

	created := golfer(5, "Eve", "Fox", models.RegistrationConfirmed, models.PaymentUnpaid)
	golfers.golfers[5] = created
	golfers.order = append(golfers.order, 5)
	h.OnCreated(ctx, models.GolferEvent{Type: models.GolferCreated, TournamentID: 1, GolferID: 5, Golfer: &created})

	st, ok := registry.Get(1).Snapshot()
	require.True(t, ok)
	assert.Len(t, st.Golfers, 5)
	assert.Equal(t, 5, st.Stats.TotalRegistered)
	assert.Equal(t, "svc-token", stats.tokens[len(stats.tokens)-1])

	h.OnDeleted(ctx, models.GolferEvent{Type: models.GolferDeleted, TournamentID: 1, GolferID: 2})
	st, _ = registry.Get(1).Snapshot()
	assert.Len(t, st.Golfers, 4)

	// Events for a tournament nobody has open still fan out but touch no mirror.
	h.OnUpdated(ctx, models.GolferEvent{Type: models.GolferUpdated, TournamentID: 7, GolferID: 9, Golfer: &models.Golfer{ID: 9, TournamentID: 7}})
	_, open := registry.Lookup(7)
	assert.False(t, open)

	assert.Equal(t, []string{
		realtime.MessageDashboard,
		realtime.MessageGolferCreated, realtime.MessageStats,
		realtime.MessageGolferDeleted, realtime.MessageStats,
		realtime.MessageGolferUpdated, realtime.MessageStats,
	}, pub.types())
}
