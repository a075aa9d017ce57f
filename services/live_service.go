package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/golf-admin/dashboard"
	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/realtime"
	"github.com/Dosada05/golf-admin/repositories"
	"github.com/Dosada05/golf-admin/session"
)

// LiveService reconciles upstream golfer events into the open dashboards:
// splice the golfer list, then fetch stats on their own.
type LiveService interface {
	Handlers() realtime.Handlers
}

type liveService struct {
	registry  *dashboard.Registry
	statsRepo repositories.StatsRepository
	groups    GroupService
	publisher Publisher
	logger    *slog.Logger
	// Token authenticates the stats refresh, which has no browser session behind it.
	token string
}

func NewLiveService(
	registry *dashboard.Registry,
	statsRepo repositories.StatsRepository,
	groups GroupService,
	publisher Publisher,
	serviceToken string,
	logger *slog.Logger,
) LiveService {
	return &liveService{
		registry:  registry,
		statsRepo: statsRepo,
		groups:    groups,
		publisher: publisherOrNop(publisher),
		logger:    loggerOrDefault(logger),
		token:     serviceToken,
	}
}

func (s *liveService) Handlers() realtime.Handlers {
	return realtime.Handlers{
		OnCreated: func(ctx context.Context, ev models.GolferEvent) { s.handle(ctx, ev, realtime.MessageGolferCreated) },
		OnUpdated: func(ctx context.Context, ev models.GolferEvent) { s.handle(ctx, ev, realtime.MessageGolferUpdated) },
		OnDeleted: func(ctx context.Context, ev models.GolferEvent) { s.handle(ctx, ev, realtime.MessageGolferDeleted) },
	}
}

func (s *liveService) handle(ctx context.Context, ev models.GolferEvent, msgType string) {
	tid := ev.TournamentID
	if tid == 0 {
		s.logger.Debug("golfer event without tournament ignored", slog.Int("golfer_id", ev.GolferID))
		return
	}

	if store, ok := s.registry.Lookup(tid); ok {
		store.Apply(ev)
	}
	if s.groups != nil {
		s.groups.Invalidate(tid)
	}
	s.publisher.Publish(tid, msgType, ev)

	s.refreshStats(ctx, tid)
}

func (s *liveService) refreshStats(ctx context.Context, tournamentID int) {
	if s.token != "" {
		ctx = session.NewContext(ctx, &session.Session{Role: session.RoleStaff, Token: s.token})
	}
	stats, err := s.statsRepo.Get(ctx, tournamentID)
	if err != nil {
		s.logger.Warn("stats refresh after golfer event failed",
			slog.Int("tournament_id", tournamentID),
			slog.Any("error", err),
		)
		return
	}
	if stats == nil {
		return
	}
	if store, ok := s.registry.Lookup(tournamentID); ok {
		store.ReplaceStats(*stats)
	}
	s.publisher.Publish(tournamentID, realtime.MessageStats, stats)
}
