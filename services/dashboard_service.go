package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/golf-admin/dashboard"
	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/realtime"
	"github.com/Dosada05/golf-admin/repositories"
	"github.com/Dosada05/golf-admin/roster"
)

// DashboardView is one render of the golfer list.
type DashboardView struct {
	TournamentID int             `json:"tournament_id"`
	Golfers      []models.Golfer `json:"golfers"`
	Total        int             `json:"total"`
	Matched      int             `json:"matched"`
	Stats        *models.Stats   `json:"stats"`
	Filter       roster.Filter   `json:"filter"`
	Sort         roster.Sort     `json:"sort"`
	Version      uint64          `json:"version"`
	SyncedAt     time.Time       `json:"synced_at"`
}

type DashboardService interface {
	// State returns the mirrored state, loading it on first use.
	State(ctx context.Context, tournamentID int) (dashboard.State, error)
	// Resync replaces the mirror with fresh golfers and stats.
	Resync(ctx context.Context, tournamentID int) (dashboard.State, error)
	View(ctx context.Context, tournamentID int, f roster.Filter, s roster.Sort) (*DashboardView, error)
	CheckInQueue(ctx context.Context, tournamentID int) ([]models.Golfer, error)
	Store(tournamentID int) *dashboard.Store
}

type dashboardService struct {
	golferRepo repositories.GolferRepository
	statsRepo  repositories.StatsRepository
	registry   *dashboard.Registry
	publisher  Publisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewDashboardService(
	golferRepo repositories.GolferRepository,
	statsRepo repositories.StatsRepository,
	registry *dashboard.Registry,
	publisher Publisher,
	logger *slog.Logger,
) DashboardService {
	return &dashboardService{
		golferRepo: golferRepo,
		statsRepo:  statsRepo,
		registry:   registry,
		publisher:  publisherOrNop(publisher),
		logger:     loggerOrDefault(logger),
		now:        time.Now,
	}
}

func (s *dashboardService) Store(tournamentID int) *dashboard.Store {
	return s.registry.Get(tournamentID)
}

func (s *dashboardService) State(ctx context.Context, tournamentID int) (dashboard.State, error) {
	if st, ok := s.registry.Get(tournamentID).Snapshot(); ok {
		return st, nil
	}
	st, err := s.Resync(ctx, tournamentID)
	if err != nil {
		return dashboard.State{}, &LoadError{TournamentID: tournamentID, Err: err}
	}
	return st, nil
}

func (s *dashboardService) Resync(ctx context.Context, tournamentID int) (dashboard.State, error) {
	store := s.registry.Get(tournamentID)

	var (
		golfers []models.Golfer
		stats   *models.Stats
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		golfers, err = s.golferRepo.ListByTournament(gCtx, tournamentID)
		return handleRepositoryError(err, "list golfers", ErrTournamentNotFound)
	})
	g.Go(func() error {
		var err error
		stats, err = s.statsRepo.Get(gCtx, tournamentID)
		return handleRepositoryError(err, "get stats", ErrTournamentNotFound)
	})
	if err := g.Wait(); err != nil {
		store.Invalidate()
		s.logger.Warn("dashboard resync failed",
			slog.Int("tournament_id", tournamentID),
			slog.Any("error", err),
		)
		return dashboard.State{}, fmt.Errorf("resync tournament %d: %w", tournamentID, err)
	}

	if stats == nil {
		stats = &models.Stats{}
	}
	st := store.Replace(golfers, *stats, s.now())
	s.publisher.Publish(tournamentID, realtime.MessageDashboard, st)
	return st, nil
}

func (s *dashboardService) View(ctx context.Context, tournamentID int, f roster.Filter, srt roster.Sort) (*DashboardView, error) {
	st, err := s.State(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	golfers := roster.Apply(st.Golfers, f, srt)
	return &DashboardView{
		TournamentID: tournamentID,
		Golfers:      golfers,
		Total:        len(st.Golfers),
		Matched:      len(golfers),
		Stats:        st.Stats,
		Filter:       f,
		Sort:         srt,
		Version:      st.Version,
		SyncedAt:     st.SyncedAt,
	}, nil
}

func (s *dashboardService) CheckInQueue(ctx context.Context, tournamentID int) ([]models.Golfer, error) {
	st, err := s.State(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return roster.CheckInQueue(st.Golfers), nil
}
