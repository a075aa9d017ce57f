package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/golf-admin/export"
	"github.com/Dosada05/golf-admin/metrics"
	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/repositories"
	"github.com/Dosada05/golf-admin/roster"
	"github.com/Dosada05/golf-admin/storage"
)

type ExportRequest struct {
	TournamentID int
	Report       export.Report
	Filter       roster.Filter
	Sort         roster.Sort
}

type ExportResult struct {
	Filename   string
	Data       []byte
	ArchiveURL string
}

// archiveRetention is how many archived copies of one report are kept per
// tournament before the oldest is removed from the bucket.
const archiveRetention = 5

type archiveSlot struct {
	tournamentID int
	report       export.Report
}

type ExportService interface {
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
}

type exportService struct {
	dashboard      DashboardService
	groupRepo      repositories.GroupRepository
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
	metrics        *metrics.Metrics
	logger         *slog.Logger
	now            func() time.Time

	retain   int
	mu       sync.Mutex
	archived map[archiveSlot][]string
}

// NewExportService builds the exporter. uploader may be nil, in which case
// workbooks are only streamed to the browser.
func NewExportService(
	dashboard DashboardService,
	groupRepo repositories.GroupRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
	m *metrics.Metrics,
	logger *slog.Logger,
) ExportService {
	return &exportService{
		dashboard:      dashboard,
		groupRepo:      groupRepo,
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
		metrics:        m,
		logger:         loggerOrDefault(logger),
		now:            time.Now,
		retain:         archiveRetention,
	}
}

func needsGroups(r export.Report) bool {
	return r == export.ReportFoursomes || r == export.ReportFull
}

func (s *exportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	var (
		golfers    []models.Golfer
		groups     []models.Group
		tournament *models.Tournament
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.dashboard.State(gCtx, req.TournamentID)
		if err != nil {
			return err
		}
		golfers = st.Golfers
		return nil
	})
	if needsGroups(req.Report) {
		g.Go(func() error {
			var err error
			groups, err = s.groupRepo.ListByTournament(gCtx, req.TournamentID)
			return handleRepositoryError(err, "list groups", ErrTournamentNotFound)
		})
		g.Go(func() error {
			var err error
			tournament, err = s.tournamentRepo.GetByID(gCtx, req.TournamentID)
			return handleRepositoryError(err, "get tournament", ErrTournamentNotFound)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("export %s: %w", req.Report, err)
	}

	teamSize := models.DefaultTeamSize
	if tournament != nil {
		teamSize = tournament.EffectiveTeamSize()
	}
	rows := roster.Apply(golfers, req.Filter, req.Sort)

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, export.Build(req.Report, rows, groups, teamSize)...); err != nil {
		return nil, fmt.Errorf("export %s: %w", req.Report, err)
	}
	s.metrics.ExportGenerated(string(req.Report))

	now := s.now()
	result := &ExportResult{
		Filename: export.Filename(req.Report, now),
		Data:     buf.Bytes(),
	}

	if s.uploader != nil {
		key := storage.ExportKey(req.TournamentID, result.Filename, now)
		up, err := s.uploader.Upload(ctx, key, storage.XLSXContentType, bytes.NewReader(result.Data))
		if err != nil {
			// The download still works without the archive copy.
			s.logger.Warn("export archive upload failed", slog.String("key", key), slog.Any("error", err))
		} else {
			result.ArchiveURL = up.Location
			s.pruneArchives(ctx, archiveSlot{req.TournamentID, req.Report}, up.Key)
		}
	}
	return result, nil
}

// pruneArchives records key as the newest archive for slot and deletes the
// copies that fall outside the retention window. Only archives written by
// this process are tracked.
func (s *exportService) pruneArchives(ctx context.Context, slot archiveSlot, key string) {
	if s.retain <= 0 {
		return
	}
	s.mu.Lock()
	if s.archived == nil {
		s.archived = make(map[archiveSlot][]string)
	}
	keys := append(s.archived[slot], key)
	var stale []string
	if len(keys) > s.retain {
		stale = append(stale, keys[:len(keys)-s.retain]...)
		keys = append([]string(nil), keys[len(keys)-s.retain:]...)
	}
	s.archived[slot] = keys
	s.mu.Unlock()

	for _, k := range stale {
		if err := s.uploader.Delete(ctx, k); err != nil {
			s.logger.Warn("export archive prune failed", slog.String("key", k), slog.Any("error", err))
		}
	}
}
