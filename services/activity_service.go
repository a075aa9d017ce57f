package services

import (
	"context"
	"slices"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/repositories"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

type ActivityService interface {
	List(ctx context.Context, tournamentID, limit int) ([]models.ActivityLog, error)
}

type activityService struct {
	activityRepo repositories.ActivityRepository
}

func NewActivityService(activityRepo repositories.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

// List returns the newest entries first.
func (s *activityService) List(ctx context.Context, tournamentID, limit int) ([]models.ActivityLog, error) {
	switch {
	case limit <= 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}
	logs, err := s.activityRepo.ListByTournament(ctx, tournamentID, limit)
	if err != nil {
		return nil, handleRepositoryError(err, "list activity", ErrTournamentNotFound)
	}
	slices.SortStableFunc(logs, func(a, b models.ActivityLog) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}
