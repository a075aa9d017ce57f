package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/repositories"
)

type TournamentService interface {
	List(ctx context.Context) ([]models.Tournament, error)
	Get(ctx context.Context, id int) (*models.Tournament, error)
	Update(ctx context.Context, id int, input models.UpdateTournamentInput) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	groups         GroupService
	logger         *slog.Logger
}

// NewTournamentService builds the settings service. groups may be nil; when
// set, a team size change drops the cached group board.
func NewTournamentService(tournamentRepo repositories.TournamentRepository, groups GroupService, logger *slog.Logger) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		groups:         groups,
		logger:         loggerOrDefault(logger),
	}
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	ts, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list tournaments", nil)
	}
	return ts, nil
}

func (s *tournamentService) Get(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament", ErrTournamentNotFound)
	}
	return t, nil
}

func (s *tournamentService) Update(ctx context.Context, id int, input models.UpdateTournamentInput) (*models.Tournament, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	stripeOn := current.AllowStripe
	if input.AllowStripe != nil {
		stripeOn = *input.AllowStripe
	}
	payOnDay := current.AllowPayOnDay
	if input.AllowPayOnDay != nil {
		payOnDay = *input.AllowPayOnDay
	}
	if !stripeOn && !payOnDay {
		return nil, fmt.Errorf("update tournament %d: %w", id, ErrNoPaymentOption)
	}

	updated, err := s.tournamentRepo.Update(ctx, id, input)
	if err != nil {
		return nil, handleRepositoryError(err, "update tournament", ErrTournamentNotFound)
	}
	if input.TeamSize != nil && s.groups != nil {
		s.groups.Invalidate(id)
	}
	s.logger.Info("tournament settings updated", slog.Int("tournament_id", id))
	return updated, nil
}
