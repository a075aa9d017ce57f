package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/golf-admin/grouping"
	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/realtime"
	"github.com/Dosada05/golf-admin/repositories"
)

// GroupService drives the group-management board. Moves are checked against
// capacity locally; a move that cannot fit never reaches the API.
type GroupService interface {
	Board(ctx context.Context, tournamentID int) (*grouping.Board, error)
	Refresh(ctx context.Context, tournamentID int) (*grouping.Board, error)
	AddToGroup(ctx context.Context, tournamentID, golferID, groupID int) (*grouping.Board, error)
	AddManyToGroup(ctx context.Context, tournamentID int, golferIDs []int, groupID int) (*grouping.Board, error)
	RemoveFromGroup(ctx context.Context, tournamentID, golferID int) (*grouping.Board, error)
	MoveGolfer(ctx context.Context, tournamentID, golferID, dest int) (*grouping.Board, error)
	CreateGroup(ctx context.Context, tournamentID int, input models.CreateGroupInput) (*grouping.Board, error)
	DeleteGroup(ctx context.Context, tournamentID, groupID int) (*grouping.Board, error)
	// Invalidate drops the cached board so the next read reloads it.
	Invalidate(tournamentID int)
}

type groupService struct {
	groupRepo      repositories.GroupRepository
	golferRepo     repositories.GolferRepository
	tournamentRepo repositories.TournamentRepository
	publisher      Publisher
	logger         *slog.Logger

	mu     sync.Mutex
	boards map[int]*grouping.Board
}

func NewGroupService(
	groupRepo repositories.GroupRepository,
	golferRepo repositories.GolferRepository,
	tournamentRepo repositories.TournamentRepository,
	publisher Publisher,
	logger *slog.Logger,
) GroupService {
	return &groupService{
		groupRepo:      groupRepo,
		golferRepo:     golferRepo,
		tournamentRepo: tournamentRepo,
		publisher:      publisherOrNop(publisher),
		logger:         loggerOrDefault(logger),
		boards:         make(map[int]*grouping.Board),
	}
}

func (s *groupService) load(ctx context.Context, tournamentID int) (*grouping.Board, error) {
	var (
		golfers    []models.Golfer
		groups     []models.Group
		tournament *models.Tournament
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		golfers, err = s.golferRepo.ListByTournament(gCtx, tournamentID)
		return handleRepositoryError(err, "list golfers", ErrTournamentNotFound)
	})
	g.Go(func() error {
		var err error
		groups, err = s.groupRepo.ListByTournament(gCtx, tournamentID)
		return handleRepositoryError(err, "list groups", ErrTournamentNotFound)
	})
	g.Go(func() error {
		var err error
		tournament, err = s.tournamentRepo.GetByID(gCtx, tournamentID)
		return handleRepositoryError(err, "get tournament", ErrTournamentNotFound)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return grouping.NewBoard(golfers, groups, tournament.EffectiveTeamSize()), nil
}

func (s *groupService) Board(ctx context.Context, tournamentID int) (*grouping.Board, error) {
	s.mu.Lock()
	b, ok := s.boards[tournamentID]
	if ok {
		c := b.Clone()
		s.mu.Unlock()
		return c, nil
	}
	s.mu.Unlock()

	b, err := s.Refresh(ctx, tournamentID)
	if err != nil {
		return nil, &LoadError{TournamentID: tournamentID, Err: err}
	}
	return b, nil
}

// Refresh replaces the board wholesale with server state.
func (s *groupService) Refresh(ctx context.Context, tournamentID int) (*grouping.Board, error) {
	b, err := s.load(ctx, tournamentID)
	if err != nil {
		s.Invalidate(tournamentID)
		s.logger.Warn("group board resync failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, err
	}
	s.mu.Lock()
	s.boards[tournamentID] = b
	snapshot := b.Clone()
	s.mu.Unlock()

	s.publisher.Publish(tournamentID, realtime.MessageGroups, snapshot)
	return snapshot, nil
}

func (s *groupService) Invalidate(tournamentID int) {
	s.mu.Lock()
	delete(s.boards, tournamentID)
	s.mu.Unlock()
}

// speculate runs fn on the cached board under the lock and returns a copy.
// If fn fails the board is left as it was.
func (s *groupService) speculate(ctx context.Context, tournamentID int, fn func(b *grouping.Board) error) (*grouping.Board, error) {
	if _, err := s.Board(ctx, tournamentID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[tournamentID]
	if !ok {
		return nil, fmt.Errorf("group board for tournament %d was reset; reload and retry: %w", tournamentID, ErrGroupNotFound)
	}
	work := b.Clone()
	if err := fn(work); err != nil {
		return nil, mapBoardError(err)
	}
	s.boards[tournamentID] = work
	return work.Clone(), nil
}

// settle resyncs after the request and returns the authoritative board.
func (s *groupService) settle(ctx context.Context, tournamentID int, op string, pending *grouping.Board, callErr error) (*grouping.Board, error) {
	fresh, syncErr := s.Refresh(detached(ctx), tournamentID)
	if callErr != nil {
		s.logger.Warn("group change failed",
			slog.String("op", op),
			slog.Int("tournament_id", tournamentID),
			slog.Any("error", callErr),
		)
		err := handleRepositoryError(callErr, op, ErrGroupNotFound)
		if syncErr != nil {
			return nil, errors.Join(err, syncErr)
		}
		return fresh, err
	}
	if syncErr != nil {
		if pending == nil {
			return nil, syncErr
		}
		return pending, nil
	}
	return fresh, nil
}

func (s *groupService) AddToGroup(ctx context.Context, tournamentID, golferID, groupID int) (*grouping.Board, error) {
	if groupID == grouping.Unassigned {
		return nil, fmt.Errorf("add golfer %d: %w", golferID, ErrGroupNotFound)
	}
	return s.MoveGolfer(ctx, tournamentID, golferID, groupID)
}

func (s *groupService) RemoveFromGroup(ctx context.Context, tournamentID, golferID int) (*grouping.Board, error) {
	return s.MoveGolfer(ctx, tournamentID, golferID, grouping.Unassigned)
}

func (s *groupService) MoveGolfer(ctx context.Context, tournamentID, golferID, dest int) (*grouping.Board, error) {
	var from int
	pending, err := s.speculate(ctx, tournamentID, func(b *grouping.Board) error {
		var err error
		from, err = b.Move(golferID, dest)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("move golfer %d: %w", golferID, err)
	}
	if from == dest {
		return pending, nil
	}
	s.publisher.Publish(tournamentID, realtime.MessageGroupsPending, pending)

	callErr := s.transfer(ctx, golferID, from, dest)
	return s.settle(ctx, tournamentID, "move golfer", pending, callErr)
}

func (s *groupService) AddManyToGroup(ctx context.Context, tournamentID int, golferIDs []int, groupID int) (*grouping.Board, error) {
	if groupID == grouping.Unassigned {
		return nil, fmt.Errorf("bulk add: %w", ErrGroupNotFound)
	}

	origins := make(map[int]int, len(golferIDs))
	var moving []int
	pending, err := s.speculate(ctx, tournamentID, func(b *grouping.Board) error {
		for _, id := range golferIDs {
			loc, ok := b.Locate(id)
			if !ok {
				return fmt.Errorf("%w: %d", grouping.ErrGolferNotFound, id)
			}
			if loc == groupID {
				continue
			}
			if _, seen := origins[id]; !seen {
				origins[id] = loc
				moving = append(moving, id)
			}
		}
		if !b.CanAccept(groupID, len(moving)) {
			return fmt.Errorf("%w: %d golfers do not fit in %d open slots", grouping.ErrGroupFull, len(moving), b.Remaining(groupID))
		}
		for _, id := range moving {
			if _, err := b.Move(id, groupID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bulk add to group %d: %w", groupID, err)
	}
	if len(moving) == 0 {
		return pending, nil
	}
	s.publisher.Publish(tournamentID, realtime.MessageGroupsPending, pending)

	var callErr error
	for _, id := range moving {
		if callErr = s.transfer(ctx, id, origins[id], groupID); callErr != nil {
			break
		}
	}
	return s.settle(ctx, tournamentID, "bulk add to group", pending, callErr)
}

func (s *groupService) CreateGroup(ctx context.Context, tournamentID int, input models.CreateGroupInput) (*grouping.Board, error) {
	if input.HoleNumber != nil && (*input.HoleNumber < 1 || *input.HoleNumber > 18) {
		return nil, fmt.Errorf("%w: hole_number must be between 1 and 18", ErrValidationFailed)
	}
	_, callErr := s.groupRepo.Create(ctx, tournamentID, input)
	return s.settle(ctx, tournamentID, "create group", nil, callErr)
}

func (s *groupService) DeleteGroup(ctx context.Context, tournamentID, groupID int) (*grouping.Board, error) {
	pending, err := s.speculate(ctx, tournamentID, func(b *grouping.Board) error {
		return b.RemoveGroup(groupID)
	})
	if err != nil {
		return nil, fmt.Errorf("delete group %d: %w", groupID, err)
	}
	s.publisher.Publish(tournamentID, realtime.MessageGroupsPending, pending)

	callErr := s.groupRepo.Delete(ctx, groupID)
	return s.settle(ctx, tournamentID, "delete group", pending, callErr)
}

// transfer issues the membership requests for one move.
func (s *groupService) transfer(ctx context.Context, golferID, from, dest int) error {
	if from != grouping.Unassigned {
		if err := s.groupRepo.RemoveMember(ctx, from, golferID); err != nil {
			return err
		}
	}
	if dest != grouping.Unassigned {
		if err := s.groupRepo.AddMember(ctx, dest, golferID); err != nil {
			return err
		}
	}
	return nil
}

func mapBoardError(err error) error {
	switch {
	case errors.Is(err, grouping.ErrGolferNotFound):
		return fmt.Errorf("%w: %w", ErrGolferNotFound, err)
	case errors.Is(err, grouping.ErrGroupNotFound):
		return fmt.Errorf("%w: %w", ErrGroupNotFound, err)
	}
	return err
}
