package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/realtime"
	"github.com/Dosada05/golf-admin/repositories"
)

// GolferService runs admin actions on one golfer. Each action edits the
// mirror speculatively, sends the request, then resyncs golfers and stats
// whether or not the request succeeded.
type GolferService interface {
	Get(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error)
	Cancel(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error)
	Refund(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error)
	Promote(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error)
	Demote(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error)
	MarkPaid(ctx context.Context, tournamentID, golferID int, payment models.PaymentRecord) (*models.Golfer, error)
	SetCheckedIn(ctx context.Context, tournamentID, golferID int, checkedIn bool) (*models.Golfer, error)
	SetEmployee(ctx context.Context, tournamentID, golferID int, isEmployee bool) (*models.Golfer, error)
	Update(ctx context.Context, tournamentID, golferID int, input models.GolferUpdate) (*models.Golfer, error)
	Delete(ctx context.Context, tournamentID, golferID int) error
}

type golferService struct {
	golferRepo repositories.GolferRepository
	dashboard  DashboardService
	publisher  Publisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewGolferService(
	golferRepo repositories.GolferRepository,
	dashboard DashboardService,
	publisher Publisher,
	logger *slog.Logger,
) GolferService {
	return &golferService{
		golferRepo: golferRepo,
		dashboard:  dashboard,
		publisher:  publisherOrNop(publisher),
		logger:     loggerOrDefault(logger),
		now:        time.Now,
	}
}

// action describes one admin action. guard runs against the mirrored golfer
// before anything is sent; speculate edits the local copy.
type action struct {
	op        string
	guard     func(models.Golfer) error
	speculate func(*models.Golfer)
	call      func(ctx context.Context, id int) (*models.Golfer, error)
}

func (s *golferService) Get(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error) {
	if _, err := s.dashboard.State(ctx, tournamentID); err != nil {
		return nil, err
	}
	g, ok := s.dashboard.Store(tournamentID).Golfer(golferID)
	if !ok {
		return nil, fmt.Errorf("golfer %d: %w", golferID, ErrGolferNotFound)
	}
	return &g, nil
}

func (s *golferService) run(ctx context.Context, tournamentID, golferID int, a action) (*models.Golfer, error) {
	current, err := s.Get(ctx, tournamentID, golferID)
	if err != nil {
		return nil, err
	}
	if a.guard != nil {
		if err := a.guard(*current); err != nil {
			return nil, fmt.Errorf("%s golfer %d: %w", a.op, golferID, err)
		}
	}

	store := s.dashboard.Store(tournamentID)
	if pending, ok := store.Speculate(golferID, a.speculate); ok {
		s.publisher.Publish(tournamentID, realtime.MessageGolferPending, pending)
	}

	result, callErr := a.call(ctx, golferID)
	_, syncErr := s.dashboard.Resync(detached(ctx), tournamentID)

	if callErr != nil {
		s.logger.Warn("golfer action failed",
			slog.String("op", a.op),
			slog.Int("tournament_id", tournamentID),
			slog.Int("golfer_id", golferID),
			slog.Any("error", callErr),
		)
		err := handleRepositoryError(callErr, a.op+" golfer", ErrGolferNotFound)
		if syncErr != nil {
			err = errors.Join(err, syncErr)
		}
		return nil, err
	}
	if syncErr != nil {
		// The change went through; the next read reloads the mirror.
		return result, nil
	}
	if fresh, ok := store.Golfer(golferID); ok {
		return &fresh, nil
	}
	return result, nil
}

func (s *golferService) Cancel(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error) {
	return s.run(ctx, tournamentID, golferID, action{
		op: "cancel",
		guard: func(g models.Golfer) error {
			if g.RegistrationStatus == models.RegistrationCancelled {
				return ErrInvalidTransition
			}
			return nil
		},
		speculate: func(g *models.Golfer) { g.RegistrationStatus = models.RegistrationCancelled },
		call:      s.golferRepo.Cancel,
	})
}

func (s *golferService) Refund(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error) {
	return s.run(ctx, tournamentID, golferID, action{
		op: "refund",
		guard: func(g models.Golfer) error {
			if g.PaymentStatus != models.PaymentPaid {
				return ErrNotPaid
			}
			return nil
		},
		speculate: func(g *models.Golfer) { g.PaymentStatus = models.PaymentRefunded },
		call:      s.golferRepo.Refund,
	})
}

func (s *golferService) Promote(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error) {
	return s.run(ctx, tournamentID, golferID, action{
		op:        "promote",
		guard:     requireStatus(models.RegistrationWaitlist),
		speculate: func(g *models.Golfer) { g.RegistrationStatus = models.RegistrationConfirmed },
		call:      s.golferRepo.Promote,
	})
}

func (s *golferService) Demote(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error) {
	return s.run(ctx, tournamentID, golferID, action{
		op:        "demote",
		guard:     requireStatus(models.RegistrationConfirmed),
		speculate: func(g *models.Golfer) { g.RegistrationStatus = models.RegistrationWaitlist },
		call:      s.golferRepo.Demote,
	})
}

func (s *golferService) MarkPaid(ctx context.Context, tournamentID, golferID int, payment models.PaymentRecord) (*models.Golfer, error) {
	if err := validate(payment); err != nil {
		return nil, err
	}
	return s.run(ctx, tournamentID, golferID, action{
		op: "mark paid",
		guard: func(g models.Golfer) error {
			if g.PaymentStatus == models.PaymentPaid {
				return ErrAlreadyPaid
			}
			return nil
		},
		speculate: func(g *models.Golfer) {
			g.PaymentStatus = models.PaymentPaid
			g.PaymentMethod = models.StringPtr(payment.Method)
			if payment.AmountCents != nil {
				g.AmountPaidCents = models.IntPtr(*payment.AmountCents)
			}
			if payment.Notes != nil {
				g.PaymentNotes = models.StringPtr(*payment.Notes)
			}
		},
		call: func(ctx context.Context, id int) (*models.Golfer, error) {
			return s.golferRepo.RecordPayment(ctx, id, payment)
		},
	})
}

func (s *golferService) SetCheckedIn(ctx context.Context, tournamentID, golferID int, checkedIn bool) (*models.Golfer, error) {
	now := s.now()
	return s.run(ctx, tournamentID, golferID, action{
		op: "check in",
		guard: func(g models.Golfer) error {
			if checkedIn && g.RegistrationStatus == models.RegistrationCancelled {
				return ErrInvalidTransition
			}
			return nil
		},
		speculate: func(g *models.Golfer) {
			g.CheckedIn = checkedIn
			g.CheckedInAt = nil
			if checkedIn {
				g.CheckedInAt = &now
			}
		},
		call: func(ctx context.Context, id int) (*models.Golfer, error) {
			return s.golferRepo.SetCheckedIn(ctx, id, checkedIn)
		},
	})
}

func (s *golferService) SetEmployee(ctx context.Context, tournamentID, golferID int, isEmployee bool) (*models.Golfer, error) {
	return s.run(ctx, tournamentID, golferID, action{
		op:        "toggle employee",
		speculate: func(g *models.Golfer) { g.IsEmployee = isEmployee },
		call: func(ctx context.Context, id int) (*models.Golfer, error) {
			return s.golferRepo.SetEmployee(ctx, id, isEmployee)
		},
	})
}

func (s *golferService) Update(ctx context.Context, tournamentID, golferID int, input models.GolferUpdate) (*models.Golfer, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	return s.run(ctx, tournamentID, golferID, action{
		op: "update",
		speculate: func(g *models.Golfer) {
			if input.FirstName != nil {
				g.FirstName = *input.FirstName
			}
			if input.LastName != nil {
				g.LastName = *input.LastName
			}
			if input.Email != nil {
				g.Email = *input.Email
			}
			if input.Phone != nil {
				g.Phone = models.StringPtr(*input.Phone)
			}
			if input.Company != nil {
				g.Company = models.StringPtr(*input.Company)
			}
			if input.PaymentNotes != nil {
				g.PaymentNotes = models.StringPtr(*input.PaymentNotes)
			}
		},
		call: func(ctx context.Context, id int) (*models.Golfer, error) {
			return s.golferRepo.Update(ctx, id, input)
		},
	})
}

func (s *golferService) Delete(ctx context.Context, tournamentID, golferID int) error {
	if _, err := s.Get(ctx, tournamentID, golferID); err != nil {
		return err
	}
	if s.dashboard.Store(tournamentID).Remove(golferID) {
		s.publisher.Publish(tournamentID, realtime.MessageGolferDeleted, map[string]int{"golfer_id": golferID})
	}

	callErr := s.golferRepo.Delete(ctx, golferID)
	_, syncErr := s.dashboard.Resync(detached(ctx), tournamentID)
	if callErr != nil {
		err := handleRepositoryError(callErr, "delete golfer", ErrGolferNotFound)
		if syncErr != nil {
			err = errors.Join(err, syncErr)
		}
		return err
	}
	return nil
}

func requireStatus(want models.RegistrationStatus) func(models.Golfer) error {
	return func(g models.Golfer) error {
		if g.RegistrationStatus != want {
			return fmt.Errorf("%w: golfer is %s", ErrInvalidTransition, g.RegistrationStatus)
		}
		return nil
	}
}
