package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/repositories"
	"github.com/Dosada05/golf-admin/session"
	"github.com/Dosada05/golf-admin/utils"
	"github.com/Dosada05/golf-admin/wizard"
)

// RegistrationView is a wizard as the public form renders it.
type RegistrationView struct {
	wizard.Wizard
	Position   int `json:"position"`
	TotalSteps int `json:"total_steps"`
}

func newRegistrationView(w wizard.Wizard) *RegistrationView {
	pos, total := w.Position()
	return &RegistrationView{Wizard: w, Position: pos, TotalSteps: total}
}

type RegistrationService interface {
	Start(ctx context.Context, tournamentID int, variant wizard.Variant) (*RegistrationView, error)
	Get(ctx context.Context, id string) (*RegistrationView, error)
	Next(ctx context.Context, id string, form wizard.Form) (*RegistrationView, error)
	Back(ctx context.Context, id string) (*RegistrationView, error)
	// Submit registers directly for pay-on-day, or opens a hosted checkout.
	Submit(ctx context.Context, id string, form wizard.Form) (*RegistrationView, error)
	// Complete finishes a checkout once the session is confirmed paid.
	Complete(ctx context.Context, id, checkoutSessionID string) (*RegistrationView, error)
}

type registrationService struct {
	store          *wizard.Store
	tournamentRepo repositories.TournamentRepository
	golferRepo     repositories.GolferRepository
	employeeRepo   repositories.EmployeeNumberRepository
	checkout       CheckoutService
	logger         *slog.Logger
	token          string
	now            func() time.Time
}

// NewRegistrationService wires the public wizard. checkout may be nil when
// online payment is not configured; serviceToken authenticates the calls
// made on behalf of anonymous registrants.
func NewRegistrationService(
	store *wizard.Store,
	tournamentRepo repositories.TournamentRepository,
	golferRepo repositories.GolferRepository,
	employeeRepo repositories.EmployeeNumberRepository,
	checkout CheckoutService,
	serviceToken string,
	logger *slog.Logger,
) RegistrationService {
	return &registrationService{
		store:          store,
		tournamentRepo: tournamentRepo,
		golferRepo:     golferRepo,
		employeeRepo:   employeeRepo,
		checkout:       checkout,
		logger:         loggerOrDefault(logger),
		token:          serviceToken,
		now:            time.Now,
	}
}

func (s *registrationService) remote(ctx context.Context) context.Context {
	if s.token == "" {
		return ctx
	}
	return session.NewContext(ctx, &session.Session{Role: session.RoleStaff, Token: s.token})
}

func (s *registrationService) openTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(s.remote(ctx), tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament", ErrTournamentNotFound)
	}
	if !t.AcceptingRegistrations(s.now()) {
		return nil, ErrRegistrationClosed
	}
	return t, nil
}

func (s *registrationService) Start(ctx context.Context, tournamentID int, variant wizard.Variant) (*RegistrationView, error) {
	if _, err := s.openTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	w, err := s.store.Create(tournamentID, variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return newRegistrationView(w), nil
}

func (s *registrationService) Get(_ context.Context, id string) (*RegistrationView, error) {
	w, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return newRegistrationView(w), nil
}

func (s *registrationService) Next(ctx context.Context, id string, form wizard.Form) (*RegistrationView, error) {
	cur, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if cur.Step == wizard.StepDetails {
		details := cur.Details
		if form.Details != nil {
			details = *form.Details
		}
		if details.IsEmployee && strings.TrimSpace(details.EmployeeNumber) != "" {
			if err := s.checkEmployeeNumber(ctx, cur.TournamentID, details.EmployeeNumber); err != nil {
				s.store.Update(id, func(w *wizard.Wizard, now time.Time) error { return w.Save(form, now) })
				return nil, err
			}
		}
	}

	w, err := s.store.Update(id, func(w *wizard.Wizard, now time.Time) error {
		return w.Next(form, now)
	})
	if err != nil {
		return nil, wrapWizardError(err)
	}
	return newRegistrationView(w), nil
}

func (s *registrationService) Back(_ context.Context, id string) (*RegistrationView, error) {
	w, err := s.store.Update(id, func(w *wizard.Wizard, now time.Time) error {
		return w.Back(now)
	})
	if err != nil {
		return nil, wrapWizardError(err)
	}
	return newRegistrationView(w), nil
}

func (s *registrationService) Submit(ctx context.Context, id string, form wizard.Form) (*RegistrationView, error) {
	w, err := s.store.Update(id, func(w *wizard.Wizard, now time.Time) error {
		return w.BeginSubmit(form, now)
	})
	if err != nil {
		return nil, wrapWizardError(err)
	}

	view, err := s.submit(ctx, w)
	if err != nil {
		s.logger.Info("registration submission failed",
			slog.String("registration_id", id),
			slog.Int("tournament_id", w.TournamentID),
			slog.Any("error", err),
		)
		s.store.Update(id, func(w *wizard.Wizard, now time.Time) error {
			w.Fail(err, now)
			return nil
		})
		return nil, err
	}
	return view, nil
}

func (s *registrationService) submit(ctx context.Context, w wizard.Wizard) (*RegistrationView, error) {
	t, err := s.openTournament(ctx, w.TournamentID)
	if err != nil {
		return nil, err
	}
	if w.Details.IsEmployee {
		if err := s.checkEmployeeNumber(ctx, w.TournamentID, w.Details.EmployeeNumber); err != nil {
			return nil, err
		}
	}
	fee := t.FeeCents(w.Details.IsEmployee)

	switch w.Payment.Type {
	case models.PaymentTypePayOnDay:
		if !t.AllowPayOnDay {
			return nil, fmt.Errorf("pay on the day: %w", ErrPaymentOptionUnavailable)
		}
		return s.register(ctx, w, models.PaymentUnpaid, nil)

	case models.PaymentTypeStripe:
		if !t.AllowStripe {
			return nil, fmt.Errorf("online payment: %w", ErrPaymentOptionUnavailable)
		}
		if fee == 0 {
			return s.register(ctx, w, models.PaymentPaid, models.IntPtr(0))
		}
		if s.checkout == nil {
			return nil, ErrCheckoutUnavailable
		}
		sess, err := s.checkout.Create(ctx, CheckoutRequest{
			Reference:   w.ID,
			Email:       w.Contact.Email,
			Description: t.Name + " entry fee",
			AmountCents: fee,
		})
		if err != nil {
			return nil, err
		}
		updated, err := s.store.Update(w.ID, func(w *wizard.Wizard, now time.Time) error {
			w.AwaitPayment(sess.ID, sess.URL, now)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return newRegistrationView(updated), nil
	}
	return nil, fmt.Errorf("%w: unknown payment type %q", ErrValidationFailed, w.Payment.Type)
}

func (s *registrationService) register(ctx context.Context, w wizard.Wizard, status models.PaymentStatus, amount *int) (*RegistrationView, error) {
	golfer, err := s.golferRepo.Register(s.remote(ctx), w.TournamentID, w.Input(status, amount, s.now()))
	if err != nil {
		return nil, handleRepositoryError(err, "register golfer", ErrTournamentNotFound)
	}
	done, err := s.store.Update(w.ID, func(w *wizard.Wizard, now time.Time) error {
		w.Complete(golfer.ID, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newRegistrationView(done), nil
}

func (s *registrationService) Complete(ctx context.Context, id, checkoutSessionID string) (*RegistrationView, error) {
	cur, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if cur.Step == wizard.StepDone {
		return newRegistrationView(cur), nil
	}
	if cur.Step != wizard.StepAwaitingPayment || cur.CheckoutSessionID != checkoutSessionID || s.checkout == nil {
		return nil, ErrPaymentNotCompleted
	}

	sess, err := s.checkout.Get(ctx, checkoutSessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Paid || sess.Reference != id {
		return nil, ErrPaymentNotCompleted
	}

	// Re-check under the store lock: another return hit may have finished
	// the registration while the session was being fetched.
	w, err := s.store.Update(id, func(w *wizard.Wizard, _ time.Time) error {
		switch {
		case w.Step == wizard.StepDone:
			return wizard.ErrFinished
		case w.Submitting:
			return wizard.ErrSubmitting
		case w.Step != wizard.StepAwaitingPayment || w.CheckoutSessionID != checkoutSessionID:
			return ErrPaymentNotCompleted
		}
		w.Submitting = true
		return nil
	})
	if errors.Is(err, wizard.ErrFinished) {
		return newRegistrationView(w), nil
	}
	if err != nil {
		return nil, wrapWizardError(err)
	}

	view, err := s.register(ctx, w, models.PaymentPaid, models.IntPtr(sess.AmountCents))
	if err != nil {
		// Paid but not registered: keep the session so the return link can be retried.
		s.logger.Error("paid registration could not be recorded",
			slog.String("registration_id", id),
			slog.String("checkout_session_id", checkoutSessionID),
			slog.Any("error", err),
		)
		s.store.Update(id, func(w *wizard.Wizard, now time.Time) error {
			w.Submitting = false
			w.Error = err.Error()
			return nil
		})
		return nil, err
	}
	return view, nil
}

func (s *registrationService) checkEmployeeNumber(ctx context.Context, tournamentID int, number string) error {
	number = strings.TrimSpace(number)
	numbers, err := s.employeeRepo.ListByTournament(s.remote(ctx), tournamentID)
	if err != nil {
		return handleRepositoryError(err, "list employee numbers", ErrTournamentNotFound)
	}
	for _, n := range numbers {
		if strings.EqualFold(n.Number, number) && !n.Used {
			return nil
		}
	}
	return fmt.Errorf("%w: %w", ErrInvalidEmployeeNumber,
		utils.FieldErrors{"employee_number": "is not a valid employee number for this tournament"})
}

func wrapWizardError(err error) error {
	var fe utils.FieldErrors
	if errors.As(err, &fe) {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return err
}
