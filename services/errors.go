package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/golf-admin/grouping"
	"github.com/Dosada05/golf-admin/repositories"
	"github.com/Dosada05/golf-admin/wizard"
)

var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Golfer actions
	ErrGolferNotFound    = errors.New("golfer not found")
	ErrAlreadyPaid       = errors.New("golfer has already paid")
	ErrNotPaid           = errors.New("only paid golfers can be refunded")
	ErrInvalidTransition = errors.New("registration status does not allow this action")

	// Groups
	ErrGroupFull     = grouping.ErrGroupFull
	ErrGroupNotFound = errors.New("group not found")

	// Registration
	ErrRegistrationClosed       = errors.New("registration for this tournament is closed")
	ErrInvalidEmployeeNumber    = errors.New("employee number is not valid for this tournament")
	ErrPaymentOptionUnavailable = errors.New("payment option is not offered for this tournament")
	ErrCheckoutUnavailable      = errors.New("online payment is not configured")
	ErrPaymentNotCompleted      = errors.New("payment has not been completed")
	ErrWizardNotFound           = wizard.ErrNotFound

	// Raffle
	ErrPrizeAlreadyDrawn = errors.New("prize has already been drawn")
	ErrNoTickets         = errors.New("no raffle tickets have been sold")

	ErrTournamentNotFound = errors.New("tournament not found")
	ErrNoPaymentOption    = errors.New("at least one payment option must stay enabled")

	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// LoadError is a failed initial load of a page's data. The browser shows a
// full-screen retry instead of a partial page.
type LoadError struct {
	TournamentID int
	Err          error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load tournament %d: %v", e.TournamentID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Retryable() bool { return true }

// handleRepositoryError swaps the remote not-found sentinel for a
// service-specific one and keeps every other error wrapped.
func handleRepositoryError(err error, op string, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	if errors.Is(err, repositories.ErrUnauthorized) {
		return fmt.Errorf("%s: %w: %w", op, ErrAuthenticationFailed, err)
	}
	if errors.Is(err, repositories.ErrForbidden) {
		return fmt.Errorf("%s: %w: %w", op, ErrForbiddenOperation, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
