package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/golf-admin/utils"
)

// Publisher pushes updates to the browsers watching a tournament.
type Publisher interface {
	Publish(tournamentID int, msgType string, payload interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(int, string, interface{}) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// validate returns utils.FieldErrors joined with ErrValidationFailed.
func validate(v any) error {
	if err := utils.ValidateStruct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// detached keeps ctx values (session, request id) but outlives cancellation,
// so a resync after a client disconnect still runs.
func detached(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
