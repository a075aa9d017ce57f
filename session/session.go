// Package session carries the authenticated admin and the tournament they are
// working on through a request. Both are explicit values attached to the
// request context by middleware; nothing here is global.
package session

import (
	"context"
	"errors"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

var ErrNoSession = errors.New("no session in context")

// Session is the auth context of one request. Token is forwarded verbatim to
// the remote API as a bearer token.
type Session struct {
	UserID int
	Email  string
	Role   Role
	Token  string
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

type contextKey string

const (
	sessionKey    contextKey = "session"
	tournamentKey contextKey = "tournament_id"
)

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(sessionKey).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// Token returns the bearer token of the request, or "" for public calls.
func Token(ctx context.Context) string {
	s, err := FromContext(ctx)
	if err != nil {
		return ""
	}
	return s.Token
}

// WithTournament records the tournament selected for this request.
func WithTournament(ctx context.Context, tournamentID int) context.Context {
	return context.WithValue(ctx, tournamentKey, tournamentID)
}

func TournamentFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(tournamentKey).(int)
	return id, ok && id > 0
}
