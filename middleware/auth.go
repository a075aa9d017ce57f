package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"

	"github.com/Dosada05/golf-admin/session"
)

// Authenticator verifies the bearer JWT issued by the tournament API and
// puts a session.Session carrying the raw token into the request context.
type Authenticator struct {
	secret []byte
	logger *slog.Logger
}

func NewAuthenticator(secret string, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{secret: []byte(secret), logger: logger}
}

func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			errorJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return a.secret, nil
		})
		if err != nil {
			a.logger.Debug("rejected bearer token", slog.Any("error", err))
			errorJSON(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		s, err := sessionFromClaims(claims, raw)
		if err != nil {
			a.logger.Debug("token claims rejected", slog.Any("error", err))
			errorJSON(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
	})
}

// RequireRole lets the request through only for the listed roles. It must
// run after Authenticate.
func RequireRole(roles ...session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := session.FromContext(r.Context())
			if err != nil {
				errorJSON(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !slices.Contains(roles, s.Role) {
				errorJSON(w, http.StatusForbidden, "your role does not allow this operation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TournamentScope parses the named URL parameter and stores it in the context.
func TournamentScope(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.Atoi(chi.URLParam(r, param))
			if err != nil || id <= 0 {
				errorJSON(w, http.StatusBadRequest, fmt.Sprintf("invalid %s in URL path", param))
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithTournament(r.Context(), id)))
		})
	}
}

// bearerToken reads the Authorization header. Browsers cannot set headers on
// a websocket handshake, so upgrades may pass ?token= instead.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if websocket.IsWebSocketUpgrade(r) {
		return r.URL.Query().Get("token")
	}
	return ""
}

var errMissingClaim = errors.New("missing claim")
