package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/golf-admin/session"
)

const secret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": 7,
		"role":    role,
		"email":   "admin@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func protected(t *testing.T, roles ...session.Role) http.Handler {
	a := NewAuthenticator(secret, nil)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := session.FromContext(r.Context())
		require.NoError(t, err)
		_ = json.NewEncoder(w).Encode(s)
	})
	if len(roles) > 0 {
		return a.Authenticate(RequireRole(roles...)(h))
	}
	return a.Authenticate(h)
}

func TestAuthenticateForwardsToken(t *testing.T) {
	token := sign(t, validClaims("staff"), secret)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protected(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var s session.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	assert.Equal(t, 7, s.UserID)
	assert.Equal(t, session.RoleStaff, s.Role)
	assert.Equal(t, token, s.Token)
}

func TestAuthenticateRejects(t *testing.T) {
	expired := validClaims("admin")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	badRole := validClaims("player")
	noUser := validClaims("admin")
	delete(noUser, "user_id")

	cases := map[string]string{
		"missing":       "",
		"wrong scheme":  "Basic abc",
		"wrong key":     "Bearer " + sign(t, validClaims("admin"), "other"),
		"expired":       "Bearer " + sign(t, expired, secret),
		"unknown role":  "Bearer " + sign(t, badRole, secret),
		"missing user":  "Bearer " + sign(t, noUser, secret),
		"garbage token": "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			protected(t).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestRequireRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, validClaims("staff"), secret))
	rec := httptest.NewRecorder()
	protected(t, session.RoleAdmin).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req.Header.Set("Authorization", "Bearer "+sign(t, validClaims("admin"), secret))
	rec = httptest.NewRecorder()
	protected(t, session.RoleAdmin).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebsocketUpgradeMayUseQueryToken(t *testing.T) {
	token := sign(t, validClaims("admin"), secret)

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	rec := httptest.NewRecorder()
	protected(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "plain requests must use the header")

	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec = httptest.NewRecorder()
	protected(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTournamentScope(t *testing.T) {
	r := chi.NewRouter()
	r.With(TournamentScope("tournamentID")).Get("/t/{tournamentID}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := session.TournamentFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, 12, id)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/t/12", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/t/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
