package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Dosada05/golf-admin/metrics"
	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/session"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("remote API rejected the credentials")
	ErrForbidden         = errors.New("remote API forbids this operation")
	ErrConflict          = errors.New("remote API reported a conflict")
	ErrRejected          = errors.New("remote API rejected the request")
	ErrUnavailable       = errors.New("remote API is unavailable")
	ErrMalformedResponse = errors.New("malformed response from remote API")
)

// APIError is a non-2xx answer from the remote API. It unwraps to the
// sentinel matching its status so callers can use errors.Is.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: remote API returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: remote API returned %d: %s", e.Op, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}

// Client talks JSON to the remote tournament API. The bearer token is taken
// from the session attached to each request's context.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		metrics: m,
		logger:  logger,
	}, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := session.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", requestID(ctx))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(op, 0, time.Since(start))
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		apiErr := decodeAPIError(op, resp)
		c.logger.WarnContext(ctx, "remote API call failed",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return nil
}

func decodeAPIError(op string, resp *http.Response) *APIError {
	apiErr := &APIError{Op: op, Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var env struct {
		Error   interface{} `json:"error"`
		Message string      `json:"message"`
	}
	if json.Unmarshal(raw, &env) == nil {
		switch v := env.Error.(type) {
		case string:
			apiErr.Message = v
		case nil:
			apiErr.Message = env.Message
		default:
			b, _ := json.Marshal(v)
			apiErr.Message = string(b)
		}
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func validateGolfers(op string, golfers []models.Golfer) error {
	for _, g := range golfers {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
		}
	}
	return nil
}

func validateGolfer(op string, g *models.Golfer) (*models.Golfer, error) {
	if g == nil {
		return nil, fmt.Errorf("%s: %w: empty golfer", op, ErrMalformedResponse)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return g, nil
}
