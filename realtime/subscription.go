package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/golf-admin/metrics"
	"github.com/Dosada05/golf-admin/models"
)

const DefaultReconnectDelay = 5 * time.Second

// Handlers receive decoded upstream events. Nil handlers are skipped.
type Handlers struct {
	OnCreated func(ctx context.Context, ev models.GolferEvent)
	OnUpdated func(ctx context.Context, ev models.GolferEvent)
	OnDeleted func(ctx context.Context, ev models.GolferEvent)
}

// Subscription keeps a websocket open to the API's event channel and
// redials after ReconnectDelay whenever it drops.
type Subscription struct {
	URL            string
	Token          string
	ReconnectDelay time.Duration
	Dialer         *websocket.Dialer

	handlers Handlers
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewSubscription(url, token string, h Handlers, logger *slog.Logger, m *metrics.Metrics) *Subscription {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subscription{
		URL:            url,
		Token:          token,
		ReconnectDelay: DefaultReconnectDelay,
		Dialer:         websocket.DefaultDialer,
		handlers:       h,
		logger:         logger,
		metrics:        m,
	}
}

// Run blocks until ctx is cancelled.
func (s *Subscription) Run(ctx context.Context) {
	for {
		err := s.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn("realtime subscription dropped, reconnecting",
			slog.String("url", s.URL),
			slog.Duration("delay", s.ReconnectDelay),
			slog.Any("error", err),
		)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.ReconnectDelay):
		}
	}
}

func (s *Subscription) listen(ctx context.Context) error {
	header := http.Header{}
	if s.Token != "" {
		header.Set("Authorization", "Bearer "+s.Token)
	}
	conn, resp, err := s.Dialer.DialContext(ctx, s.URL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial realtime channel: %w (status %d)", err, resp.StatusCode)
		}
		return fmt.Errorf("dial realtime channel: %w", err)
	}
	defer conn.Close()
	s.logger.Info("realtime subscription connected", slog.String("url", s.URL))

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read realtime message: %w", err)
		}
		if err := s.dispatch(ctx, data); err != nil {
			s.logger.Warn("realtime message skipped", slog.Any("error", err))
		}
	}
}

var errMissingGolfer = errors.New("event carries no golfer")

func (s *Subscription) dispatch(ctx context.Context, data []byte) error {
	var ev models.GolferEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	var handler func(context.Context, models.GolferEvent)
	switch ev.Type {
	case models.GolferCreated:
		handler = s.handlers.OnCreated
	case models.GolferUpdated:
		handler = s.handlers.OnUpdated
	case models.GolferDeleted:
		handler = s.handlers.OnDeleted
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}

	if ev.Type != models.GolferDeleted {
		if ev.Golfer == nil {
			return fmt.Errorf("%s: %w", ev.Type, errMissingGolfer)
		}
		if err := ev.Golfer.Validate(); err != nil {
			return fmt.Errorf("%s: %w", ev.Type, err)
		}
		if ev.GolferID == 0 {
			ev.GolferID = ev.Golfer.ID
		}
		if ev.TournamentID == 0 {
			ev.TournamentID = ev.Golfer.TournamentID
		}
	}
	if ev.GolferID == 0 {
		return fmt.Errorf("%s: missing golfer_id", ev.Type)
	}

	s.metrics.RealtimeEvent(string(ev.Type))
	if handler != nil {
		handler(ctx, ev)
	}
	return nil
}
