package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/golf-admin/metrics"
	"github.com/Dosada05/golf-admin/models"
)

var testUpgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

type recorder struct {
	mu     sync.Mutex
	events []models.GolferEvent
}

func (r *recorder) add(_ context.Context, ev models.GolferEvent) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []models.GolferEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.GolferEvent(nil), r.events...)
}

func TestSubscriptionDispatchesAndReconnects(t *testing.T) {
	var conns atomic.Int32
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if conns.Add(1) > 1 {
			time.Sleep(50 * time.Millisecond)
			return
		}
		msgs := []string{
			`{"type":"golfer.created","tournament_id":3,"golfer":{"id":11,"tournament_id":3,"first_name":"Ann","registration_status":"confirmed","payment_status":"unpaid","payment_type":"stripe"}}`,
			`{"type":"golfer.updated","golfer":{"id":11,"tournament_id":3,"registration_status":"confirmed","payment_status":"paid","payment_type":"stripe"}}`,
			`{"type":"golfer.updated","golfer":{"id":12,"registration_status":"pending","payment_status":"paid","payment_type":"stripe"}}`,
			`{"type":"golfer.moved","golfer_id":11}`,
			`not json`,
			`{"type":"golfer.deleted","tournament_id":3,"golfer_id":11}`,
		}
		for _, m := range msgs {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	created, updated, deleted := &recorder{}, &recorder{}, &recorder{}
	sub := NewSubscription(wsURL(srv), "svc-token", Handlers{
		OnCreated: created.add,
		OnUpdated: updated.add,
		OnDeleted: deleted.add,
	}, nil, metrics.New())
	sub.ReconnectDelay = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sub.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return conns.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	assert.Equal(t, "Bearer svc-token", auth.Load())

	require.Len(t, created.snapshot(), 1)
	assert.Equal(t, 11, created.snapshot()[0].GolferID)
	assert.Equal(t, 3, created.snapshot()[0].TournamentID)

	up := updated.snapshot()
	require.Len(t, up, 1, "records with unknown enums are rejected")
	assert.Equal(t, models.PaymentPaid, up[0].Golfer.PaymentStatus)
	assert.Equal(t, 3, up[0].TournamentID)

	require.Len(t, deleted.snapshot(), 1)
	assert.Equal(t, 11, deleted.snapshot()[0].GolferID)
}

func TestDispatchRejectsIncompleteEvents(t *testing.T) {
	sub := NewSubscription("ws://unused", "", Handlers{}, nil, nil)
	ctx := context.Background()

	assert.ErrorIs(t, sub.dispatch(ctx, []byte(`{"type":"golfer.created","golfer_id":1}`)), errMissingGolfer)
	assert.Error(t, sub.dispatch(ctx, []byte(`{"type":"golfer.deleted"}`)))
	assert.NoError(t, sub.dispatch(ctx, []byte(`{"type":"golfer.deleted","golfer_id":4}`)), "nil handlers are skipped")
}

func TestHubPublishesToRoom(t *testing.T) {
	hub := NewHub(nil, metrics.New())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, r.URL.Query().Get("room"))
		if !hub.Join(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))
	defer srv.Close()

	dial := func(room string) *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?room="+room, nil)
		require.NoError(t, err)
		return conn
	}
	inRoom := dial(Room(5))
	defer inRoom.Close()
	otherRoom := dial(Room(6))
	defer otherRoom.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount(Room(5)) == 1 && hub.ClientCount(Room(6)) == 1
	}, 2*time.Second, 5*time.Millisecond)

	hub.Publish(5, MessageStats, models.Stats{Paid: 2})
	hub.Publish(5, MessageGolferDeleted, map[string]int{"golfer_id": 9})

	inRoom.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first, second Message
	_, data, err := inRoom.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &first))
	_, data, err = inRoom.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &second))

	assert.Equal(t, MessageStats, first.Type)
	assert.Equal(t, "tournament_5", first.RoomID)
	assert.Equal(t, MessageGolferDeleted, second.Type)

	otherRoom.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = otherRoom.ReadMessage()
	assert.Error(t, err, "other rooms receive nothing")

	inRoom.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(Room(5)) == 0 }, 2*time.Second, 5*time.Millisecond)
}
