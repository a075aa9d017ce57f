package wizard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("registration not found or expired")

// Store keeps wizards in memory, keyed by UUID, and forgets them after ttl
// without activity. A wizard parked on the hosted checkout is kept for at
// least the payment window so a late return can still complete.
type Store struct {
	mu            sync.Mutex
	wizards       map[string]*Wizard
	ttl           time.Duration
	paymentWindow time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		wizards: make(map[string]*Wizard),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// SetPaymentWindow sets how long a wizard awaiting payment survives without
// activity. It only ever extends the regular ttl.
func (s *Store) SetPaymentWindow(d time.Duration) {
	s.mu.Lock()
	s.paymentWindow = d
	s.mu.Unlock()
}

func (s *Store) Create(tournamentID int, v Variant) (Wizard, error) {
	w, err := New(uuid.NewString(), tournamentID, v, s.now())
	if err != nil {
		return Wizard{}, err
	}
	s.mu.Lock()
	s.wizards[w.ID] = w
	s.mu.Unlock()
	return *w, nil
}

// Get returns a copy of the wizard.
func (s *Store) Get(id string) (Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.live(id)
	if !ok {
		return Wizard{}, ErrNotFound
	}
	return *w, nil
}

// Update runs fn on the stored wizard under the store lock and returns the
// resulting copy. fn's error is returned as is; changes made before it
// failed are kept.
func (s *Store) Update(id string, fn func(w *Wizard, now time.Time) error) (Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.live(id)
	if !ok {
		return Wizard{}, ErrNotFound
	}
	now := s.now()
	err := fn(w, now)
	w.UpdatedAt = now
	return *w, err
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.wizards, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wizards)
}

func (s *Store) live(id string) (*Wizard, bool) {
	w, ok := s.wizards[id]
	if !ok {
		return nil, false
	}
	if s.expired(w, s.now()) {
		delete(s.wizards, id)
		return nil, false
	}
	return w, true
}

func (s *Store) expired(w *Wizard, now time.Time) bool {
	if s.ttl <= 0 {
		return false
	}
	ttl := s.ttl
	if w.Step == StepAwaitingPayment {
		ttl = max(ttl, s.paymentWindow)
	}
	return now.Sub(w.UpdatedAt) > ttl
}

// Sweep drops expired wizards and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, w := range s.wizards {
		if s.expired(w, now) {
			delete(s.wizards, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("expired registration wizards removed", slog.Int("count", n))
			}
		}
	}
}
