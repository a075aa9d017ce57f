// Package dashboard mirrors one tournament's golfers and stats in memory.
// Writers replace the mirror wholesale after every server round-trip; the
// only local edits are speculative ones and real-time splices.
package dashboard

import (
	"slices"
	"sync"
	"time"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/roster"
)

type State struct {
	TournamentID int             `json:"tournament_id"`
	Golfers      []models.Golfer `json:"golfers"`
	Stats        *models.Stats   `json:"stats,omitempty"`
	Version      uint64          `json:"version"`
	SyncedAt     time.Time       `json:"synced_at"`
}

func (s State) clone() State {
	c := s
	c.Golfers = make([]models.Golfer, len(s.Golfers))
	for i, g := range s.Golfers {
		c.Golfers[i] = g.Clone()
	}
	if s.Stats != nil {
		st := *s.Stats
		c.Stats = &st
	}
	return c
}

type Store struct {
	mu     sync.RWMutex
	state  State
	loaded bool
}

func NewStore(tournamentID int) *Store {
	return &Store{state: State{TournamentID: tournamentID, Golfers: []models.Golfer{}}}
}

// Snapshot returns a deep copy; ok is false until the first Replace.
func (s *Store) Snapshot() (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone(), s.loaded
}

// Replace installs authoritative server state.
func (s *Store) Replace(golfers []models.Golfer, stats models.Stats, now time.Time) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Golfers = slices.Clone(golfers)
	if s.state.Golfers == nil {
		s.state.Golfers = []models.Golfer{}
	}
	s.state.Stats = &stats
	s.state.SyncedAt = now
	s.state.Version++
	s.loaded = true
	return s.state.clone()
}

func (s *Store) ReplaceStats(stats models.Stats) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Stats = &stats
	s.state.Version++
	return s.state.clone()
}

// Apply splices a real-time event into the golfer list. Events for another
// tournament, or created/updated events without a record, are ignored.
func (s *Store) Apply(ev models.GolferEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.TournamentID != 0 && ev.TournamentID != s.state.TournamentID {
		return false
	}
	switch ev.Type {
	case models.GolferCreated:
		if ev.Golfer == nil {
			return false
		}
		s.state.Golfers = roster.ApplyCreated(s.state.Golfers, ev.Golfer.Clone())
	case models.GolferUpdated:
		if ev.Golfer == nil {
			return false
		}
		s.state.Golfers = roster.ApplyUpdated(s.state.Golfers, ev.Golfer.Clone())
	case models.GolferDeleted:
		id := ev.GolferID
		if id == 0 && ev.Golfer != nil {
			id = ev.Golfer.ID
		}
		if roster.IndexByID(s.state.Golfers, id) < 0 {
			return false
		}
		s.state.Golfers = roster.ApplyDeleted(s.state.Golfers, id)
	default:
		return false
	}
	s.state.Version++
	return true
}

// Speculate applies fn to the local copy of golferID ahead of server
// confirmation. It returns the edited golfer, or false if it is unknown.
func (s *Store) Speculate(golferID int, fn func(*models.Golfer)) (models.Golfer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := roster.IndexByID(s.state.Golfers, golferID)
	if i < 0 {
		return models.Golfer{}, false
	}
	g := s.state.Golfers[i].Clone()
	fn(&g)
	s.state.Golfers = slices.Clone(s.state.Golfers)
	s.state.Golfers[i] = g
	s.state.Version++
	return g.Clone(), true
}

// Remove speculatively drops a golfer.
func (s *Store) Remove(golferID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if roster.IndexByID(s.state.Golfers, golferID) < 0 {
		return false
	}
	s.state.Golfers = roster.ApplyDeleted(s.state.Golfers, golferID)
	s.state.Version++
	return true
}

// Golfer returns a copy of one mirrored golfer.
func (s *Store) Golfer(golferID int) (models.Golfer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := roster.IndexByID(s.state.Golfers, golferID)
	if i < 0 {
		return models.Golfer{}, false
	}
	return s.state.Golfers[i].Clone(), true
}

// Invalidate forces the next reader to resync.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

// Registry hands out one Store per tournament.
type Registry struct {
	mu     sync.Mutex
	stores map[int]*Store
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[int]*Store)}
}

func (r *Registry) Get(tournamentID int) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[tournamentID]
	if !ok {
		s = NewStore(tournamentID)
		r.stores[tournamentID] = s
	}
	return s
}

// Lookup returns the store only if some page already opened it.
func (r *Registry) Lookup(tournamentID int) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[tournamentID]
	return s, ok
}
