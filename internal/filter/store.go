package filter

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rsilveira/licoes/internal/domain"
)

// Event is a resolved (debounced) filter change. Generation increases by
// one per resolved change; fetches carry the generation that issued them
// so responses from a superseded filter state can be discarded.
type Event struct {
	State      State
	Generation uint64
}

// Store owns the filter state for one listing surface. Setters update the
// live state synchronously for UI responsiveness; the debounced view is
// what reaches consumers, preventing one query per keystroke.
type Store struct {
	kind   domain.Kind
	local  domain.LocalStore // nil = no persistence
	deb    *Debouncer
	logger *slog.Logger

	mu        sync.Mutex
	current   State
	debounced State
	gen       uint64

	events chan Event
}

// NewStore creates a filter store for one content kind. Resolved changes
// are delivered on Events; the channel holds the latest event only.
func NewStore(kind domain.Kind, local domain.LocalStore, delay time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kind:   kind,
		local:  local,
		deb:    NewDebouncer(delay),
		logger: logger,
		events: make(chan Event, 1),
	}
}

// Events returns the resolved-change channel
func (s *Store) Events() <-chan Event { return s.events }

// Seed loads the persisted query string (if any) and resolves it
// immediately, without the debounce delay.
func (s *Store) Seed() {
	if s.local == nil {
		s.resolveNow(State{})
		return
	}
	query, ok := s.local.GetFilters(s.kind)
	if !ok {
		s.resolveNow(State{})
		return
	}

	st := Decode(query, s.kind)
	s.mu.Lock()
	s.current = st
	s.mu.Unlock()
	s.resolveNow(st)
	s.logger.Debug("seeded filters", "kind", s.kind, "query", query)
}

// Current returns the live (non-debounced) state
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Resolved returns the debounced state and its generation
func (s *Store) Resolved() (State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debounced, s.gen
}

// SetSearch updates the search term
func (s *Store) SetSearch(term string) {
	s.update(func(st *State) { st.Search = term })
}

// SetCategory updates the selected category ("" = all)
func (s *Store) SetCategory(cat domain.Category) {
	s.update(func(st *State) { st.Category = cat })
}

// SetPremiumOnly updates the premium-only toggle
func (s *Store) SetPremiumOnly(on bool) {
	s.update(func(st *State) { st.PremiumOnly = on })
}

// SetFavoritesOnly updates the favorites-only toggle
func (s *Store) SetFavoritesOnly(on bool) {
	s.update(func(st *State) { st.FavoritesOnly = on })
}

// ClearAll resets every field and the persisted query string in one
// resolved change, skipping the debounce delay so no intermediate query
// executions are emitted.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.current = State{}
	s.mu.Unlock()

	s.deb.Flush(func() { s.resolve() })
}

// Close stops the pending debounce, if any
func (s *Store) Close() {
	s.deb.Stop()
}

func (s *Store) update(apply func(*State)) {
	s.mu.Lock()
	apply(&s.current)
	s.mu.Unlock()

	s.deb.Trigger(func() { s.resolve() })
}

// resolve promotes the live state to the debounced view, bumps the
// generation, mirrors the query string, and emits the event.
func (s *Store) resolve() {
	s.mu.Lock()
	st := s.current.Normalized()
	if st == s.debounced && s.gen > 0 {
		s.mu.Unlock()
		return
	}
	s.debounced = st
	s.gen++
	ev := Event{State: st, Generation: s.gen}
	s.mu.Unlock()

	s.persist(st)
	s.emit(ev)
}

// resolveNow resolves st immediately (seeding path)
func (s *Store) resolveNow(st State) {
	s.mu.Lock()
	s.debounced = st
	s.gen++
	ev := Event{State: st, Generation: s.gen}
	s.mu.Unlock()

	s.emit(ev)
}

func (s *Store) persist(st State) {
	if s.local == nil {
		return
	}
	if err := s.local.SaveFilters(s.kind, Encode(st)); err != nil {
		s.logger.Warn("failed to persist filters", "error", err)
	}
}

// emit delivers the event, dropping any stale undelivered one
func (s *Store) emit(ev Event) {
	for {
		select {
		case s.events <- ev:
			return
		default:
			select {
			case <-s.events:
			default:
			}
		}
	}
}
