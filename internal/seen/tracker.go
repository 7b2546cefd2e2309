// Package seen tracks which content items a user has opened. Advisory UI
// state for the "already viewed" badge only; it never fails the page.
package seen

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rsilveira/licoes/internal/domain"
)

// Tracker persists per-user seen sets in the local store. Membership is
// monotonic: an identifier, once added, is only removed by the local
// user-state reset on account switch.
type Tracker struct {
	store  domain.LocalStore // nil = degrade to "nothing is ever seen"
	logger *slog.Logger

	mu   sync.Mutex
	sets map[string]map[string]struct{} // storage key -> id set
}

// NewTracker creates a seen tracker over the local store. A nil store is
// valid: marking becomes a no-op and nothing reads as seen.
func NewTracker(store domain.LocalStore, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:  store,
		logger: logger,
		sets:   make(map[string]map[string]struct{}),
	}
}

// storageKey namespaces the set per user and content kind so switching
// accounts on one device never leaks or merges seen-state.
func storageKey(kind domain.Kind, uid string) string {
	return fmt.Sprintf("%s_vistas_%s", kind.Collection(), uid)
}

// MarkSeen records that the user opened the item
func (t *Tracker) MarkSeen(uid string, kind domain.Kind, id string) {
	if uid == "" || id == "" {
		return
	}

	key := storageKey(kind, uid)

	t.mu.Lock()
	set := t.loadLocked(key)
	if _, ok := set[id]; ok {
		t.mu.Unlock()
		return
	}
	set[id] = struct{}{}
	ids := make([]string, 0, len(set))
	for v := range set {
		ids = append(ids, v)
	}
	t.mu.Unlock()

	slices.Sort(ids)

	if t.store == nil {
		return
	}
	if err := t.store.SaveSeen(key, ids); err != nil {
		t.logger.Warn("failed to persist seen set", "key", key, "error", err)
	}
}

// IsSeen reports whether the user has opened the item
func (t *Tracker) IsSeen(uid string, kind domain.Kind, id string) bool {
	if uid == "" || id == "" {
		return false
	}

	key := storageKey(kind, uid)

	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.loadLocked(key)[id]
	return ok
}

// loadLocked returns the in-memory set for key, reading it from the store
// on first access. Caller holds t.mu.
func (t *Tracker) loadLocked(key string) map[string]struct{} {
	if set, ok := t.sets[key]; ok {
		return set
	}

	set := make(map[string]struct{})
	if t.store != nil {
		if ids, ok := t.store.GetSeen(key); ok {
			for _, id := range ids {
				set[id] = struct{}{}
			}
		}
	}
	t.sets[key] = set
	return set
}
