// Package listing implements the filtered, paginated content pipeline:
// filter state in, accumulated deduplicated pages out.
package listing

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/filter"
	"github.com/rsilveira/licoes/internal/query"
)

// DefaultPageSize matches the web client's page size
const DefaultPageSize = 6

// ErrFetchInFlight is returned when a fetch is requested while one is
// already outstanding for the same listing.
var ErrFetchInFlight = errors.New("fetch already in flight")

// Snapshot is a point-in-time view of the listing for rendering
type Snapshot struct {
	Items        []domain.ContentItem
	Total        int  // matching documents backend-wide (0 until counted)
	HasMore      bool
	Loading      bool // first page of the current generation in flight
	FetchingMore bool // any page in flight
	Err          error
	Generation   uint64
}

// Service accumulates query pages for one content kind. One instance owns
// one UI surface's page list; nothing else mutates it.
type Service struct {
	repo     domain.ContentRepository
	kind     domain.Kind
	pageSize int
	logger   *slog.Logger

	mu          sync.Mutex
	gen         uint64
	constraints []domain.Constraint
	items       []domain.ContentItem
	ids         map[string]struct{}
	cursor      domain.Cursor
	hasMore     bool
	fetching    bool
	total       int
	err         error
}

// NewService creates a listing service for one content kind
func NewService(repo domain.ContentRepository, kind domain.Kind, pageSize int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		repo:     repo,
		kind:     kind,
		pageSize: pageSize,
		logger:   logger,
		ids:      make(map[string]struct{}),
	}
}

// Apply starts a new generation for the resolved filter state, discarding
// all accumulated pages. gen comes from the filter store; responses issued
// under an older generation are dropped when they arrive.
func (s *Service) Apply(state filter.State, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen = gen
	s.constraints = query.Build(state)
	s.items = nil
	s.ids = make(map[string]struct{})
	s.cursor = ""
	s.hasMore = true
	s.total = 0
	s.err = nil

	s.logger.Debug("applied filters", "kind", s.kind, "generation", gen)
}

// FetchNext fetches the next page and appends it to the accumulation.
// At most one fetch runs at a time; a second call while one is outstanding
// returns ErrFetchInFlight without issuing a request. A failed fetch keeps
// the cursor, so calling again retries the same page.
func (s *Service) FetchNext(ctx context.Context) error {
	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return ErrFetchInFlight
	}
	if !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	s.fetching = true
	s.err = nil
	gen := s.gen
	constraints := s.constraints
	cursor := s.cursor
	s.mu.Unlock()

	page, err := s.repo.RunQuery(ctx, s.kind, constraints, cursor, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false

	// A filter change superseded this fetch while it was in flight;
	// its response belongs to a list that no longer exists.
	if s.gen != gen {
		s.logger.Debug("dropped stale page", "kind", s.kind, "generation", gen, "current", s.gen)
		return nil
	}

	if err != nil {
		// Cursor not advanced: the same page stays retryable.
		s.err = err
		s.logger.Error("page fetch failed", "kind", s.kind, "error", err)
		return err
	}

	added := 0
	for _, item := range page.Items {
		// A page boundary can re-deliver an item already fetched if the
		// collection changed between requests; skip known IDs.
		if _, ok := s.ids[item.GetID()]; ok {
			continue
		}
		s.ids[item.GetID()] = struct{}{}
		s.items = append(s.items, item)
		added++
	}

	s.cursor = page.Cursor

	// The missing continuation cursor is the authoritative exhaustion
	// signal. The short-page length check is a fallback only: it saves one
	// round-trip when a cursor points past the end of a live collection.
	switch {
	case page.Cursor == "":
		s.hasMore = false
	case len(page.Items) < s.pageSize:
		s.hasMore = false
	default:
		s.hasMore = true
	}

	s.logger.Debug("page fetched", "kind", s.kind,
		"received", len(page.Items), "added", added,
		"accumulated", len(s.items), "hasMore", s.hasMore)

	return nil
}

// RefreshTotal re-counts the documents matching the current filters,
// for "N of M" display independent of pagination.
func (s *Service) RefreshTotal(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	constraints := s.constraints
	s.mu.Unlock()

	// Count ignores the ordering constraint
	filters := constraints
	if n := len(filters); n > 0 && filters[n-1].Op == domain.OpOrderBy {
		filters = filters[:n-1]
	}

	total, err := s.repo.Count(ctx, s.kind, filters)
	if err != nil {
		s.logger.Warn("count failed", "kind", s.kind, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.total = total
	return nil
}

// Snapshot returns a copy of the current listing state
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.ContentItem, len(s.items))
	copy(items, s.items)

	return Snapshot{
		Items:        items,
		Total:        s.total,
		HasMore:      s.hasMore,
		Loading:      s.fetching && len(s.items) == 0,
		FetchingMore: s.fetching,
		Err:          s.err,
		Generation:   s.gen,
	}
}

// Generation returns the listing's current filter generation
func (s *Service) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// ReplaceItem swaps the accumulated item with the given ID for an updated
// copy (after a favorite toggle), preserving list order.
func (s *Service) ReplaceItem(updated domain.ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.GetID() == updated.GetID() {
			s.items[i] = updated
			return
		}
	}
}
