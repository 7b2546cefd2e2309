// Package search provides fuzzy matching over already-fetched content for
// the quick-filter overlay. It is layered after the listing pipeline and
// never changes what the listing itself fetches or shows.
package search

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rsilveira/licoes/internal/domain"
)

// Service ranks accumulated items against a free-text query
type Service struct {
	logger *slog.Logger

	mu    sync.RWMutex
	byID  map[string]domain.ContentItem // indexed items, keyed by item ID
	order []string                      // item IDs in indexing order
}

// NewService creates a search service
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger,
		byID:   make(map[string]domain.ContentItem),
	}
}

// Index adds items to the search index, deduplicating by item ID.
// Same-titled items stay distinct.
func (s *Service) Index(items []domain.ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, item := range items {
		id := item.GetID()
		if _, ok := s.byID[id]; ok {
			continue
		}
		s.byID[id] = item
		s.order = append(s.order, id)
		added++
	}

	s.logger.Debug("indexed items", "added", added, "total", len(s.byID))
}

// Clear removes all items from the index (filter generation change)
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[string]domain.ContentItem)
	s.order = nil
}

// Search returns indexed items fuzzy-ranked against the query, best first
func (s *Service) Search(query string) []domain.ContentItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := make([]string, len(s.order))
	for i, id := range s.order {
		titles[i] = s.byID[id].GetTitle()
	}

	matches := fuzzy.RankFindFold(query, titles)

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	results := make([]domain.ContentItem, 0, len(matches))
	for _, match := range matches {
		results = append(results, s.byID[s.order[match.OriginalIndex]])
	}

	return results
}

// Count returns the number of indexed items
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
