package tui

import (
	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/favorites"
	"github.com/rsilveira/licoes/internal/filter"
)

// filterResolvedMsg carries a debounced filter change into the event loop.
// kind identifies the store that emitted it; events from a store the user
// has switched away from are dropped.
type filterResolvedMsg struct {
	kind  domain.Kind
	event filter.Event
}

// pageFetchedMsg signals a page fetch settled for the given generation.
// err is the fetch error, if any; the listing snapshot carries the rest.
type pageFetchedMsg struct {
	generation uint64
	err        error
}

// totalRefreshedMsg signals the matching-total count settled
type totalRefreshedMsg struct {
	generation uint64
	err        error
}

// favoriteSettledMsg carries the outcome of an optimistic favorite toggle
type favoriteSettledMsg struct {
	itemID string
	result favorites.Result
}

// spinnerTickMsg advances the loading spinner
type spinnerTickMsg struct{}
