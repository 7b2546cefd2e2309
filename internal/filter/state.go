// Package filter holds the user-editable listing filters: search text,
// category, premium-only and favorites-only. Consumer-facing setters apply
// synchronously; a debounced view of the state is what drives queries and
// the mirrored query string.
package filter

import "github.com/rsilveira/licoes/internal/domain"

// State is the current filter selection. The zero value means
// "all items, newest first".
type State struct {
	Search        string
	Category      domain.Category // "" = all categories
	PremiumOnly   bool
	FavoritesOnly bool
}

// Normalized returns the state with the search term trimmed the way
// queries consume it. FavoritesOnly without an identity is meaningless;
// the refinement layer handles that case (empty result), not the state.
func (s State) Normalized() State {
	s.Search = trimTerm(s.Search)
	return s
}

// IsZero reports whether no filter is active
func (s State) IsZero() bool {
	return s == State{}
}
