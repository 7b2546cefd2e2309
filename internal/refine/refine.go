// Package refine applies the filters the backend query cannot express:
// substring matching across title and tags, and favorites-only restricted
// to the current user. It runs on top of already-fetched pages, after the
// backend constraints, never instead of them.
package refine

import (
	"strings"

	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/filter"
)

// Refine narrows items to those matching the filter state for the given
// user. Pure: same inputs produce the same output, no side effects.
//
// Steps, in order:
//  1. favorites-only requires uid to be a member of the item's favoritedBy
//     set; with no identity (uid == "") this yields an empty result.
//  2. the search term is matched case-insensitively as a substring against
//     the title OR any tag. Note the backend prefix constraint has already
//     bounded the fetched set by title prefix, so a mid-word title match
//     can only surface here for items that passed that constraint; tag
//     matches surface only here.
func Refine(items []domain.ContentItem, state filter.State, uid string) []domain.ContentItem {
	state = state.Normalized()
	term := strings.ToLower(state.Search)

	out := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if state.FavoritesOnly && !domain.IsFavoritedBy(item, uid) {
			continue
		}
		if term != "" && !matchesTerm(item, term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// matchesTerm reports whether the lowercased term is a substring of the
// item's title or any of its tags
func matchesTerm(item domain.ContentItem, term string) bool {
	if strings.Contains(strings.ToLower(item.GetTitle()), term) {
		return true
	}
	for _, tag := range item.GetTags() {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
