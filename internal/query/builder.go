// Package query translates a filter state into the ordered constraint
// sequence the backend query API consumes.
package query

import (
	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/filter"
)

// Backend document field names
const (
	FieldTitle     = "titulo"
	FieldCategory  = "categoria"
	FieldPremium   = "isPremium"
	FieldCreatedAt = "createdAt"
)

// prefixSentinel is the high code point appended to the search term to
// turn a pair of range constraints into a title prefix match.
const prefixSentinel = ""

// Build produces the constraint sequence for a filter state: equality on
// category and premium flag when selected, a title prefix range when a
// search term is present, and descending creation-time order last. The
// orderBy constraint must stay last for cursor pagination to remain valid.
//
// The prefix range matches titles only and only by prefix; the client-side
// refinement step independently applies the substring check over title and
// tags on top of what this returns. Both layers stay active in sequence.
//
// An empty state degenerates to "all items, newest first".
func Build(s filter.State) []domain.Constraint {
	s = s.Normalized()

	var constraints []domain.Constraint

	if s.Category != "" {
		constraints = append(constraints, domain.Equals(FieldCategory, string(s.Category)))
	}
	if s.PremiumOnly {
		constraints = append(constraints, domain.Equals(FieldPremium, true))
	}
	if s.Search != "" {
		constraints = append(constraints,
			domain.RangeStart(FieldTitle, s.Search),
			domain.RangeEnd(FieldTitle, s.Search+prefixSentinel),
		)
	}

	constraints = append(constraints, domain.OrderBy(FieldCreatedAt, domain.SortDesc))

	return constraints
}

// BuildCount produces the constraints for the matching-total query:
// the same filters without the ordering constraint.
func BuildCount(s filter.State) []domain.Constraint {
	built := Build(s)
	return built[:len(built)-1]
}
