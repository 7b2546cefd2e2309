package query

import (
	"testing"

	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/filter"
	"github.com/stretchr/testify/require"
)

func TestBuildEmptyState(t *testing.T) {
	constraints := Build(filter.State{})

	require.Len(t, constraints, 1)
	require.Equal(t, domain.OpOrderBy, constraints[0].Op)
	require.Equal(t, FieldCreatedAt, constraints[0].Field)
	require.Equal(t, domain.SortDesc, constraints[0].Direction)
}

func TestBuildCategoryAndPremium(t *testing.T) {
	constraints := Build(filter.State{
		Category:    domain.CategoryKids,
		PremiumOnly: true,
	})

	require.Len(t, constraints, 3)

	require.Equal(t, domain.OpEquals, constraints[0].Op)
	require.Equal(t, FieldCategory, constraints[0].Field)
	require.Equal(t, "Kids", constraints[0].Value)

	require.Equal(t, domain.OpEquals, constraints[1].Op)
	require.Equal(t, FieldPremium, constraints[1].Field)
	require.Equal(t, true, constraints[1].Value)

	// No range constraints without a search term
	require.Equal(t, domain.OpOrderBy, constraints[2].Op)
}

func TestBuildSearchTermProducesPrefixRange(t *testing.T) {
	constraints := Build(filter.State{Search: "Davi"})

	require.Len(t, constraints, 3)

	require.Equal(t, domain.OpRangeStart, constraints[0].Op)
	require.Equal(t, FieldTitle, constraints[0].Field)
	require.Equal(t, "Davi", constraints[0].Value)

	require.Equal(t, domain.OpRangeEnd, constraints[1].Op)
	require.Equal(t, FieldTitle, constraints[1].Field)
	require.Equal(t, "Davi"+prefixSentinel, constraints[1].Value)

	require.Equal(t, domain.OpOrderBy, constraints[2].Op)
}

func TestBuildSearchTermTrimmed(t *testing.T) {
	constraints := Build(filter.State{Search: "  Davi  "})

	require.Equal(t, "Davi", constraints[0].Value)
}

func TestBuildBlankSearchIgnored(t *testing.T) {
	constraints := Build(filter.State{Search: "   "})

	require.Len(t, constraints, 1)
	require.Equal(t, domain.OpOrderBy, constraints[0].Op)
}

func TestBuildOrderByAlwaysLast(t *testing.T) {
	states := []filter.State{
		{},
		{Search: "abc"},
		{Category: domain.CategoryJovens},
		{Category: domain.CategoryKids, PremiumOnly: true, Search: "Davi"},
	}

	for _, st := range states {
		constraints := Build(st)
		last := constraints[len(constraints)-1]
		require.Equal(t, domain.OpOrderBy, last.Op)
		for _, c := range constraints[:len(constraints)-1] {
			require.NotEqual(t, domain.OpOrderBy, c.Op)
		}
	}
}

func TestBuildFavoritesOnlyHasNoBackendConstraint(t *testing.T) {
	// Favorites narrowing is client-side only; the built constraints for a
	// favorites-only state are identical to the unfiltered ones.
	withFav := Build(filter.State{FavoritesOnly: true})
	without := Build(filter.State{})

	require.Equal(t, without, withFav)
}

func TestBuildCountDropsOrdering(t *testing.T) {
	constraints := BuildCount(filter.State{Category: domain.CategoryKids})

	require.Len(t, constraints, 1)
	require.Equal(t, domain.OpEquals, constraints[0].Op)
	for _, c := range constraints {
		require.NotEqual(t, domain.OpOrderBy, c.Op)
	}
}
