package listing

import (
	"context"
	"testing"
	"time"

	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/favorites"
	"github.com/rsilveira/licoes/internal/filter"
	"github.com/rsilveira/licoes/internal/refine"
	"github.com/stretchr/testify/require"
)

// Exercises the whole listing path the way the UI drives it: fetch,
// refine, then an optimistic favorite toggle settled against the backend.
func TestListingPipelineEndToEnd(t *testing.T) {
	licao1 := &domain.Lesson{
		ID:        "licao1",
		Title:     "Lição 1",
		Category:  domain.CategoryKids,
		CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	licao2 := &domain.Lesson{
		ID:          "licao2",
		Title:       "Lição Premium",
		Category:    domain.CategoryJuniores,
		Premium:     true,
		FavoritedBy: []string{"user123"},
		CreatedAt:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	repo := &fakeRepo{pages: map[domain.Cursor]domain.Page{
		"": {Items: []domain.ContentItem{licao1, licao2}, Cursor: ""},
	}}

	svc := NewService(repo, domain.KindLessons, 6, nil)
	svc.Apply(filter.State{}, 1)
	require.NoError(t, svc.FetchNext(context.Background()))

	snap := svc.Snapshot()
	require.Len(t, snap.Items, 2)
	require.False(t, snap.HasMore)

	// Typing "premium" narrows client-side: substring match on the title,
	// no new backend query needed for the already-fetched set
	visible := refine.Refine(snap.Items, filter.State{Search: "premium"}, "user123")
	require.Len(t, visible, 1)
	require.Equal(t, "licao2", visible[0].GetID())

	// Toggle the favorite off as user123: the displayed membership and
	// count change before the backend answers
	target := visible[0]
	require.Equal(t, 1, domain.FavoriteCount(target))

	pending := favorites.Begin(target, "user123")
	require.False(t, pending.Adding)

	svc.ReplaceItem(domain.WithFavoritedBy(target, pending.View))
	require.Zero(t, domain.FavoriteCount(svc.Snapshot().Items[1]))

	// Settling issues exactly one remove call
	favSvc := favorites.NewService(repo, nil)
	res := favSvc.Commit(context.Background(), pending)

	require.Equal(t, favorites.StateCommitted, res.State)
	require.Equal(t, []string{"licao2"}, repo.removes)
	require.Empty(t, repo.adds)

	// The favorites-only view no longer includes the item
	after := refine.Refine(svc.Snapshot().Items, filter.State{FavoritesOnly: true}, "user123")
	require.Empty(t, after)
}

// A failed settle restores the pre-toggle membership
func TestListingPipelineFavoriteRollback(t *testing.T) {
	licao2 := &domain.Lesson{
		ID:          "licao2",
		Title:       "Lição Premium",
		FavoritedBy: []string{"user123"},
	}

	repo := &fakeRepo{pages: map[domain.Cursor]domain.Page{
		"": {Items: []domain.ContentItem{licao2}, Cursor: ""},
	}}

	svc := NewService(repo, domain.KindLessons, 6, nil)
	svc.Apply(filter.State{}, 1)
	require.NoError(t, svc.FetchNext(context.Background()))

	item := svc.Snapshot().Items[0]
	pending := favorites.Begin(item, "user123")
	svc.ReplaceItem(domain.WithFavoritedBy(item, pending.View))
	require.Zero(t, domain.FavoriteCount(svc.Snapshot().Items[0]))

	repo.mu.Lock()
	repo.err = domain.ErrBackendUnreachable
	repo.mu.Unlock()

	favSvc := favorites.NewService(repo, nil)
	res := favSvc.Commit(context.Background(), pending)

	require.Equal(t, favorites.StateRolledBack, res.State)

	// Applying the rollback restores the original membership
	svc.ReplaceItem(domain.WithFavoritedBy(item, res.FavoritedBy))
	require.Equal(t, []string{"user123"}, svc.Snapshot().Items[0].GetFavoritedBy())
}
