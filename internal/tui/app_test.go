package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/favorites"
	"github.com/rsilveira/licoes/internal/filter"
	"github.com/rsilveira/licoes/internal/listing"
	"github.com/rsilveira/licoes/internal/scroll"
	"github.com/rsilveira/licoes/internal/search"
	"github.com/rsilveira/licoes/internal/seen"
	"github.com/stretchr/testify/require"
)

// fakeRepo serves one fixed page per kind
type fakeRepo struct {
	pages map[domain.Kind]domain.Page

	mu      sync.Mutex
	queries int
	blockCh chan struct{} // when set, RunQuery waits on it before answering
}

func (f *fakeRepo) RunQuery(ctx context.Context, kind domain.Kind, constraints []domain.Constraint, startAfter domain.Cursor, limit int) (domain.Page, error) {
	f.mu.Lock()
	f.queries++
	block := f.blockCh
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.pages[kind], nil
}

func (f *fakeRepo) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries
}

func (f *fakeRepo) GetDocument(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) {
	return nil, domain.ErrItemNotFound
}

func (f *fakeRepo) AddFavorite(ctx context.Context, kind domain.Kind, id, uid string) error {
	return nil
}

func (f *fakeRepo) RemoveFavorite(ctx context.Context, kind domain.Kind, id, uid string) error {
	return nil
}

func (f *fakeRepo) Count(ctx context.Context, kind domain.Kind, constraints []domain.Constraint) (int, error) {
	return len(f.pages[kind].Items), nil
}

func testModel(t *testing.T, repo *fakeRepo, user *domain.User) *Model {
	t.Helper()

	svcByKind := make(map[domain.Kind]Services)
	for _, kind := range []domain.Kind{domain.KindLessons, domain.KindActivities} {
		svcByKind[kind] = Services{
			Filters:   filter.NewStore(kind, nil, time.Millisecond, nil),
			Listing:   listing.NewService(repo, kind, 6, nil),
			Favorites: favorites.NewService(repo, nil),
			Search:    search.NewService(nil),
			Seen:      seen.NewTracker(nil, nil),
		}
	}

	m := NewModel(svcByKind, user, domain.KindLessons, true, nil)
	t.Cleanup(m.closeFilters)
	return m
}

// resolveAndFetch walks the model through one filter resolution and the
// page fetch it triggers, synchronously
func resolveAndFetch(t *testing.T, m *Model) {
	t.Helper()

	ev := filter.Event{}
	select {
	case ev = <-m.svc.Filters.Events():
	case <-time.After(time.Second):
		t.Fatal("no filter event")
	}

	_, cmd := m.Update(filterResolvedMsg{kind: m.kind, event: ev})
	require.NotNil(t, cmd)

	require.NoError(t, m.svc.Listing.FetchNext(context.Background()))
	m.Update(pageFetchedMsg{generation: ev.Generation})
}

func fixedPage(ids ...string) domain.Page {
	items := make([]domain.ContentItem, len(ids))
	for i, id := range ids {
		items[i] = &domain.Lesson{ID: id, Title: "Lição " + id, Category: domain.CategoryKids}
	}
	return domain.Page{Items: items}
}

func TestModelRendersFetchedPage(t *testing.T) {
	repo := &fakeRepo{pages: map[domain.Kind]domain.Page{
		domain.KindLessons: fixedPage("a", "b"),
	}}
	m := testModel(t, repo, nil)
	m.svc.Filters.Seed()

	resolveAndFetch(t, m)

	require.Len(t, m.items, 2)
	require.Contains(t, m.View(), "Lição a")
}

func TestModelDropsStalePageMessage(t *testing.T) {
	repo := &fakeRepo{pages: map[domain.Kind]domain.Page{
		domain.KindLessons: fixedPage("a"),
	}}
	m := testModel(t, repo, nil)
	m.svc.Filters.Seed()
	resolveAndFetch(t, m)

	// A settle from a generation the listing has moved past changes nothing
	before := len(m.items)
	m.svc.Listing.Apply(filter.State{Search: "x"}, 99)
	m.Update(pageFetchedMsg{generation: 1})

	require.Equal(t, before, len(m.items))
}

func TestModelDropsFilterEventFromOtherKind(t *testing.T) {
	repo := &fakeRepo{pages: map[domain.Kind]domain.Page{
		domain.KindLessons: fixedPage("a"),
	}}
	m := testModel(t, repo, nil)
	m.svc.Filters.Seed()
	resolveAndFetch(t, m)

	_, cmd := m.Update(filterResolvedMsg{
		kind:  domain.KindActivities,
		event: filter.Event{Generation: 50},
	})

	require.Nil(t, cmd)
	require.Len(t, m.items, 1)
}

func TestModelSwitchKind(t *testing.T) {
	repo := &fakeRepo{pages: map[domain.Kind]domain.Page{
		domain.KindLessons:    fixedPage("a"),
		domain.KindActivities: {Items: []domain.ContentItem{&domain.Activity{ID: "d1", Title: "Arca"}}},
	}}
	m := testModel(t, repo, nil)
	m.svc.Filters.Seed()
	resolveAndFetch(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	require.Equal(t, domain.KindActivities, m.kind)
	require.Empty(t, m.items)

	resolveAndFetch(t, m)
	require.Len(t, m.items, 1)
	require.Equal(t, "d1", m.items[0].GetID())
}

func TestModelOpensDetailAndMarksSeen(t *testing.T) {
	repo := &fakeRepo{pages: map[domain.Kind]domain.Page{
		domain.KindLessons: fixedPage("a"),
	}}
	user := &domain.User{UID: "u1"}
	m := testModel(t, repo, user)
	m.svc.Filters.Seed()
	resolveAndFetch(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, StateDetail, m.state)
	require.True(t, m.svc.Seen.IsSeen("u1", domain.KindLessons, "a"))
}

func TestModelPremiumGateRendersLock(t *testing.T) {
	repo := &fakeRepo{pages: map[domain.Kind]domain.Page{
		domain.KindLessons: {Items: []domain.ContentItem{
			&domain.Lesson{ID: "p", Title: "Lição Premium", Premium: true, Story: "conteúdo secreto"},
		}},
	}}
	m := testModel(t, repo, &domain.User{UID: "u1", Claims: domain.Claims{Status: "free"}})
	m.svc.Filters.Seed()
	resolveAndFetch(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	require.Contains(t, view, "assinantes")
	require.NotContains(t, view, "conteúdo secreto")
}

func TestModelFavoriteRollbackShowsNotice(t *testing.T) {
	repo := &fakeRepo{pages: map[domain.Kind]domain.Page{
		domain.KindLessons: fixedPage("a"),
	}}
	m := testModel(t, repo, &domain.User{UID: "u1"})
	m.svc.Filters.Seed()
	resolveAndFetch(t, m)

	m.Update(favoriteSettledMsg{
		itemID: "a",
		result: favorites.Result{
			State:       favorites.StateRolledBack,
			FavoritedBy: nil,
			Err:         domain.ErrBackendUnreachable,
		},
	})

	require.NotEmpty(t, m.notice)
}

func TestModelRecoversWhenFilterChangeSupersedesInFlightFetch(t *testing.T) {
	repo := &fakeRepo{
		pages:   map[domain.Kind]domain.Page{domain.KindLessons: fixedPage("a", "b")},
		blockCh: make(chan struct{}),
	}
	m := testModel(t, repo, nil)
	m.svc.Filters.Seed()

	ev := filter.Event{}
	select {
	case ev = <-m.svc.Filters.Events():
	case <-time.After(time.Second):
		t.Fatal("no filter event")
	}
	m.Update(filterResolvedMsg{kind: m.kind, event: ev})

	// The first page request hangs on the backend
	done := make(chan error, 1)
	go func() { done <- m.svc.Listing.FetchNext(context.Background()) }()
	require.Eventually(t, func() bool { return repo.queryCount() == 1 }, time.Second, time.Millisecond)

	// The user edits filters while that request is in flight
	next := filter.Event{State: filter.State{Search: "davi"}, Generation: ev.Generation + 1}
	m.Update(filterResolvedMsg{kind: m.kind, event: next})

	// The new generation's page request loses to the in-flight guard;
	// the model waits instead of dropping it on the floor
	err := m.svc.Listing.FetchNext(context.Background())
	require.ErrorIs(t, err, listing.ErrFetchInFlight)
	_, cmd := m.Update(pageFetchedMsg{generation: next.Generation, err: err})
	require.Nil(t, cmd)
	require.Equal(t, 1, repo.queryCount())

	// The superseded fetch settles; its stale message re-issues the new
	// generation's first page now that the guard is free
	close(repo.blockCh)
	require.NoError(t, <-done)
	_, cmd = m.Update(pageFetchedMsg{generation: ev.Generation})
	require.NotNil(t, cmd)

	msg, ok := cmd().(pageFetchedMsg)
	require.True(t, ok)
	require.Equal(t, next.Generation, msg.generation)
	require.NoError(t, msg.err)

	m.Update(msg)
	require.Equal(t, 2, repo.queryCount())
	require.Len(t, m.items, 2)
	require.False(t, m.snapshot.Loading)
}

func TestModelScrollTriggerRequestsNextPage(t *testing.T) {
	repo := &fakeRepo{pages: map[domain.Kind]domain.Page{
		domain.KindLessons: {Items: fixedPage("a", "b", "c", "d", "e", "f").Items, Cursor: "f"},
	}}
	m := testModel(t, repo, nil)
	m.svc.Filters.Seed()
	resolveAndFetch(t, m)
	require.True(t, m.snapshot.HasMore)
	require.Equal(t, scroll.PhaseObserving, m.trigger.Phase())

	// Move the cursor into the threshold zone; the trigger fires once
	for range 4 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	require.Equal(t, scroll.PhaseFetching, m.trigger.Phase())
}
