package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/favorites"
	"github.com/rsilveira/licoes/internal/filter"
	"github.com/rsilveira/licoes/internal/listing"
)

const fetchTimeout = 30 * time.Second

// waitForFilter blocks on the filter store's event channel and re-enters
// the loop with the resolved state
func waitForFilter(kind domain.Kind, events <-chan filter.Event) tea.Cmd {
	return func() tea.Msg {
		return filterResolvedMsg{kind: kind, event: <-events}
	}
}

// fetchNextPage fetches the next page for the listing's current generation
func fetchNextPage(svc *listing.Service, generation uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := svc.FetchNext(ctx)
		return pageFetchedMsg{generation: generation, err: err}
	}
}

// refreshTotal re-counts the documents matching the current filters
func refreshTotal(svc *listing.Service, generation uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := svc.RefreshTotal(ctx)
		return totalRefreshedMsg{generation: generation, err: err}
	}
}

// commitFavorite settles a pending optimistic favorite toggle
func commitFavorite(svc *favorites.Service, pending favorites.Pending) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return favoriteSettledMsg{
			itemID: pending.ItemID,
			result: svc.Commit(ctx, pending),
		}
	}
}

// spinnerTick drives the loading spinner animation
func spinnerTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}
