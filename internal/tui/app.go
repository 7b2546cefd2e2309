// Package tui renders the content browser. It consumes the listing
// pipeline and carries no business logic of its own.
package tui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/favorites"
	"github.com/rsilveira/licoes/internal/filter"
	"github.com/rsilveira/licoes/internal/listing"
	"github.com/rsilveira/licoes/internal/refine"
	"github.com/rsilveira/licoes/internal/scroll"
	"github.com/rsilveira/licoes/internal/search"
	"github.com/rsilveira/licoes/internal/seen"
	"github.com/rsilveira/licoes/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// ApplicationState represents the current view of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateDetail
	StateGlobalSearch
)

// Services bundles the injected pipeline services
type Services struct {
	Filters   *filter.Store
	Listing   *listing.Service
	Favorites *favorites.Service
	Search    *search.Service
	Seen      *seen.Tracker
}

// Model is the root Bubble Tea model
type Model struct {
	svcByKind map[domain.Kind]Services
	svc       Services
	user      *domain.User
	kind      domain.Kind
	keys      KeyMap
	logger    *slog.Logger
	showSeen  bool

	state   ApplicationState
	width   int
	height  int

	// Listing view
	items    []domain.ContentItem // refined view of the accumulated pages
	cursor   int
	trigger  *scroll.Trigger
	snapshot listing.Snapshot

	// Filter bar
	searchInput textinput.Model
	searching   bool // search input focused

	// Quick filter (narrows the visible list, fuzzy)
	quickInput  textinput.Model
	quickActive bool
	quickIdx    []int // indices into items

	// Global search
	globalInput   textinput.Model
	globalResults []domain.ContentItem

	// Detail view
	detail domain.ContentItem

	// Transient state
	notice       string
	spinnerFrame int
}

// NewModel creates the root model. svcByKind must hold a service set for
// every kind the user can switch to.
func NewModel(svcByKind map[domain.Kind]Services, user *domain.User, kind domain.Kind, showSeen bool, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "buscar..."
	searchInput.Prompt = "/ "
	searchInput.PromptStyle = styles.FilterPromptStyle
	searchInput.TextStyle = styles.FilterStyle

	quickInput := textinput.New()
	quickInput.Placeholder = "filtrar lista..."
	quickInput.Prompt = "~ "
	quickInput.PromptStyle = styles.FilterPromptStyle

	globalInput := textinput.New()
	globalInput.Placeholder = "busca global..."
	globalInput.Prompt = "? "
	globalInput.PromptStyle = styles.FilterPromptStyle

	return &Model{
		svcByKind:   svcByKind,
		svc:         svcByKind[kind],
		user:        user,
		kind:        kind,
		keys:        DefaultKeyMap(),
		logger:      logger,
		showSeen:    showSeen,
		trigger:     scroll.NewTrigger(0),
		searchInput: searchInput,
		quickInput:  quickInput,
		globalInput: globalInput,
	}
}

// Init seeds the filter state and starts listening for resolved changes
func (m *Model) Init() tea.Cmd {
	m.svc.Filters.Seed()
	return tea.Batch(waitForFilter(m.kind, m.svc.Filters.Events()), spinnerTick())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case filterResolvedMsg:
		return m.onFilterResolved(msg)

	case pageFetchedMsg:
		return m.onPageFetched(msg)

	case totalRefreshedMsg:
		m.snapshot = m.svc.Listing.Snapshot()
		return m, nil

	case favoriteSettledMsg:
		return m.onFavoriteSettled(msg)

	case spinnerTickMsg:
		m.spinnerFrame++
		return m, spinnerTick()

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

// onFilterResolved starts a new listing generation for the debounced state
func (m *Model) onFilterResolved(msg filterResolvedMsg) (tea.Model, tea.Cmd) {
	// Event from a store the user has switched away from
	if msg.kind != m.kind {
		return m, nil
	}
	ev := msg.event

	// The old list is gone; the trigger must not fire into it.
	m.trigger.Disconnect()

	m.svc.Listing.Apply(ev.State, ev.Generation)
	m.svc.Search.Clear()
	m.items = nil
	m.cursor = 0
	m.snapshot = m.svc.Listing.Snapshot()

	m.trigger.Observe(true)
	m.trigger.ShouldFetch(0, 1, true) // arm the first fetch

	return m, tea.Batch(
		fetchNextPage(m.svc.Listing, ev.Generation),
		refreshTotal(m.svc.Listing, ev.Generation),
		waitForFilter(m.kind, m.svc.Filters.Events()),
	)
}

// onPageFetched folds a settled fetch into the rendered list
func (m *Model) onPageFetched(msg pageFetchedMsg) (tea.Model, tea.Cmd) {
	// The request lost to a fetch still running for a superseded
	// generation. That fetch holds the in-flight guard; when it settles
	// its stale message re-issues ours below.
	if errors.Is(msg.err, listing.ErrFetchInFlight) {
		return m, nil
	}

	// Stale response from a superseded filter generation. Its settle
	// released the in-flight guard, so the current generation can now run
	// the first-page request it may have lost to the guard.
	if msg.generation != m.svc.Listing.Generation() {
		return m, m.resumeCurrentPage()
	}

	m.snapshot = m.svc.Listing.Snapshot()
	m.trigger.Complete(m.snapshot.HasMore)

	if msg.err != nil {
		// keep whatever is already loaded; the error renders inline
		return m, nil
	}

	m.refreshItems()
	m.svc.Search.Index(m.snapshot.Items)
	return m, nil
}

// resumeCurrentPage re-issues the current generation's page fetch if it
// is still waiting on its first page with nothing in flight. If the
// generation's own fetch already started, FetchNext rejects the extra
// request and the in-flight branch above drops it.
func (m *Model) resumeCurrentPage() tea.Cmd {
	snap := m.svc.Listing.Snapshot()
	if len(snap.Items) > 0 || snap.FetchingMore || !snap.HasMore || snap.Err != nil {
		return nil
	}
	return fetchNextPage(m.svc.Listing, snap.Generation)
}

// refreshItems re-applies the client-side refinement over the snapshot
func (m *Model) refreshItems() {
	state, _ := m.svc.Filters.Resolved()
	m.items = refine.Refine(m.snapshot.Items, state, m.uid())
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
	if m.quickActive {
		m.applyQuickFilter()
	}
}

func (m *Model) uid() string {
	if m.user == nil {
		return ""
	}
	return m.user.UID
}

// onFavoriteSettled applies the committed or rolled-back favorite state
func (m *Model) onFavoriteSettled(msg favoriteSettledMsg) (tea.Model, tea.Cmd) {
	if updated := m.findItem(msg.itemID); updated != nil {
		settled := domain.WithFavoritedBy(updated, msg.result.FavoritedBy)
		m.svc.Listing.ReplaceItem(settled)
		if m.detail != nil && m.detail.GetID() == msg.itemID {
			m.detail = settled
		}
	}
	if msg.result.State == favorites.StateRolledBack {
		m.notice = "Não foi possível atualizar o favorito. Tente novamente."
	}

	m.snapshot = m.svc.Listing.Snapshot()
	m.refreshItems()
	return m, nil
}

// findItem locates an item in the current snapshot by ID
func (m *Model) findItem(id string) domain.ContentItem {
	for _, item := range m.snapshot.Items {
		if item.GetID() == id {
			return item
		}
	}
	return nil
}

// onKey routes key presses by application state
func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	if m.searching {
		return m.onSearchKey(msg)
	}
	if m.quickActive {
		return m.onQuickKey(msg)
	}

	switch m.state {
	case StateDetail:
		return m.onDetailKey(msg)
	case StateGlobalSearch:
		return m.onGlobalKey(msg)
	default:
		return m.onBrowseKey(msg)
	}
}

func (m *Model) onBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	switch {
	case key.Matches(msg, keys.Quit):
		m.closeFilters()
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, m.maybeFetchMore()

	case key.Matches(msg, keys.Enter):
		return m.openDetail()

	case key.Matches(msg, keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.svc.Filters.Current().Search)
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.QuickFilter):
		m.quickActive = true
		m.quickInput.SetValue("")
		m.quickInput.Focus()
		m.applyQuickFilter()
		return m, textinput.Blink

	case key.Matches(msg, keys.GlobalSearch):
		m.state = StateGlobalSearch
		m.globalInput.SetValue("")
		m.globalInput.Focus()
		m.globalResults = nil
		return m, textinput.Blink

	case key.Matches(msg, keys.Category):
		m.cycleCategory()
		return m, nil

	case key.Matches(msg, keys.Premium):
		m.svc.Filters.SetPremiumOnly(!m.svc.Filters.Current().PremiumOnly)
		return m, nil

	case key.Matches(msg, keys.Favorites):
		if m.user == nil {
			m.notice = "Entre para ver seus favoritos."
			return m, nil
		}
		m.svc.Filters.SetFavoritesOnly(!m.svc.Filters.Current().FavoritesOnly)
		return m, nil

	case key.Matches(msg, keys.ToggleStar):
		return m.toggleFavorite()

	case key.Matches(msg, keys.ClearFilters):
		m.svc.Filters.ClearAll()
		return m, nil

	case key.Matches(msg, keys.SwitchKind):
		return m.switchKind()

	case key.Matches(msg, keys.Retry):
		if m.snapshot.Err != nil {
			return m, fetchNextPage(m.svc.Listing, m.snapshot.Generation)
		}
		return m, nil
	}

	return m, nil
}

// switchKind flips between lessons and activities. Each kind owns its
// own filter store and listing accumulator; switching just repoints the
// model and replays the new kind's persisted filters.
func (m *Model) switchKind() (tea.Model, tea.Cmd) {
	next := domain.KindLessons
	if m.kind == domain.KindLessons {
		next = domain.KindActivities
	}

	m.kind = next
	m.svc = m.svcByKind[next]
	m.items = nil
	m.cursor = 0
	m.quickActive = false
	m.quickIdx = nil
	m.trigger.Disconnect()
	m.snapshot = m.svc.Listing.Snapshot()

	m.svc.Filters.Seed()
	return m, waitForFilter(m.kind, m.svc.Filters.Events())
}

// maybeFetchMore asks the scroll trigger whether the cursor position
// warrants the next page
func (m *Model) maybeFetchMore() tea.Cmd {
	if !m.trigger.ShouldFetch(m.cursor, len(m.visible()), m.snapshot.HasMore) {
		return nil
	}
	return fetchNextPage(m.svc.Listing, m.snapshot.Generation)
}

// cycleCategory advances the category filter through the kind's set
func (m *Model) cycleCategory() {
	cats := m.kind.Categories()
	current := m.svc.Filters.Current().Category

	next := domain.Category("")
	if current == "" {
		next = cats[0]
	} else {
		for i, c := range cats {
			if c == current && i+1 < len(cats) {
				next = cats[i+1]
				break
			}
		}
	}
	m.svc.Filters.SetCategory(next)
}

// openDetail opens the selected item and marks it seen
func (m *Model) openDetail() (tea.Model, tea.Cmd) {
	item := m.selected()
	if item == nil {
		return m, nil
	}

	m.detail = item
	m.state = StateDetail
	m.svc.Seen.MarkSeen(m.uid(), m.kind, item.GetID())
	return m, nil
}

// toggleFavorite applies the optimistic toggle and settles it async
func (m *Model) toggleFavorite() (tea.Model, tea.Cmd) {
	item := m.selected()
	if m.state == StateDetail {
		item = m.detail
	}
	if item == nil {
		return m, nil
	}
	if m.user == nil {
		m.notice = "Entre para favoritar."
		return m, nil
	}

	pending := favorites.Begin(item, m.uid())

	// Optimistic: the displayed set and count change immediately
	optimistic := domain.WithFavoritedBy(item, pending.View)
	m.svc.Listing.ReplaceItem(optimistic)
	if m.state == StateDetail {
		m.detail = optimistic
	}
	m.snapshot = m.svc.Listing.Snapshot()
	m.refreshItems()

	return m, commitFavorite(m.svc.Favorites, pending)
}

func (m *Model) onSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.Type == tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.svc.Filters.SetSearch(m.searchInput.Value())
	return m, cmd
}

func (m *Model) onQuickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.quickActive = false
		m.quickInput.Blur()
		m.quickIdx = nil
		m.cursor = 0
		return m, nil
	case msg.Type == tea.KeyEnter:
		// Keep the narrowed view, return focus to the list
		m.quickInput.Blur()
		m.quickActive = len(strings.TrimSpace(m.quickInput.Value())) > 0
		return m, nil
	}

	var cmd tea.Cmd
	m.quickInput, cmd = m.quickInput.Update(msg)
	m.applyQuickFilter()
	return m, cmd
}

func (m *Model) onGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.state = StateBrowsing
		m.globalInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.globalInput, cmd = m.globalInput.Update(msg)
	m.globalResults = m.svc.Search.Search(m.globalInput.Value())
	return m, cmd
}

func (m *Model) onDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Back):
		m.state = StateBrowsing
		m.detail = nil
		return m, nil
	case key.Matches(msg, m.keys.ToggleStar):
		return m.toggleFavorite()
	case key.Matches(msg, m.keys.Quit):
		m.closeFilters()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) closeFilters() {
	for _, svc := range m.svcByKind {
		svc.Filters.Close()
	}
}

// selected returns the item under the cursor, honoring the quick filter
func (m *Model) selected() domain.ContentItem {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return visible[m.cursor]
}

// visible returns the rendered item list (quick-filtered when active)
func (m *Model) visible() []domain.ContentItem {
	if !m.quickActive || strings.TrimSpace(m.quickInput.Value()) == "" {
		return m.items
	}
	out := make([]domain.ContentItem, 0, len(m.quickIdx))
	for _, idx := range m.quickIdx {
		if idx < len(m.items) {
			out = append(out, m.items[idx])
		}
	}
	return out
}

// applyQuickFilter narrows the rendered list by fuzzy-matching the
// quick-filter text against item titles. Operates on m.items, so it
// composes with the server-side filters and the refinement pass.
func (m *Model) applyQuickFilter() {
	query := strings.TrimSpace(m.quickInput.Value())
	if query == "" {
		m.quickIdx = nil
		m.cursor = 0
		return
	}

	titles := make([]string, len(m.items))
	for i, item := range m.items {
		titles[i] = item.GetTitle()
	}

	matches := fuzzy.Find(query, titles)
	m.quickIdx = make([]int, len(matches))
	for i, match := range matches {
		m.quickIdx[i] = match.Index
	}
	if m.cursor >= len(m.quickIdx) {
		m.cursor = 0
	}
}
