package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rsilveira/licoes/internal/domain"
	"github.com/rsilveira/licoes/internal/tui/styles"
)

// View renders the current application state
func (m *Model) View() string {
	switch m.state {
	case StateDetail:
		return m.viewDetail()
	case StateGlobalSearch:
		return m.viewGlobalSearch()
	default:
		return m.viewBrowse()
	}
}

// === Browse view ===

func (m *Model) viewBrowse() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewFilterBar())
	b.WriteString("\n\n")

	if m.quickActive {
		b.WriteString(m.quickInput.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewList())

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.notice))
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewHeader() string {
	title := styles.AccentStyle.Bold(true).Render(kindLabel(m.kind))

	who := "visitante"
	if m.user != nil {
		who = m.user.Name
		if m.user.Claims.Premium() {
			who += " " + styles.FavoriteStyle.Render("premium")
		}
	}

	counts := m.viewCounts()
	return fmt.Sprintf("%s  %s  %s", title, styles.DimStyle.Render(who), counts)
}

// viewCounts renders "N de M" when the backend total is known
func (m *Model) viewCounts() string {
	shown := len(m.visible())
	if m.snapshot.Total > 0 {
		return styles.SubtitleStyle.Render(fmt.Sprintf("%d de %d", shown, m.snapshot.Total))
	}
	return styles.SubtitleStyle.Render(fmt.Sprintf("%d", shown))
}

func (m *Model) viewFilterBar() string {
	if m.searching {
		return m.searchInput.View()
	}

	state := m.svc.Filters.Current()
	parts := make([]string, 0, 4)

	if state.Search != "" {
		parts = append(parts, styles.FilterStyle.Render("busca: "+state.Search))
	}
	if state.Category != "" {
		parts = append(parts, styles.CategoryStyle(state.Category).Render(string(state.Category)))
	} else {
		parts = append(parts, styles.DimStyle.Render("Todas"))
	}
	if state.PremiumOnly {
		parts = append(parts, styles.FavoriteStyle.Render("premium"))
	}
	if state.FavoritesOnly {
		parts = append(parts, styles.FavoriteStyle.Render(styles.GlyphFavorite+" favoritos"))
	}

	return strings.Join(parts, styles.DimStyle.Render(" | "))
}

func (m *Model) viewList() string {
	if m.snapshot.Loading && len(m.items) == 0 {
		return m.viewSpinner("Carregando...")
	}

	if m.snapshot.Err != nil && len(m.items) == 0 {
		return m.viewError(m.snapshot.Err)
	}

	visible := m.visible()
	if len(visible) == 0 {
		return styles.DimStyle.Render("Nenhum item encontrado.")
	}

	var b strings.Builder
	for i, item := range visible {
		b.WriteString(m.viewRow(item, i == m.cursor))
		b.WriteString("\n")
	}

	switch {
	case m.snapshot.FetchingMore:
		b.WriteString(m.viewSpinner("Carregando mais..."))
	case m.snapshot.Err != nil:
		b.WriteString(m.viewError(m.snapshot.Err))
	case !m.snapshot.HasMore:
		b.WriteString(styles.DimStyle.Render("Fim da lista."))
	}

	return b.String()
}

func (m *Model) viewRow(item domain.ContentItem, selected bool) string {
	var badges []string

	if m.showSeen && m.svc.Seen.IsSeen(m.uid(), m.kind, item.GetID()) {
		badges = append(badges, styles.SeenStyle.Render(styles.GlyphSeen))
	} else {
		badges = append(badges, " ")
	}

	if domain.IsFavoritedBy(item, m.uid()) {
		badges = append(badges, styles.FavoriteStyle.Render(styles.GlyphFavorite))
	} else {
		badges = append(badges, styles.DimStyle.Render(styles.GlyphUnstar))
	}

	title := item.GetTitle()
	if selected {
		title = styles.SelectedStyle.Render(title)
	} else {
		title = styles.TitleStyle.Render(title)
	}

	var suffix []string
	suffix = append(suffix, styles.CategoryStyle(item.GetCategory()).Render(string(item.GetCategory())))
	if item.IsPremium() {
		suffix = append(suffix, styles.LockStyle.Render(styles.GlyphLock))
	}
	if item.IsNew() {
		suffix = append(suffix, styles.SuccessStyle.Render(styles.GlyphNew))
	}
	if count := domain.FavoriteCount(item); count > 0 {
		suffix = append(suffix, styles.DimStyle.Render(fmt.Sprintf("%s %d", styles.GlyphFavorite, count)))
	}

	return fmt.Sprintf("%s %s  %s", strings.Join(badges, ""), title, strings.Join(suffix, " "))
}

func (m *Model) viewSpinner(label string) string {
	frame := styles.SpinnerFrames[m.spinnerFrame%len(styles.SpinnerFrames)]
	return styles.AccentStyle.Render(frame) + " " + styles.DimStyle.Render(label)
}

func (m *Model) viewError(err error) string {
	msg := "Não foi possível carregar o conteúdo."
	if errors.Is(err, domain.ErrBackendUnreachable) {
		msg = "Sem conexão com o servidor."
	}
	return styles.ErrorStyle.Render(msg) + " " + styles.DimStyle.Render("(r para tentar novamente)")
}

func (m *Model) viewFooter() string {
	help := "/ buscar  tab categoria  p premium  f favoritos  s favoritar  a lições/atividades  g busca global  C-l limpar  q sair"
	return styles.DimStyle.Render(help)
}

// === Detail view ===

func (m *Model) viewDetail() string {
	item := m.detail
	if item == nil {
		return ""
	}

	var b strings.Builder

	header := styles.TitleStyle.Render(item.GetTitle())
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(styles.CategoryStyle(item.GetCategory()).Render(string(item.GetCategory())))
	if item.IsPremium() {
		b.WriteString("  " + styles.LockStyle.Render(styles.GlyphLock+" premium"))
	}
	b.WriteString("\n\n")

	if !m.user.CanView(item) {
		// Gated, not failed: the item stays listed, its body is locked
		b.WriteString(styles.LockStyle.Render("Conteúdo exclusivo para assinantes."))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("Assine o plano premium para acessar."))
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render("esc voltar"))
		return b.String()
	}

	b.WriteString(m.viewBody(item))

	if pdf := item.GetPDFURL(); pdf != "" {
		b.WriteString("\n")
		b.WriteString(styles.AccentStyle.Render("PDF: ") + styles.SubtitleStyle.Render(pdf))
	}

	if len(item.GetTags()) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("tags: " + strings.Join(item.GetTags(), ", ")))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("s favoritar  esc voltar"))
	return b.String()
}

// viewBody renders the kind-specific sections of the item
func (m *Model) viewBody(item domain.ContentItem) string {
	var b strings.Builder

	section := func(label, text string) {
		if text == "" {
			return
		}
		b.WriteString(styles.AccentStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(wrap(text, m.width))
		b.WriteString("\n\n")
	}

	switch v := item.(type) {
	case *domain.Lesson:
		section("História", v.Story)
		section("Aplicação", v.Application)
		section("Dinâmica", v.Dynamic)
		section("Atividade", v.Activity)
		section("Oração", v.Prayer)
		if v.DrawingURL != "" {
			b.WriteString(styles.AccentStyle.Render("Desenho: "))
			b.WriteString(styles.SubtitleStyle.Render(v.DrawingURL))
			b.WriteString("\n")
		}
	case *domain.Activity:
		if v.ImageURL != "" {
			b.WriteString(styles.AccentStyle.Render("Imagem: "))
			b.WriteString(styles.SubtitleStyle.Render(v.ImageURL))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// === Global search view ===

func (m *Model) viewGlobalSearch() string {
	var b strings.Builder

	b.WriteString(styles.AccentStyle.Bold(true).Render("Busca global"))
	b.WriteString("  ")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d indexados", m.svc.Search.Count())))
	b.WriteString("\n\n")
	b.WriteString(m.globalInput.View())
	b.WriteString("\n\n")

	if m.globalInput.Value() == "" {
		b.WriteString(styles.DimStyle.Render("Digite para buscar nos itens carregados."))
	} else if len(m.globalResults) == 0 {
		b.WriteString(styles.DimStyle.Render("Nenhum resultado."))
	} else {
		for _, item := range m.globalResults {
			b.WriteString(m.viewRow(item, false))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("esc voltar"))
	return b.String()
}

// === Helpers ===

func kindLabel(kind domain.Kind) string {
	if kind == domain.KindActivities {
		return "Atividades"
	}
	return "Lições"
}

// wrap soft-wraps text to the terminal width
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(min(width, 100)).Render(text)
}
