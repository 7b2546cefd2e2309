package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rsilveira/licoes/internal/domain"
)

// Color palette
var (
	Gold      = lipgloss.Color("#E5A00D")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
)

// Category colors match the web client's palette
var categoryColors = map[domain.Category]lipgloss.Color{
	domain.CategoryKids:          lipgloss.Color("#8ce205"),
	domain.CategoryJuniores:      lipgloss.Color("#72008c"),
	domain.CategoryAdolescentes:  lipgloss.Color("#f20384"),
	domain.CategoryJovens:        lipgloss.Color("#1da2c3"),
	domain.CategoryDatasFestivas: lipgloss.Color("#01b58e"),
	domain.CategoryOutrosTemas:   lipgloss.Color("#ffd400"),
	domain.CategoryPrintable:     lipgloss.Color("#f76400"),
	domain.CategoryColoring:      lipgloss.Color("#ee1e2e"),
}

// CategoryStyle returns the badge style for a category
func CategoryStyle(cat domain.Category) lipgloss.Style {
	color, ok := categoryColors[cat]
	if !ok {
		color = DimGray
	}
	return lipgloss.NewStyle().Foreground(color)
}

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Gold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Gold).
			Padding(0, 1)

	SeenStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	FavoriteStyle = lipgloss.NewStyle().
			Foreground(Gold)

	LockStyle = lipgloss.NewStyle().
			Foreground(Red)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Gold)

	FilterStyle = lipgloss.NewStyle().
			Foreground(White)
)

// Spinner frames for loading animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Badge glyphs
const (
	GlyphSeen     = "•" // already viewed
	GlyphFavorite = "★"
	GlyphUnstar   = "☆"
	GlyphLock     = "🔒"
	GlyphNew      = "NOVA"
)
