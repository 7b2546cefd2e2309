package domain

import (
	"slices"
	"strings"
	"time"
)

// Kind distinguishes the two content collections
type Kind string

const (
	KindLessons    Kind = "licoes"
	KindActivities Kind = "atividades"
)

// Collection returns the backend collection name for this kind
func (k Kind) Collection() string { return string(k) }

// Categories returns the closed category set for this kind.
// Lesson and activity categories are disjoint.
func (k Kind) Categories() []Category {
	switch k {
	case KindActivities:
		return []Category{
			CategoryColoring,
			CategoryPrintable,
		}
	default:
		return []Category{
			CategoryKids,
			CategoryJuniores,
			CategoryAdolescentes,
			CategoryJovens,
			CategoryDatasFestivas,
			CategoryOutrosTemas,
		}
	}
}

// Category is a display-form category name as stored in the backend
type Category string

const (
	// Lesson categories
	CategoryKids          Category = "Kids"
	CategoryJuniores      Category = "Juniores"
	CategoryAdolescentes  Category = "Adolescentes"
	CategoryJovens        Category = "Jovens"
	CategoryDatasFestivas Category = "Datas Festivas"
	CategoryOutrosTemas   Category = "Outros Temas"

	// Activity categories
	CategoryColoring  Category = "Desenhos para Colorir"
	CategoryPrintable Category = "Atividades para Imprimir"
)

// ParseCategory resolves a display-form name against the kind's category
// set, ignoring letter case. Returns false if the name is not in the set.
func ParseCategory(name string, kind Kind) (Category, bool) {
	for _, c := range kind.Categories() {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// ContentItem is the polymorphic interface for listable content.
// Lesson and Activity implement it directly.
type ContentItem interface {
	// GetID returns the backend document identifier
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetCategory returns the item's category (drawn from the kind's closed set)
	GetCategory() Category

	// IsPremium reports whether the item requires a premium subscription
	IsPremium() bool

	// IsNew reports whether the item carries the "new" ribbon
	IsNew() bool

	// GetTags returns the free-form tag list
	GetTags() []string

	// GetFavoritedBy returns the set of user IDs that favorited this item
	GetFavoritedBy() []string

	// GetCreatedAt returns the creation timestamp (the listing sort key)
	GetCreatedAt() time.Time

	// GetKind returns the collection this item belongs to
	GetKind() Kind

	// GetPDFURL returns the printable PDF URL ("" if none)
	GetPDFURL() string
}

// Lesson is a Bible-study lesson document
type Lesson struct {
	ID          string    `json:"id"`
	Title       string    `json:"titulo"`
	Category    Category  `json:"categoria"`
	Premium     bool      `json:"isPremium"`
	New         bool      `json:"nova"`
	Story       string    `json:"historia"`
	Application string    `json:"aplicacao"`
	Dynamic     string    `json:"dinamica"`
	Activity    string    `json:"atividade"`
	Prayer      string    `json:"oracao"`
	DrawingURL  string    `json:"desenhoUrl"`
	PDFURL      string    `json:"pdfUrl,omitempty"`
	Tags        []string  `json:"tags"`
	FavoritedBy []string  `json:"favoritadoPor"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ContentItem interface implementation for Lesson

func (l *Lesson) GetID() string              { return l.ID }
func (l *Lesson) GetTitle() string           { return l.Title }
func (l *Lesson) GetCategory() Category      { return l.Category }
func (l *Lesson) IsPremium() bool            { return l.Premium }
func (l *Lesson) IsNew() bool                { return l.New }
func (l *Lesson) GetTags() []string          { return l.Tags }
func (l *Lesson) GetFavoritedBy() []string   { return l.FavoritedBy }
func (l *Lesson) GetCreatedAt() time.Time    { return l.CreatedAt }
func (l *Lesson) GetKind() Kind              { return KindLessons }
func (l *Lesson) GetPDFURL() string          { return l.PDFURL }

// Activity is a printable activity document (coloring page or worksheet)
type Activity struct {
	ID          string    `json:"id"`
	Title       string    `json:"titulo"`
	Category    Category  `json:"categoria"`
	Premium     bool      `json:"isPremium"`
	New         bool      `json:"nova"`
	ImageURL    string    `json:"imageUrl"`
	PDFURL      string    `json:"pdfUrl,omitempty"`
	Tags        []string  `json:"tags"`
	FavoritedBy []string  `json:"favoritadoPor"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ContentItem interface implementation for Activity

func (a *Activity) GetID() string            { return a.ID }
func (a *Activity) GetTitle() string         { return a.Title }
func (a *Activity) GetCategory() Category    { return a.Category }
func (a *Activity) IsPremium() bool          { return a.Premium }
func (a *Activity) IsNew() bool              { return a.New }
func (a *Activity) GetTags() []string        { return a.Tags }
func (a *Activity) GetFavoritedBy() []string { return a.FavoritedBy }
func (a *Activity) GetCreatedAt() time.Time  { return a.CreatedAt }
func (a *Activity) GetKind() Kind            { return KindActivities }
func (a *Activity) GetPDFURL() string        { return a.PDFURL }

// FavoriteCount returns the number of users that favorited the item
func FavoriteCount(item ContentItem) int { return len(item.GetFavoritedBy()) }

// IsFavoritedBy reports whether uid is a member of the item's favoritedBy set
func IsFavoritedBy(item ContentItem, uid string) bool {
	return uid != "" && slices.Contains(item.GetFavoritedBy(), uid)
}

// WithFavoritedBy returns a copy of the item with its favoritedBy set
// replaced. The original is left untouched so callers can roll back.
func WithFavoritedBy(item ContentItem, favoritedBy []string) ContentItem {
	switch v := item.(type) {
	case *Lesson:
		clone := *v
		clone.FavoritedBy = slices.Clone(favoritedBy)
		return &clone
	case *Activity:
		clone := *v
		clone.FavoritedBy = slices.Clone(favoritedBy)
		return &clone
	default:
		return item
	}
}

// Cursor is an opaque pagination continuation token tied to the last
// item of a page. The empty cursor means "start from the beginning"
// on input and "exhausted" on output.
type Cursor string

// Page is one ordered slice of a query result plus its continuation cursor
type Page struct {
	Items  []ContentItem
	Cursor Cursor // "" = no more pages
}
