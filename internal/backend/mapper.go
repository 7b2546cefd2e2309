package backend

import (
	"time"

	"github.com/rsilveira/licoes/internal/domain"
)

// MapDocuments converts backend documents to domain content items
func MapDocuments(docs []documentDTO, kind domain.Kind) []domain.ContentItem {
	items := make([]domain.ContentItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, mapDocument(d, kind))
	}
	return items
}

// mapDocument converts a single document to the kind's domain entity
func mapDocument(d documentDTO, kind domain.Kind) domain.ContentItem {
	createdAt := parseCreatedAt(d.CreatedAt)

	if kind == domain.KindActivities {
		return &domain.Activity{
			ID:          d.ID,
			Title:       d.Title,
			Category:    domain.Category(d.Category),
			Premium:     d.IsPremium,
			New:         d.New,
			ImageURL:    d.ImageURL,
			PDFURL:      d.PDFURL,
			Tags:        d.Tags,
			FavoritedBy: d.FavoritedBy,
			CreatedAt:   createdAt,
		}
	}

	return &domain.Lesson{
		ID:          d.ID,
		Title:       d.Title,
		Category:    domain.Category(d.Category),
		Premium:     d.IsPremium,
		New:         d.New,
		Story:       d.Story,
		Application: d.Application,
		Dynamic:     d.Dynamic,
		Activity:    d.Activity,
		Prayer:      d.Prayer,
		DrawingURL:  d.DrawingURL,
		PDFURL:      d.PDFURL,
		Tags:        d.Tags,
		FavoritedBy: d.FavoritedBy,
		CreatedAt:   createdAt,
	}
}

// parseCreatedAt parses the backend timestamp, falling back to the zero
// time on malformed input (the document still lists, just sorts last)
func parseCreatedAt(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// mapConstraints converts domain constraints to the wire filter/order split
func mapConstraints(constraints []domain.Constraint) ([]filterDTO, *orderByDTO) {
	var filters []filterDTO
	var orderBy *orderByDTO

	for _, c := range constraints {
		switch c.Op {
		case domain.OpEquals:
			filters = append(filters, filterDTO{Field: c.Field, Op: "==", Value: c.Value})
		case domain.OpRangeStart:
			filters = append(filters, filterDTO{Field: c.Field, Op: ">=", Value: c.Value})
		case domain.OpRangeEnd:
			filters = append(filters, filterDTO{Field: c.Field, Op: "<=", Value: c.Value})
		case domain.OpOrderBy:
			orderBy = &orderByDTO{Field: c.Field, Direction: string(c.Direction)}
		}
	}

	return filters, orderBy
}
