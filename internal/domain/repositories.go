package domain

import "context"

// ContentRepository provides access to the backend document collections
type ContentRepository interface {
	// RunQuery executes the constraint sequence against a collection,
	// continuing after startAfter when non-empty, returning at most limit
	// items plus the continuation cursor ("" when exhausted).
	RunQuery(ctx context.Context, kind Kind, constraints []Constraint, startAfter Cursor, limit int) (Page, error)

	// GetDocument fetches a single item by ID.
	// Returns ErrItemNotFound if the document does not exist.
	GetDocument(ctx context.Context, kind Kind, id string) (ContentItem, error)

	// AddFavorite atomically adds uid to the item's favoritedBy set
	AddFavorite(ctx context.Context, kind Kind, id, uid string) error

	// RemoveFavorite atomically removes uid from the item's favoritedBy set
	RemoveFavorite(ctx context.Context, kind Kind, id, uid string) error

	// Count returns the number of documents matching the constraints,
	// independent of pagination (for "N of M" totals).
	Count(ctx context.Context, kind Kind, constraints []Constraint) (int, error)
}

// IdentityProvider authenticates users and exposes their custom claims
type IdentityProvider interface {
	// SignIn exchanges credentials for an identity.
	// Returns ErrAuthFailed on rejected credentials.
	SignIn(ctx context.Context, email, password string) (*User, error)
}
