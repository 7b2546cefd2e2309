// Package favorites implements the optimistic favorite toggle as an
// explicit three-state transition: pending, then committed or rolled back.
package favorites

import (
	"context"
	"log/slog"
	"slices"

	"github.com/rsilveira/licoes/internal/domain"
)

// State is the toggle's lifecycle state
type State int

const (
	StatePending State = iota
	StateCommitted
	StateRolledBack
)

// String returns a human-readable representation of the toggle state
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled back"
	default:
		return "unknown"
	}
}

// Pending is the optimistic view applied locally before the backend
// confirms. Previous is the rollback target.
type Pending struct {
	Kind     domain.Kind
	ItemID   string
	UID      string
	Adding   bool     // true = uid was not a member, toggle adds it
	Previous []string // favoritedBy before the toggle
	View     []string // optimistic favoritedBy applied to the UI
}

// Result is the settled outcome of a toggle
type Result struct {
	State       State
	FavoritedBy []string // the list the UI must display now
	Err         error    // set when rolled back
}

// Begin computes the optimistic transition for toggling uid's membership
// in the item's favoritedBy set. Pure: the caller applies View to the UI
// immediately, then settles it with Service.Commit.
func Begin(item domain.ContentItem, uid string) Pending {
	previous := slices.Clone(item.GetFavoritedBy())

	p := Pending{
		Kind:     item.GetKind(),
		ItemID:   item.GetID(),
		UID:      uid,
		Adding:   !slices.Contains(previous, uid),
		Previous: previous,
	}

	if p.Adding {
		p.View = append(slices.Clone(previous), uid)
	} else {
		p.View = slices.DeleteFunc(slices.Clone(previous), func(s string) bool { return s == uid })
	}

	return p
}

// Service settles pending toggles against the backend
type Service struct {
	repo   domain.ContentRepository
	logger *slog.Logger
}

// NewService creates a favorites service
func NewService(repo domain.ContentRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Commit issues exactly one backend update for the pending toggle. On
// success the optimistic view becomes the committed truth; on failure the
// result carries the pre-toggle list so the UI rolls back and displayed
// state never diverges from the backend beyond the notification window.
func (s *Service) Commit(ctx context.Context, p Pending) Result {
	if p.UID == "" {
		return Result{State: StateRolledBack, FavoritedBy: p.Previous, Err: domain.ErrNotSignedIn}
	}

	var err error
	if p.Adding {
		err = s.repo.AddFavorite(ctx, p.Kind, p.ItemID, p.UID)
	} else {
		err = s.repo.RemoveFavorite(ctx, p.Kind, p.ItemID, p.UID)
	}

	if err != nil {
		s.logger.Warn("favorite toggle failed",
			"item", p.ItemID, "adding", p.Adding, "error", err)
		return Result{State: StateRolledBack, FavoritedBy: p.Previous, Err: err}
	}

	s.logger.Debug("favorite toggled", "item", p.ItemID, "adding", p.Adding)
	return Result{State: StateCommitted, FavoritedBy: p.View}
}
