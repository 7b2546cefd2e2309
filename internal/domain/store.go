package domain

// LocalStore handles device-local persistent state (BoltDB + memory).
// Seen tracking and session state read directly from it.
type LocalStore interface {
	// === Session ===
	GetSessionUID() (string, bool)
	SaveSessionUID(uid string) error

	// === Seen sets (key layout: {kind}_vistas_{uid}) ===
	GetSeen(key string) ([]string, bool)
	SaveSeen(key string, ids []string) error

	// === Persisted filter query string ===
	GetFilters(kind Kind) (string, bool)
	SaveFilters(kind Kind, query string) error

	// ClearUserState wipes seen sets, persisted filters and the session UID.
	// Called when a different user signs in on the same device.
	ClearUserState() error

	Close() error
}
