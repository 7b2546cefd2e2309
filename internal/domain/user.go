package domain

// Claims are the custom claims the identity provider attaches to a token
type Claims struct {
	Status string // subscription tier: "free" or "premium"
	Admin  bool
}

// Premium reports whether the claims grant premium access.
// Admins always have premium access.
func (c Claims) Premium() bool { return c.Status == "premium" || c.Admin }

// User is the authenticated identity the listing pipeline reads
type User struct {
	UID    string
	Name   string
	Email  string
	Token  string // ID token presented to the backend
	Claims Claims
}

// CanView reports whether the user may view the item's content.
// A nil user can view free items only. This is an expected authorization
// branch, not an error: callers render a lock state, never a failure.
func (u *User) CanView(item ContentItem) bool {
	if !item.IsPremium() {
		return true
	}
	return u != nil && u.Claims.Premium()
}
