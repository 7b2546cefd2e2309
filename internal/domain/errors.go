package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested content item does not exist
	ErrItemNotFound = errors.New("content item not found")

	// ErrBackendUnreachable indicates the document store is unreachable
	ErrBackendUnreachable = errors.New("backend is unreachable")

	// ErrAuthFailed indicates authentication with the identity provider failed
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotSignedIn indicates an operation that requires an identity was
	// attempted without one
	ErrNotSignedIn = errors.New("not signed in")
)
