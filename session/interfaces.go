package session

import "context"

// Caller sends a JSON request to the backend. *api.Client implements it.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body, out any) error
}

// TokenStore is the persisted token slot.
type TokenStore interface {
	// Load returns the stored token, or "" when none is stored
	Load() (string, error)
	// Save replaces the stored token
	Save(token string) error
	// Clear removes the stored token
	Clear() error
}
