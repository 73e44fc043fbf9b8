package session

import "errors"

var (
	// ErrNotAuthenticated is returned by operations that need a logged-in user
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrIncompleteResponse indicates a success payload that lacked the token or user
	ErrIncompleteResponse = errors.New("incomplete response from backend")
	// ErrMissingCredentials indicates an empty email or password
	ErrMissingCredentials = errors.New("email and password are required")
)
