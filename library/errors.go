package library

import (
	"errors"
	"fmt"

	"github.com/s0up4200/reelkeeper/session"
)

var (
	// ErrUnknownList indicates a list kind other than favorites or watchlist
	ErrUnknownList = errors.New("unknown list")
	// ErrInvalidRating indicates a rating outside MinRating..MaxRating
	ErrInvalidRating = errors.New("rating must be between 1 and 10")
	// ErrInvalidMovie indicates a missing or non-positive movie id
	ErrInvalidMovie = errors.New("movie id must be positive")
)

// LoginRequiredError is returned, without contacting the backend, when an
// operation is attempted on an anonymous session.
type LoginRequiredError struct {
	Action string
}

func (e *LoginRequiredError) Error() string {
	return fmt.Sprintf("please log in to %s", e.Action)
}

// Unwrap lets callers match session.ErrNotAuthenticated
func (e *LoginRequiredError) Unwrap() error {
	return session.ErrNotAuthenticated
}
