package library

import (
	"fmt"
	"time"
)

// ListKind selects one of the per-user movie collections
type ListKind string

const (
	// Favorites is the user's favorite movies
	Favorites ListKind = "favorites"
	// Watchlist is the user's movies to watch later
	Watchlist ListKind = "watchlist"
)

// Kinds lists every supported collection
var Kinds = []ListKind{Favorites, Watchlist}

// Validate checks that k names a supported collection
func (k ListKind) Validate() error {
	switch k {
	case Favorites, Watchlist:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownList, string(k))
}

// Title returns a human-readable heading for the list
func (k ListKind) Title() string {
	switch k {
	case Favorites:
		return "Favorites"
	case Watchlist:
		return "Watchlist"
	}
	return string(k)
}

// ParseListKind converts user input into a ListKind
func ParseListKind(s string) (ListKind, error) {
	k := ListKind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// Entry is a saved reference to a movie in favorites or the watchlist
type Entry struct {
	MovieID    int       `json:"movieId"`
	Title      string    `json:"title"`
	PosterPath string    `json:"posterPath,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

// Rating is the user's score for a movie
type Rating struct {
	MovieID   int       `json:"movieId"`
	Rating    float64   `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Rating bounds accepted by the backend
const (
	MinRating = 1
	MaxRating = 10
)

// Response is the raw payload of a successful mutation
type Response struct {
	Message string `json:"message"`
}

// Stats holds the collection counts shown on the profile
type Stats struct {
	Favorites int
	Watchlist int
	Ratings   int
}

// addRequest is the body of an add call
type addRequest struct {
	MovieID    int    `json:"movieId"`
	Title      string `json:"title"`
	PosterPath string `json:"posterPath,omitempty"`
}

// rateRequest is the body of a rate call
type rateRequest struct {
	MovieID int     `json:"movieId"`
	Rating  float64 `json:"rating"`
	Review  string  `json:"review"`
}
