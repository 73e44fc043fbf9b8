// Package library manages the signed-in user's favorites, watchlist and
// ratings.
//
// The library keeps an in-memory copy of each list for immediate feedback.
// That copy is advisory: a successful Add appends to it and a successful
// Remove filters it, but only FetchAll (or Refresh) reflects what the backend
// actually holds.
package library

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/reelkeeper/api"
)

// Library performs list and rating operations for the current session
type Library struct {
	client   Caller
	identity Identity
	logger   zerolog.Logger
	now      func() time.Time

	mu     sync.RWMutex
	owner  string
	cache  map[ListKind][]Entry
	loaded map[ListKind]bool
}

// New creates a new Library
func New(client Caller, identity Identity, logger zerolog.Logger) *Library {
	return &Library{
		client:   client,
		identity: identity,
		logger:   logger,
		now:      time.Now,
		cache:    make(map[ListKind][]Entry),
		loaded:   make(map[ListKind]bool),
	}
}

// requireLogin enforces the authenticated precondition before any request
func (l *Library) requireLogin(action string) error {
	if !l.identity.IsAuthenticated() {
		return &LoginRequiredError{Action: action}
	}
	return nil
}

// Add saves entry to the given list. It does not check for duplicates; the
// backend decides whether a second add of the same movie is an error.
func (l *Library) Add(ctx context.Context, kind ListKind, entry Entry) (Response, error) {
	if err := kind.Validate(); err != nil {
		return Response{}, err
	}
	if err := l.requireLogin("add movies to " + string(kind)); err != nil {
		return Response{}, err
	}
	if entry.MovieID <= 0 {
		return Response{}, ErrInvalidMovie
	}

	body := addRequest{
		MovieID:    entry.MovieID,
		Title:      entry.Title,
		PosterPath: entry.PosterPath,
	}

	var resp Response
	if err := l.client.Call(ctx, http.MethodPost, "/users/"+string(kind), body, &resp); err != nil {
		return Response{}, err
	}

	if entry.AddedAt.IsZero() {
		entry.AddedAt = l.now()
	}
	l.cacheAdd(kind, entry)

	l.logger.Debug().Str("list", string(kind)).Int("movie_id", entry.MovieID).Msg("Added movie")
	return resp, nil
}

// Remove deletes the movie from the given list
func (l *Library) Remove(ctx context.Context, kind ListKind, movieID int) (Response, error) {
	if err := kind.Validate(); err != nil {
		return Response{}, err
	}
	if err := l.requireLogin("remove movies from " + string(kind)); err != nil {
		return Response{}, err
	}
	if movieID <= 0 {
		return Response{}, ErrInvalidMovie
	}

	endpoint := "/users/" + string(kind) + "/" + strconv.Itoa(movieID)

	var resp Response
	if err := l.client.Call(ctx, http.MethodDelete, endpoint, nil, &resp); err != nil {
		return Response{}, err
	}

	l.cacheRemove(kind, movieID)

	l.logger.Debug().Str("list", string(kind)).Int("movie_id", movieID).Msg("Removed movie")
	return resp, nil
}

// FetchAll loads the list from the backend and replaces the local copy
func (l *Library) FetchAll(ctx context.Context, kind ListKind) ([]Entry, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := l.requireLogin("view your " + string(kind)); err != nil {
		return nil, err
	}

	endpoint := "/users/" + string(kind)

	var resp struct {
		Favorites *[]Entry `json:"favorites"`
		Watchlist *[]Entry `json:"watchlist"`
	}
	if err := l.client.Call(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	field := resp.Favorites
	if kind == Watchlist {
		field = resp.Watchlist
	}
	if field == nil {
		return nil, &api.DecodeError{Endpoint: endpoint, Err: fmt.Errorf("missing %q field", string(kind))}
	}

	entries := *field
	if entries == nil {
		entries = []Entry{}
	}
	l.cacheReplace(kind, entries)

	return slices.Clone(entries), nil
}

// Refresh reloads a list from the backend. Use it whenever the caller needs
// confirmed state rather than the advisory local copy.
func (l *Library) Refresh(ctx context.Context, kind ListKind) ([]Entry, error) {
	return l.FetchAll(ctx, kind)
}

// Toggle removes the movie when the local copy contains it and adds it
// otherwise. The list is fetched first if it has not been loaded yet. The
// returned bool reports whether the movie is now in the list.
func (l *Library) Toggle(ctx context.Context, kind ListKind, entry Entry) (bool, Response, error) {
	if err := kind.Validate(); err != nil {
		return false, Response{}, err
	}
	if err := l.requireLogin("update your " + string(kind)); err != nil {
		return false, Response{}, err
	}
	if !l.Loaded(kind) {
		if _, err := l.FetchAll(ctx, kind); err != nil {
			return false, Response{}, err
		}
	}

	if l.Contains(kind, entry.MovieID) {
		resp, err := l.Remove(ctx, kind, entry.MovieID)
		if err != nil {
			return true, Response{}, err
		}
		return false, resp, nil
	}

	resp, err := l.Add(ctx, kind, entry)
	if err != nil {
		return false, Response{}, err
	}
	return true, resp, nil
}

// Rate submits a rating. Ratings are not cached locally.
func (l *Library) Rate(ctx context.Context, movieID int, rating float64, review string) (Response, error) {
	if err := l.requireLogin("rate movies"); err != nil {
		return Response{}, err
	}
	if movieID <= 0 {
		return Response{}, ErrInvalidMovie
	}
	// NaN fails both comparisons.
	if !(rating >= MinRating && rating <= MaxRating) {
		return Response{}, ErrInvalidRating
	}

	body := rateRequest{MovieID: movieID, Rating: rating, Review: review}

	var resp Response
	if err := l.client.Call(ctx, http.MethodPost, "/users/ratings", body, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Ratings returns every rating the user has submitted
func (l *Library) Ratings(ctx context.Context) ([]Rating, error) {
	if err := l.requireLogin("view your ratings"); err != nil {
		return nil, err
	}

	var resp struct {
		Ratings *[]Rating `json:"ratings"`
	}
	if err := l.client.Call(ctx, http.MethodGet, "/users/ratings", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Ratings == nil {
		return nil, &api.DecodeError{Endpoint: "/users/ratings", Err: fmt.Errorf("missing %q field", "ratings")}
	}
	if *resp.Ratings == nil {
		return []Rating{}, nil
	}
	return *resp.Ratings, nil
}

// Stats fetches the three collection counts in parallel. A count that fails
// to load is reported as zero.
func (l *Library) Stats(ctx context.Context) (Stats, error) {
	if err := l.requireLogin("view your stats"); err != nil {
		return Stats{}, err
	}

	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	for _, kind := range Kinds {
		g.Go(func() error {
			entries, err := l.FetchAll(ctx, kind)
			if err != nil {
				l.logger.Warn().Err(err).Str("list", string(kind)).Msg("Failed to count list")
				return nil
			}
			// Each goroutine owns its own field.
			if kind == Favorites {
				stats.Favorites = len(entries)
			} else {
				stats.Watchlist = len(entries)
			}
			return nil
		})
	}

	g.Go(func() error {
		ratings, err := l.Ratings(ctx)
		if err != nil {
			l.logger.Warn().Err(err).Msg("Failed to count ratings")
			return nil
		}
		stats.Ratings = len(ratings)
		return nil
	})

	g.Wait()
	return stats, nil
}
