// Package catalog reads the public movie catalog: curated lists, search,
// discovery, genres and movie details. None of these calls need a session.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Getter performs a GET request. *api.Client implements it.
type Getter interface {
	Get(ctx context.Context, endpoint string, params url.Values, out any) error
}

var (
	// ErrUnknownList indicates a list name other than the curated ones
	ErrUnknownList = errors.New("unknown catalog list")
	// ErrInvalidMovie indicates a missing or non-positive movie id
	ErrInvalidMovie = errors.New("movie id must be positive")
)

// Client wraps the catalog endpoints
type Client struct {
	api    Getter
	logger zerolog.Logger
}

// NewClient creates a new catalog client
func NewClient(api Getter, logger zerolog.Logger) *Client {
	return &Client{api: api, logger: logger}
}

// ParseList converts user input into a List
func ParseList(s string) (List, error) {
	for _, l := range Lists {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownList, s)
}

// List fetches one page of a curated list
func (c *Client) List(ctx context.Context, list List, page int) (*Page, error) {
	if _, err := ParseList(string(list)); err != nil {
		return nil, err
	}

	var out Page
	if err := c.api.Get(ctx, "/movies/"+string(list), pageParams(page), &out); err != nil {
		return nil, fmt.Errorf("failed to get %s movies: %w", list, err)
	}
	return normalize(&out), nil
}

// Search runs a text search when a query is given and filtered discovery when
// only a genre or year is set. With neither, it returns an empty page without
// contacting the backend.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*Page, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" && opts.Genre == 0 && opts.Year == 0 {
		return &Page{Page: 1, Results: []Movie{}}, nil
	}

	params := pageParams(opts.Page)
	endpoint := "/movies/search"

	if query != "" {
		params.Set("query", query)
	} else {
		endpoint = "/movies/discover/movies"
		if opts.Genre != 0 {
			params.Set("with_genres", strconv.Itoa(opts.Genre))
		}
		if opts.Year != 0 {
			params.Set("primary_release_year", strconv.Itoa(opts.Year))
		}
		sortBy := opts.SortBy
		if sortBy == "" {
			sortBy = DefaultSortBy
		}
		params.Set("sort_by", sortBy)
	}

	var out Page
	if err := c.api.Get(ctx, endpoint, params, &out); err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return normalize(&out), nil
}

// Genres fetches the genre list
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var out struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.api.Get(ctx, "/movies/genres/list", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}
	if out.Genres == nil {
		return []Genre{}, nil
	}
	return out.Genres, nil
}

// Movie fetches the details of a single movie
func (c *Client) Movie(ctx context.Context, id int) (*MovieDetails, error) {
	if id <= 0 {
		return nil, ErrInvalidMovie
	}

	var out MovieDetails
	if err := c.api.Get(ctx, "/movies/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	return &out, nil
}

// Similar fetches movies similar to id
func (c *Client) Similar(ctx context.Context, id int) (*Page, error) {
	if id <= 0 {
		return nil, ErrInvalidMovie
	}

	var out Page
	if err := c.api.Get(ctx, "/movies/"+strconv.Itoa(id)+"/similar", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get similar movies for %d: %w", id, err)
	}
	return normalize(&out), nil
}

// Home fetches the first page of every curated list in parallel, keeping at
// most limit movies of each. A list that fails to load is left empty.
func (c *Client) Home(ctx context.Context, limit int) *Home {
	results := make([][]Movie, len(Lists))

	g, ctx := errgroup.WithContext(ctx)
	for i, list := range Lists {
		g.Go(func() error {
			page, err := c.List(ctx, list, 1)
			if err != nil {
				c.logger.Warn().Err(err).Str("list", string(list)).Msg("Failed to load catalog list")
				results[i] = []Movie{}
				return nil
			}
			results[i] = truncate(page.Results, limit)
			return nil
		})
	}
	g.Wait()

	home := &Home{Lists: make(map[List][]Movie, len(Lists))}
	for i, list := range Lists {
		home.Lists[list] = results[i]
	}
	return home
}

// Details fetches a movie and its similar titles in parallel. Only a failure
// to load the movie itself is returned; similar titles degrade to empty.
func (c *Client) Details(ctx context.Context, id, similarLimit int) (*Details, error) {
	if id <= 0 {
		return nil, ErrInvalidMovie
	}

	var (
		movie   *MovieDetails
		similar []Movie
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movie, err = c.Movie(gctx, id)
		return err
	})
	g.Go(func() error {
		page, err := c.Similar(gctx, id)
		if err != nil {
			c.logger.Warn().Err(err).Int("movie_id", id).Msg("Failed to load similar movies")
			similar = []Movie{}
			return nil
		}
		similar = truncate(page.Results, similarLimit)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Details{Movie: movie, Similar: similar}, nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

func normalize(p *Page) *Page {
	if p.Results == nil {
		p.Results = []Movie{}
	}
	if p.Page == 0 {
		p.Page = 1
	}
	return p
}

func truncate(movies []Movie, limit int) []Movie {
	if limit > 0 && len(movies) > limit {
		return movies[:limit]
	}
	return movies
}
