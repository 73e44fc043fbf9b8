package radarr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
)

// DefaultTimeout bounds every request to Radarr
const DefaultTimeout = 30 * time.Second

var (
	// ErrMissingQualityProfile is returned when no quality profile is configured
	ErrMissingQualityProfile = errors.New("radarr quality profile id is required")
	// ErrMissingRootFolder is returned when no root folder is configured
	ErrMissingRootFolder = errors.New("radarr root folder is required")
)

// Options control how movies are added to Radarr
type Options struct {
	QualityProfileID int64
	RootFolder       string
	SearchOnAdd      bool
	Monitored        bool
	DryRun           bool
	Concurrency      int
}

func (o Options) validate() error {
	if o.QualityProfileID <= 0 {
		return ErrMissingQualityProfile
	}
	if strings.TrimSpace(o.RootFolder) == "" {
		return ErrMissingRootFolder
	}
	return nil
}

// Client wraps the starr Radarr client for watchlist exports
type Client struct {
	api     RadarrAPI
	options Options
	logger  zerolog.Logger
}

// NewClient creates a new Radarr client and checks connectivity
func NewClient(url, apiKey string, options Options, logger zerolog.Logger) (*Client, error) {
	config := starr.New(apiKey, url, DefaultTimeout)
	radarrClient := radarr.New(config)

	if err := radarrClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	return NewClientWithAPI(radarrClient, options, logger)
}

// NewClientWithAPI creates a client around an existing API implementation
func NewClientWithAPI(api RadarrAPI, options Options, logger zerolog.Logger) (*Client, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}
	if options.Concurrency <= 0 {
		options.Concurrency = DefaultConcurrency
	}

	return &Client{
		api:     api,
		options: options,
		logger:  logger,
	}, nil
}

// FindByTMDBID returns the Radarr movie for a TMDB id, or nil if it is not in
// the library
func (c *Client) FindByTMDBID(ctx context.Context, tmdbID int64) (*radarr.Movie, error) {
	movies, err := c.api.GetMovieContext(ctx, &radarr.GetMovie{TMDBID: tmdbID})
	if err != nil {
		return nil, fmt.Errorf("failed to look up TMDB id %d: %w", tmdbID, err)
	}

	for _, movie := range movies {
		if movie != nil && movie.TmdbID == tmdbID {
			return movie, nil
		}
	}
	return nil, nil
}

// AddMovie adds a movie by TMDB id using the configured profile and root folder
func (c *Client) AddMovie(ctx context.Context, tmdbID int64, title string) (*radarr.Movie, error) {
	input := &radarr.AddMovieInput{
		Title:            title,
		TmdbID:           tmdbID,
		QualityProfileID: c.options.QualityProfileID,
		RootFolderPath:   c.options.RootFolder,
		Monitored:        c.options.Monitored,
		AddOptions: &radarr.AddMovieOptions{
			SearchForMovie: c.options.SearchOnAdd,
		},
	}

	movie, err := c.api.AddMovieContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s (TMDB %d): %w", title, tmdbID, err)
	}

	c.logger.Info().
		Int64("tmdb_id", tmdbID).
		Str("title", title).
		Bool("search", c.options.SearchOnAdd).
		Msg("Added movie to Radarr")
	return movie, nil
}
