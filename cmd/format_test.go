package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/reelkeeper/catalog"
	"github.com/s0up4200/reelkeeper/library"
	"github.com/s0up4200/reelkeeper/media"
	"github.com/s0up4200/reelkeeper/radarr"
	"github.com/s0up4200/reelkeeper/session"
)

func newTestFormatter(showPosters bool) *ConsoleFormatter {
	return NewConsoleFormatter(media.NewResolver(""), media.SizeMedium, showPosters)
}

func TestFormatMovies(t *testing.T) {
	f := newTestFormatter(true)

	out := f.FormatMovies("Popular", []catalog.Movie{
		{ID: 1, Title: "First", ReleaseDate: "2001-05-01", PosterPath: "/a.jpg", VoteAverage: 7.3, VoteCount: 10},
		{ID: 2, Title: "Second"},
	})

	assert.Contains(t, out, "Popular (2):")
	assert.Contains(t, out, "├── First (2001) [1]")
	assert.Contains(t, out, "│   Rating: 7.3/10 (10 votes)")
	assert.Contains(t, out, "│   Poster: https://image.tmdb.org/t/p/w300/a.jpg")
	assert.Contains(t, out, "╰── Second [2]")
	assert.Contains(t, out, "    Poster: /api/placeholder/200/300")

	assert.Contains(t, f.FormatMovies("Upcoming", nil), "No movies found")
}

func TestFormatEntries(t *testing.T) {
	f := newTestFormatter(false)

	assert.Equal(t, "Your watchlist is empty\n", f.FormatEntries(library.Watchlist, nil))

	out := f.FormatEntries(library.Favorites, []library.Entry{
		{MovieID: 42, Title: "The Answer", AddedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	})
	assert.Contains(t, out, "Favorites (1 movie):")
	assert.Contains(t, out, "╰── The Answer [42]")
	assert.Contains(t, out, "Added: 2024-03-01")
	assert.NotContains(t, out, "Poster:")
}

func TestFormatDetails(t *testing.T) {
	f := newTestFormatter(false)
	details := &catalog.Details{
		Movie: &catalog.MovieDetails{
			Movie:   catalog.Movie{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", Overview: "A hacker learns the truth."},
			Runtime: 136,
			Genres:  []catalog.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
			Credits: catalog.Credits{Cast: []catalog.CastMember{{Name: "Keanu Reeves", Character: "Neo"}}},
		},
	}

	out := f.FormatDetails(details, true, true)
	assert.Contains(t, out, "The Matrix (1999)")
	assert.Contains(t, out, "Runtime:   2h 16m")
	assert.Contains(t, out, "Genres:    Action, Science Fiction")
	assert.Contains(t, out, "Poster:    /api/placeholder/200/300")
	assert.Contains(t, out, "♥ In favorites | ✓ In watchlist")
	assert.Contains(t, out, "╰── Keanu Reeves as Neo")
	assert.NotContains(t, out, "Similar Movies")
}

func TestFormatUser(t *testing.T) {
	f := newTestFormatter(false)
	user := &session.User{
		Username:    "neo",
		Email:       "neo@example.com",
		Profile:     session.Profile{Bio: "The one"},
		Preferences: session.Preferences{FavoriteGenres: []int{878, 99}},
	}

	out := f.FormatUser(user, map[int]string{878: "Science Fiction"})
	assert.Contains(t, out, "\nneo\n")
	assert.Contains(t, out, "Bio:      The one")
	assert.Contains(t, out, "Genres:   Science Fiction, #99")
	assert.NotContains(t, out, "Joined:")
}

func TestFormatExport(t *testing.T) {
	f := newTestFormatter(false)
	summary := radarr.ExportSummary{Results: []radarr.ExportResult{
		{MovieID: 1, Title: "One", Outcome: radarr.OutcomeWouldAdd},
		{MovieID: 2, Title: "Two", Outcome: radarr.OutcomeExists},
		{MovieID: 3, Title: "Three", Outcome: radarr.OutcomeFailed, Err: errors.New("boom")},
	}}

	out := f.FormatExport(summary, true)
	assert.Contains(t, out, "[DRY RUN] Radarr export (3 movies):")
	assert.Contains(t, out, "├── One [1]: would add")
	assert.Contains(t, out, "╰── Three [3]: failed")
	assert.Contains(t, out, "    Error: boom")
	assert.Contains(t, out, "Added: 0 | Already present: 1 | Would add: 1 | Failed: 1")
}

func TestFormatStatsAndGenres(t *testing.T) {
	f := newTestFormatter(false)

	out := f.FormatStats(library.Stats{Favorites: 2, Watchlist: 5, Ratings: 1})
	assert.Contains(t, out, "- Favorites: 2")
	assert.Contains(t, out, "- Watchlist: 5")

	assert.Equal(t, "No genres available\n", f.FormatGenres(nil))
	assert.Contains(t, f.FormatGenres([]catalog.Genre{{ID: 18, Name: "Drama"}}), "• Drama (ID: 18)")
}
