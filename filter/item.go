package filter

import (
	"strconv"
	"time"

	"github.com/s0up4200/reelkeeper/catalog"
	"github.com/s0up4200/reelkeeper/library"
)

// Item is the view of a movie that filter expressions see. Library entries
// and catalog results are both converted into it.
type Item struct {
	MovieID     int
	Title       string
	Year        int
	Overview    string
	PosterPath  string
	AddedAt     time.Time
	VoteAverage float64
	Popularity  float64
	GenreIDs    []int
}

// FromEntry converts a favorites or watchlist entry
func FromEntry(e library.Entry) Item {
	return Item{
		MovieID:    e.MovieID,
		Title:      e.Title,
		PosterPath: e.PosterPath,
		AddedAt:    e.AddedAt,
	}
}

// FromMovie converts a catalog result
func FromMovie(m catalog.Movie) Item {
	year, _ := strconv.Atoi(m.Year())
	return Item{
		MovieID:     m.ID,
		Title:       m.Title,
		Year:        year,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		VoteAverage: m.VoteAverage,
		Popularity:  m.Popularity,
		GenreIDs:    m.GenreIDs,
	}
}
