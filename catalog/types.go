package catalog

import "strings"

// Movie is a catalog search/list result
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	GenreIDs    []int   `json:"genre_ids"`
}

// Year returns the release year, or "" when unknown
func (m Movie) Year() string {
	if len(m.ReleaseDate) >= 4 {
		return m.ReleaseDate[:4]
	}
	return ""
}

// Genre is a catalog genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Language is a spoken language of a movie
type Language struct {
	ISO6391     string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// CastMember is a credited actor
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// Credits holds the cast of a movie
type Credits struct {
	Cast []CastMember `json:"cast"`
}

// MovieDetails is the full record of a single movie
type MovieDetails struct {
	Movie
	Tagline         string     `json:"tagline"`
	Runtime         int        `json:"runtime"`
	Budget          int64      `json:"budget"`
	Revenue         int64      `json:"revenue"`
	Genres          []Genre    `json:"genres"`
	SpokenLanguages []Language `json:"spoken_languages"`
	Credits         Credits    `json:"credits"`
}

// GenreNames returns the names of the movie's genres
func (d MovieDetails) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// LanguageNames returns the English names of the spoken languages
func (d MovieDetails) LanguageNames() string {
	names := make([]string, 0, len(d.SpokenLanguages))
	for _, l := range d.SpokenLanguages {
		name := l.EnglishName
		if name == "" {
			name = l.Name
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// Page is one page of catalog results
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// HasMorePages checks if there are more pages after this one
func (p *Page) HasMorePages() bool {
	return p.Page < p.TotalPages
}

// List names a curated catalog list
type List string

const (
	Popular    List = "popular"
	TopRated   List = "top-rated"
	NowPlaying List = "now-playing"
	Upcoming   List = "upcoming"
)

// Lists is every curated list in display order
var Lists = []List{Popular, TopRated, NowPlaying, Upcoming}

// Title returns a human-readable heading for the list
func (l List) Title() string {
	switch l {
	case Popular:
		return "Popular"
	case TopRated:
		return "Top Rated"
	case NowPlaying:
		return "Now Playing"
	case Upcoming:
		return "Upcoming"
	}
	return string(l)
}

// SearchOptions selects between text search and filtered discovery
type SearchOptions struct {
	Query  string
	Genre  int
	Year   int
	SortBy string
	Page   int
}

// DefaultSortBy is the discover ordering used when none is given
const DefaultSortBy = "popularity.desc"

// Home is the four curated lists shown on the landing screen
type Home struct {
	Lists map[List][]Movie
}

// Details bundles a movie with its similar titles
type Details struct {
	Movie   *MovieDetails
	Similar []Movie
}
