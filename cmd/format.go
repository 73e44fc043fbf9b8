package cmd

import (
	"fmt"
	"strings"

	"github.com/s0up4200/reelkeeper/catalog"
	"github.com/s0up4200/reelkeeper/library"
	"github.com/s0up4200/reelkeeper/media"
	"github.com/s0up4200/reelkeeper/radarr"
	"github.com/s0up4200/reelkeeper/session"
)

const dateFormat = "2006-01-02"

// ConsoleFormatter renders catalog and library data for the terminal
type ConsoleFormatter struct {
	images      *media.Resolver
	posterSize  media.Size
	showPosters bool
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(images *media.Resolver, posterSize media.Size, showPosters bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		images:      images,
		posterSize:  posterSize,
		showPosters: showPosters,
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func branch(isLast bool) (prefix, indent string) {
	if isLast {
		return "╰", "    "
	}
	return "├", "│   "
}

func titleWithYear(title, year string) string {
	if year == "" {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, year)
}

// FormatMovies formats catalog movies under a heading
func (f *ConsoleFormatter) FormatMovies(heading string, movies []catalog.Movie) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", heading, len(movies))

	if len(movies) == 0 {
		sb.WriteString("No movies found\n")
		return sb.String()
	}

	for i, movie := range movies {
		prefix, indent := branch(i == len(movies)-1)
		fmt.Fprintf(&sb, "%s── %s [%d]\n", prefix, titleWithYear(movie.Title, movie.Year()), movie.ID)
		if movie.VoteAverage > 0 {
			fmt.Fprintf(&sb, "%sRating: %.1f/10 (%d votes)\n", indent, movie.VoteAverage, movie.VoteCount)
		}
		if f.showPosters {
			fmt.Fprintf(&sb, "%sPoster: %s\n", indent, f.images.URL(movie.PosterPath, f.posterSize))
		}
	}
	return sb.String()
}

// FormatPage formats one page of catalog results
func (f *ConsoleFormatter) FormatPage(heading string, page *catalog.Page) string {
	out := f.FormatMovies(heading, page.Results)
	if page.TotalPages > 0 {
		out += fmt.Sprintf("\nPage %d of %d (%d results)\n", page.Page, page.TotalPages, page.TotalResults)
	}
	return out
}

// FormatHome formats the four home lists in display order
func (f *ConsoleFormatter) FormatHome(home *catalog.Home) string {
	var sb strings.Builder
	for _, list := range catalog.Lists {
		sb.WriteString(f.FormatMovies(list.Title(), home.Lists[list]))
	}
	return sb.String()
}

// FormatDetails formats a movie detail page
func (f *ConsoleFormatter) FormatDetails(details *catalog.Details, favorite, watchlisted bool) string {
	movie := details.Movie
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s\n", titleWithYear(movie.Title, movie.Year()))
	if movie.Tagline != "" {
		fmt.Fprintf(&sb, "\"%s\"\n", movie.Tagline)
	}
	sb.WriteString("\n")

	if movie.VoteAverage > 0 {
		fmt.Fprintf(&sb, "Rating:    %.1f/10 (%d votes)\n", movie.VoteAverage, movie.VoteCount)
	}
	if movie.Runtime > 0 {
		fmt.Fprintf(&sb, "Runtime:   %dh %dm\n", movie.Runtime/60, movie.Runtime%60)
	}
	if genres := movie.GenreNames(); len(genres) > 0 {
		fmt.Fprintf(&sb, "Genres:    %s\n", strings.Join(genres, ", "))
	}
	if languages := movie.LanguageNames(); languages != "" {
		fmt.Fprintf(&sb, "Languages: %s\n", languages)
	}
	if movie.Budget > 0 {
		fmt.Fprintf(&sb, "Budget:    $%d\n", movie.Budget)
	}
	if movie.Revenue > 0 {
		fmt.Fprintf(&sb, "Revenue:   $%d\n", movie.Revenue)
	}
	fmt.Fprintf(&sb, "Poster:    %s\n", f.images.URL(movie.PosterPath, f.posterSize))

	var badges []string
	if favorite {
		badges = append(badges, "♥ In favorites")
	}
	if watchlisted {
		badges = append(badges, "✓ In watchlist")
	}
	if len(badges) > 0 {
		fmt.Fprintf(&sb, "Library:   %s\n", strings.Join(badges, " | "))
	}

	if movie.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", movie.Overview)
	}

	if cast := movie.Credits.Cast; len(cast) > 0 {
		limit := min(len(cast), 10)
		sb.WriteString("\nCast:\n")
		for i, member := range cast[:limit] {
			prefix, _ := branch(i == limit-1)
			fmt.Fprintf(&sb, "%s── %s as %s\n", prefix, member.Name, member.Character)
		}
	}

	if len(details.Similar) > 0 {
		sb.WriteString(f.FormatMovies("Similar Movies", details.Similar))
	}
	return sb.String()
}

// FormatEntries formats a favorites or watchlist list
func (f *ConsoleFormatter) FormatEntries(kind library.ListKind, entries []library.Entry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("Your %s is empty\n", kind)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d %s):\n\n", kind.Title(), len(entries), plural(len(entries), "movie"))

	for i, entry := range entries {
		prefix, indent := branch(i == len(entries)-1)
		fmt.Fprintf(&sb, "%s── %s [%d]\n", prefix, entry.Title, entry.MovieID)
		if !entry.AddedAt.IsZero() {
			fmt.Fprintf(&sb, "%sAdded: %s\n", indent, entry.AddedAt.Format(dateFormat))
		}
		if f.showPosters {
			fmt.Fprintf(&sb, "%sPoster: %s\n", indent, f.images.URL(entry.PosterPath, f.posterSize))
		}
	}
	return sb.String()
}

// FormatRatings formats the user's ratings
func (f *ConsoleFormatter) FormatRatings(ratings []library.Rating) string {
	if len(ratings) == 0 {
		return "You have not rated any movies yet\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nRatings (%d):\n\n", len(ratings))

	for i, rating := range ratings {
		prefix, indent := branch(i == len(ratings)-1)
		fmt.Fprintf(&sb, "%s── Movie %d: %g/10\n", prefix, rating.MovieID, rating.Rating)
		if rating.Review != "" {
			fmt.Fprintf(&sb, "%s%s\n", indent, rating.Review)
		}
		if !rating.CreatedAt.IsZero() {
			fmt.Fprintf(&sb, "%sRated: %s\n", indent, rating.CreatedAt.Format(dateFormat))
		}
	}
	return sb.String()
}

// FormatUser formats the profile page
func (f *ConsoleFormatter) FormatUser(user *session.User, genres map[int]string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s\n\n", user.DisplayName())
	fmt.Fprintf(&sb, "Username: %s\n", user.Username)
	fmt.Fprintf(&sb, "Email:    %s\n", user.Email)
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "Joined:   %s\n", user.CreatedAt.Format("January 2006"))
	}
	if user.Profile.Bio != "" {
		fmt.Fprintf(&sb, "Bio:      %s\n", user.Profile.Bio)
	}

	if ids := user.Preferences.FavoriteGenres; len(ids) > 0 {
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			if name, ok := genres[id]; ok {
				names = append(names, name)
			} else {
				names = append(names, fmt.Sprintf("#%d", id))
			}
		}
		fmt.Fprintf(&sb, "Genres:   %s\n", strings.Join(names, ", "))
	}
	return sb.String()
}

// FormatStats formats library counts
func (f *ConsoleFormatter) FormatStats(stats library.Stats) string {
	var sb strings.Builder
	sb.WriteString("\nLibrary Statistics:\n")
	fmt.Fprintf(&sb, "- Favorites: %d\n", stats.Favorites)
	fmt.Fprintf(&sb, "- Watchlist: %d\n", stats.Watchlist)
	fmt.Fprintf(&sb, "- Ratings:   %d\n", stats.Ratings)
	return sb.String()
}

// FormatGenres formats the genre list
func (f *ConsoleFormatter) FormatGenres(genres []catalog.Genre) string {
	if len(genres) == 0 {
		return "No genres available\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nGenres (%d):\n\n", len(genres))
	for _, genre := range genres {
		fmt.Fprintf(&sb, "  • %s (ID: %d)\n", genre.Name, genre.ID)
	}
	return sb.String()
}

// FormatExport formats a Radarr export summary
func (f *ConsoleFormatter) FormatExport(summary radarr.ExportSummary, dryRun bool) string {
	var sb strings.Builder

	heading := "Radarr export"
	if dryRun {
		heading = "[DRY RUN] Radarr export"
	}
	fmt.Fprintf(&sb, "\n%s (%d %s):\n\n", heading, len(summary.Results), plural(len(summary.Results), "movie"))

	for i, result := range summary.Results {
		prefix, indent := branch(i == len(summary.Results)-1)
		fmt.Fprintf(&sb, "%s── %s [%d]: %s\n", prefix, result.Title, result.MovieID, result.Outcome)
		if result.Err != nil {
			fmt.Fprintf(&sb, "%sError: %v\n", indent, result.Err)
		}
	}

	fmt.Fprintf(&sb, "\nAdded: %d | Already present: %d | Would add: %d | Failed: %d\n",
		summary.Count(radarr.OutcomeAdded),
		summary.Count(radarr.OutcomeExists),
		summary.Count(radarr.OutcomeWouldAdd),
		summary.Count(radarr.OutcomeFailed))
	return sb.String()
}
