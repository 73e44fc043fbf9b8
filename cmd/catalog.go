package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/reelkeeper/catalog"
	"github.com/s0up4200/reelkeeper/filter"
	"github.com/s0up4200/reelkeeper/library"
)

var (
	page        int
	searchGenre int
	searchYear  int
	sortBy      string
	searchExpr  string
	searchPre   string
)

// homeCmd represents the home command
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the popular, top rated, now playing and upcoming lists",
	Args:  cobra.NoArgs,
	RunE:  runHome,
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search movies by title, or discover by genre and year",
	Long: `Search the catalog. A query searches by title; without one, --genre and
--year discover movies sorted by --sort.

Examples:
  reelkeeper search "blade runner"
  reelkeeper search --genre 878 --year 1982
  reelkeeper search alien --filter 'VoteAverage > 7'`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

// genresCmd represents the genres command
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List movie genres",
	Args:  cobra.NoArgs,
	RunE:  runGenres,
}

// movieCmd represents the movie command
var movieCmd = &cobra.Command{
	Use:   "movie <movie-id>",
	Short: "Show movie details and similar movies",
	Args:  cobra.ExactArgs(1),
	RunE:  runMovie,
}

func init() {
	for _, list := range catalog.Lists {
		listCmd := &cobra.Command{
			Use:   string(list),
			Short: fmt.Sprintf("Show %s movies", strings.ToLower(list.Title())),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCatalogList(cmd, list)
			},
		}
		listCmd.Flags().IntVar(&page, "page", 1, "result page")
		rootCmd.AddCommand(listCmd)
	}

	searchCmd.Flags().IntVar(&page, "page", 1, "result page")
	searchCmd.Flags().IntVarP(&searchGenre, "genre", "g", 0, "genre id (see 'reelkeeper genres')")
	searchCmd.Flags().IntVarP(&searchYear, "year", "y", 0, "release year")
	searchCmd.Flags().StringVar(&sortBy, "sort", catalog.DefaultSortBy, "sort order for discovery")
	searchCmd.Flags().StringVarP(&searchExpr, "filter", "f", "", "filter expression applied to the results")
	searchCmd.Flags().StringVarP(&searchPre, "preset", "p", "", "use a preset filter from config")

	rootCmd.AddCommand(homeCmd, searchCmd, genresCmd, movieCmd)
}

func runHome(cmd *cobra.Command, args []string) error {
	home := movies.Home(cmd.Context(), cfg.Catalog.HomeLimit)
	printOut(cmd, formatter.FormatHome(home))
	return nil
}

func runCatalogList(cmd *cobra.Command, list catalog.List) error {
	result, err := movies.List(cmd.Context(), list, page)
	if err != nil {
		logger.Warn().Err(err).Str("list", string(list)).Msg("Failed to load list")
		result = &catalog.Page{Page: page}
	}

	printOut(cmd, formatter.FormatPage(list.Title(), result))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	f, err := getFilterExpression(searchExpr, searchPre)
	if err != nil {
		return err
	}

	opts := catalog.SearchOptions{
		Query:  strings.Join(args, " "),
		Genre:  searchGenre,
		Year:   searchYear,
		SortBy: sortBy,
		Page:   page,
	}
	if strings.TrimSpace(opts.Query) == "" && opts.Genre == 0 && opts.Year == 0 {
		return fmt.Errorf("provide a query, --genre or --year")
	}

	result, err := movies.Search(cmd.Context(), opts)
	if err != nil {
		logger.Warn().Err(err).Str("query", opts.Query).Msg("Search failed")
		result = &catalog.Page{Page: page, Results: []catalog.Movie{}}
	}

	result.Results = filter.Apply(f, result.Results, filter.FromMovie)

	heading := "Search Results"
	if opts.Query != "" {
		heading = fmt.Sprintf("Results for %q", opts.Query)
	}
	printOut(cmd, formatter.FormatPage(heading, result))
	return nil
}

func runGenres(cmd *cobra.Command, args []string) error {
	genres, err := movies.Genres(cmd.Context())
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load genres")
		genres = nil
	}

	printOut(cmd, formatter.FormatGenres(genres))
	return nil
}

func runMovie(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	details, err := movies.Details(cmd.Context(), id, cfg.Catalog.SimilarLimit)
	if err != nil {
		logger.Warn().Err(err).Int("movie_id", id).Msg("Failed to load movie")
		fmt.Fprintln(cmd.OutOrStdout(), "Movie not found")
		return nil
	}

	var favorite, watchlisted bool
	if sess.IsAuthenticated() {
		for _, kind := range library.Kinds {
			if _, err := lib.FetchAll(cmd.Context(), kind); err != nil {
				logger.Debug().Err(err).Str("list", string(kind)).Msg("Failed to load list")
			}
		}
		favorite = lib.Contains(library.Favorites, id)
		watchlisted = lib.Contains(library.Watchlist, id)
	}

	printOut(cmd, formatter.FormatDetails(details, favorite, watchlisted))
	return nil
}
