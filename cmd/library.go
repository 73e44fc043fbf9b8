package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/reelkeeper/filter"
	"github.com/s0up4200/reelkeeper/library"
	"github.com/s0up4200/reelkeeper/radarr"
)

func init() {
	favoritesCmd := newListCmd(library.Favorites, "Manage your favorite movies")
	watchlistCmd := newListCmd(library.Watchlist, "Manage movies you want to watch")
	watchlistCmd.AddCommand(newExportCmd())

	rootCmd.AddCommand(favoritesCmd, watchlistCmd)
}

func parseMovieID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id: %s", arg)
	}
	return id, nil
}

// entryFor builds a library entry, looking up the title and poster in the
// catalog when no title was given
func entryFor(cmd *cobra.Command, id int, title, poster string) (library.Entry, error) {
	entry := library.Entry{MovieID: id, Title: title, PosterPath: poster}
	if entry.Title != "" {
		return entry, nil
	}

	details, err := movies.Movie(cmd.Context(), id)
	if err != nil {
		return library.Entry{}, fmt.Errorf("failed to look up movie %d: %w", id, err)
	}
	entry.Title = details.Title
	if entry.PosterPath == "" {
		entry.PosterPath = details.PosterPath
	}
	return entry, nil
}

// newListCmd creates the list/add/remove/toggle commands for one collection
func newListCmd(kind library.ListKind, short string) *cobra.Command {
	var (
		filterExpr string
		preset     string
		title      string
		poster     string
	)

	parent := &cobra.Command{
		Use:   string(kind),
		Short: short,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List your %s", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := getFilterExpression(filterExpr, preset)
			if err != nil {
				return err
			}

			entries, err := lib.FetchAll(cmd.Context(), kind)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", kind, err)
			}

			entries = filter.Apply(f, entries, filter.FromEntry)
			printOut(cmd, formatter.FormatEntries(kind, entries))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")

	addCmd := &cobra.Command{
		Use:   "add <movie-id>",
		Short: fmt.Sprintf("Add a movie to your %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			if err := requireLogin(fmt.Sprintf("add movies to %s", kind)); err != nil {
				return err
			}

			entry, err := entryFor(cmd, id, title, poster)
			if err != nil {
				return err
			}

			if cfg.Safety.DryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "[DRY RUN] Would add %s to %s\n", entry.Title, kind)
				return nil
			}

			resp, err := lib.Add(cmd.Context(), kind, entry)
			if err != nil {
				return err
			}
			printMessage(cmd, resp.Message, fmt.Sprintf("Added %s to %s", entry.Title, kind))
			return nil
		},
	}
	addCmd.Flags().StringVar(&title, "title", "", "movie title (looked up when omitted)")
	addCmd.Flags().StringVar(&poster, "poster", "", "poster path")

	removeCmd := &cobra.Command{
		Use:   "remove <movie-id>",
		Short: fmt.Sprintf("Remove a movie from your %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}

			if cfg.Safety.DryRun {
				if err := requireLogin(fmt.Sprintf("remove movies from %s", kind)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[DRY RUN] Would remove movie %d from %s\n", id, kind)
				return nil
			}

			resp, err := lib.Remove(cmd.Context(), kind, id)
			if err != nil {
				return err
			}
			printMessage(cmd, resp.Message, fmt.Sprintf("Removed movie %d from %s", id, kind))
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <movie-id>",
		Short: fmt.Sprintf("Add or remove a movie from your %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			if err := requireLogin(fmt.Sprintf("update your %s", kind)); err != nil {
				return err
			}

			entry, err := entryFor(cmd, id, title, poster)
			if err != nil {
				return err
			}

			present, resp, err := lib.Toggle(cmd.Context(), kind, entry)
			if err != nil {
				return err
			}

			fallback := fmt.Sprintf("Removed %s from %s", entry.Title, kind)
			if present {
				fallback = fmt.Sprintf("Added %s to %s", entry.Title, kind)
			}
			printMessage(cmd, resp.Message, fallback)
			return nil
		},
	}
	toggleCmd.Flags().StringVar(&title, "title", "", "movie title (looked up when omitted)")
	toggleCmd.Flags().StringVar(&poster, "poster", "", "poster path")

	parent.AddCommand(listCmd, addCmd, removeCmd, toggleCmd)
	return parent
}

func newExportCmd() *cobra.Command {
	var (
		filterExpr string
		preset     string
	)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Add your watchlist to Radarr",
		Long: `Add every watchlist movie that is not yet in Radarr, using the quality
profile and root folder from the radarr section of the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.Radarr.Enabled {
				return fmt.Errorf("radarr export is disabled (set radarr.enabled in config)")
			}

			f, err := getFilterExpression(filterExpr, preset)
			if err != nil {
				return err
			}

			entries, err := lib.FetchAll(cmd.Context(), library.Watchlist)
			if err != nil {
				return fmt.Errorf("failed to load watchlist: %w", err)
			}
			entries = filter.Apply(f, entries, filter.FromEntry)

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to export")
				return nil
			}

			client, err := radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, radarr.Options{
				QualityProfileID: cfg.Radarr.QualityProfileID,
				RootFolder:       cfg.Radarr.RootFolder,
				SearchOnAdd:      cfg.Radarr.SearchOnAdd,
				Monitored:        true,
				DryRun:           cfg.Safety.DryRun,
			}, logger)
			if err != nil {
				return err
			}

			summary := client.Export(cmd.Context(), entries)
			printOut(cmd, formatter.FormatExport(summary, cfg.Safety.DryRun))

			if failed := len(summary.Failed()); failed > 0 {
				return fmt.Errorf("%d of %d movies failed to export", failed, len(summary.Results))
			}
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	exportCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	return exportCmd
}
