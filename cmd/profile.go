package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/reelkeeper/session"
)

var (
	bio            string
	favoriteGenres []int
)

// profileCmd groups profile commands
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your name, bio or favorite genres",
	Long: `Update your profile. Only the flags you pass are changed; everything else
keeps its current value.`,
	RunE: runProfileUpdate,
}

var profileStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count your favorites, watchlist and ratings",
	RunE:  runProfileStats,
}

func init() {
	profileUpdateCmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	profileUpdateCmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	profileUpdateCmd.Flags().StringVar(&bio, "bio", "", "short bio")
	profileUpdateCmd.Flags().IntSliceVar(&favoriteGenres, "genres", nil, "favorite genre ids (see 'reelkeeper genres')")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd, profileStatsCmd)
	rootCmd.AddCommand(profileCmd)
}

// genreNames maps genre ids to names, or returns an empty map when the
// catalog is unavailable
func genreNames(cmd *cobra.Command) map[int]string {
	names := make(map[int]string)
	genres, err := movies.Genres(cmd.Context())
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load genres")
		return names
	}
	for _, g := range genres {
		names[g.ID] = g.Name
	}
	return names
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	if err := requireLogin("view your profile"); err != nil {
		return err
	}

	printOut(cmd, formatter.FormatUser(sess.User(), genreNames(cmd)))
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	if err := requireLogin("update your profile"); err != nil {
		return err
	}

	data := session.ProfileDataFrom(sess.User())
	flags := cmd.Flags()
	if flags.Changed("first-name") {
		data.FirstName = firstName
	}
	if flags.Changed("last-name") {
		data.LastName = lastName
	}
	if flags.Changed("bio") {
		data.Bio = bio
	}
	if flags.Changed("genres") {
		data.FavoriteGenres = favoriteGenres
	}

	if cfg.Safety.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "[DRY RUN] Would update profile: %+v\n", data)
		return nil
	}

	message, err := manager.UpdateProfile(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	printMessage(cmd, message, "Profile updated")
	return nil
}

func runProfileStats(cmd *cobra.Command, args []string) error {
	stats, err := lib.Stats(cmd.Context())
	if err != nil {
		return err
	}

	printOut(cmd, formatter.FormatStats(stats))
	return nil
}
