package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var review string

// rateCmd represents the rate command
var rateCmd = &cobra.Command{
	Use:   "rate <movie-id> <rating>",
	Short: "Rate a movie from 1 to 10",
	Args:  cobra.ExactArgs(2),
	RunE:  runRate,
}

// ratingsCmd represents the ratings command
var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "List your ratings",
	Args:  cobra.NoArgs,
	RunE:  runRatings,
}

func init() {
	rateCmd.Flags().StringVarP(&review, "review", "r", "", "optional review text")

	rootCmd.AddCommand(rateCmd, ratingsCmd)
}

func runRate(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	rating, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid rating: %s", args[1])
	}

	if cfg.Safety.DryRun {
		if err := requireLogin("rate movies"); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[DRY RUN] Would rate movie %d %g/10\n", id, rating)
		return nil
	}

	resp, err := lib.Rate(cmd.Context(), id, rating, review)
	if err != nil {
		return err
	}
	printMessage(cmd, resp.Message, "Rating saved")
	return nil
}

func runRatings(cmd *cobra.Command, args []string) error {
	ratings, err := lib.Ratings(cmd.Context())
	if err != nil {
		return err
	}

	printOut(cmd, formatter.FormatRatings(ratings))
	return nil
}
