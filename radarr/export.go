package radarr

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/reelkeeper/library"
)

// DefaultConcurrency is the number of entries exported at once
const DefaultConcurrency = 5

// Outcome describes what happened to one exported entry
type Outcome string

const (
	OutcomeAdded    Outcome = "added"
	OutcomeExists   Outcome = "exists"
	OutcomeWouldAdd Outcome = "would add"
	OutcomeFailed   Outcome = "failed"
)

// ExportResult is the per-entry result of an export
type ExportResult struct {
	MovieID  int
	Title    string
	Outcome  Outcome
	RadarrID int64
	Err      error
}

// ExportSummary aggregates the results of an export
type ExportSummary struct {
	Results []ExportResult
}

// Count returns the number of results with the given outcome
func (s ExportSummary) Count(outcome Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == outcome {
			n++
		}
	}
	return n
}

// Failed returns the results that could not be exported
func (s ExportSummary) Failed() []ExportResult {
	var failed []ExportResult
	for _, r := range s.Results {
		if r.Outcome == OutcomeFailed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Export pushes library entries to Radarr. Movies already present are
// skipped. Individual failures are recorded in the summary and do not stop
// the remaining entries.
func (c *Client) Export(ctx context.Context, entries []library.Entry) ExportSummary {
	var (
		mu      sync.Mutex
		summary ExportSummary
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.options.Concurrency)

	for _, entry := range entries {
		g.Go(func() error {
			result := c.exportEntry(ctx, entry)

			mu.Lock()
			summary.Results = append(summary.Results, result)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].MovieID < summary.Results[j].MovieID
	})
	return summary
}

func (c *Client) exportEntry(ctx context.Context, entry library.Entry) ExportResult {
	result := ExportResult{MovieID: entry.MovieID, Title: entry.Title}
	tmdbID := int64(entry.MovieID)

	existing, err := c.FindByTMDBID(ctx, tmdbID)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		c.logger.Warn().Err(err).Int("movie_id", entry.MovieID).Msg("Radarr lookup failed")
		return result
	}
	if existing != nil {
		result.Outcome = OutcomeExists
		result.RadarrID = existing.ID
		c.logger.Debug().Int("movie_id", entry.MovieID).Msg("Movie already in Radarr")
		return result
	}

	if c.options.DryRun {
		result.Outcome = OutcomeWouldAdd
		c.logger.Info().Int("movie_id", entry.MovieID).Str("title", entry.Title).Msg("[DRY RUN] Would add movie to Radarr")
		return result
	}

	added, err := c.AddMovie(ctx, tmdbID, entry.Title)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		c.logger.Error().Err(err).Int("movie_id", entry.MovieID).Msg("Failed to add movie to Radarr")
		return result
	}

	result.Outcome = OutcomeAdded
	if added != nil {
		result.RadarrID = added.ID
	}
	return result
}
