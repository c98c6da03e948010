// Package batch rates a roster of divers concurrently.
package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adrenaline-dev/divescout/pkg/profile"
	"github.com/adrenaline-dev/divescout/pkg/rating"
)

// DefaultWorkers bounds concurrent profile loads when the caller passes
// zero. The results site rate limiter serializes same-domain requests
// anyway, so a small pool suffices.
const DefaultWorkers = 4

// Loader fetches and parses one diver's profile. pkg/divemeets.Client.Fetch
// satisfies this.
type Loader func(ctx context.Context, diverID string) (*profile.Snapshot, error)

// Result is the outcome for one diver ID. Err is set when the load
// failed; the snapshot and rating are then absent.
type Result struct {
	DiverID  string
	Snapshot *profile.Snapshot
	Rating   rating.Rating
	Err      error
}

// Rate loads and rates every diver ID with a bounded worker pool. Results
// come back in input order; a failed ID records its error without
// affecting the others.
func Rate(ctx context.Context, diverIDs []string, load Loader, workers int, logger *slog.Logger) []Result {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	calc := rating.NewCalculator()
	results := make([]Result, len(diverIDs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, id := range diverIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res := Result{DiverID: id}
			snap, err := load(ctx, id)
			if err != nil {
				logger.InfoContext(ctx, "diver load failed", "diver_id", id, "error", err)
				res.Err = err
			} else {
				res.Snapshot = snap
				res.Rating = calc.Compute(snap.DiveStatistics)
			}
			results[i] = res
		}(i, id)
	}
	wg.Wait()

	return results
}
