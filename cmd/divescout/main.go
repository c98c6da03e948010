// Command divescout fetches diver profiles from the meet-results site and
// prints parsed statistics plus computed skill ratings as JSON.
//
// Usage:
//
//	divescout 12345
//	divescout https://secure.meetcontrol.com/divemeets/system/profile.php?number=12345
//	divescout -batch roster.txt
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/adrenaline-dev/divescout/pkg/batch"
	"github.com/adrenaline-dev/divescout/pkg/config"
	"github.com/adrenaline-dev/divescout/pkg/divemeets"
	"github.com/adrenaline-dev/divescout/pkg/httpcache"
	"github.com/adrenaline-dev/divescout/pkg/profile"
	"github.com/adrenaline-dev/divescout/pkg/rating"
)

// report is the JSON output for one diver.
type report struct {
	Profile *profile.Snapshot `json:"profile,omitempty"`
	Rating  rating.Rating     `json:"rating"`
	Error   string            `json:"error,omitempty"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	debug := flag.Bool("debug", false, "enable debug logging")
	verbose := flag.Bool("v", false, "verbose logging (same as -debug)")
	noCache := flag.Bool("no-cache", false, "disable HTTP caching")
	cacheTTL := flag.Duration("cache-ttl", cfg.CacheTTL, "cache time-to-live")
	rateOnly := flag.Bool("rate-only", false, "print only the skill rating, not the parsed profile")
	workers := flag.Int("workers", cfg.BatchWorkers, "concurrent fetches in batch mode")
	batchFile := flag.String("batch", "", "file of diver IDs (one per line) to rate as a roster")
	flag.Parse()

	if *batchFile == "" && flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: divescout [options] <diver-id-or-profile-url>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debug || *verbose || cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	var httpCache *httpcache.Cache
	if !*noCache {
		var err error
		if cfg.CacheDir != "" {
			httpCache, err = httpcache.NewWithPath(*cacheTTL, cfg.CacheDir)
		} else {
			httpCache, err = httpcache.New(*cacheTTL)
		}
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			defer func() {
				if err := httpCache.Close(); err != nil {
					logger.Warn("failed to close cache", "error", err)
				}
			}()
			logger.Debug("HTTP cache initialized", "ttl", cacheTTL.String())
		}
	}

	opts := []divemeets.Option{
		divemeets.WithLogger(logger),
		divemeets.WithTimeout(cfg.FetchTimeout),
	}
	if httpCache != nil {
		opts = append(opts, divemeets.WithHTTPCache(httpCache))
	}

	ctx := context.Background()
	client, err := divemeets.New(ctx, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}

	if *batchFile != "" {
		ids, err := readIDs(*batchFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		results := batch.Rate(ctx, ids, client.Fetch, *workers, logger)
		reports := make(map[string]report, len(results))
		for _, r := range results {
			reports[r.DiverID] = toReport(r, *rateOnly)
		}
		if err := outputJSON(reports); err != nil {
			fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	snap, err := client.Fetch(ctx, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := report{Rating: rating.NewCalculator().Compute(snap.DiveStatistics)}
	if !*rateOnly {
		out.Profile = snap
	}
	if err := outputJSON(out); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}

func toReport(r batch.Result, rateOnly bool) report {
	if r.Err != nil {
		return report{Error: r.Err.Error()}
	}
	out := report{Rating: r.Rating}
	if !rateOnly {
		out.Profile = r.Snapshot
	}
	return out
}

func readIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	return ids, scanner.Err()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
