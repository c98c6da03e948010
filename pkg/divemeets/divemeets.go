// Package divemeets fetches and parses diver profiles from the DiveMeets
// results site.
package divemeets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/adrenaline-dev/divescout/pkg/httpcache"
	"github.com/adrenaline-dev/divescout/pkg/profile"
)

// LeadingLink is the base for all relative links on the results site.
const LeadingLink = "https://secure.meetcontrol.com/divemeets/system/"

var diverIDPattern = regexp.MustCompile(`^\d+$`)

// Match returns true if the URL is a DiveMeets profile URL.
func Match(urlStr string) bool {
	lower := strings.ToLower(urlStr)
	return strings.Contains(lower, "meetcontrol.com") && strings.Contains(lower, "profile.php")
}

// ProfileURL returns the canonical profile URL for a bare diver ID.
func ProfileURL(diverID string) string {
	return LeadingLink + "profile.php?number=" + diverID
}

// DiverID extracts the numeric diver ID from a profile URL, or "" when the
// URL carries none.
func DiverID(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	id := u.Query().Get("number")
	if !diverIDPattern.MatchString(id) {
		return ""
	}
	return id
}

// Client handles DiveMeets requests.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache   httpcache.Cacher
	logger  *slog.Logger
	timeout time.Duration
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(httpCache httpcache.Cacher) Option {
	return func(c *config) { c.cache = httpCache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// New creates a DiveMeets client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default(), timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.timeout},
		cache:      cfg.cache,
		logger:     cfg.logger,
	}, nil
}

// Fetch retrieves a diver profile. The argument is either a bare numeric
// diver ID or a full profile link.
//
// A page that fetches cleanly but holds no recognizable profile returns
// profile.ErrProfileNotFound; callers treat that as "unlinked account" and
// proceed without rating data.
func (c *Client) Fetch(ctx context.Context, idOrLink string) (*profile.Snapshot, error) {
	urlStr := idOrLink
	if diverIDPattern.MatchString(idOrLink) {
		urlStr = ProfileURL(idOrLink)
	} else if !strings.HasPrefix(urlStr, "http") {
		return nil, fmt.Errorf("not a diver ID or profile link: %q", idOrLink)
	}

	diverID := DiverID(urlStr)
	c.logger.InfoContext(ctx, "fetching divemeets profile", "url", urlStr, "diver_id", diverID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, err
	}

	snap, err := Parse(body, urlStr)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.logger.InfoContext(ctx, "no profile on page", "url", urlStr, "diver_id", diverID)
		}
		return nil, err
	}
	if snap.DiverID == "" {
		snap.DiverID = diverID
	}

	c.logger.InfoContext(ctx, "parsed divemeets profile",
		"diver_id", snap.DiverID, "name", snap.Info.Name(), "dives", len(snap.DiveStatistics))
	return snap, nil
}
