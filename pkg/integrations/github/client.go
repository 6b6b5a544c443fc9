package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kitshelf/kitshelf/pkg/buildinfo"
	kerrors "github.com/kitshelf/kitshelf/pkg/errors"
	"github.com/kitshelf/kitshelf/pkg/httputil"
	"github.com/kitshelf/kitshelf/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

const defaultRetryDelay = time.Second

// Client provides access to the GitHub API for repository popularity stats.
type Client struct {
	*integrations.Client
	baseURL    string
	attempts   int
	retryDelay time.Duration
}

type clientConfig struct {
	baseURL    string
	attempts   int
	retryDelay time.Duration
	http       *http.Client
}

// Option configures a [Client].
type Option func(*clientConfig)

// WithBaseURL points the client at a different API root, such as a
// GitHub Enterprise instance or a test server.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithAttempts sets how many times a retryable failure (5xx, transport
// error) is attempted within one fetch. Values below 1 mean 1.
func WithAttempts(n int) Option {
	return func(c *clientConfig) { c.attempts = max(n, 1) }
}

// WithRetryDelay sets the initial delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *clientConfig) { c.retryDelay = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *clientConfig) { c.http = h }
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate limits).
func NewClient(token string, opts ...Option) *Client {
	cfg := clientConfig{
		baseURL:    DefaultBaseURL,
		attempts:   1,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": buildinfo.UserAgent(),
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		Client:     integrations.NewClient(cfg.http, headers),
		baseURL:    cfg.baseURL,
		attempts:   cfg.attempts,
		retryDelay: cfg.retryDelay,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchStats retrieves the star and fork counts of a repository.
//
// A missing repository yields an error with code
// [kerrors.ErrCodeRepositoryNotFound] that also wraps [integrations.ErrNotFound].
// Rate limiting yields [kerrors.ErrCodeRateLimited]; every other failure
// yields [kerrors.ErrCodeNetwork].
func (c *Client) FetchStats(ctx context.Context, id RepoID) (*RepoStats, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, id.Owner, id.Repo)

	var data repoResponse
	err := httputil.Retry(ctx, c.attempts, c.retryDelay, func() error {
		return c.Get(ctx, url, &data)
	})
	if err != nil {
		return nil, classify(err, id)
	}
	return &RepoStats{
		Stars: max(data.Stars, 0),
		Forks: max(data.Forks, 0),
	}, nil
}

func classify(err error, id RepoID) error {
	var rl *kerrors.RateLimitedError
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return kerrors.Wrap(kerrors.ErrCodeRepositoryNotFound, err, "github repo %s", id.Key())
	case errors.As(err, &rl):
		return kerrors.Wrap(kerrors.ErrCodeRateLimited, err, "github repo %s", id.Key())
	default:
		return kerrors.Wrap(kerrors.ErrCodeNetwork, err, "github repo %s", id.Key())
	}
}
