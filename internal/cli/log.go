// Package cli implements the kitshelf command-line interface.
//
// This package provides commands for refreshing the starter-kit catalog's
// GitHub stats, querying and browsing the catalog, serving the HTTP API and
// managing the persistent stats cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - refresh: Run one enrichment pass and print per-kit results
//   - list: Query the catalog using cached stats only
//   - browse: Interactive catalog browser
//   - serve: Periodic refresh plus the HTTP API
//   - cache: Inspect or clear the stats cache slot
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes observability hooks to the logger. Loggers are passed through
// context.Context.
//
// # Example
//
//	import "github.com/kitshelf/kitshelf/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 12 kits (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks writes observability events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnPassStart(_ context.Context, passID string, entries int) {
	h.logger.Debug("pass start", "pass", shortID(passID), "entries", entries)
}

func (h *logHooks) OnEntry(_ context.Context, passID, repoKey, state string) {
	h.logger.Debug("entry", "pass", shortID(passID), "repo", repoKey, "state", state)
}

func (h *logHooks) OnPassComplete(_ context.Context, passID string, fetches int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("pass end", "pass", shortID(passID), "fetches", fetches, "duration", d, "err", err)
		return
	}
	h.logger.Debug("pass end", "pass", shortID(passID), "fetches", fetches, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "url", (&url.URL{Scheme: "https", Host: host, Path: path}).String())
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
