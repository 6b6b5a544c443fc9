// Package cli implements the kitshelf command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kitshelf/kitshelf/pkg/buildinfo"
	"github.com/kitshelf/kitshelf/pkg/cache"
	"github.com/kitshelf/kitshelf/pkg/catalog"
	"github.com/kitshelf/kitshelf/pkg/config"
	"github.com/kitshelf/kitshelf/pkg/enrich"
	"github.com/kitshelf/kitshelf/pkg/errors"
	"github.com/kitshelf/kitshelf/pkg/integrations/github"
	"github.com/kitshelf/kitshelf/pkg/observability"
	"github.com/kitshelf/kitshelf/pkg/repostats"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "kitshelf"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Kitshelf keeps a starter-kit catalog's GitHub stats current",
		Long:         `Kitshelf serves a catalog of starter kits and enriches each entry with live GitHub star and fork counts, cached between runs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				registerLogHooks(c.Logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/kitshelf/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "keep stats in memory only")

	root.AddCommand(c.refreshCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Application Wiring
// =============================================================================

// app bundles the components a command works with.
type app struct {
	cfg      config.Config
	backend  cache.Cache
	store    *repostats.Store
	client   *github.Client
	enricher *enrich.Enricher
}

// open loads the configuration and wires the stats pipeline.
// The caller must Close the returned app.
func (c *CLI) open(ctx context.Context) (*app, error) {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	backend, err := openBackend(ctx, cfg.Cache, c.noCache)
	if err != nil {
		return nil, err
	}

	opts := []github.Option{github.WithAttempts(cfg.GitHub.Attempts)}
	if cfg.GitHub.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(cfg.GitHub.BaseURL))
	}
	if cfg.GitHub.Token == "" {
		logger.Debug("no GitHub token configured, using unauthenticated rate limit")
	}
	client := github.NewClient(cfg.GitHub.Token, opts...)
	store := repostats.NewStore(backend, cfg.Cache.Slot, logger)

	enricher, err := enrich.New(enrich.Options{
		Catalog:   cat,
		Fetcher:   client,
		Store:     store,
		Fallbacks: cfg.FallbackTable(),
		TTL:       cfg.Refresh.TTL,
		Pacing:    cfg.Refresh.Pacing,
		Logger:    logger,
	})
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	logger.Debug("pipeline ready",
		"kits", len(cat),
		"backend", backendName(cfg.Cache, c.noCache),
		"slot", store.Slot(),
		"ttl", enricher.TTL())

	return &app{
		cfg:      cfg,
		backend:  backend,
		store:    store,
		client:   client,
		enricher: enricher,
	}, nil
}

// Close stops the enricher and releases the cache backend.
func (a *app) Close() error {
	a.enricher.Stop()
	return a.backend.Close()
}

// loadCatalog returns the configured catalog file, or the built-in one.
func loadCatalog(cfg config.CatalogConfig) (catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.Path)
}

// openBackend connects the configured slot backend.
func openBackend(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	var (
		backend cache.Cache
		err     error
	)
	switch backendName(cfg, noCache) {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendFile:
		dir := cfg.Dir
		if dir == "" {
			if dir, err = cacheDir(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeCachePersistence, err, "resolve cache dir")
			}
		}
		backend, err = cache.NewFileCache(dir)
	case config.BackendRedis:
		backend, err = cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case config.BackendMongo:
		backend, err = cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCachePersistence, err, "open %s cache", cfg.Backend)
	}
	return cache.Scoped(backend, cfg.Prefix), nil
}

func backendName(cfg config.CacheConfig, noCache bool) string {
	if noCache {
		return config.BackendNone
	}
	return cfg.Backend
}

// registerLogHooks routes observability events to logger at debug level.
func registerLogHooks(logger *log.Logger) {
	h := &logHooks{logger: logger.WithPrefix("hooks")}
	observability.SetEnrichHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/kitshelf/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
