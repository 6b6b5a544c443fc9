package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	kerrors "github.com/kitshelf/kitshelf/pkg/errors"
	"github.com/kitshelf/kitshelf/pkg/repostats"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Environment variables that override file settings.
const (
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvRedisAddr   = "KITSHELF_REDIS_ADDR"
	EnvMongoURI    = "KITSHELF_MONGO_URI"
)

const (
	DefaultTTL        = 12 * time.Hour
	DefaultPacing     = 100 * time.Millisecond
	DefaultAttempts   = 1
	DefaultServerAddr = "127.0.0.1:8080"
)

// GitHubConfig configures the stats fetcher.
type GitHubConfig struct {
	Token    string `toml:"token"`
	BaseURL  string `toml:"base_url"`
	Attempts int    `toml:"attempts"` // tries per fetch for transient errors
}

// RefreshConfig configures the enrichment pass.
type RefreshConfig struct {
	TTL    time.Duration `toml:"ttl"`
	Pacing time.Duration `toml:"pacing"`
}

// CacheConfig selects and configures the stats slot backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	Slot          string `toml:"slot"`
	Prefix        string `toml:"prefix"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CatalogConfig points at an optional catalog file.
type CatalogConfig struct {
	Path string `toml:"path"` // empty uses the built-in catalog
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Config holds the kitshelf configuration.
type Config struct {
	GitHub    GitHubConfig      `toml:"github"`
	Refresh   RefreshConfig     `toml:"refresh"`
	Cache     CacheConfig       `toml:"cache"`
	Catalog   CatalogConfig     `toml:"catalog"`
	Server    ServerConfig      `toml:"server"`
	Fallbacks map[string]string `toml:"fallbacks"` // merged over the built-in table
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		GitHub: GitHubConfig{Attempts: DefaultAttempts},
		Refresh: RefreshConfig{
			TTL:    DefaultTTL,
			Pacing: DefaultPacing,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Slot:    repostats.DefaultSlot,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// FallbackTable returns the built-in fallbacks with the configured
// overrides applied.
func (c Config) FallbackTable() repostats.Fallbacks {
	return repostats.DefaultFallbacks().With(c.Fallbacks)
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kitshelf", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kitshelf", "config.toml"), nil
}

// Load reads config from path, or from [Path] when path is empty.
// Returns Default() with env overrides if the file doesn't exist.
// Returns an error only if the file exists but is invalid.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return finish(Default())
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		return finish(cfg)
	case err != nil:
		return Default(), kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "read config file")
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), kerrors.New(kerrors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return finish(cfg)
}

func finish(cfg Config) (Config, error) {
	applyEnvOverrides(&cfg)
	if err := cfg.normalize(); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvGitHubToken); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		cfg.Cache.MongoURI = v
	}
}

// normalize expands ~ in paths and fills zero values with defaults.
func (c *Config) normalize() error {
	def := Default()
	if c.GitHub.Attempts == 0 {
		c.GitHub.Attempts = def.GitHub.Attempts
	}
	if c.Refresh.TTL == 0 {
		c.Refresh.TTL = def.Refresh.TTL
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = def.Cache.Backend
	}
	if c.Cache.Slot == "" {
		c.Cache.Slot = def.Cache.Slot
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}

	var err error
	if c.Cache.Dir, err = expandPath(c.Cache.Dir); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "cache.dir")
	}
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "catalog.path")
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}
