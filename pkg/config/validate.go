package config

import (
	kerrors "github.com/kitshelf/kitshelf/pkg/errors"
)

// Validate checks field values and backend requirements.
func (c Config) Validate() error {
	if c.GitHub.Attempts < 1 {
		return invalid("github.attempts must be at least 1, got %d", c.GitHub.Attempts)
	}
	if c.GitHub.BaseURL != "" {
		if err := kerrors.ValidateURL(c.GitHub.BaseURL); err != nil {
			return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "github.base_url")
		}
	}
	if c.Refresh.TTL < 0 {
		return invalid("refresh.ttl must be positive, got %s", c.Refresh.TTL)
	}
	if c.Refresh.Pacing < 0 {
		return invalid("refresh.pacing cannot be negative, got %s", c.Refresh.Pacing)
	}
	if err := kerrors.ValidateSlotName(c.Cache.Slot); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return invalid("cache.backend %q requires cache.redis_addr or %s", BackendRedis, EnvRedisAddr)
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return invalid("cache.backend %q requires cache.mongo_uri or %s", BackendMongo, EnvMongoURI)
		}
	default:
		return invalid("invalid cache.backend %q: must be file, redis, mongo or none", c.Cache.Backend)
	}

	for owner, repo := range c.Fallbacks {
		if owner == "" {
			return invalid("fallbacks: empty owner for repo %q", repo)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return kerrors.New(kerrors.ErrCodeInvalidConfig, format, args...)
}
