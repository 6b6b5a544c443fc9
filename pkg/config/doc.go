// Package config loads kitshelf settings from a TOML file and the
// environment.
//
// The file lives at $XDG_CONFIG_HOME/kitshelf/config.toml (falling back to
// ~/.config/kitshelf/config.toml). A missing file is not an error: [Load]
// returns [Default] with environment overrides applied.
//
//	[github]
//	token = "ghp_..."
//
//	[refresh]
//	ttl = "12h"
//	pacing = "100ms"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[fallbacks]
//	vuejs = "core"
//
// GITHUB_TOKEN, KITSHELF_REDIS_ADDR and KITSHELF_MONGO_URI override the
// corresponding file values when set.
package config
