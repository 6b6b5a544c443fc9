package enrich

import (
	"time"

	"github.com/kitshelf/kitshelf/pkg/catalog"
)

// State is how a pass settled for one catalog entry.
type State string

const (
	StateSkipped          State = "skipped"            // no repository URL
	StateUnresolvable     State = "unresolvable"       // URL is not a GitHub repository
	StateCacheHit         State = "cache_hit"          // fresh cache entry reused
	StateFetched          State = "fetched"            // fetched from GitHub
	StateFallbackCacheHit State = "fallback_cache_hit" // fallback repository served from cache
	StateFallbackFetched  State = "fallback_fetched"   // fallback repository fetched
	StateNotFound         State = "not_found"          // repository and any fallback missing
	StateTransient        State = "transient"          // network, rate limit or server failure
)

// Updated reports whether the entry received fresh counters.
func (s State) Updated() bool {
	switch s {
	case StateCacheHit, StateFetched, StateFallbackCacheHit, StateFallbackFetched:
		return true
	}
	return false
}

// Outcome records what happened to one catalog entry during a pass.
type Outcome struct {
	ID      int    `json:"id"`
	State   State  `json:"state"`
	Key     string `json:"key,omitempty"` // cache key the counters came from
	Fetches int    `json:"fetches"`
	Err     error  `json:"-"`
}

// Result is the published outcome of one pass.
type Result struct {
	PassID   string          `json:"passId"`
	Catalog  catalog.Catalog `json:"-"`
	Outcomes []Outcome       `json:"outcomes"`
	Fetches  int             `json:"fetches"`
	Started  time.Time       `json:"started"`
	Duration time.Duration   `json:"duration"`
	SaveErr  error           `json:"-"`
}

// Count returns how many entries settled in state s.
func (r Result) Count(s State) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == s {
			n++
		}
	}
	return n
}

// Updated returns how many entries received fresh counters.
func (r Result) Updated() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State.Updated() {
			n++
		}
	}
	return n
}
