package repostats

import (
	"context"
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"

	"github.com/kitshelf/kitshelf/pkg/cache"
	"github.com/kitshelf/kitshelf/pkg/errors"
	"github.com/kitshelf/kitshelf/pkg/observability"
)

// DefaultSlot is the cache key holding the stats map.
const DefaultSlot = "github-repo-stats-cache"

// Store reads and writes the stats map in a single cache slot.
type Store struct {
	backend cache.Cache
	slot    string
	logger  *log.Logger
}

// NewStore creates a Store over backend. An empty slot uses [DefaultSlot];
// a nil logger discards output.
func NewStore(backend cache.Cache, slot string, logger *log.Logger) *Store {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	if slot == "" {
		slot = DefaultSlot
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Store{backend: backend, slot: slot, logger: logger}
}

// Slot returns the cache key the store uses.
func (s *Store) Slot() string { return s.slot }

// Load reads the stats map. Missing, unreadable or corrupt data yields an
// empty map; failures are logged, never returned.
func (s *Store) Load(ctx context.Context) Map {
	m, err := s.Read(ctx)
	if err != nil {
		s.logger.Warn("stats cache unreadable, starting empty", "slot", s.slot, "err", err)
		return Map{}
	}
	return m
}

// Read is like [Store.Load] but reports read and decode failures.
// A missing slot is not an error.
func (s *Store) Read(ctx context.Context) (Map, error) {
	data, ok, err := s.backend.Get(ctx, s.slot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCachePersistence, err, "read slot %s", s.slot)
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, s.slot)
		return Map{}, nil
	}
	observability.Cache().OnCacheHit(ctx, s.slot)

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCachePersistence, err, "decode slot %s", s.slot)
	}
	if m == nil {
		m = Map{}
	}
	return m, nil
}

// Save replaces the whole slot with m.
func (s *Store) Save(ctx context.Context, m Map) error {
	if m == nil {
		m = Map{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCachePersistence, err, "encode slot %s", s.slot)
	}
	if err := s.backend.Set(ctx, s.slot, data, 0); err != nil {
		return errors.Wrap(errors.ErrCodeCachePersistence, err, "write slot %s", s.slot)
	}
	observability.Cache().OnCacheSet(ctx, s.slot, len(data))
	return nil
}

// Clear removes the slot.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.slot); err != nil {
		return errors.Wrap(errors.ErrCodeCachePersistence, err, "delete slot %s", s.slot)
	}
	return nil
}
