package enrich

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kitshelf/kitshelf/pkg/catalog"
	kerrors "github.com/kitshelf/kitshelf/pkg/errors"
	"github.com/kitshelf/kitshelf/pkg/integrations/github"
	"github.com/kitshelf/kitshelf/pkg/repostats"
)

const (
	// DefaultTTL is how long cached stats stay fresh, and the period of
	// the refresh loop started by [Enricher.Start].
	DefaultTTL = 12 * time.Hour

	// DefaultPacing is the spacing between consecutive fetches in a pass.
	DefaultPacing = 100 * time.Millisecond
)

// ErrStopped is returned by Refresh once the Enricher has been stopped.
var ErrStopped = errors.New("enricher stopped")

// Fetcher retrieves live repository stats.
// [github.Client] is the production implementation.
type Fetcher interface {
	FetchStats(ctx context.Context, id github.RepoID) (*github.RepoStats, error)
}

// Store loads and saves the stats map as a whole.
// [repostats.Store] is the production implementation.
type Store interface {
	Load(ctx context.Context) repostats.Map
	Save(ctx context.Context, m repostats.Map) error
}

// Options configures an [Enricher].
type Options struct {
	Catalog   catalog.Catalog     // initial snapshot; copied
	Fetcher   Fetcher             // required
	Store     Store               // nil keeps stats in memory only
	Fallbacks repostats.Fallbacks // nil uses repostats.DefaultFallbacks
	TTL       time.Duration       // zero uses DefaultTTL
	Pacing    time.Duration       // zero issues every fetch at once
	Logger    *log.Logger         // nil discards output
	Now       func() time.Time    // nil uses time.Now
}

// Enricher keeps a catalog's star and fork counts current.
// It is safe for concurrent use.
type Enricher struct {
	fetcher   Fetcher
	store     Store
	fallbacks repostats.Fallbacks
	ttl       time.Duration
	pacing    time.Duration
	logger    *log.Logger
	now       func() time.Time

	mu        sync.Mutex
	snapshot  catalog.Catalog
	published bool
	running   int
	active    bool
	last      *Result
	subs      []chan Result

	loopCancel context.CancelFunc
	loopDone   chan struct{}
	trigger    chan struct{}
}

// New creates an Enricher. The catalog is copied; the caller's slice is
// never modified.
func New(opts Options) (*Enricher, error) {
	if opts.Fetcher == nil {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "enrich: fetcher is required")
	}
	if err := opts.Catalog.Validate(); err != nil {
		return nil, err
	}

	e := &Enricher{
		fetcher:   opts.Fetcher,
		store:     opts.Store,
		fallbacks: opts.Fallbacks,
		ttl:       opts.TTL,
		pacing:    max(opts.Pacing, 0),
		logger:    opts.Logger,
		now:       opts.Now,
		snapshot:  opts.Catalog.Clone(),
		active:    true,
	}
	if e.store == nil {
		e.store = &memoryStore{}
	}
	if e.fallbacks == nil {
		e.fallbacks = repostats.DefaultFallbacks()
	}
	if e.ttl <= 0 {
		e.ttl = DefaultTTL
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

// TTL returns the freshness window and refresh period.
func (e *Enricher) TTL() time.Duration { return e.ttl }

// Snapshot returns a copy of the latest published catalog and whether a
// pass is in progress or none has been published yet.
func (e *Enricher) Snapshot() (catalog.Catalog, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot.Clone(), e.loadingLocked()
}

// Last returns the most recently published result.
func (e *Enricher) Last() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return Result{}, false
	}
	return *e.last, true
}

// Subscribe returns a channel that receives every published result. A
// subscriber that falls behind misses results rather than blocking a pass.
// The channel is closed by [Enricher.Stop].
func (e *Enricher) Subscribe() <-chan Result {
	ch := make(chan Result, 1)
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		close(ch)
		return ch
	}
	e.subs = append(e.subs, ch)
	return ch
}

// Cached returns the current snapshot with every cached counter applied,
// fresh or not, without touching the network.
func (e *Enricher) Cached(ctx context.Context) catalog.Catalog {
	cached := e.store.Load(ctx)
	cat, _ := e.Snapshot()
	for i := range cat {
		if cat[i].RepoURL == "" {
			continue
		}
		id, err := github.ParseRepoURL(cat[i].RepoURL)
		if err != nil {
			continue
		}
		if c, ok := cached.Get(id.Key()); ok {
			apply(&cat[i], c)
			continue
		}
		if fb, ok := e.fallbacks.Lookup(id.Owner); ok {
			if c, ok := cached.Get(github.RepoID{Owner: id.Owner, Repo: fb}.Key()); ok {
				apply(&cat[i], c)
			}
		}
	}
	return cat
}

func (e *Enricher) loadingLocked() bool {
	return e.running > 0 || !e.published
}

func (e *Enricher) begin() (catalog.Catalog, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return nil, ErrStopped
	}
	e.running++
	return e.snapshot.Clone(), nil
}

// publish installs res as the current snapshot unless the Enricher was
// stopped while the pass ran.
func (e *Enricher) publish(res Result) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running--
	if !e.active {
		return false
	}
	e.snapshot = res.Catalog.Clone()
	e.published = true
	e.last = &res

	for _, ch := range e.subs {
		select {
		case ch <- res:
		default:
		}
	}
	return true
}

func apply(entry *catalog.Entry, c repostats.Entry) {
	entry.Stars = c.Stars
	entry.Forks = c.Forks
}

// memoryStore keeps the stats map for the lifetime of the Enricher.
type memoryStore struct {
	mu sync.Mutex
	m  repostats.Map
}

func (s *memoryStore) Load(context.Context) repostats.Map {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Clone()
}

func (s *memoryStore) Save(_ context.Context, m repostats.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = m.Clone()
	return nil
}
