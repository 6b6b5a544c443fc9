package enrich

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kitshelf/kitshelf/pkg/catalog"
	kerrors "github.com/kitshelf/kitshelf/pkg/errors"
	"github.com/kitshelf/kitshelf/pkg/integrations"
	"github.com/kitshelf/kitshelf/pkg/integrations/github"
	"github.com/kitshelf/kitshelf/pkg/observability"
	"github.com/kitshelf/kitshelf/pkg/repostats"
)

// pass holds the state of one refresh.
type pass struct {
	e      *Enricher
	id     string
	start  time.Time
	logger *log.Logger
	cached repostats.Map

	mu      sync.Mutex
	staged  repostats.Map
	fetches atomic.Int64
}

// Refresh runs one pass over the catalog and publishes the result.
//
// Per-entry failures are not errors: they are reported in
// [Result.Outcomes] and the entry keeps its prior counters. Refresh returns
// an error only when ctx is cancelled or the Enricher was stopped, in which
// case nothing is published. A cache write failure is logged and reported in
// [Result.SaveErr]; the snapshot is still published.
func (e *Enricher) Refresh(ctx context.Context) (Result, error) {
	cat, err := e.begin()
	if err != nil {
		return Result{}, err
	}

	p := &pass{
		e:      e,
		id:     uuid.NewString(),
		start:  e.now(),
		staged: repostats.Map{},
	}
	p.logger = e.logger.With("pass", p.id[:8])

	hooks := observability.Enrich()
	hooks.OnPassStart(ctx, p.id, len(cat))
	p.logger.Debug("refresh started", "entries", len(cat))

	p.cached = e.store.Load(ctx)
	outcomes := p.run(ctx, cat)

	res := Result{
		PassID:   p.id,
		Catalog:  cat,
		Outcomes: outcomes,
		Fetches:  int(p.fetches.Load()),
		Started:  p.start,
	}

	if len(p.staged) > 0 {
		merged := p.cached.Clone()
		merged.Merge(p.staged)
		// fetched stats are worth keeping even when the pass was cancelled
		if err := e.store.Save(context.WithoutCancel(ctx), merged); err != nil {
			p.logger.Error("stats cache write failed", "err", err)
			res.SaveErr = err
		}
	}
	res.Duration = e.now().Sub(p.start)

	err = ctx.Err()
	if err == nil && !e.publish(res) {
		err = ErrStopped
	} else if err != nil {
		e.abandon()
	}
	hooks.OnPassComplete(ctx, p.id, res.Fetches, res.Duration, err)
	if err != nil {
		p.logger.Debug("refresh abandoned", "err", err)
		return res, err
	}

	p.logger.Info("refresh complete",
		"updated", res.Updated(),
		"fetched", res.Count(StateFetched)+res.Count(StateFallbackFetched),
		"cached", res.Count(StateCacheHit)+res.Count(StateFallbackCacheHit),
		"failed", res.Count(StateNotFound)+res.Count(StateTransient)+res.Count(StateUnresolvable),
		"requests", res.Fetches,
		"duration", res.Duration.Round(time.Millisecond))
	return res, nil
}

func (e *Enricher) abandon() {
	e.mu.Lock()
	e.running--
	e.mu.Unlock()
}

// run settles every entry of cat in place and returns the outcomes in
// catalog order. Each task writes only its own slot.
func (p *pass) run(ctx context.Context, cat catalog.Catalog) []Outcome {
	outcomes := make([]Outcome, len(cat))
	var g errgroup.Group
	position := 0

	for i := range cat {
		entry := &cat[i]
		outcomes[i] = Outcome{ID: entry.ID}

		if entry.RepoURL == "" {
			outcomes[i].State = StateSkipped
			continue
		}
		id, err := github.ParseRepoURL(entry.RepoURL)
		if err != nil {
			p.logger.Warn("unresolvable repository URL", "kit", entry.ID, "url", entry.RepoURL)
			outcomes[i].State = StateUnresolvable
			outcomes[i].Err = err
			p.report(ctx, entry.RepoURL, StateUnresolvable)
			continue
		}
		if c, ok := p.fresh(id); ok {
			apply(entry, c)
			outcomes[i].State = StateCacheHit
			outcomes[i].Key = id.Key()
			p.report(ctx, id.Key(), StateCacheHit)
			continue
		}

		delay := time.Duration(position) * p.e.pacing
		position++
		g.Go(func() error {
			outcomes[i] = p.settle(ctx, entry, id, delay)
			p.report(ctx, id.Key(), outcomes[i].State)
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

// settle fetches the stats for one entry, falling back to the owner's
// alternate repository when the nominal one is not found.
func (p *pass) settle(ctx context.Context, entry *catalog.Entry, id github.RepoID, delay time.Duration) Outcome {
	out := Outcome{ID: entry.ID, Key: id.Key()}
	if err := sleep(ctx, delay); err != nil {
		out.State, out.Err = StateTransient, err
		return out
	}

	stats, err := p.fetch(ctx, id, &out)
	if err == nil {
		p.update(entry, id, stats)
		out.State = StateFetched
		return out
	}
	if !isNotFound(err) {
		p.logger.Error("fetching repository stats failed", "repo", id.Key(), "err", err)
		out.State, out.Err = StateTransient, err
		return out
	}

	p.logger.Warn("repository not found", "repo", id.Key())
	out.State, out.Err = StateNotFound, err

	fbRepo, ok := p.e.fallbacks.Lookup(id.Owner)
	if !ok {
		return out
	}
	fb := github.RepoID{Owner: id.Owner, Repo: fbRepo}
	out.Key = fb.Key()

	if c, ok := p.fresh(fb); ok {
		apply(entry, c)
		out.State, out.Err = StateFallbackCacheHit, nil
		return out
	}
	if fb == id {
		return out
	}

	p.logger.Debug("trying fallback repository", "repo", id.Key(), "fallback", fb.Key())
	stats, err = p.fetch(ctx, fb, &out)
	switch {
	case err == nil:
		p.update(entry, fb, stats)
		out.State, out.Err = StateFallbackFetched, nil
	case isNotFound(err):
		p.logger.Warn("fallback repository not found", "repo", fb.Key())
		out.Err = err
	default:
		p.logger.Error("fetching fallback stats failed", "repo", fb.Key(), "err", err)
		out.State, out.Err = StateTransient, err
	}
	return out
}

func (p *pass) fetch(ctx context.Context, id github.RepoID, out *Outcome) (*github.RepoStats, error) {
	p.fetches.Add(1)
	out.Fetches++
	return p.e.fetcher.FetchStats(ctx, id)
}

func (p *pass) fresh(id github.RepoID) (repostats.Entry, bool) {
	c, ok := p.cached.Get(id.Key())
	if !ok || !repostats.IsFresh(c, p.start, p.e.ttl) {
		return repostats.Entry{}, false
	}
	return c, true
}

// update writes stats onto the entry and stages them under id, stamped
// with the pass start time.
func (p *pass) update(entry *catalog.Entry, id github.RepoID, stats *github.RepoStats) {
	c := repostats.NewEntry(stats.Stars, stats.Forks, p.start)
	apply(entry, c)

	p.mu.Lock()
	p.staged.Put(id.Key(), c)
	p.mu.Unlock()
}

func (p *pass) report(ctx context.Context, key string, s State) {
	observability.Enrich().OnEntry(ctx, p.id, key, string(s))
}

func isNotFound(err error) bool {
	return errors.Is(err, integrations.ErrNotFound) ||
		kerrors.Is(err, kerrors.ErrCodeRepositoryNotFound)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
