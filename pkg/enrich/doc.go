// Package enrich refreshes catalog popularity counters from GitHub.
//
// An [Enricher] owns a catalog snapshot, a stats store and a fetcher. Each
// call to [Enricher.Refresh] runs one pass:
//
//  1. load the stats cache once
//  2. resolve every entry's repository URL
//  3. reuse fresh cache entries without a network call
//  4. fetch the rest, spaced Pacing apart in launch order
//  5. on "not found", try the owner's fallback repository
//  6. wait for every fetch, save the cache once, publish the snapshot
//
// A failure for one entry never affects another; the entry keeps the
// counters it had before the pass. [Enricher.Start] repeats the pass every
// TTL until [Enricher.Stop], after which no pass publishes.
//
//	e, err := enrich.New(enrich.Options{
//	    Catalog: catalog.Default(),
//	    Fetcher: github.NewClient(token),
//	    Store:   repostats.NewStore(fileCache, "", logger),
//	    Logger:  logger,
//	})
//	res, err := e.Refresh(ctx)
package enrich
