package enrich

import (
	"context"
	"errors"
	"time"
)

// Start runs a pass immediately and then one every TTL until ctx is done or
// [Enricher.Stop] is called. Calling Start on a running Enricher is a no-op.
func (e *Enricher) Start(ctx context.Context) {
	e.mu.Lock()
	if e.loopCancel != nil || !e.active {
		e.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	e.loopCancel = cancel
	e.loopDone = make(chan struct{})
	e.trigger = make(chan struct{}, 1)
	done, trigger := e.loopDone, e.trigger
	e.mu.Unlock()

	go e.loop(ctx, done, trigger)
}

// Trigger asks the running loop for an extra pass. Requests made while a
// pass is already queued are merged. It reports false if the loop is not
// running.
func (e *Enricher) Trigger() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.trigger == nil || !e.active {
		return false
	}
	select {
	case e.trigger <- struct{}{}:
	default:
	}
	return true
}

// Stop cancels the refresh loop and any pass it is running, waits for the
// loop to exit and closes subscriber channels. A pass still running
// elsewhere finishes without publishing. Stop is idempotent.
func (e *Enricher) Stop() {
	e.mu.Lock()
	wasActive := e.active
	e.active = false
	cancel, done := e.loopCancel, e.loopDone
	e.loopCancel, e.trigger = nil, nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if !wasActive {
		return
	}

	e.mu.Lock()
	for _, ch := range e.subs {
		close(ch)
	}
	e.subs = nil
	e.mu.Unlock()
	e.logger.Debug("enricher stopped")
}

func (e *Enricher) loop(ctx context.Context, done chan<- struct{}, trigger <-chan struct{}) {
	defer close(done)

	e.runLogged(ctx)

	ticker := time.NewTicker(e.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.runLogged(ctx)
		case <-trigger:
			e.runLogged(ctx)
			ticker.Reset(e.ttl)
		}
	}
}

func (e *Enricher) runLogged(ctx context.Context) {
	if _, err := e.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrStopped) {
		e.logger.Error("refresh failed", "err", err)
	}
}
