package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/five82/swiperefresh/internal/feed"
	"github.com/five82/swiperefresh/internal/state"
)

const (
	defaultRetryBase = 2 * time.Second
	maxBackoff       = 30 * time.Second
	fetchTimeout     = 10 * time.Second
)

// Loader runs feed fetches on behalf of the UI and records every result in
// the store, successful or not.
type Loader struct {
	store  *state.Store
	source feed.Source
	base   time.Duration
}

// NewLoader wires a store to a feed source. A non-positive base uses the
// default retry interval.
func NewLoader(store *state.Store, source feed.Source, base time.Duration) *Loader {
	if base <= 0 {
		base = defaultRetryBase
	}
	return &Loader{store: store, source: source, base: base}
}

// Refresh fetches the first page and replaces the store contents with it.
func (l *Loader) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	page, err := l.source.Fetch(ctx, 0)
	l.store.Replace(page, err)
	if err != nil {
		log.Printf("refresh failed: %v", err)
		return fmt.Errorf("refresh feed: %w", err)
	}
	log.Printf("refresh: %d items, more=%t", len(page.Items), page.HasMore)
	return nil
}

// LoadMore fetches the page after the last loaded one and appends it.
func (l *Loader) LoadMore(ctx context.Context) error {
	snap := l.store.Snapshot()
	next := snap.NextPage()

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	page, err := l.source.Fetch(ctx, next)
	l.store.Append(snap.Epoch, page, err)
	if err != nil {
		log.Printf("load page %d failed: %v", next, err)
		return fmt.Errorf("load page %d: %w", next, err)
	}
	log.Printf("load: page %d, %d items, more=%t", page.Index, len(page.Items), page.HasMore)
	return nil
}

// Backoff returns how long the UI should wait before fetching on its own
// again, based on the store's failure streak.
func (l *Loader) Backoff() time.Duration {
	return calculateBackoff(l.store.Snapshot().ConsecutiveFailures, l.base)
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
