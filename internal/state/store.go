package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/swiperefresh/internal/feed"
)

// Snapshot represents the latest feed data available to the UI.
type Snapshot struct {
	Items               []feed.Item
	Pages               int // pages loaded since the last refresh
	Epoch               int // bumps on every successful refresh
	HasMore             bool
	LastRefreshed       time.Time // last successful page 0
	LastUpdated         time.Time // last Replace or Append call
	LastError           error
	ConsecutiveFailures int
}

// IsDegraded returns true when several fetches in a row have failed.
func (s Snapshot) IsDegraded() bool {
	return s.ConsecutiveFailures >= 2
}

// NextPage returns the index of the page a load more should fetch.
func (s Snapshot) NextPage() int {
	return s.Pages
}

// Store coordinates concurrent updates from fetch goroutines.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Replace swaps in a refreshed first page. When err is non-nil the previous
// items are kept and the failure is recorded.
func (s *Store) Replace(page feed.Page, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.fail(err, now) {
		return
	}
	s.snapshot.Items = cloneItems(page.Items)
	s.snapshot.Pages = 1
	s.snapshot.Epoch++
	s.snapshot.HasMore = page.HasMore
	s.snapshot.LastRefreshed = now
	s.succeed(now)
}

// Append adds a page loaded under epoch, the Epoch of the snapshot the load
// started from. Pages from an older epoch, or that do not follow the last
// loaded one, are dropped; a refresh that landed while the load was in flight
// wins.
func (s *Store) Append(epoch int, page feed.Page, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.fail(err, now) {
		return
	}
	if epoch != s.snapshot.Epoch || page.Index != s.snapshot.Pages {
		s.snapshot.LastUpdated = now
		return
	}
	s.snapshot.Items = append(s.snapshot.Items, page.Items...)
	s.snapshot.Pages++
	s.snapshot.HasMore = page.HasMore
	s.succeed(now)
}

func (s *Store) fail(err error, now time.Time) bool {
	if err == nil {
		return false
	}
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = now
	s.snapshot.ConsecutiveFailures++
	return true
}

func (s *Store) succeed(now time.Time) {
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = now
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []feed.Item) []feed.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]feed.Item, len(items))
	copy(dup, items)
	return dup
}
