package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/five82/swiperefresh/internal/feed"
	"github.com/five82/swiperefresh/internal/state"
)

type fakeSource struct {
	pages     []int
	err       error
	remaining int // pages available before HasMore turns false
	onFetch   func(page int)
}

func (f *fakeSource) Fetch(_ context.Context, page int) (feed.Page, error) {
	f.pages = append(f.pages, page)
	if f.onFetch != nil {
		f.onFetch(page)
	}
	if f.err != nil {
		return feed.Page{}, f.err
	}
	return feed.Page{
		Index:   page,
		Items:   []feed.Item{{Title: "row", Page: page}},
		HasMore: page+1 < f.remaining,
	}, nil
}

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestLoaderRefreshThenLoadMore(t *testing.T) {
	src := &fakeSource{remaining: 2}
	store := &state.Store{}
	l := NewLoader(store, src, 0)

	if err := l.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := l.LoadMore(context.Background()); err != nil {
		t.Fatalf("load more: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Items) != 2 || snap.Pages != 2 {
		t.Fatalf("expected 2 items over 2 pages, got %d items over %d pages", len(snap.Items), snap.Pages)
	}
	if snap.HasMore {
		t.Fatal("expected HasMore=false after the last page")
	}
	if len(src.pages) != 2 || src.pages[0] != 0 || src.pages[1] != 1 {
		t.Fatalf("unexpected fetch order %v", src.pages)
	}
}

func TestLoaderDropsPageWhenRefreshLandsMidLoad(t *testing.T) {
	src := &fakeSource{remaining: 5}
	store := &state.Store{}
	l := NewLoader(store, src, 0)

	if err := l.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	src.onFetch = func(page int) {
		if page == 1 {
			// A refresh completes while page 1 is still on the wire.
			store.Replace(feed.Page{Index: 0, Items: []feed.Item{{Title: "fresh"}}, HasMore: true}, nil)
		}
	}
	if err := l.LoadMore(context.Background()); err != nil {
		t.Fatalf("load more: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Title != "fresh" || snap.Pages != 1 {
		t.Fatalf("expected only the fresh page, got %d items over %d pages", len(snap.Items), snap.Pages)
	}
}

func TestLoaderFailureRecordsErrorAndBacksOff(t *testing.T) {
	src := &fakeSource{err: feed.ErrUnavailable}
	store := &state.Store{}
	l := NewLoader(store, src, time.Second)

	if got := l.Backoff(); got != time.Second {
		t.Fatalf("expected base backoff before failures, got %v", got)
	}

	err := l.Refresh(context.Background())
	if !errors.Is(err, feed.ErrUnavailable) {
		t.Fatalf("expected wrapped ErrUnavailable, got %v", err)
	}
	err = l.LoadMore(context.Background())
	if !errors.Is(err, feed.ErrUnavailable) {
		t.Fatalf("expected wrapped ErrUnavailable, got %v", err)
	}

	snap := store.Snapshot()
	if snap.ConsecutiveFailures != 2 {
		t.Fatalf("expected 2 consecutive failures, got %d", snap.ConsecutiveFailures)
	}
	if got := l.Backoff(); got != 4*time.Second {
		t.Fatalf("expected 4s backoff, got %v", got)
	}
}
