package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUnavailable is returned when the simulated backend rejects a fetch.
var ErrUnavailable = errors.New("feed unavailable")

// Source fetches pages of items. Implementations must be safe for concurrent
// use; fetches run on goroutines started by the UI.
type Source interface {
	Fetch(ctx context.Context, page int) (Page, error)
}

// Ensure Generator implements Source at compile time.
var _ Source = (*Generator)(nil)

// Item is one row of the feed.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Page      int       `json:"page"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one fetch result.
type Page struct {
	Index   int    `json:"index"`
	Items   []Item `json:"items"`
	HasMore bool   `json:"has_more"`
}

// Options configure a Generator.
type Options struct {
	PageSize  int
	MaxPages  int
	Latency   time.Duration
	FailEvery int // every Nth fetch fails; zero never fails
	Clock     func() time.Time
}

const (
	defaultPageSize = 20
	defaultMaxPages = 3
)

// Generator is an in-memory Source that fabricates items after a delay.
type Generator struct {
	pageSize  int
	maxPages  int
	latency   time.Duration
	failEvery int
	clock     func() time.Time

	mu          sync.Mutex
	calls       int
	generation  int
	nextOrdinal int
}

// NewGenerator builds a Generator, filling unset options with defaults.
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		pageSize:  opts.PageSize,
		maxPages:  opts.MaxPages,
		latency:   opts.Latency,
		failEvery: opts.FailEvery,
		clock:     opts.Clock,
	}
	if g.pageSize <= 0 {
		g.pageSize = defaultPageSize
	}
	if g.maxPages <= 0 {
		g.maxPages = defaultMaxPages
	}
	if g.latency < 0 {
		g.latency = 0
	}
	if g.failEvery < 0 {
		g.failEvery = 0
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	return g
}

// Fetch returns page after the configured latency. Page 0 starts a new
// generation, the way a pull-to-refresh reloads the newest items.
func (g *Generator) Fetch(ctx context.Context, page int) (Page, error) {
	if page < 0 {
		return Page{}, fmt.Errorf("fetch page %d: negative page", page)
	}
	if err := g.wait(ctx); err != nil {
		return Page{}, fmt.Errorf("fetch page %d: %w", page, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	if g.failEvery > 0 && g.calls%g.failEvery == 0 {
		return Page{}, fmt.Errorf("fetch page %d: %w", page, ErrUnavailable)
	}
	if page >= g.maxPages {
		return Page{Index: page}, nil
	}
	if page == 0 {
		g.generation++
		g.nextOrdinal = 0
	}

	now := g.clock()
	items := make([]Item, 0, g.pageSize)
	for range g.pageSize {
		g.nextOrdinal++
		items = append(items, Item{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("Item %d", g.nextOrdinal),
			Body:      fmt.Sprintf("generation %d, page %d", g.generation, page+1),
			Page:      page,
			CreatedAt: now,
		})
	}
	return Page{Index: page, Items: items, HasMore: page+1 < g.maxPages}, nil
}

func (g *Generator) wait(ctx context.Context) error {
	if g.latency == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
