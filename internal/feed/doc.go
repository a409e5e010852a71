// Package feed provides the paged data source behind the demo list.
//
// Generator fabricates items with random UUIDs after a configurable latency,
// optionally failing every Nth call so the completion path for failed
// fetches can be exercised. Client reads the same pages from an HTTP feed
// (GET /api/pages?page=N) and maps 5xx responses onto ErrUnavailable. Both
// honour context cancellation.
package feed
