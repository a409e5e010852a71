// Package state provides thread-safe storage for the loaded feed.
//
// # Overview
//
// Fetches for refresh and load more run on goroutines started by the UI.
// They write results into a Store; the UI reads a Snapshot whenever a fetch
// completes. The Store is the only place feed items live.
//
// # Update Semantics
//
//	// Refresh: page 0 replaces the list
//	store.Replace(page, nil)
//	→ snapshot.Items = page.Items
//	→ snapshot.Pages = 1
//	→ snapshot.Epoch++
//	→ snapshot.LastRefreshed = now
//
//	// Load more: the next page is appended
//	store.Append(epoch, page, nil)
//	→ snapshot.Items += page.Items   (only if epoch == snapshot.Epoch
//	                                  and page.Index == snapshot.Pages)
//
//	// Error case: keep old data, record error
//	store.Append(epoch, feed.Page{}, err)
//	→ snapshot.Items = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// A page loaded under an older epoch, or that does not follow the last loaded
// one, is dropped. This happens when a refresh completes while a load more is
// still in flight; the epoch catches the case where the refresh reset Pages
// back to the index the load asked for.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock. Replace and Append take the write
// lock, Snapshot the read lock. Snapshots are deep copies, so the UI can
// keep rendering one while a fetch writes the next.
//
// The zero value is ready to use:
//
//	store := &state.Store{}
package state
