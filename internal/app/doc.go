// Package app is the composition root of the swiperefresh demo.
//
// # Overview
//
// Run loads config.toml, points the std logger at a file (or discards it),
// builds the in-memory feed generator, the shared state.Store and a Loader,
// then hands control to the bubbletea UI until the user quits or the context
// is cancelled.
//
// # Architecture
//
//	config.Load ──> feed.Generator ──> Loader ──> state.Store
//	                                     ^              │
//	                                     │              v
//	                              ui (fetch cmds)   ui (snapshots)
//
// The refresh engine itself lives in the UI model; this package never touches
// it. The UI asks the Loader for a refresh or the next page from a tea.Cmd,
// so fetches run off the update goroutine and report back as messages.
//
// # Error Handling
//
// Fetch failures are logged with log.Printf, recorded in the store, and
// returned wrapped so the UI can finish its indicator and show the error in
// the status bar. Backoff grows with the store's consecutive failure count
// and gates automatic loads only; a manual pull always fetches.
//
// # Testing
//
// loader_test.go drives the Loader against a fake feed.Source and covers the
// backoff curve.
package app
