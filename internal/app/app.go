package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/swiperefresh/internal/config"
	"github.com/five82/swiperefresh/internal/feed"
	"github.com/five82/swiperefresh/internal/state"
	"github.com/five82/swiperefresh/internal/ui"
)

// Options configure the demo application.
type Options struct {
	ConfigPath string
	LogPath    string // overrides log_file from the config; empty keeps it
	Theme      string // overrides the configured theme; empty keeps it
}

// Run boots the demo TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Theme != "" {
		cfg.Demo.Theme = opts.Theme
	}

	logPath := opts.LogPath
	if logPath == "" {
		logPath = cfg.LogFile
	}
	closeLog, err := setupLogging(logPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	source, err := newSource(cfg.Demo)
	if err != nil {
		return fmt.Errorf("init feed: %w", err)
	}
	store := &state.Store{}
	loader := NewLoader(store, source, defaultRetryBase)

	log.Printf("starting: header=%s footer=%s theme=%s", cfg.Refresh.HeaderScrollMode, cfg.Refresh.FooterScrollMode, cfg.Demo.Theme)

	return ui.Run(ui.Options{
		Context: ctx,
		Store:   store,
		Loader:  loader,
		Refresh: cfg.Refresh,
		Demo:    cfg.Demo,
	})
}

// newSource picks the HTTP feed when a URL is configured, else the
// in-memory generator.
func newSource(demo config.Demo) (feed.Source, error) {
	if demo.FeedURL != "" {
		return feed.NewClient(demo.FeedURL)
	}
	return feed.NewGenerator(feed.Options{
		PageSize:  demo.PageSize,
		MaxPages:  demo.MaxPages,
		Latency:   demo.Latency,
		FailEvery: demo.FailEvery,
	}), nil
}

// setupLogging sends the std logger to path, or discards it when path is
// empty. The terminal belongs to the TUI, so nothing may go to stderr.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "swiperefresh")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}
