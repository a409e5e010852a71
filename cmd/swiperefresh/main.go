package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/swiperefresh/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/swiperefresh/config.toml)")
	logPath := flag.String("log", "", "write logs to this file (optional)")
	theme := flag.String("theme", "", "color theme: Nightfox, Kanagawa or Slate (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		LogPath:    *logPath,
		Theme:      *theme,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "swiperefresh: %v\n", err)
		return 1
	}
	return 0
}
