package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	frameInterval = 16 * time.Millisecond
	wheelIdle     = 150 * time.Millisecond
)

// Loader performs fetches for the UI. The app package's Loader satisfies it.
type Loader interface {
	Refresh(ctx context.Context) error
	LoadMore(ctx context.Context) error
	Backoff() time.Duration
}

type fetchKind int

const (
	fetchRefresh fetchKind = iota
	fetchLoad
)

// frameMsg drives animation frames.
type frameMsg time.Time

// wheelIdleMsg releases a wheel gesture when no wheel event followed it.
type wheelIdleMsg struct{ seq int }

// fetchDoneMsg reports a finished fetch.
type fetchDoneMsg struct {
	kind fetchKind
	err  error
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func wheelIdleCmd(seq int) tea.Cmd {
	return tea.Tick(wheelIdle, func(time.Time) tea.Msg {
		return wheelIdleMsg{seq: seq}
	})
}

func fetchCmd(ctx context.Context, loader Loader, kind fetchKind) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch kind {
		case fetchRefresh:
			err = loader.Refresh(ctx)
		case fetchLoad:
			err = loader.LoadMore(ctx)
		}
		return fetchDoneMsg{kind: kind, err: err}
	}
}
