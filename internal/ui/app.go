package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/swiperefresh/internal/config"
	"github.com/five82/swiperefresh/internal/refresh"
	"github.com/five82/swiperefresh/internal/state"
)

// autoLoadMargin is how close to the end of the list, in rows, the last
// visible row must be before the next page loads on its own.
const autoLoadMargin = 3

// Options configures the UI.
type Options struct {
	Context context.Context
	Store   *state.Store
	Loader  Loader
	Refresh refresh.Config
	Demo    config.Demo
	Clock   func() time.Time // nil uses time.Now
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx    context.Context
	store  *state.Store
	loader Loader
	clock  func() time.Time

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Refresh surface
	surface         *surface
	loadMoreEnabled bool // configured value; the engine also needs HasMore
	autoLoad        bool
	backoffUntil    time.Time

	// Data state
	snapshot   state.Snapshot
	refreshErr error
	loadErr    error
}

// New creates a new Bubble Tea model. A refresh runs on start when a loader
// is present.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	demo := opts.Demo
	defaults := config.Default().Demo
	if demo.RowHeight <= 0 {
		demo.RowHeight = defaults.RowHeight
	}
	if demo.IndicatorRows <= 0 {
		demo.IndicatorRows = defaults.IndicatorRows
	}

	theme := GetTheme(demo.Theme)
	initial := opts.Loader != nil

	cfg := opts.Refresh
	loadMore := cfg.LoadMoreEnabled
	cfg.LoadMoreEnabled = false // until a page says there is more

	s := newSurface(cfg, demo.RowHeight, demo.IndicatorRows, clock, initial)

	m := Model{
		ctx:             ctx,
		store:           opts.Store,
		loader:          opts.Loader,
		clock:           clock,
		theme:           theme,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
		surface:         s,
		loadMoreEnabled: loadMore,
		autoLoad:        demo.AutoLoad,
	}
	m.applyTheme()

	if m.loader != nil {
		s.requestRefresh = func() tea.Cmd { return fetchCmd(m.ctx, m.loader, fetchRefresh) }
		s.requestLoadMore = func() tea.Cmd { return fetchCmd(m.ctx, m.loader, fetchLoad) }
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
		s.setContentRows(len(m.snapshot.Items))
	}
	m.syncLoadMore()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.spinner.Tick,
	}
	if m.loader != nil && m.surface.refreshInFlight {
		cmds = append(cmds, fetchCmd(m.ctx, m.loader, fetchRefresh))
	}
	cmds = append(cmds, m.surface.nextFrame())
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(frameMsg); !ok {
		m.surface.sync()
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		var quit bool
		m, quit = m.handleKey(msg)
		if quit {
			m.surface.close()
			return m, tea.Quit
		}

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = progressWidth(msg.Width)
		m.surface.resize(m.listRows())
		m.ready = true

	case frameMsg:
		m.surface.tick(time.Time(msg))

	case wheelIdleMsg:
		if msg.seq == m.surface.wheel && !m.surface.pressed {
			m.surface.release()
		}

	case fetchDoneMsg:
		m.handleFetchDone(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.maybeAutoLoad()
	cmds = append(cmds, m.surface.drain()...)
	cmds = append(cmds, m.surface.nextFrame())
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderStatus(),
		m.renderSurface(),
		m.renderHelpBar(),
	)
}

// handleKey processes keyboard input and reports whether to quit.
func (m Model) handleKey(msg tea.KeyMsg) (Model, bool) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, false
	}

	s := m.surface
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()

	case key.Matches(msg, m.keys.Up):
		s.scrollRows(-1)
	case key.Matches(msg, m.keys.Down):
		s.scrollRows(1)
	case key.Matches(msg, m.keys.Top):
		s.scrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		s.scrollTo(s.maxScroll())

	case key.Matches(msg, m.keys.PullDown):
		s.drag(s.rowHeight)
	case key.Matches(msg, m.keys.PullUp):
		s.drag(-s.rowHeight)
	case key.Matches(msg, m.keys.Release):
		s.release()

	case key.Matches(msg, m.keys.Refresh):
		s.beginRefresh()
	case key.Matches(msg, m.keys.LoadMore):
		s.beginLoadMore()

	case key.Matches(msg, m.keys.CycleMode):
		cfg := s.engine.Config()
		mode := cfg.HeaderScrollMode.Next()
		cfg.HeaderScrollMode = mode
		cfg.FooterScrollMode = mode
		s.engine.SetConfig(cfg)
	case key.Matches(msg, m.keys.AlwaysScrollable):
		cfg := s.engine.Config()
		cfg.AlwaysScrollable = !cfg.AlwaysScrollable
		s.engine.SetConfig(cfg)
	case key.Matches(msg, m.keys.AutoLoad):
		m.autoLoad = !m.autoLoad
	}
	return m, false
}

// handleMouse maps terminal mouse input onto drag gestures. The wheel has no
// release event, so a short idle period stands in for one.
func (m Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	s := m.surface
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		s.drag(s.rowHeight)
		s.wheel++
		return wheelIdleCmd(s.wheel)
	case msg.Button == tea.MouseButtonWheelDown:
		s.drag(-s.rowHeight)
		s.wheel++
		return wheelIdleCmd(s.wheel)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		s.pressed = true
		s.lastY = msg.Y
	case msg.Action == tea.MouseActionMotion && s.pressed:
		if dy := msg.Y - s.lastY; dy != 0 {
			s.lastY = msg.Y
			s.drag(float64(dy) * s.rowHeight)
		}
	case msg.Action == tea.MouseActionRelease && s.pressed:
		s.release()
	}
	return nil
}

func (m *Model) handleFetchDone(msg fetchDoneMsg) {
	s := m.surface
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
		s.setContentRows(len(m.snapshot.Items))
	}
	switch msg.kind {
	case fetchRefresh:
		m.refreshErr = msg.err
		s.refreshDone()
	case fetchLoad:
		m.loadErr = msg.err
		s.loadDone()
	}
	if msg.err != nil && m.loader != nil {
		m.backoffUntil = m.clock().Add(m.loader.Backoff())
	}
	m.syncLoadMore()
}

// syncLoadMore enables the footer only while the feed has more pages.
func (m *Model) syncLoadMore() {
	want := m.loadMoreEnabled && m.snapshot.HasMore
	cfg := m.surface.engine.Config()
	if cfg.LoadMoreEnabled == want {
		return
	}
	cfg.LoadMoreEnabled = want
	m.surface.engine.SetConfig(cfg)
}

// maybeAutoLoad fetches the next page once the end of the list is in view.
func (m *Model) maybeAutoLoad() {
	s := m.surface
	n := len(m.snapshot.Items)
	switch {
	case !m.autoLoad, m.loader == nil, n == 0, !m.snapshot.HasMore:
		return
	case s.loadInFlight, s.refreshInFlight, s.engine.Busy():
		return
	case m.clock().Before(m.backoffUntil):
		return
	}
	if s.lastVisibleRow() >= n-autoLoadMargin {
		s.autoLoad()
	}
}

func (m *Model) applyTheme() {
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Info))
	m.progress = progress.New(
		progress.WithSolidFill(m.theme.Accent),
		progress.WithoutPercentage(),
		progress.WithWidth(progressWidth(m.width)),
	)
	m.progress.EmptyColor = m.theme.Border
}

// listRows is the list viewport height between the status and help bars.
func (m Model) listRows() int {
	return max(m.height-2, 0)
}

func progressWidth(width int) int {
	return min(max(width-4, 0), 40)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	defer m.surface.close()

	popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.Context != nil {
		popts = append(popts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, popts...)
	if _, err := p.Run(); err != nil {
		if opts.Context != nil && opts.Context.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
