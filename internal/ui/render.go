package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/swiperefresh/internal/refresh"
)

// renderStatus renders the top status bar.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	sep := styles.FaintText.Render("  ")
	s := m.surface
	cfg := s.engine.Config()
	snap := s.engine.Snapshot()

	parts := []string{
		styles.Title.Render("swiperefresh"),
		styles.Text.Render(fmt.Sprintf("%d items", len(m.snapshot.Items))),
		styles.MutedText.Render(fmt.Sprintf("page %d", m.snapshot.Pages)),
		styles.AccentText.Render(cfg.HeaderScrollMode.String()),
		styles.MutedText.Render(fmt.Sprintf("offset %.0f", snap.Offset)),
	}
	if cfg.AlwaysScrollable {
		parts = append(parts, styles.InfoText.Render("always-scrollable"))
	}
	if m.autoLoad {
		parts = append(parts, styles.InfoText.Render("auto-load"))
	}
	if m.snapshot.IsDegraded() {
		parts = append(parts, styles.WarningText.Render("degraded"))
	}
	if err := m.snapshot.LastError; err != nil {
		parts = append(parts, styles.DangerText.Render("error: "+err.Error()))
	}

	content := ansi.Truncate(strings.Join(parts, sep), max(m.width-2, 0), "…")
	return styles.Header.Width(m.width).Padding(0, 1).Render(content)
}

// renderHelpBar renders the short key help at the bottom.
func (m Model) renderHelpBar() string {
	styles := m.theme.Styles()
	content := ansi.Truncate(m.help.View(m.keys), max(m.width-2, 0), "…")
	return styles.Footer.Width(m.width).Padding(0, 1).Render(content)
}

// renderSurface composes the list and both indicators for the current
// offset. Indicators only draw inside the band the offset reveals.
func (m Model) renderSurface() string {
	rows := m.listRows()
	if rows == 0 {
		return ""
	}

	s := m.surface
	snap := s.engine.Snapshot()
	l := s.engine.Placement()
	canvas := make([]string, rows)

	header := func() {
		lines := m.headerLines(snap)
		band := m.toLines(math.Max(snap.Offset, 0))
		top := m.toLines(l.Header)
		for r, line := range lines {
			if at := top + r; at >= 0 && at < band && at < rows {
				canvas[at] = line
			}
		}
	}
	footer := func() {
		lines := m.footerLines(snap)
		band := -m.toLines(math.Min(snap.Offset, 0))
		top := rows + m.toLines(l.Footer-snap.Extents.Footer)
		for r, line := range lines {
			if at := top + r; at >= rows-band && at >= 0 && at < rows {
				canvas[at] = line
			}
		}
	}

	if !l.HeaderOnTop {
		header()
	}
	if !l.FooterOnTop {
		footer()
	}
	m.paintContent(canvas, l.Content)
	if l.HeaderOnTop {
		header()
	}
	if l.FooterOnTop {
		footer()
	}

	blank := m.theme.Styles().Row.Width(m.width).Render("")
	for i := range canvas {
		if canvas[i] == "" {
			canvas[i] = blank
		}
	}
	return strings.Join(canvas, "\n")
}

// paintContent draws list rows translated by shift units.
func (m Model) paintContent(canvas []string, shift float64) {
	s := m.surface
	styles := m.theme.Styles()
	items := m.snapshot.Items

	origin := m.toLines(shift - s.scroll)
	for line := range canvas {
		i := line - origin
		switch {
		case len(items) == 0 && i == 0:
			canvas[line] = styles.Row.Width(m.width).Render(styles.FaintText.Render("  No items yet."))
		case i < 0 || i >= len(items):
			continue
		default:
			item := items[i]
			text := fmt.Sprintf("  %s  %-10s %s", item.ID.String()[:8], item.Title, item.Body)
			text = ansi.Truncate(text, m.width, "…")
			style := styles.Row
			if i%2 == 1 {
				style = styles.RowAlt
			}
			canvas[line] = style.Width(m.width).Render(text)
		}
	}
}

// headerLines renders the header indicator, status row nearest the content.
func (m Model) headerLines(snap refresh.Snapshot) []string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	s := m.surface

	var status string
	switch {
	case s.engine.FinishingSide() == refresh.SideHeader && m.refreshErr != nil:
		status = styles.DangerText.Render("Refresh failed")
	case s.engine.FinishingSide() == refresh.SideHeader:
		status = styles.SuccessText.Render("Refresh complete")
	case snap.Header == refresh.Refreshing:
		status = m.spinner.View() + styles.Text.Render(" Refreshing...")
	case snap.Header == refresh.ReleaseToRefresh && s.vibrating():
		status = styles.Flash.Render(" Release to refresh ")
	case snap.Header == refresh.ReleaseToRefresh:
		status = styles.AccentText.Render("Release to refresh")
	default:
		status = styles.MutedText.Render("Pull down to refresh")
	}

	updated := "Never updated"
	if !m.snapshot.LastRefreshed.IsZero() {
		updated = "Last updated " + m.snapshot.LastRefreshed.Format("15:04:05")
	}

	ratio := 1.0
	if !snap.Refreshing {
		ratio = pullRatio(snap.Offset, snap.RefreshTrigger)
	}

	lines := []string{
		styles.FaintText.Render(updated),
		m.progress.ViewAs(ratio),
		status,
	}
	return m.indicatorRows(lines, true)
}

// footerLines renders the footer indicator, status row nearest the content.
func (m Model) footerLines(snap refresh.Snapshot) []string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	s := m.surface
	finishing := s.engine.FinishingSide() == refresh.SideFooter

	var status string
	switch {
	case finishing && m.loadErr != nil:
		status = styles.DangerText.Render("Load failed")
	case finishing:
		status = styles.SuccessText.Render("Load complete")
	case snap.Footer == refresh.Loading:
		status = m.spinner.View() + styles.Text.Render(" Loading...")
	case len(m.snapshot.Items) > 0 && !m.snapshot.HasMore:
		status = styles.MutedText.Render("No more data")
	case snap.Footer == refresh.ReleaseToLoad && s.vibrating():
		status = styles.Flash.Render(" Release to load more ")
	case snap.Footer == refresh.ReleaseToLoad:
		status = styles.AccentText.Render("Release to load more")
	default:
		status = styles.MutedText.Render("Pull up to load more")
	}

	ratio := 1.0
	if !snap.Loading {
		ratio = pullRatio(-snap.Offset, -snap.LoadMoreTrigger)
	}

	lines := []string{
		status,
		m.progress.ViewAs(ratio),
		"",
	}
	return m.indicatorRows(lines, false)
}

// indicatorRows fits lines to the indicator height, keeping the rows nearest
// the content, and renders each as a full-width band.
func (m Model) indicatorRows(lines []string, bottomAligned bool) []string {
	n := m.surface.indicatorRows
	switch {
	case len(lines) > n && bottomAligned:
		lines = lines[len(lines)-n:]
	case len(lines) > n:
		lines = lines[:n]
	}
	for len(lines) < n {
		if bottomAligned {
			lines = append([]string{""}, lines...)
		} else {
			lines = append(lines, "")
		}
	}

	band := m.theme.Styles().Indicator.Width(m.width).Align(lipgloss.Center)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = band.Render(ansi.Truncate(line, m.width, "…"))
	}
	return out
}

// toLines converts units to the nearest whole terminal row, rounding halves
// up so adjacent layers agree on shared edges.
func (m Model) toLines(v float64) int {
	return int(math.Floor(v/m.surface.rowHeight + 0.5))
}

func pullRatio(distance, trigger float64) float64 {
	if trigger <= 0 || distance <= 0 {
		return 0
	}
	return math.Min(distance/trigger, 1)
}
