package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/backend"
	"github.com/five82/perch/internal/widget"
)

// panelID identifies one list widget on the dashboard grid.
type panelID int

const (
	panelTodos panelID = iota
	panelCalendar
	panelReviews
	panelMyPRs
	panelJira
	panelNotifications
	panelCount
)

// panelNames match the widget names so focus can be persisted in prefs.
var panelNames = [panelCount]string{
	"todos", "calendar", "reviews", "my-prs", "jira-tasks", "jira-notifications",
}

func panelByName(name string) (panelID, bool) {
	for i, n := range panelNames {
		if n == name {
			return panelID(i), true
		}
	}
	return panelTodos, false
}

// panelView is everything needed to draw one panel.
type panelView struct {
	title   string
	empty   string
	loading bool
	err     error
	offline bool
	items   []item
}

func (v panelView) state() widget.RenderState {
	return widget.StateOf(v.loading, len(v.items))
}

func feedView[T any](f *widget.Feed[T], build func([]T) []item) panelView {
	snap := f.Snapshot()
	return panelView{
		title:   f.Title,
		empty:   f.Empty,
		loading: snap.Loading,
		err:     snap.LastError,
		offline: snap.IsOffline(),
		items:   build(snap.Data),
	}
}

// panel builds the view for p from the board's current snapshots.
func (m Model) panel(p panelID) panelView {
	now := m.now()
	b := m.board
	switch p {
	case panelTodos:
		return feedView(b.Todos.Feed, todoItems)
	case panelCalendar:
		return feedView(b.Calendar, eventItems)
	case panelReviews:
		return feedView(b.Reviews, func(prs []backend.PullRequest) []item { return reviewItems(prs, now) })
	case panelMyPRs:
		return feedView(b.MyPRs, func(prs []backend.PullRequest) []item { return myPRItems(prs, now) })
	case panelJira:
		return feedView(b.JiraTasks, jiraItems)
	case panelNotifications:
		return feedView(b.Notifications, jiraItems)
	}
	return panelView{}
}

// renderDashboard lays the panels out in a grid sized to the terminal.
func (m Model) renderDashboard(height int) string {
	if m.width < LayoutSingleWidth {
		return m.renderPanel(m.focus, m.width, height)
	}

	cols := 2
	if m.width >= LayoutWideWidth {
		cols = 3
	}
	rows := (int(panelCount) + cols - 1) / cols

	var rowViews []string
	for r := 0; r < rows; r++ {
		rowHeight := height / rows
		if r == rows-1 {
			rowHeight = height - rowHeight*(rows-1)
		}
		var cells []string
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if idx >= int(panelCount) {
				break
			}
			colWidth := m.width / cols
			if c == cols-1 {
				colWidth = m.width - colWidth*(cols-1)
			}
			cells = append(cells, m.renderPanel(panelID(idx), colWidth, rowHeight))
		}
		rowViews = append(rowViews, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rowViews...)
}

// renderPanel renders one widget inside a titled box.
func (m Model) renderPanel(p panelID, width, height int) string {
	view := m.panel(p)
	focused := m.focus == p
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	inner := max(width-2, 1)
	boxHeight := max(height-2, 0)

	title := view.title
	if n := len(view.items); n > 0 {
		title = fmt.Sprintf("%s (%d)", title, n)
	}

	var lines []string
	if view.err != nil {
		label := "Refresh failed"
		if view.offline {
			label = "Offline"
		}
		lines = append(lines, bg.Render(truncate("! "+label+": "+view.err.Error(), inner-1), styles.DangerText))
	}

	switch view.state() {
	case widget.StateLoading:
		lines = append(lines, bg.Render("Loading...", styles.MutedText))
	case widget.StateEmpty:
		lines = append(lines, bg.Render(view.empty, styles.MutedText))
	default:
		lines = append(lines, m.renderItems(p, view.items, inner, boxHeight-len(lines), focused, bgColor)...)
	}

	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, focused)
}

// renderItems renders list rows, scrolled so the selection stays visible.
func (m Model) renderItems(p panelID, items []item, width, height int, focused bool, bgColor string) []string {
	selected := m.selection(p, len(items))
	blocks := make([][]string, len(items))
	for i, it := range items {
		sel := focused && i == selected
		blocks[i] = m.renderItem(it, width, sel, m.expanded[expandKey(p, it.key)], bgColor)
	}

	start := 0
	for {
		used := 0
		for i := start; i <= selected && i < len(blocks); i++ {
			used += len(blocks[i])
		}
		if used <= height || start >= selected {
			break
		}
		start++
	}

	var lines []string
	for i := start; i < len(blocks) && len(lines) < height; i++ {
		lines = append(lines, blocks[i]...)
	}
	if len(lines) > height && height >= 0 {
		lines = lines[:height]
	}
	return lines
}

// renderItem renders one entry: a title row, an optional meta row, and the
// detail rows when expanded.
func (m Model) renderItem(it item, width int, selected, expanded bool, bgColor string) []string {
	rowBg := bgColor
	if selected {
		rowBg = m.theme.SelectionBg
	}
	bg := NewBgStyle(rowBg)
	styles := m.theme.Styles().WithBackground(rowBg)

	textStyle := styles.Text
	metaStyle := styles.MutedText
	markerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.toneColor(it.tone))).
		Background(lipgloss.Color(rowBg))
	if it.hasTodo {
		markerStyle = styles.AccentText
	}
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		textStyle, metaStyle = sel, sel
	}
	if it.done {
		textStyle = textStyle.Strikethrough(true).Foreground(lipgloss.Color(m.theme.Faint))
	}

	var chips []string
	chipWidth := 0
	for _, c := range it.chips {
		var rendered string
		if c.tone != "" {
			fg := widget.LabelForeground(m.toneColor(c.tone))
			rendered = styles.ToneStyle(c.tone).Foreground(lipgloss.Color(fg)).Render(c.text)
		} else {
			fg := c.fg
			if fg == "" {
				fg = widget.LabelForeground(c.bg)
			}
			rendered = Chip(c.text, fg, c.bg)
		}
		chips = append(chips, rendered)
		chipWidth += lipgloss.Width(rendered) + 1
	}

	marker := bg.Render(it.marker, markerStyle)
	titleWidth := max(width-lipgloss.Width(it.marker)-1-chipWidth, 8)
	row := marker + bg.Space() + bg.Render(truncate(it.title, titleWidth), textStyle)
	for _, c := range chips {
		row += bg.Space() + c
	}
	lines := []string{bg.FillLine(row, width)}

	indent := strings.Repeat(" ", lipgloss.Width(it.marker)+1)
	if it.meta != "" {
		lines = append(lines, bg.FillLine(bg.Spaces(len(indent))+bg.Render(truncate(it.meta, width-len(indent)), metaStyle), width))
	}
	if expanded {
		for _, d := range it.detail {
			lines = append(lines, bg.FillLine(bg.Spaces(len(indent))+bg.Render(truncate(d, width-len(indent)), metaStyle), width))
		}
	}
	return lines
}

func (m Model) toneColor(tone string) string {
	if c, ok := m.theme.ToneColors[tone]; ok {
		return c
	}
	return m.theme.Muted
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// ┌─── Title ───┐
// When focused is true, uses BorderFocus color and FocusBg background.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	var paddedLines []string
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	if len(paddedLines) == 0 {
		return topBorder + "\n" + bottomBorder
	}
	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}

func expandKey(p panelID, key string) string {
	return panelNames[p] + "/" + key
}

func (m Model) now() time.Time {
	if m.clock != nil {
		return m.clock()
	}
	return time.Now()
}
