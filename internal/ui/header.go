package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/widget"
)

// renderHeader renders the top bar: logo, quick links, badges and refresh
// status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	parts := []string{bg.Render("perch", styles.Logo)}

	if m.board != nil && m.board.Demo.Snapshot().Data.Enabled {
		parts = append(parts, Chip("DEMO", m.theme.Background, m.theme.Warning))
	}

	parts = append(parts, m.renderMail(styles, bg), m.renderQuickLinks(styles, bg, compact))

	if flash, isErr := m.activeFlash(); flash != "" {
		style := styles.InfoText
		if isErr {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(truncate(flash, 50), style))
	} else if m.board != nil {
		parts = append(parts, m.renderRefreshStatus(styles, bg, compact))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(strings.Join(filterEmpty(parts), sep))
}

// renderMail renders the fixed Gmail entry and its unread badge. It does not
// depend on the configured quick links.
func (m Model) renderMail(styles Styles, bg BgStyle) string {
	segment := bg.Render("m", styles.AccentText) + bg.Space() + bg.Render("Gmail", styles.Text)
	if m.board == nil {
		return segment
	}
	if badge := widget.Unread(m.board.Unread); badge != "" {
		segment += bg.Space() + Chip(badge, m.theme.Background, m.theme.Danger)
	}
	return segment
}

// renderQuickLinks renders "1 Calendar 2 GitHub ...".
func (m Model) renderQuickLinks(styles Styles, bg BgStyle, compact bool) string {
	if m.config == nil || len(m.config.QuickLinks) == 0 {
		return ""
	}
	var links []string
	for i, link := range m.config.QuickLinks {
		if i >= 9 {
			break
		}
		name := link.Name
		if compact {
			name = truncate(name, 8)
		}
		links = append(links, bg.Render(fmt.Sprintf("%d", i+1), styles.AccentText)+bg.Space()+bg.Render(name, styles.Text))
	}
	return strings.Join(links, bg.Spaces(2))
}

// renderRefreshStatus shows the last successful refresh and any failing
// widgets.
func (m Model) renderRefreshStatus(styles Styles, bg BgStyle, compact bool) string {
	var parts []string
	last := m.board.LastUpdated()
	if !last.IsZero() {
		label := "Updated"
		if compact {
			label = "Upd"
		}
		parts = append(parts, bg.Render(label, styles.MutedText)+bg.Space()+bg.Render(last.Local().Format("15:04:05"), styles.Text))
	}
	if failing := m.board.Failing(); len(failing) > 0 {
		text := fmt.Sprintf("! %d failing", len(failing))
		if !compact {
			text += " (" + strings.Join(failing, ", ") + ")"
		}
		parts = append(parts, bg.Render(text, styles.DangerText))
	}
	return strings.Join(parts, bg.Spaces(2))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"L", "Dashboard"},
			{"?", "More"},
		}
	default:
		if m.focus == panelTodos {
			commands = []cmd{
				{"a", "Add"},
				{"x", "Done"},
				{"r", "Rename"},
				{"d", "Delete"},
				{"J/K", "Move"},
			}
		} else {
			commands = []cmd{
				{"enter", "Expand"},
				{"o", "Open"},
				{"y", "Copy"},
			}
		}
		commands = append(commands,
			cmd{"Tab", "Focus"},
			cmd{"R", "Reload"},
			cmd{"L", "Logs"},
			cmd{"?", "More"},
		)
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, sep))
}

func filterEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
