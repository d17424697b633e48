package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{title: "Navigation", bindings: m.keys.FullHelp()[0]},
		{title: "Items", bindings: m.keys.FullHelp()[1]},
		{title: "Todos", items: []helpItem{
			{"a", "Add todo"},
			{"x/enter", "Toggle done"},
			{"r", "Rename todo"},
			{"d", "Delete todo"},
			{"J/K", "Move todo down/up"},
		}},
		{title: "General", bindings: m.keys.FullHelp()[3]},
		{title: "Authorization dialog", items: []helpItem{
			{"o", "Authorize Google account"},
			{"esc", "Dismiss"},
			{"R", "Reload everything"},
		}},
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.all() {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title    string
	bindings []key.Binding
	items    []helpItem
}

func (s helpSection) all() []helpItem {
	out := make([]helpItem, 0, len(s.bindings)+len(s.items))
	for _, b := range s.bindings {
		h := b.Help()
		out = append(out, helpItem{h.Key, h.Desc})
	}
	return append(out, s.items...)
}

type helpItem struct {
	key  string
	desc string
}
