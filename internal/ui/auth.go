package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/widget"
)

// renderAuthDialog renders the Google authorization prompt over the
// dashboard.
func (m Model) renderAuthDialog() string {
	styles := m.theme.Styles()
	status := m.board.AuthDialog.Status()
	title, body := widget.AuthCopy(status)

	width := min(max(m.width-8, 30), 60)

	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render(title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width - 6).Foreground(lipgloss.Color(m.theme.Text)).Render(body))
	b.WriteString("\n\n")

	hints := []string{}
	if status.AuthURL != "" {
		hints = append(hints, styles.AccentText.Render("o")+" "+styles.MutedText.Render("Authorize"))
	}
	hints = append(hints,
		styles.AccentText.Render("R")+" "+styles.MutedText.Render("Reload everything"),
		styles.AccentText.Render("esc")+" "+styles.MutedText.Render("Dismiss"),
	)
	b.WriteString(strings.Join(hints, "   "))

	return m.placeModal(b.String(), width, m.theme.Warning)
}

// renderInput renders the todo text input as a modal.
func (m Model) renderInput() string {
	styles := m.theme.Styles()
	width := min(max(m.width-8, 30), 60)

	title := "Add todo"
	if m.inputMode == inputRename {
		title = "Rename todo"
	}

	input := m.input
	input.Width = width - 8

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n\n")
	b.WriteString(input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("enter") + " " + styles.MutedText.Render("Save") + "   " +
		styles.AccentText.Render("esc") + " " + styles.MutedText.Render("Cancel"))

	return m.placeModal(b.String(), width, m.theme.Accent)
}

func (m Model) placeModal(content string, width int, border string) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
