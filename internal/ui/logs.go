package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/logtail"
)

// resizeLogViewport fits the viewport inside the diagnostics box.
func (m *Model) resizeLogViewport() {
	contentHeight := max(m.height-2, 0)
	m.logViewport.Width = max(m.width-2, 1)
	m.logViewport.Height = max(contentHeight-2, 1)
}

// loadLogs reads the tail of the log file in the background.
func (m Model) loadLogs() tea.Cmd {
	if m.logPath == "" {
		return nil
	}
	return loadLogsCmd(m.logPath)
}

// setLogContent formats raw log lines and scrolls to the newest entry.
func (m *Model) setLogContent(lines []string) {
	if len(lines) == 0 {
		m.logViewport.SetContent(m.theme.Styles().MutedText.Render("No log entries yet."))
		return
	}
	styles := m.theme.Styles()
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, m.formatLogLine(line, styles))
	}
	m.logViewport.SetContent(strings.Join(rendered, "\n"))
	m.logViewport.GotoBottom()
}

// formatLogLine renders one record as "15:04:05 LEVEL message key=value".
func (m Model) formatLogLine(line string, styles Styles) string {
	if strings.TrimSpace(line) == "" {
		return ""
	}
	entry := logtail.ParseLine(line)

	var parts []string
	if !entry.Time.IsZero() {
		parts = append(parts, styles.FaintText.Render(entry.Time.Local().Format("15:04:05")))
	}
	if entry.Level != "" {
		parts = append(parts, levelStyle(entry.Level, styles).Bold(true).Render(padRight(entry.Level, 5)))
	}
	parts = append(parts, styles.Text.Render(entry.Message))
	for _, attr := range entry.Attrs {
		parts = append(parts, styles.MutedText.Render(attr.Key+"=")+styles.AccentText.Render(attr.Value))
	}
	return strings.Join(parts, " ")
}

// levelStyle returns the style for a log level.
func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR":
		return styles.DangerText
	case "DEBUG":
		return styles.InfoText
	default:
		return styles.Text
	}
}

// renderLogs renders the diagnostics view.
func (m Model) renderLogs(height int) string {
	title := "Diagnostics"
	if m.logPath != "" {
		title += ": " + m.logPath
	} else {
		return m.renderTitledBox(title, "Logging to file is disabled.", m.width, height, true)
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, height, true)
}

// handleLogsKey processes keyboard input for the diagnostics view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}
