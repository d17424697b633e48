package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and panel fill
	SurfaceAlt string // Expanded item detail
	FocusBg    string // Focused panel title

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// ToneColors maps a status tone (Jira status, merge state) to a chip color.
	ToneColors map[string]string
}

// palette is the small set of source colors a theme is derived from.
type palette struct {
	name string

	bg0, bg1, bg2, bg3 string // darkest to lightest surfaces
	sel, border        string
	fg, comment, faint string

	blue, green, yellow, red, cyan string
}

// theme spreads p over the UI roles. Tones follow the widget semantics:
// done and ready are green, blocked and conflicts red, pending yellow.
func (p palette) theme() Theme {
	return Theme{
		Name:          p.name,
		Background:    p.bg0,
		Surface:       p.bg1,
		SurfaceAlt:    p.bg2,
		FocusBg:       p.bg3,
		SelectionBg:   p.sel,
		SelectionText: p.fg,
		Border:        p.border,
		BorderFocus:   p.blue,
		Text:          p.fg,
		Muted:         p.comment,
		Faint:         p.faint,
		Accent:        p.blue,
		Success:       p.green,
		Warning:       p.yellow,
		Danger:        p.red,
		Info:          p.cyan,

		ToneColors: map[string]string{
			"neutral":   p.faint,
			"progress":  p.blue,
			"done":      p.green,
			"blocked":   p.red,
			"ready":     p.green,
			"conflicts": p.red,
			"pending":   p.yellow,
		},
	}
}

var palettes = []palette{
	{
		// https://github.com/EdenEast/nightfox.nvim
		name: "Nightfox",

		bg0:    "#131a24",
		bg1:    "#192330",
		bg2:    "#212e3f",
		bg3:    "#29394f",
		sel:    "#2b3b51",
		border: "#39506d",

		fg:      "#cdcecf",
		comment: "#738091",
		faint:   "#71839b",

		blue:   "#719cd6",
		green:  "#81b29a",
		yellow: "#dbc074",
		red:    "#c94f6d",
		cyan:   "#63cdcf",
	},
	{
		// https://github.com/rebelot/kanagawa.nvim
		name: "Kanagawa",

		bg0:    "#16161D",
		bg1:    "#1F1F28",
		bg2:    "#2A2A37",
		bg3:    "#2A2A37",
		sel:    "#2D4F67",
		border: "#54546D",

		fg:      "#DCD7BA",
		comment: "#C8C093",
		faint:   "#727169",

		blue:   "#7E9CD8",
		green:  "#98BB6C",
		yellow: "#E6C384",
		red:    "#E46876",
		cyan:   "#7FB4CA",
	},
	{
		// Tailwind slate and sky
		name: "Slate",

		bg0:    "#020617",
		bg1:    "#0f172a",
		bg2:    "#1e293b",
		bg3:    "#283548",
		sel:    "#0284c7",
		border: "#334155",

		fg:      "#f1f5f9",
		comment: "#94a3b8",
		faint:   "#64748b",

		blue:   "#38bdf8",
		green:  "#22c55e",
		yellow: "#f59e0b",
		red:    "#ef4444",
		cyan:   "#06b6d4",
	},
}

var (
	themes     = make(map[string]Theme, len(palettes))
	themeOrder = make([]string, 0, len(palettes))
)

func init() {
	for _, p := range palettes {
		themes[p.name] = p.theme()
		themeOrder = append(themeOrder, p.name)
	}
}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style

	toneColors map[string]string
	background string
	muted      string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).
			Background(lipgloss.Color(t.Surface)).
			Padding(0, 1),
		Logo: fg(t.Warning).Bold(true),

		toneColors: t.ToneColors,
		background: t.Background,
		muted:      t.Muted,
	}
}

// ToneStyle returns a chip style for the given tone name. Unknown tones use
// the muted color.
func (s Styles) ToneStyle(tone string) lipgloss.Style {
	color := s.toneColors[tone]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of s whose text styles paint bgColor
// explicitly, so rendered text does not show the terminal default through.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}
