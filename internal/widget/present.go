package widget

import (
	"strconv"
	"strings"

	"github.com/five82/perch/internal/backend"
)

const (
	black = "#000000"
	white = "#ffffff"
)

// Luminance returns the perceived brightness (0-255) of a six digit hex
// color, with or without a leading '#'.
func Luminance(hex string) (float64, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	r := float64(v >> 16 & 0xff)
	g := float64(v >> 8 & 0xff)
	b := float64(v & 0xff)
	return (r*299 + g*587 + b*114) / 1000, true
}

// LabelForeground picks black or white text for a label background. Colors
// that cannot be parsed get white text.
func LabelForeground(hex string) string {
	if lum, ok := Luminance(hex); ok && lum >= 128 {
		return black
	}
	return white
}

// MergeState classifies one of the user's own pull requests.
type MergeState int

const (
	MergePending MergeState = iota
	MergeReady
	MergeConflicts
)

func (m MergeState) String() string {
	switch m {
	case MergeReady:
		return "ready"
	case MergeConflicts:
		return "conflicts"
	default:
		return "pending"
	}
}

// MergeStatus derives the merge indicator and its label from the GitHub
// mergeability fields.
func MergeStatus(pr backend.PullRequest) (MergeState, string) {
	label := mergeLabel(pr.MergeableState)
	switch {
	case pr.Mergeable == nil && pr.MergeableState == "":
		return MergePending, label
	case pr.MergeableState == "clean" || (pr.Mergeable != nil && *pr.Mergeable && pr.MergeableState != "blocked"):
		return MergeReady, label
	case pr.Mergeable != nil && !*pr.Mergeable:
		return MergeConflicts, label
	default:
		return MergePending, label
	}
}

func mergeLabel(state string) string {
	if state == "" {
		return "Open"
	}
	words := strings.Fields(strings.Replace(state, "_", " ", 1))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Tone is the color family used for a Jira status chip.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneProgress
	ToneDone
	ToneBlocked
)

// JiraStatusTone maps a free-form Jira status to a tone.
func JiraStatusTone(status string) Tone {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "progress"):
		return ToneProgress
	case strings.Contains(s, "done"), strings.Contains(s, "complete"):
		return ToneDone
	case strings.Contains(s, "blocked"):
		return ToneBlocked
	default:
		return ToneNeutral
	}
}
