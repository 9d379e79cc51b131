package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shortforge/hookcut/internal/pipeline"
	"github.com/shortforge/hookcut/internal/types"
)

// Color palette
const (
	colorPrimary   = "#7D56F4"
	colorSuccess   = "#04B575"
	colorInfo      = "#626262"
	colorHighlight = "#FAFAFA"
	colorBorder    = "#874BFD"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			MarginTop(1).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 2)

	rankStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHighlight)).
			Background(lipgloss.Color(colorPrimary)).
			Padding(0, 1)

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorInfo))
)

func printSummary(w io.Writer, res pipeline.Result) {
	m := res.Manifest
	fmt.Fprintln(w, bannerStyle.Render(fmt.Sprintf("hookcut: %d clips generated", len(m.Clips))))

	for i, c := range m.Clips {
		fmt.Fprintln(w, boxStyle.Render(clipSummary(i+1, c)))
	}

	fmt.Fprintln(w, dimStyle.Render("output: "+res.RunDir))
}

func clipSummary(rank int, c types.ManifestClip) string {
	var b strings.Builder
	b.WriteString(rankStyle.Render(fmt.Sprintf("#%d", rank)))
	fmt.Fprintf(&b, " %s  %.1fs - %.1fs (%.1fs)\n", c.File, c.StartSec, c.EndSec, c.DurationSec)
	b.WriteString(scoreStyle.Render(fmt.Sprintf("score %s %.2f", scoreBar(c.Score), c.Score)))
	if c.Kind != "" {
		b.WriteString(dimStyle.Render("  " + c.Kind))
	}
	if c.Text != "" {
		b.WriteString("\n" + dimStyle.Render(truncate(c.Text, 70)))
	}
	return b.String()
}

func scoreBar(score float64) string {
	const width = 10
	filled := int(score*width + 0.5)
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
