package tui

import (
	"fmt"
	"strings"

	"memberbook/internal/report"

	"github.com/charmbracelet/lipgloss"
)

// renderAgeGraph draws a horizontal bar chart of member count per age,
// ages ascending.
func renderAgeGraph(rows []report.AgeCount, width int) string {
	if len(rows) == 0 {
		return styleMuted().Render("No members yet.")
	}

	maxCount := 0
	for _, r := range rows {
		if r.Count > maxCount {
			maxCount = r.Count
		}
	}

	// "age NN " + bar + " count"
	barW := width - 14
	if barW < 8 {
		barW = 8
	}
	barStyle := lipgloss.NewStyle().Foreground(colorBar)

	var b strings.Builder
	for _, r := range rows {
		n := r.Count * barW / maxCount
		if n < 1 {
			n = 1
		}
		fmt.Fprintf(&b, "%s %s %d\n",
			styleMuted().Render(fmt.Sprintf("age %3d", r.Age)),
			barStyle.Render(strings.Repeat("█", n)),
			r.Count,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderAgeReport draws the same buckets as a two-column table.
func renderAgeReport(rows []report.AgeCount, total int) string {
	if len(rows) == 0 {
		return styleMuted().Render("No members yet.")
	}

	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-8s %s", "Age", "Members"))
	var b strings.Builder
	b.WriteString(header + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-8d %d\n", r.Age, r.Count)
	}
	b.WriteString(styleMuted().Render(fmt.Sprintf("%d members total", total)))
	return b.String()
}
