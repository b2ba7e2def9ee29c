package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDeleteConfirm draws the delete confirmation for one member.
// Cancel starts focused; deletion must be an explicit choice.
func renderDeleteConfirm(width int, name string, focus confirmFocus) string {
	// No nested borders: some terminals show background artifacts when a
	// bordered control sits inside a modal with a background color.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	del := btnBase.Render("Delete")
	keep := btnActive.Render("Cancel")
	if focus == confirmFocusConfirm {
		del = btnActive.Render("Delete")
		keep = btnBase.Render("Cancel")
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, del, sep, keep)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		"Delete " + name + "? This cannot be undone.",
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, "Delete member", content)
}
