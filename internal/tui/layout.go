package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// clampLine forces a rendered line to at most width columns (ANSI-aware),
// appending an ellipsis when it was cut. Keeps table cells and status
// lines from wrapping and breaking row alignment.
func clampLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

func modalBodyWidth(termWidth int) int {
	w := termWidth - 10
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = 24
	}
	return w
}

// renderModalBox draws a bordered modal with a header line, sized from
// the terminal width.
func renderModalBox(termWidth int, title string, content string) string {
	bodyW := modalBodyWidth(termWidth)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(bodyW).
		Padding(0, 1).
		Render(clampLine(title, bodyW-2))

	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(0, 1).
		Render(content)

	box := lipgloss.JoinVertical(lipgloss.Left, header, body)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(box)
}

// placeCentered centers a modal in the available screen area.
func placeCentered(width, height int, s string) string {
	if width <= 0 || height <= 0 {
		return s
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}

// renderInputLine renders a textinput view as a single padded line inside
// a form. Newlines would trigger wrapping that looks like inserted lines
// while typing.
func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the body width; terminate styling to prevent bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
