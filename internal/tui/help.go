package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `
# memberbook

Tabs: **tab**/**shift+tab** cycle Register, Members, Age graph, Age report.

## Members

- ` + "`/`" + ` — search by first or last name (enter applies, esc clears)
- ` + "`i p f l b c u`" + ` — sort by id, prefix, first, last, birth, created, updated
  (pressing any sort key flips the direction)
- ` + "`e`" + ` — edit the selected member
- ` + "`d`" + ` — delete the selected member (with confirmation)
- ` + "`r`" + ` — reload from the server

## Editing

- ` + "`tab`" + ` — next field; on the image field, **enter** loads the file
- ` + "`ctrl+s`" + ` — save
- ` + "`esc`" + ` — discard changes (not available while saving)

## Register

- ` + "`ctrl+s`" + ` — submit the new member

Press **?** or **esc** to close this help.
`

// renderHelp renders the key reference with glamour once per width.
func renderHelp(width int) string {
	if width < 20 {
		width = 20
	}
	if width > 80 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		// WithAutoStyle can block probing terminal capabilities on some
		// terminals; pick the style from the detected background.
		glamour.WithStandardStyle(helpStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimRight(out, "\n")
}

func helpStyle() string {
	if hasDarkBackground() {
		return "dark"
	}
	return "light"
}
