package tui

import (
	"context"
	"fmt"
	"os"

	"memberbook/internal/model"
	"memberbook/internal/roster"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type appModel struct {
	ctrl *roster.Controller

	width  int
	height int

	tab     tab
	loading bool
	spin    spinner.Model

	// Members tab.
	search    textinput.Model
	searching bool
	table     table.Model

	// Register tab.
	form      memberForm
	formError string
	notice    string

	// Edit modal; live while the session phase is Open or Submitting.
	edit          memberForm
	editError     string
	editImageNote string

	// Delete confirm modal.
	confirmDeleteID   string
	confirmDeleteName string
	confirmSel        confirmFocus

	showHelp bool
}

func newAppModel(ctrl *roster.Controller) appModel {
	m := appModel{
		ctrl:    ctrl,
		tab:     tabRegister,
		loading: true,
	}

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m.search = textinput.New()
	m.search.Placeholder = "Search…"
	m.search.CharLimit = 100
	m.search.Width = 32

	m.table = table.New(
		table.WithColumns(memberColumns(96)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).Foreground(colorSurfaceFg).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	st.Selected = st.Selected.Foreground(colorSelectedFg).Background(colorSelectedBg)
	m.table.SetStyles(st)

	m.form = newMemberForm()
	m.edit = newMemberForm()

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, fetchMembers(m.ctrl))
}

func memberColumns(width int) []table.Column {
	// Fixed narrow columns; the name columns take the slack.
	nameW := (width - 8 - 6 - 12 - 7 - 12) / 2
	if nameW < 8 {
		nameW = 8
	}
	return []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Prefix", Width: 6},
		{Title: "First name", Width: nameW},
		{Title: "Last name", Width: nameW},
		{Title: "Birth date", Width: 12},
		{Title: "Image", Width: 7},
		{Title: "Updated", Width: 12},
	}
}

// rebuildTable recomputes the projected view and rewrites the table rows.
// The projection is derived fresh on every input change; rows are never
// patched in place.
func (m *appModel) rebuildTable() {
	view := m.ctrl.View()
	rows := make([]table.Row, 0, len(view))
	for _, mem := range view {
		img := "—"
		if mem.ProfileImage != "" {
			img = "yes"
		}
		rows = append(rows, table.Row{
			clampLine(mem.ID, 8),
			string(mem.Prefix),
			mem.FirstName,
			mem.LastName,
			model.DateOf(mem.BirthDate).String(),
			img,
			mem.UpdatedAt.Format("2006-01-02"),
		})
	}
	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor >= 0 {
		m.table.SetCursor(cursor)
	}
}

// selectedMemberID maps the table cursor back to the projected view.
func (m *appModel) selectedMemberID() string {
	view := m.ctrl.View()
	i := m.table.Cursor()
	if i < 0 || i >= len(view) {
		return ""
	}
	return view[i].ID
}

func (m *appModel) resize() {
	m.table.SetColumns(memberColumns(m.width - 4))
	h := m.height - 10
	if h < 4 {
		h = 4
	}
	m.table.SetHeight(h)
}

func fetchMembers(c *roster.Controller) tea.Cmd {
	store := c.Store()
	return func() tea.Msg {
		members, err := store.List(context.Background())
		return membersLoadedMsg{members: members, err: err}
	}
}

func readImageFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return imageReadMsg{data: data, err: err}
	}
}

func (m *appModel) sortIndicator() string {
	p := m.ctrl.Params()
	dir := "↑"
	if p.SortDir == roster.Descending {
		dir = "↓"
	}
	field := p.SortField
	if field == "" {
		field = roster.SortID
	}
	return fmt.Sprintf("sort: %s %s", field, dir)
}

func (m *appModel) memberCountLine() string {
	total := len(m.ctrl.Members())
	shown := len(m.ctrl.View())
	if shown == total {
		return fmt.Sprintf("%d members", total)
	}
	return fmt.Sprintf("%d of %d members", shown, total)
}
