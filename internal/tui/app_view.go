package tui

import (
	"strings"
	"time"

	"memberbook/internal/report"
	"memberbook/internal/roster"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width == 0 {
		return "Loading…"
	}

	if m.showHelp {
		return placeCentered(m.width, m.height, renderHelp(m.width-8))
	}

	base := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabBar(),
		"",
		m.renderBody(),
	)
	base = lipgloss.JoinVertical(lipgloss.Left, base, m.renderStatusLine(base))

	if m.confirmDeleteID != "" {
		modal := renderDeleteConfirm(m.width, m.confirmDeleteName, m.confirmSel)
		return placeCentered(m.width, m.height, modal)
	}

	if m.ctrl.Session().Phase() != roster.PhaseClosed {
		return placeCentered(m.width, m.height, m.renderEditModal())
	}

	return base
}

func (m appModel) renderTabBar() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(colorSelectedFg).
		Background(colorSelectedBg)
	inactive := styleMuted().Padding(0, 1)

	parts := make([]string, 0, len(allTabs))
	for _, t := range allTabs {
		st := inactive
		if t == m.tab {
			st = active
		}
		parts = append(parts, st.Render(t.title()))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	hint := styleMuted().Render("  tab: switch   ?: help   ctrl+c: quit")
	return clampLine(bar+hint, m.width)
}

func (m appModel) renderBody() string {
	switch m.tab {
	case tabRegister:
		return m.renderRegister()
	case tabList:
		return m.renderList()
	case tabGraph:
		return m.renderStats(true)
	case tabReport:
		return m.renderStats(false)
	default:
		return ""
	}
}

func (m appModel) renderRegister() string {
	bodyW := modalBodyWidth(m.width)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Register a member"),
		"",
		m.form.view(bodyW, ""),
		"",
		styleMuted().Render("enter/↓↑: move   ctrl+s: submit"),
	}
	if m.loading {
		lines = append(lines, m.spin.View()+" Saving…")
	}
	if m.formError != "" {
		lines = append(lines, styleError().Render(m.formError))
	}
	if m.notice != "" {
		lines = append(lines, styleOK().Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderList() string {
	if m.loading && !m.ctrl.Loaded() {
		return m.spin.View() + " Loading members…"
	}
	if m.ctrl.ListBlocked() {
		return styleError().Render("Could not load members from the server.") +
			"\n" + styleMuted().Render("r: retry")
	}

	searchLine := styleMuted().Render("/: search")
	if m.searching || m.search.Value() != "" {
		searchLine = m.search.View()
	}

	meta := styleMuted().Render(m.memberCountLine() + "   " + m.sortIndicator())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		searchLine,
		m.table.View(),
		meta,
		styleMuted().Render("e: edit   d: delete   i/p/f/l/b/c/u: sort   r: reload"),
	)
}

func (m appModel) renderStats(graph bool) string {
	if m.loading && !m.ctrl.Loaded() {
		return m.spin.View() + " Loading members…"
	}
	if m.ctrl.ListBlocked() {
		return styleError().Render("Could not load members from the server.") +
			"\n" + styleMuted().Render("r: retry")
	}

	members := m.ctrl.Members()
	rows := report.CountByAge(members, time.Now().UTC())
	if graph {
		return renderAgeGraph(rows, m.width-4)
	}
	return renderAgeReport(rows, len(members))
}

func (m appModel) renderEditModal() string {
	bodyW := modalBodyWidth(m.width)
	draft, ok := m.ctrl.Session().Draft()
	title := "Edit member"
	if ok && draft.ID != "" {
		title = "Edit member " + draft.ID
	}

	lines := []string{
		m.edit.view(bodyW, m.editImageNote),
		"",
	}
	if m.ctrl.Session().Phase() == roster.PhaseSubmitting {
		lines = append(lines, m.spin.View()+" Saving…")
	} else {
		lines = append(lines, styleMuted().Render("tab: next field   ctrl+s: save   esc: discard"))
	}
	if m.editError != "" {
		lines = append(lines, styleError().Render(m.editError))
	}
	return renderModalBox(m.width, title, strings.Join(lines, "\n"))
}

// renderStatusLine pins the shared status slot to the bottom row. Only the
// latest failure is shown; a newer one overwrites an older one.
func (m appModel) renderStatusLine(above string) string {
	status := m.ctrl.Status()
	if status == "" {
		return ""
	}
	pad := m.height - lipgloss.Height(above) - 2
	var b strings.Builder
	for i := 0; i < pad; i++ {
		b.WriteString("\n")
	}
	b.WriteString(styleError().Render(clampLine(status, m.width)))
	return b.String()
}
