package tui

import (
	"context"
	"fmt"
	"strings"

	"memberbook/internal/api"
	"memberbook/internal/attach"
	"memberbook/internal/model"
	"memberbook/internal/roster"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && m.ctrl.Session().Phase() != roster.PhaseSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case membersLoadedMsg:
		// The latest completion wins, whatever order fetches were started in.
		m.loading = false
		_ = m.ctrl.CompleteRefresh(msg.members, msg.err)
		m.rebuildTable()
		return m, nil

	case createDoneMsg:
		m.loading = false
		if err := m.ctrl.CompleteCreate(msg.err); err != nil {
			return m, nil
		}
		m.notice = "Registered: " + msg.created.ID
		m.form.reset()
		m.formError = ""
		// Pull the authoritative list so the new record shows up in the table.
		m.loading = true
		return m, tea.Batch(m.spin.Tick, fetchMembers(m.ctrl))

	case submitDoneMsg:
		_ = m.ctrl.CompleteSubmit(msg.result, msg.err)
		if msg.err != nil {
			// Session reopened with the draft intact; keep the modal up.
			m.editError = msg.err.Error()
			return m, nil
		}
		m.editError = ""
		m.editImageNote = ""
		m.rebuildTable()
		return m, nil

	case deleteDoneMsg:
		_ = m.ctrl.CompleteDelete(msg.id, msg.err)
		m.rebuildTable()
		return m, nil

	case imageReadMsg:
		if msg.err != nil {
			m.editError = msg.err.Error()
			return m, nil
		}
		if err := m.ctrl.UpdateImage(msg.data); err != nil {
			m.editError = err.Error()
			return m, nil
		}
		m.editError = ""
		m.editImageNote = "Image staged (" + byteCount(len(msg.data)) + ")"
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q", "enter":
			m.showHelp = false
		}
		return m, nil
	}

	if m.confirmDeleteID != "" {
		return m.updateConfirmDelete(msg)
	}

	if m.ctrl.Session().Phase() != roster.PhaseClosed {
		return m.updateEditModal(msg)
	}

	if m.searching {
		return m.updateSearch(msg)
	}

	typing := m.tab == tabRegister && m.form.focus != fieldPrefix

	switch msg.String() {
	case "?":
		if typing {
			break
		}
		m.showHelp = true
		return m, nil
	case "tab":
		m.tab = allTabs[(int(m.tab)+1)%len(allTabs)]
		return m, nil
	case "shift+tab":
		m.tab = allTabs[(int(m.tab)+len(allTabs)-1)%len(allTabs)]
		return m, nil
	}

	switch m.tab {
	case tabRegister:
		return m.updateRegister(msg)
	case tabList:
		return m.updateList(msg)
	default:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, tea.Batch(m.spin.Tick, fetchMembers(m.ctrl))
		}
		return m, nil
	}
}

func (m appModel) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "enter":
		m.form.next()
		return m, nil
	case "up":
		m.form.prev()
		return m, nil
	case "ctrl+s":
		return m.submitRegister()
	}
	cmd := m.form.update(msg)
	return m, cmd
}

func (m appModel) submitRegister() (tea.Model, tea.Cmd) {
	first := strings.TrimSpace(m.form.first.Value())
	last := strings.TrimSpace(m.form.last.Value())
	if first == "" || last == "" {
		m.formError = "First and last name must be non-empty"
		return m, nil
	}
	bd, err := model.ParseDate(m.form.birth.Value())
	if err != nil {
		m.formError = err.Error()
		return m, nil
	}

	nm := api.NewMember{
		Prefix:    m.form.prefix(),
		FirstName: first,
		LastName:  last,
		BirthDate: bd.Time(),
	}
	imagePath := strings.TrimSpace(m.form.image.Value())

	m.formError = ""
	m.notice = ""
	m.loading = true
	store := m.ctrl.Store()
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		if imagePath != "" {
			uri, err := attach.EncodeFile(imagePath, 0)
			if err != nil {
				return createDoneMsg{err: err}
			}
			nm.ProfileImage = uri
		}
		created, err := store.Create(context.Background(), nm)
		return createDoneMsg{created: created, err: err}
	})
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		return m, tea.Batch(m.spin.Tick, fetchMembers(m.ctrl))
	case "/":
		m.searching = true
		m.search.Focus()
		return m, nil
	case "e":
		id := m.selectedMemberID()
		if id == "" {
			return m, nil
		}
		if err := m.ctrl.OpenEdit(id); err != nil {
			return m, nil
		}
		draft, _ := m.ctrl.Session().Draft()
		m.edit.setFromDraft(draft, m.ctrl.Session().BirthDate())
		m.editError = ""
		m.editImageNote = ""
		return m, nil
	case "d":
		id := m.selectedMemberID()
		if id == "" {
			return m, nil
		}
		if mem, ok := m.ctrl.Member(id); ok {
			m.confirmDeleteID = id
			m.confirmDeleteName = mem.FirstName + " " + mem.LastName
			m.confirmSel = confirmFocusCancel
		}
		return m, nil
	}

	if f, ok := sortKeyField(msg.String()); ok {
		m.ctrl.ToggleSort(f)
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// sortKeyField maps a sort key to its column, mirroring the clickable
// table headers.
func sortKeyField(key string) (roster.SortField, bool) {
	switch key {
	case "i":
		return roster.SortID, true
	case "p":
		return roster.SortPrefix, true
	case "f":
		return roster.SortFirstName, true
	case "l":
		return roster.SortLastName, true
	case "b":
		return roster.SortBirthDate, true
	case "c":
		return roster.SortCreatedAt, true
	case "u":
		return roster.SortUpdatedAt, true
	default:
		return "", false
	}
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.SetValue("")
		m.search.Blur()
		m.ctrl.SetSearch("")
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Live filtering: the view follows every keystroke.
	m.ctrl.SetSearch(m.search.Value())
	m.rebuildTable()
	return m, cmd
}

func (m appModel) updateEditModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.Session().Phase() == roster.PhaseSubmitting {
		// A submit in flight is not cancellable; ignore input until the
		// response lands.
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.edit.next()
		return m, nil
	case "shift+tab", "up":
		m.edit.prev()
		return m, nil
	case "enter":
		if m.edit.focus == fieldImage {
			path := strings.TrimSpace(m.edit.image.Value())
			if path == "" {
				return m, nil
			}
			return m, readImageFile(path)
		}
		m.edit.next()
		return m, nil
	case "esc":
		_ = m.ctrl.CancelEdit()
		m.editError = ""
		m.editImageNote = ""
		return m, nil
	case "ctrl+s":
		return m.submitEdit()
	}

	cmd := m.edit.update(msg)
	return m, cmd
}

func (m appModel) submitEdit() (tea.Model, tea.Cmd) {
	fields := []struct {
		f roster.Field
		v string
	}{
		{roster.FieldPrefix, string(m.edit.prefix())},
		{roster.FieldFirstName, strings.TrimSpace(m.edit.first.Value())},
		{roster.FieldLastName, strings.TrimSpace(m.edit.last.Value())},
		{roster.FieldBirthDate, strings.TrimSpace(m.edit.birth.Value())},
	}
	for _, fv := range fields {
		if err := m.ctrl.UpdateField(fv.f, fv.v); err != nil {
			m.editError = err.Error()
			return m, nil
		}
	}

	payload, err := m.ctrl.BeginSubmit()
	if err != nil {
		m.editError = err.Error()
		return m, nil
	}

	m.editError = ""
	store := m.ctrl.Store()
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		result, err := store.Update(context.Background(), payload)
		return submitDoneMsg{result: result, err: err}
	})
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmSel == confirmFocusConfirm {
			m.confirmSel = confirmFocusCancel
		} else {
			m.confirmSel = confirmFocusConfirm
		}
		return m, nil
	case "esc":
		m.confirmDeleteID = ""
		return m, nil
	case "enter":
		if m.confirmSel != confirmFocusConfirm {
			m.confirmDeleteID = ""
			return m, nil
		}
		id := m.confirmDeleteID
		m.confirmDeleteID = ""
		store := m.ctrl.Store()
		return m, func() tea.Msg {
			err := store.Delete(context.Background(), id)
			return deleteDoneMsg{id: id, err: err}
		}
	}
	return m, nil
}

func byteCount(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
