package tui

import (
	"strconv"
	"strings"
	"time"

	"memberbook/internal/model"
	"memberbook/internal/report"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldPrefix formField = iota
	fieldFirst
	fieldLast
	fieldBirth
	fieldImage
	formFieldCount
)

// memberForm is the shared field set for registering a member and for
// editing one in the modal. The image field takes a file path; the bytes
// are read and encoded when the value is applied.
type memberForm struct {
	prefixIdx int
	first     textinput.Model
	last      textinput.Model
	birth     textinput.Model
	image     textinput.Model
	focus     formField
}

func newMemberForm() memberForm {
	mk := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = 32
		return in
	}
	f := memberForm{
		first: mk("First name", 100),
		last:  mk("Last name", 100),
		birth: mk("YYYY-MM-DD", 10),
		image: mk("Path to image file (optional)", 400),
		focus: fieldPrefix,
	}
	return f
}

func (f *memberForm) inputFor(field formField) *textinput.Model {
	switch field {
	case fieldFirst:
		return &f.first
	case fieldLast:
		return &f.last
	case fieldBirth:
		return &f.birth
	case fieldImage:
		return &f.image
	default:
		return nil
	}
}

func (f *memberForm) setFocus(field formField) {
	f.focus = field
	for fl := fieldPrefix; fl < formFieldCount; fl++ {
		if in := f.inputFor(fl); in != nil {
			if fl == field {
				in.Focus()
			} else {
				in.Blur()
			}
		}
	}
}

func (f *memberForm) next() { f.setFocus((f.focus + 1) % formFieldCount) }

func (f *memberForm) prev() {
	f.setFocus((f.focus + formFieldCount - 1) % formFieldCount)
}

func (f *memberForm) prefix() model.Prefix {
	return model.Prefixes()[f.prefixIdx]
}

func (f *memberForm) cyclePrefix(delta int) {
	n := len(model.Prefixes())
	f.prefixIdx = (f.prefixIdx + delta + n) % n
}

// update routes a key to the form. Left/right cycle the prefix when it
// has focus; everything else goes to the focused text input.
func (f *memberForm) update(msg tea.KeyMsg) tea.Cmd {
	if f.focus == fieldPrefix {
		switch msg.String() {
		case "left", "h":
			f.cyclePrefix(-1)
		case "right", "l", " ":
			f.cyclePrefix(1)
		}
		return nil
	}
	in := f.inputFor(f.focus)
	if in == nil {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (f *memberForm) reset() {
	f.prefixIdx = 0
	f.first.SetValue("")
	f.last.SetValue("")
	f.birth.SetValue("")
	f.image.SetValue("")
	f.setFocus(fieldPrefix)
}

// setFromDraft preloads the form from an edit draft and its normalized
// birth date.
func (f *memberForm) setFromDraft(draft model.Member, bd model.Date) {
	f.prefixIdx = 0
	for i, p := range model.Prefixes() {
		if p == draft.Prefix {
			f.prefixIdx = i
		}
	}
	f.first.SetValue(draft.FirstName)
	f.last.SetValue(draft.LastName)
	f.birth.SetValue(bd.String())
	f.image.SetValue("")
	f.setFocus(fieldPrefix)
}

// agePreview shows the age the birth field currently implies, matching
// the read-only age box on the registration form.
func (f *memberForm) agePreview(now time.Time) string {
	d, err := model.ParseDate(f.birth.Value())
	if err != nil {
		return "—"
	}
	return strconv.Itoa(report.Age(d.Time(), now))
}

func (f *memberForm) view(bodyW int, imageStatus string) string {
	label := styleMuted().Render

	prefixLine := ""
	for i, p := range model.Prefixes() {
		s := " " + string(p) + " "
		if i == f.prefixIdx {
			st := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(f.focus == fieldPrefix)
			s = st.Render(s)
		} else {
			s = styleMuted().Render(s)
		}
		prefixLine += s
	}
	if f.focus == fieldPrefix {
		prefixLine += styleMuted().Render("  ←/→ to change")
	}

	lines := []string{
		label("Prefix"),
		prefixLine,
		label("First name"),
		renderInputLine(bodyW, f.first.View()),
		label("Last name"),
		renderInputLine(bodyW, f.last.View()),
		label("Birth date"),
		renderInputLine(bodyW, f.birth.View()),
		label("Age") + "  " + f.agePreview(time.Now().UTC()),
		label("Profile image"),
		renderInputLine(bodyW, f.image.View()),
	}
	if imageStatus != "" {
		lines = append(lines, styleMuted().Render(imageStatus))
	}
	return strings.Join(lines, "\n")
}
