package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/pluqqy/certadmin/pkg/session"
)

// field is one editable line of a form. Fields without set are edited by
// cycling only; fields with neither are read-only.
type field struct {
	label string
	value func(s *session.Session) string
	// set applies typed input and may return a notice for the status bar.
	set   func(s *session.Session, v string) (string, error)
	cycle func(s *session.Session, delta int)
}

func (f field) readOnly() bool {
	return f.set == nil && f.cycle == nil
}

// form is a vertical list of fields with one line being edited at a time.
type form struct {
	title   string
	fields  []field
	cursor  int
	editing bool
	input   textinput.Model
}

func newForm(title string, fields []field) *form {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 30
	ti.Prompt = ""
	return &form{title: title, fields: fields, input: ti}
}

// formResult tells the app what a key press did to the form.
type formResult struct {
	handled bool
	changed bool
	notice  string
	err     error
	cmd     tea.Cmd
}

// Editing reports whether the text input owns the keyboard.
func (f *form) Editing() bool {
	return f.editing
}

func (f *form) current() field {
	return f.fields[f.cursor]
}

func (f *form) handleKey(msg tea.KeyMsg, s *session.Session) formResult {
	if f.editing {
		switch msg.String() {
		case "esc":
			f.stopEditing()
			return formResult{handled: true}
		case "enter":
			notice, err := f.current().set(s, strings.TrimSpace(f.input.Value()))
			if err != nil {
				return formResult{handled: true, err: err}
			}
			f.stopEditing()
			return formResult{handled: true, changed: true, notice: notice}
		}
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return formResult{handled: true, cmd: cmd}
	}

	switch msg.String() {
	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
		return formResult{handled: true}
	case "down", "j":
		if f.cursor < len(f.fields)-1 {
			f.cursor++
		}
		return formResult{handled: true}
	case "left", "right":
		fl := f.current()
		if fl.cycle == nil {
			return formResult{handled: true}
		}
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		fl.cycle(s, delta)
		return formResult{handled: true, changed: true}
	case "enter", "e":
		fl := f.current()
		if fl.set != nil {
			f.editing = true
			value := fl.value(s)
			if value == emptyValue {
				value = ""
			}
			f.input.SetValue(value)
			f.input.CursorEnd()
			return formResult{handled: true, cmd: f.input.Focus()}
		}
		if fl.cycle != nil {
			fl.cycle(s, 1)
			return formResult{handled: true, changed: true}
		}
		return formResult{handled: true}
	}
	return formResult{}
}

func (f *form) stopEditing() {
	f.editing = false
	f.input.Blur()
	f.input.SetValue("")
}

func (f *form) view(s *session.Session, width int, active bool) string {
	labelStyle := lipgloss.NewStyle().
		Width(14).
		Foreground(lipgloss.Color(ColorNormal))

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205"))

	valueWidth := width - 18
	if valueWidth < 8 {
		valueWidth = 8
	}
	f.input.Width = valueWidth - 1

	var b strings.Builder
	b.WriteString(GetActiveHeaderStyle(active).Render(strings.ToUpper(f.title)))
	b.WriteString("\n")
	for i, fl := range f.fields {
		var value string
		if f.editing && i == f.cursor {
			value = f.input.View()
		} else {
			value = truncate.StringWithTail(fl.value(s), uint(valueWidth), "…")
			if fl.readOnly() {
				value = DescriptionStyle.Render(value)
			} else if fl.cycle != nil && fl.set == nil {
				value = "‹ " + value + " ›"
			}
		}
		line := labelStyle.Render(fl.label+":") + " " + value
		if active && i == f.cursor {
			b.WriteString(focusedStyle.Render("▸ ") + line)
		} else {
			b.WriteString("  " + line)
		}
		if i < len(f.fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
