package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formOption is one choice of a selector field: the id goes on the wire, the
// label is what the user sees.
type formOption struct {
	id    string
	label string
}

// formField describes one input in a form. A non-empty options slice turns
// the field into a selector cycled with the arrow keys instead of free text;
// value then names the initially selected option id.
type formField struct {
	label       string
	placeholder string
	value       string
	secret      bool
	required    bool
	options     []formOption
}

// form is a small stack of text inputs and selectors with focus cycling.
// Validation here is limited to required/non-empty checks; everything else is
// the backend's job and comes back as a request error.
type form struct {
	fields   []formField
	inputs   []textinput.Model
	selected []int
	focus    int
	errMsg   string
}

func newForm(fields ...formField) *form {
	f := &form{fields: fields}
	f.inputs = make([]textinput.Model, len(fields))
	f.selected = make([]int, len(fields))
	for i, field := range fields {
		if len(field.options) > 0 {
			for j, opt := range field.options {
				if opt.id == field.value {
					f.selected[i] = j
					break
				}
			}
			continue
		}
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.CharLimit = 256
		in.Width = 40
		in.SetValue(field.value)
		if field.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		if i == 0 {
			in.Focus()
		}
		f.inputs[i] = in
	}
	return f
}

// Update feeds key events to the focused field and handles focus movement.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return nil
		}
		if opts := f.fields[f.focus].options; len(opts) > 0 {
			switch key.String() {
			case "left":
				f.selected[f.focus] = (f.selected[f.focus] + len(opts) - 1) % len(opts)
			case "right", " ":
				f.selected[f.focus] = (f.selected[f.focus] + 1) % len(opts)
			}
			return nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) setFocus(idx int) {
	if idx < 0 {
		idx = len(f.fields) - 1
	}
	if idx >= len(f.fields) {
		idx = 0
	}
	if len(f.fields[f.focus].options) == 0 {
		f.inputs[f.focus].Blur()
	}
	f.focus = idx
	if len(f.fields[f.focus].options) == 0 {
		f.inputs[f.focus].Focus()
	}
}

// value returns what field i would submit: the selected option's id for
// selectors, the trimmed text otherwise.
func (f *form) value(i int) string {
	if opts := f.fields[i].options; len(opts) > 0 {
		return opts[f.selected[i]].id
	}
	return strings.TrimSpace(f.inputs[i].Value())
}

// validate checks required fields and records an inline error. It runs before
// any request; a failed validation never reaches the network.
func (f *form) validate() bool {
	for i, field := range f.fields {
		if field.required && f.value(i) == "" {
			f.errMsg = field.label + " is required"
			f.setFocus(i)
			return false
		}
	}
	f.errMsg = ""
	return true
}

func (f *form) View() string {
	var lines []string
	for i, field := range f.fields {
		label := field.label
		if field.required {
			label += " *"
		}
		if i == f.focus {
			label = titleStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		lines = append(lines, label)
		if opts := field.options; len(opts) > 0 {
			choice := opts[f.selected[i]].label
			if i == f.focus {
				lines = append(lines, "◂ "+choice+" ▸")
			} else {
				lines = append(lines, dimStyle.Render("  "+choice))
			}
			continue
		}
		lines = append(lines, f.inputs[i].View())
	}
	if f.errMsg != "" {
		lines = append(lines, errorStyle.Render(f.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
