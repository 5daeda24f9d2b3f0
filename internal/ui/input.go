package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todue/internal/date"
	"todue/internal/task"
)

// inputForm is the new-task form. selectedDate holds the date chosen in the
// calendar or typed into the date field; it is what Add commits, not the raw
// field text.
type inputForm struct {
	text         textinput.Model
	date         textinput.Model
	field        field
	selectedDate string
}

func newInputForm() inputForm {
	return inputForm{
		text: newTextInput("What needs doing?", 256, 40),
		date: newDateInput(),
	}
}

func (f *inputForm) resize(width int) {
	f.text.Width = max(10, min(width-20, 60))
}

func (f *inputForm) focusField(fl field) tea.Cmd {
	f.field = fl
	if fl == fieldDate {
		f.text.Blur()
		return f.date.Focus()
	}
	f.date.Blur()
	return f.text.Focus()
}

func (f *inputForm) blur() {
	f.text.Blur()
	f.date.Blur()
}

// selectDate records a chosen date and mirrors it into the date field.
func (f *inputForm) selectDate(d date.Date) {
	f.selectedDate = d.String()
	f.date.SetValue(f.selectedDate)
	f.date.CursorEnd()
}

// syncSelectedDate captures the date field after typing: a complete valid
// date becomes the selection, anything else clears it.
func (f *inputForm) syncSelectedDate() {
	if d, err := date.Parse(f.date.Value()); err == nil {
		f.selectedDate = d.String()
		return
	}
	f.selectedDate = ""
}

func (f *inputForm) reset() {
	f.text.SetValue("")
	f.date.SetValue("")
	f.selectedDate = ""
}

func (m Model) updateForm(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.leaveForm()
		m.status = "Back to list"
		return m, nil
	case m.cfg.Keys.Confirm:
		return m.addTask()
	case m.cfg.Keys.NextField, "shift+tab":
		next := fieldDate
		if m.form.field == fieldDate {
			next = fieldText
		}
		return m, m.form.focusField(next)
	case m.cfg.Keys.Picker:
		return m.openPicker()
	}

	var cmd tea.Cmd
	if m.form.field == fieldDate {
		m.form.date, cmd = m.form.date.Update(msg)
		m.form.syncSelectedDate()
	} else {
		m.form.text, cmd = m.form.text.Update(msg)
	}
	return m, cmd
}

func (m *Model) leaveForm() {
	m.form.blur()
	m.focus = focusList
	m.syncEditFocus()
}

// addTask commits the form when both text and a selected date are present;
// otherwise it leaves everything untouched and shows a blocking message.
func (m Model) addTask() (tea.Model, tea.Cmd) {
	if strings.TrimSpace(m.form.text.Value()) == "" || m.form.selectedDate == "" {
		m.alert = task.MsgAddInvalid
		return m, nil
	}
	text, due, err := task.ValidateNew(m.form.text.Value(), m.form.selectedDate)
	if err != nil {
		var verr *task.ValidationError
		if errors.As(err, &verr) {
			m.alert = verr.Message
		} else {
			m.alert = err.Error()
		}
		return m, nil
	}
	if _, err := m.store.Add(text, due); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.form.reset()
	m.leaveForm()
	m.reload()
	m.cursor = clampCursor(len(m.tasks)-1, len(m.tasks))
	m.status = "Added task"
	return m, nil
}

func (m Model) renderForm() string {
	label := func(s string, active bool) string {
		if active && m.focus != focusList {
			return m.styles.cursor.Render("> " + s)
		}
		return "  " + s
	}
	var b strings.Builder
	b.WriteString(label("New task: ", m.form.field == fieldText))
	b.WriteString(m.form.text.View())
	b.WriteString("\n")
	b.WriteString(label("Due date: ", m.form.field == fieldDate))
	b.WriteString(m.form.date.View())
	b.WriteString("  ")
	b.WriteString(m.styles.dim.Render(fmt.Sprintf("[%s] calendar", m.cfg.Keys.Picker)))
	b.WriteString("\n")
	return b.String()
}
