package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todue/internal/task"
)

type field int

const (
	fieldText field = iota
	fieldDate
)

// rowEdit is the Editing state of one row. Rows without an entry in
// Model.edits are in Display state; any number of rows may be editing.
type rowEdit struct {
	text  textinput.Model
	date  textinput.Model
	field field
}

func newTextInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	ti.Prompt = ""
	return ti
}

func newDateInput() textinput.Model {
	return newTextInput("YYYY-MM-DD", 10, 10)
}

func (e *rowEdit) focusField(f field) tea.Cmd {
	e.field = f
	if f == fieldDate {
		e.text.Blur()
		return e.date.Focus()
	}
	e.date.Blur()
	return e.text.Focus()
}

func (e *rowEdit) blur() {
	e.text.Blur()
	e.date.Blur()
}

func (m Model) currentEdit() *rowEdit {
	if len(m.tasks) == 0 {
		return nil
	}
	return m.edits[m.tasks[m.cursor].ID]
}

// syncEditFocus gives keyboard focus to the editing row under the cursor
// and takes it from every other editing row.
func (m *Model) syncEditFocus() {
	current := m.currentEdit()
	for _, e := range m.edits {
		if e == current && m.focus == focusList {
			e.focusField(e.field)
		} else {
			e.blur()
		}
	}
}

// startEdit swaps the current row's text and urgency for inputs pre-filled
// with the stored values.
func (m Model) startEdit() (tea.Model, tea.Cmd) {
	if len(m.tasks) == 0 {
		m.status = "No tasks to edit"
		return m, nil
	}
	id := m.tasks[m.cursor].ID
	if _, editing := m.edits[id]; editing {
		return m, nil
	}
	t, ok := m.store.Get(id)
	if !ok {
		return m, nil
	}

	e := &rowEdit{
		text: newTextInput("Task", 256, maxTextWidth),
		date: newDateInput(),
	}
	e.text.SetValue(t.Text)
	e.text.CursorEnd()
	e.date.SetValue(t.Date.String())
	e.date.CursorEnd()
	m.edits[id] = e
	m.syncEditFocus()
	m.status = fmt.Sprintf("Editing: %s to switch field, %s to save, %s to cancel",
		m.cfg.Keys.NextField, m.cfg.Keys.Save, m.cfg.Keys.Cancel)
	return m, e.focusField(fieldText)
}

func (m Model) updateEditing(e *rowEdit, key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Save:
		return m.saveEdit(e)
	case m.cfg.Keys.Cancel:
		m.reload()
		m.status = "Edit cancelled"
		return m, nil
	case m.cfg.Keys.NextField, "shift+tab":
		next := fieldDate
		if e.field == fieldDate {
			next = fieldText
		}
		return m, e.focusField(next)
	case "up":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	if e.field == fieldDate {
		e.date, cmd = e.date.Update(msg)
	} else {
		e.text, cmd = e.text.Update(msg)
	}
	return m, cmd
}

// saveEdit commits both fields together or, if either is empty, keeps the
// row in Editing and shows a blocking message.
func (m Model) saveEdit(e *rowEdit) (tea.Model, tea.Cmd) {
	id := m.tasks[m.cursor].ID
	text, due, err := task.ValidateEdit(e.text.Value(), e.date.Value())
	if err != nil {
		var verr *task.ValidationError
		if errors.As(err, &verr) {
			m.alert = verr.Message
		} else {
			m.alert = err.Error()
		}
		return m, nil
	}
	if err := m.store.Update(id, text, due); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.reload()
	m.status = "Task saved"
	return m, nil
}

func (m Model) renderEditingRow(e *rowEdit) string {
	hint := m.styles.dim.Render(fmt.Sprintf("%s save • %s cancel", m.cfg.Keys.Save, m.cfg.Keys.Cancel))
	return fmt.Sprintf("[%s] [%s]  %s", e.text.View(), e.date.View(), hint)
}
