package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todue/internal/config"
	"todue/internal/task"
)

type focus int

const (
	focusList focus = iota
	focusForm
	focusPicker
)

type Model struct {
	store  *task.Store
	cfg    config.Config
	styles styles
	logger *log.Logger
	now    func() time.Time

	tasks     []task.Task
	pending   int
	showClear bool
	cursor    int
	focus     focus

	form   inputForm
	picker *picker
	edits  map[string]*rowEdit

	alert        string
	confirmClear bool
	status       string
	stale        bool
	changes      <-chan struct{}
}

// New builds the model and performs the first full reload.
func New(store *task.Store, cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := Model{
		store:  store,
		cfg:    cfg,
		styles: newStyles(cfg.Colors),
		logger: logger,
		now:    time.Now,
		form:   newInputForm(),
		edits:  map[string]*rowEdit{},
		status: fmt.Sprintf("Press '%s' to add, space to toggle, '%s' to edit, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Edit, cfg.Keys.Delete),
	}
	m.reload()
	return m
}

// Run starts the interactive program and blocks until it quits. When the
// config asks for it, changes made to the document by other processes
// trigger a full reload.
func Run(store *task.Store, cfg config.Config, logger *log.Logger) error {
	m := New(store, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Watch {
		changes, err := store.Document().Watch(ctx)
		if err != nil {
			m.logger.Printf("ui: watch disabled: %v", err)
		} else {
			m.changes = changes
		}
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

type documentChangedMsg struct{ closed bool }

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-ch
		return documentChangedMsg{closed: !ok}
	}
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.alert != "" {
			m.alert = ""
			return m, nil
		}
		if m.confirmClear {
			return m.updateClearConfirm(msg.String())
		}
		return m.handleKey(msg)
	case documentChangedMsg:
		if msg.closed {
			m.changes = nil
			return m, nil
		}
		if len(m.edits) > 0 {
			m.stale = true
			m.status = "Tasks changed on disk; they reload when editing ends"
		} else {
			m.reload()
		}
		return m, waitForChange(m.changes)
	case tea.WindowSizeMsg:
		m.form.resize(msg.Width)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.focus {
	case focusPicker:
		return m.updatePicker(key)
	case focusForm:
		return m.updateForm(key, msg)
	}
	if e := m.currentEdit(); e != nil {
		return m.updateEditing(e, key, msg)
	}
	return m.updateListMode(key)
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.moveCursor(1)
	case m.cfg.Keys.Up, "up":
		m.moveCursor(-1)
	case m.cfg.Keys.Add:
		m.focus = focusForm
		cmd := m.form.focusField(fieldText)
		m.status = fmt.Sprintf("New task: %s to switch field, %s for calendar, %s to add, %s to leave",
			m.cfg.Keys.NextField, m.cfg.Keys.Picker, m.cfg.Keys.Confirm, m.cfg.Keys.Cancel)
		return m, cmd
	case m.cfg.Keys.Picker:
		m.focus = focusForm
		m.form.focusField(fieldDate)
		return m.openPicker()
	case m.cfg.Keys.Toggle:
		return m.toggleCurrent()
	case m.cfg.Keys.Delete:
		return m.deleteCurrent()
	case m.cfg.Keys.Edit:
		return m.startEdit()
	case m.cfg.Keys.Clear:
		if !m.showClear {
			return m, nil
		}
		m.confirmClear = true
		m.status = "Clear all tasks? y/n"
	}
	return m, nil
}

// reload re-reads the persisted document and rebuilds every row from it.
// In-progress row edits are discarded.
func (m *Model) reload() {
	m.tasks = m.store.List()
	m.edits = map[string]*rowEdit{}
	m.stale = false
	m.cursor = clampCursor(m.cursor, len(m.tasks))
	m.refreshSummary()
}

// refreshSummary recomputes the pending count and the clear control's
// visibility from the persisted document.
func (m *Model) refreshSummary() {
	tasks := m.store.List()
	m.pending = task.Pending(tasks)
	m.showClear = len(tasks) > 0
}

func (m *Model) moveCursor(delta int) {
	if len(m.tasks) == 0 {
		return
	}
	m.cursor = clampCursor(m.cursor+delta, len(m.tasks))
	m.syncEditFocus()
}

func (m Model) toggleCurrent() (tea.Model, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}
	t := m.tasks[m.cursor]
	if err := m.store.SetCompleted(t.ID, !t.Completed); err != nil {
		m.status = fmt.Sprintf("toggle failed: %v", err)
		return m, nil
	}
	m.tasks = slices.Clone(m.tasks)
	m.tasks[m.cursor].Completed = !t.Completed
	m.refreshSummary()
	m.status = "Toggled task"
	return m, nil
}

func (m Model) deleteCurrent() (tea.Model, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}
	t := m.tasks[m.cursor]
	if err := m.store.Remove(t.ID); err != nil {
		m.status = fmt.Sprintf("delete failed: %v", err)
		return m, nil
	}
	m.tasks = slices.Delete(slices.Clone(m.tasks), m.cursor, m.cursor+1)
	delete(m.edits, t.ID)
	m.cursor = clampCursor(m.cursor, len(m.tasks))
	m.refreshSummary()
	m.syncEditFocus()
	m.status = "Deleted task"
	return m, nil
}

func (m Model) updateClearConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.confirmClear = false
		if err := m.store.ClearAll(); err != nil {
			m.status = fmt.Sprintf("clear failed: %v", err)
			return m, nil
		}
		m.reload()
		m.status = "Cleared all tasks"
	case "n", "N", m.cfg.Keys.Cancel:
		m.confirmClear = false
		m.status = "Clear cancelled"
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Todo List"))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(m.styles.dim.Render(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add)))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n---\n")
	b.WriteString(m.renderForm())
	if m.picker != nil {
		b.WriteString("\n")
		b.WriteString(m.picker.View(m.styles, m.today()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.alert != "" {
		b.WriteString(m.styles.alert.Render(m.alert + "\n\n(press any key)"))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))

	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s calendar • space toggle • %s edit • %s delete • %s clear all • %s quit",
		k.Up, k.Down, k.Add, k.Picker, k.Edit, k.Delete, k.Clear, k.Quit)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
