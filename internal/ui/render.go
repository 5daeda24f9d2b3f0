package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"todue/internal/date"
	"todue/internal/task"
	"todue/internal/urgency"
)

const maxTextWidth = 48

func (m Model) today() date.Date {
	return date.Of(m.now())
}

// renderTaskList draws one row per task in collection order.
func (m Model) renderTaskList() string {
	width := 0
	for _, t := range m.tasks {
		width = max(width, ansi.StringWidth(task.DisplayText(t.Text)))
	}
	width = min(width, maxTextWidth)

	today := m.today()
	var b strings.Builder
	for i, t := range m.tasks {
		cursor := " "
		if m.cursor == i && m.focus == focusList {
			cursor = m.styles.cursor.Render(">")
		}
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		var body string
		if e, ok := m.edits[t.ID]; ok {
			body = m.renderEditingRow(e)
		} else {
			body = m.renderDisplayRow(t, width, today)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, body))
	}
	return b.String()
}

func (m Model) renderDisplayRow(t task.Task, width int, today date.Date) string {
	text := ansi.Truncate(task.DisplayText(t.Text), width, "…")
	pad := strings.Repeat(" ", max(0, width-ansi.StringWidth(text)))
	if t.Completed {
		text = m.styles.completed.Render(text)
	}
	u := urgency.Classify(t.Date, today)
	return text + pad + "  " + m.styles.tier(u.Tier).Render(u.Label)
}

// renderSummary draws the pending-count line and, when there is anything
// to clear, the bulk-clear control.
func (m Model) renderSummary() string {
	line := fmt.Sprintf("You Have %d Pending Task(s).", m.pending)
	if m.showClear {
		line += "   " + m.styles.dim.Render(fmt.Sprintf("[%s] Clear All", m.cfg.Keys.Clear))
	}
	if m.stale {
		line += "   " + m.styles.dim.Render("(changed on disk)")
	}
	return line + "\n"
}
