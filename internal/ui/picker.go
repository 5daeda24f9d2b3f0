package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"todue/internal/date"
)

// picker is the month calendar opened from the new-task form.
type picker struct {
	cursor date.Date
}

// openPicker shows the calendar on the current selection, or today.
func (m Model) openPicker() (tea.Model, tea.Cmd) {
	start := m.today()
	if d, err := date.Parse(m.form.selectedDate); err == nil {
		start = d
	}
	m.picker = &picker{cursor: start}
	m.form.blur()
	m.focus = focusPicker
	m.status = "Calendar: arrows/hjkl move • [ ] month • t today • enter select • esc close"
	return m, nil
}

func (m Model) updatePicker(key string) (tea.Model, tea.Cmd) {
	p := m.picker
	switch key {
	case "left", "h":
		p.cursor = p.cursor.AddDays(-1)
	case "right", "l":
		p.cursor = p.cursor.AddDays(1)
	case "up", "k":
		p.cursor = p.cursor.AddDays(-7)
	case "down", "j":
		p.cursor = p.cursor.AddDays(7)
	case "[":
		p.cursor = p.cursor.AddMonths(-1)
	case "]":
		p.cursor = p.cursor.AddMonths(1)
	case "t":
		p.cursor = m.today()
	case m.cfg.Keys.Confirm:
		m.form.selectDate(p.cursor)
		m.closePicker()
		m.status = "Due " + m.form.selectedDate
		return m, m.form.focusField(fieldText)
	case m.cfg.Keys.Cancel:
		m.closePicker()
		m.status = "Calendar closed"
		return m, m.form.focusField(fieldDate)
	}
	return m, nil
}

func (m *Model) closePicker() {
	m.picker = nil
	m.focus = focusForm
}

// View renders the month around the cursor as a Sunday-first grid.
func (p *picker) View(s styles, today date.Date) string {
	year, month := p.cursor.Year(), p.cursor.Month()
	first := date.New(year, month, 1)
	days := date.DaysIn(year, month)
	offset := int(first.Weekday())

	lines := []string{
		s.title.Render(fmt.Sprintf("%s %d", month, year)),
		s.calHeader.Render("Su Mo Tu We Th Fr Sa"),
	}
	rows := (offset + days + 6) / 7
	for row := 0; row < rows; row++ {
		cells := make([]string, 0, 7)
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > days {
				cells = append(cells, "  ")
				continue
			}
			style := s.calDay
			if today.Year() == year && today.Month() == month && today.Day() == day {
				style = style.Inherit(s.calToday)
			}
			if day == p.cursor.Day() {
				style = s.calSelected
			}
			cells = append(cells, style.Render(fmt.Sprintf("%2d", day)))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}
