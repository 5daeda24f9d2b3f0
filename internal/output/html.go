package output

import (
	"fmt"
	"io"
	"strings"

	"todue/internal/task"
	"todue/internal/urgency"
)

// Palette maps urgency tiers to CSS colors.
type Palette struct {
	High, Medium, Low string
}

func (p Palette) color(t urgency.Tier) string {
	switch t {
	case urgency.High:
		return p.High
	case urgency.Medium:
		return p.Medium
	default:
		return p.Low
	}
}

// HTML writes the list as static markup. Task text and ids are escaped.
func HTML(w io.Writer, records []Record, pending int, p Palette) error {
	var b strings.Builder
	b.WriteString("<ul id=\"task-list\">\n")
	for _, r := range records {
		checked, class := "", "task-text"
		if r.Completed {
			checked, class = " checked", "task-text completed"
		}
		fmt.Fprintf(&b, "  <li data-id=\"%s\">\n", task.EscapeHTML(r.ID))
		fmt.Fprintf(&b, "    <input type=\"checkbox\" class=\"task-checkbox\"%s disabled>\n", checked)
		fmt.Fprintf(&b, "    <span class=\"%s\">%s</span>\n", class, task.EscapeHTML(r.Text))
		fmt.Fprintf(&b, "    <span class=\"daysLeft\" style=\"color: %s;\">%s</span>\n",
			task.EscapeHTML(p.color(r.tier)), r.Urgency)
		b.WriteString("  </li>\n")
	}
	b.WriteString("</ul>\n")
	fmt.Fprintf(&b, "<p id=\"pending-task\">%s</p>\n", Summary(pending))
	_, err := io.WriteString(w, b.String())
	return err
}
