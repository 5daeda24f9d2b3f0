package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"todue/internal/task"
	"todue/internal/urgency"
)

var (
	headerColor = color.New(color.Bold)
	doneColor   = color.New(color.Faint, color.CrossedOut)
	tierColors  = map[urgency.Tier]*color.Color{
		urgency.High:   color.New(color.FgRed),
		urgency.Medium: color.New(color.FgYellow),
		urgency.Low:    color.New(color.FgGreen),
	}
)

// DisableColor strips all styling from table output.
func DisableColor() {
	color.NoColor = true
}

// Table writes records as aligned columns followed by the summary line.
func Table(w io.Writer, records []Record, pending int) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No tasks.")
		fmt.Fprintln(w, Summary(pending))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(headerColor.Sprint("ID"), headerColor.Sprint("DONE"), headerColor.Sprint("TASK"),
		headerColor.Sprint("DUE"), headerColor.Sprint("URGENCY"))
	for _, r := range records {
		done := "[ ]"
		text := task.DisplayText(r.Text)
		if r.Completed {
			done = "[x]"
			text = doneColor.Sprint(text)
		}
		tbl.AddRow(r.ID, done, text, r.Date, tierColors[r.tier].Sprint(r.Urgency))
	}
	fmt.Fprintln(w, tbl)
	fmt.Fprintln(w)
	fmt.Fprintln(w, Summary(pending))
}
