// Package output renders task listings for the CLI as a colored table,
// JSON, or an HTML fragment.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"todue/internal/date"
	"todue/internal/task"
	"todue/internal/urgency"
)

// Format is a listing format.
type Format int

const (
	FormatTable Format = iota
	FormatJSON
	FormatHTML
)

// Detect picks the format from the mutually exclusive flags.
func Detect(jsonFlag, htmlFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case htmlFlag:
		return FormatHTML
	default:
		return FormatTable
	}
}

// Record is one task annotated with its urgency.
type Record struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"`
	Urgency   string `json:"urgency"`
	Tier      string `json:"tier"`
	tier      urgency.Tier
}

// Records classifies every task against today, keeping collection order.
func Records(tasks []task.Task, today date.Date) []Record {
	out := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		u := urgency.Classify(t.Date, today)
		out = append(out, Record{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Date:      t.Date.String(),
			Urgency:   u.Label,
			Tier:      u.Tier.String(),
			tier:      u.Tier,
		})
	}
	return out
}

// Summary is the pending-count line shown under every listing.
func Summary(pending int) string {
	return fmt.Sprintf("You Have %d Pending Task(s).", pending)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Listing is the JSON shape of `list --json`.
type Listing struct {
	Tasks   []Record `json:"tasks"`
	Pending int      `json:"pending"`
}
