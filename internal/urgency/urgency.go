// Package urgency classifies a due date relative to today.
package urgency

import (
	"fmt"
	"time"

	"todue/internal/date"
)

// Tier is the coarse severity of a due date.
type Tier int

const (
	Low Tier = iota
	Medium
	High
)

func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Urgency is the display classification of one due date.
type Urgency struct {
	Label    string
	Tier     Tier
	DaysLeft int
}

// soonDays is the exclusive upper bound of "due soon".
const soonDays = 3

// DaysLeft returns the whole days from today until due, negative when due is
// in the past.
func DaysLeft(due, today date.Date) int {
	return due.DaysSince(today)
}

// Classify maps a due date to its label and tier.
func Classify(due, today date.Date) Urgency {
	days := DaysLeft(due, today)
	switch {
	case days < 0:
		return Urgency{Label: "Overdue", Tier: High, DaysLeft: days}
	case days == 0:
		return Urgency{Label: "Due Today", Tier: Medium, DaysLeft: days}
	case days < soonDays:
		return Urgency{Label: fmt.Sprintf("%dd left", days), Tier: High, DaysLeft: days}
	default:
		return Urgency{Label: fmt.Sprintf("%dd left", days), Tier: Low, DaysLeft: days}
	}
}

// ClassifyAt classifies due against the calendar day of now.
func ClassifyAt(due date.Date, now time.Time) Urgency {
	return Classify(due, date.Of(now))
}
