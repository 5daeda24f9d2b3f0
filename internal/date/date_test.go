package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())
	assert.Equal(t, "2024-02-29", d.String())

	for _, bad := range []string{"", "   ", "2024-13-01", "29/02/2024", "2024-2-3T00:00"} {
		_, err := Parse(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	late := time.Date(2025, time.March, 4, 23, 59, 0, 0, loc)
	assert.Equal(t, New(2025, time.March, 4), Of(late))
}

func TestAddMonthsClampsDay(t *testing.T) {
	assert.Equal(t, "2025-02-28", New(2025, time.January, 31).AddMonths(1).String())
	assert.Equal(t, "2024-02-29", New(2024, time.March, 31).AddMonths(-1).String())
	assert.Equal(t, "2026-01-15", New(2025, time.December, 15).AddMonths(1).String())
}

func TestDaysSince(t *testing.T) {
	base := New(2026, time.October, 19)
	assert.Equal(t, 0, base.DaysSince(base))
	assert.Equal(t, 1, base.AddDays(1).DaysSince(base))
	assert.Equal(t, -1, base.AddDays(-1).DaysSince(base))
	// Further apart than time.Duration can represent.
	assert.Equal(t, 2912151, New(9999, time.December, 31).DaysSince(base))
	assert.Equal(t, -2912151, base.DaysSince(New(9999, time.December, 31)))
}

func TestJSON(t *testing.T) {
	type rec struct {
		Date Date `json:"date"`
	}
	data, err := json.Marshal(rec{Date: New(2025, time.July, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-07-01"}`, string(data))

	var got rec
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Date.Equal(New(2025, time.July, 1)))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"tomorrow"}`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"date":20250701}`), &got))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2025, time.February))
	assert.Equal(t, 31, DaysIn(2025, time.December))
}
