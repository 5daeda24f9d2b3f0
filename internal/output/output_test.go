package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todue/internal/date"
	"todue/internal/task"
)

var today = date.New(2025, time.March, 10)

func sampleRecords() []Record {
	return Records([]task.Task{
		{ID: "a1", Text: "Buy milk", Date: today.AddDays(5)},
		{ID: "b2", Text: `<script>"x" & y</script>`, Completed: true, Date: today.AddDays(-1)},
		{ID: "c3", Text: "Pay rent", Date: today},
	}, today)
}

func TestRecordsClassify(t *testing.T) {
	recs := sampleRecords()
	require.Len(t, recs, 3)
	assert.Equal(t, "5d left", recs[0].Urgency)
	assert.Equal(t, "low", recs[0].Tier)
	assert.Equal(t, "Overdue", recs[1].Urgency)
	assert.Equal(t, "high", recs[1].Tier)
	assert.Equal(t, "Due Today", recs[2].Urgency)
	assert.Equal(t, "medium", recs[2].Tier)
}

func TestTable(t *testing.T) {
	DisableColor()
	var buf bytes.Buffer
	Table(&buf, sampleRecords(), 2)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "2025-03-15")
	assert.Contains(t, out, "You Have 2 Pending Task(s).")
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, nil, 0)
	assert.Contains(t, buf.String(), "No tasks.")
	assert.Contains(t, buf.String(), "You Have 0 Pending Task(s).")
}

func TestJSONListing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, Listing{Tasks: sampleRecords(), Pending: 2}))

	var got Listing
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got.Pending)
	require.Len(t, got.Tasks, 3)
	assert.Equal(t, "a1", got.Tasks[0].ID)
	assert.Equal(t, "2025-03-15", got.Tasks[0].Date)
}

func TestHTMLEscapesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, sampleRecords(), 2, Palette{High: "#ff4d4d", Medium: "#ffa500", Low: "#2ecc71"}))

	out := buf.String()
	assert.Contains(t, out, "&lt;script&gt;&quot;x&quot; &amp; y&lt;/script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `class="task-text completed"`)
	assert.Contains(t, out, `style="color: #ff4d4d;">Overdue`)
	assert.Contains(t, out, `style="color: #2ecc71;">5d left`)
	assert.Contains(t, out, "You Have 2 Pending Task(s).")
}

func TestDetect(t *testing.T) {
	assert.Equal(t, FormatTable, Detect(false, false))
	assert.Equal(t, FormatJSON, Detect(true, true))
	assert.Equal(t, FormatHTML, Detect(false, true))
}
