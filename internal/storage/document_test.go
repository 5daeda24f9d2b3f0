package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todue/internal/date"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	sq, err := OpenSQLite(filepath.Join(dir, "todue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	dv, err := OpenDiskv(filepath.Join(dir, "docs"))
	require.NoError(t, err)

	return map[string]Backend{
		KindMemory: NewMemory(),
		KindSQLite: sq,
		KindDiskv:  dv,
	}
}

func sample() []Task {
	return []Task{
		{ID: "a", Text: "Buy milk", Date: date.New(2025, time.May, 1)},
		{ID: "b", Text: `Fish & "chips" <now>`, Completed: true, Date: date.New(2025, time.May, 2)},
		{ID: "c", Text: "Pay rent", Date: date.New(2025, time.June, 30)},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			doc := NewDocument(b, nil)
			assert.Empty(t, doc.Load())
			assert.False(t, doc.Exists())

			require.NoError(t, doc.Save(sample()))
			assert.Equal(t, sample(), doc.Load())

			// save(load()) then load() is stable.
			require.NoError(t, doc.Save(doc.Load()))
			assert.Equal(t, sample(), doc.Load())
		})
	}
}

func TestDocumentClear(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			doc := NewDocument(b, nil)
			require.NoError(t, doc.Save(sample()))
			require.NoError(t, doc.Clear())
			assert.False(t, doc.Exists())
			assert.Empty(t, doc.Load())

			// Clearing an absent document is not an error.
			require.NoError(t, doc.Clear())
		})
	}
}

func TestDocumentLoadFailsSoft(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"id":"a"}`, `[{"id":"a","date":"someday"}]`, "null"} {
		b := NewMemory()
		require.NoError(t, b.Write(DocumentKey, []byte(raw)))
		tasks := NewDocument(b, nil).Load()
		assert.NotNil(t, tasks, "input %q", raw)
		assert.Empty(t, tasks, "input %q", raw)
	}
}

func TestDocumentSavesEmptyAsArray(t *testing.T) {
	b := NewMemory()
	doc := NewDocument(b, nil)
	require.NoError(t, doc.Save(nil))

	raw, err := b.Read(DocumentKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestDocumentWireFormat(t *testing.T) {
	b := NewMemory()
	require.NoError(t, NewDocument(b, nil).Save(sample()[:1]))

	raw, err := b.Read(DocumentKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","text":"Buy milk","completed":false,"date":"2025-05-01"}]`, string(raw))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	assert.Error(t, err)
}
