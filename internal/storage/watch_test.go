package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchSignalsOnForeignSave(t *testing.T) {
	dir := t.TempDir()
	b, err := OpenDiskv(dir)
	require.NoError(t, err)
	doc := NewDocument(b, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := doc.Watch(ctx)
	require.NoError(t, err)

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	// A second handle on the same files stands in for another process.
	other, err := OpenDiskv(dir)
	require.NoError(t, err)
	require.NoError(t, NewDocument(other, nil).Save(sample()))

	select {
	case _, ok := <-ch:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change signal")
	}

	cancel()
	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatchIgnoresOwnWrites(t *testing.T) {
	b, err := OpenDiskv(t.TempDir())
	require.NoError(t, err)
	doc := NewDocument(b, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := doc.Watch(ctx)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, doc.Save(sample()))
	require.NoError(t, doc.Save(nil))
	require.NoError(t, doc.Clear())

	select {
	case <-ch:
		t.Fatal("own writes must not be reported")
	case <-time.After(5 * Throttle):
	}
}

func TestOwnContent(t *testing.T) {
	b := NewMemory()
	doc := NewDocument(b, nil)
	assert.False(t, doc.OwnContent(), "nothing written yet")

	require.NoError(t, doc.Save(sample()))
	assert.True(t, doc.OwnContent())

	require.NoError(t, b.Write(DocumentKey, []byte(`[]`)))
	assert.False(t, doc.OwnContent())

	require.NoError(t, doc.Clear())
	assert.True(t, doc.OwnContent())

	require.NoError(t, b.Write(DocumentKey, []byte(`[]`)))
	assert.False(t, doc.OwnContent())
}

func TestWatchMemoryNotWatchable(t *testing.T) {
	_, err := NewDocument(NewMemory(), nil).Watch(context.Background())
	assert.ErrorIs(t, err, ErrNotWatchable)
}
