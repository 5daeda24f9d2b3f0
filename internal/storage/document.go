package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
)

// Document reads and writes the whole task collection as one JSON array
// under a fixed key. Reads never fail: a missing or undecodable document is
// an empty collection.
type Document struct {
	backend Backend
	key     string
	logger  *log.Logger

	// last is what this Document itself most recently wrote; nil after a
	// Clear. Guarded by mu since the watcher goroutine reads it.
	mu      sync.Mutex
	last    []byte
	written bool
}

// NewDocument binds the collection to DocumentKey in backend. A nil logger
// discards diagnostics.
func NewDocument(backend Backend, logger *log.Logger) *Document {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Document{backend: backend, key: DocumentKey, logger: logger}
}

func (d *Document) Load() []Task {
	data, err := d.backend.Read(d.key)
	if errors.Is(err, ErrNotFound) {
		return []Task{}
	}
	if err != nil {
		d.logger.Printf("storage: load %s: %v", d.key, err)
		return []Task{}
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		d.logger.Printf("storage: decode %s: %v", d.key, err)
		return []Task{}
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks
}

func (d *Document) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", d.key, err)
	}
	d.remember(data)
	if err := d.backend.Write(d.key, data); err != nil {
		return fmt.Errorf("storage: save: %w", err)
	}
	return nil
}

// Clear removes the document so a later Load sees no tasks at all.
func (d *Document) Clear() error {
	d.remember(nil)
	if err := d.backend.Erase(d.key); err != nil {
		return fmt.Errorf("storage: clear: %w", err)
	}
	return nil
}

// remember records an own write before it reaches the backend, so the
// watcher never sees the new content without knowing it is ours.
func (d *Document) remember(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = data
	d.written = true
}

// OwnContent reports whether the backend still holds exactly what this
// Document last wrote, i.e. no other writer has touched it since.
func (d *Document) OwnContent() bool {
	d.mu.Lock()
	last, written := d.last, d.written
	d.mu.Unlock()
	if !written {
		return false
	}
	data, err := d.backend.Read(d.key)
	if errors.Is(err, ErrNotFound) {
		return last == nil
	}
	if err != nil {
		d.logger.Printf("storage: read %s: %v", d.key, err)
		return false
	}
	return last != nil && bytes.Equal(data, last)
}

// Exists reports whether the document is present in the backend.
func (d *Document) Exists() bool {
	_, err := d.backend.Read(d.key)
	return err == nil
}
