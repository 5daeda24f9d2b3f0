// Package storage persists the task collection as a single serialized
// document in a local key-value backend.
package storage

import (
	"errors"
	"fmt"

	"todue/internal/date"
)

// DocumentKey is the fixed key the task collection is stored under.
const DocumentKey = "tasks"

// ErrNotFound is returned by Backend.Read when the key has never been
// written or has been erased.
var ErrNotFound = errors.New("storage: key not found")

// Task is the persisted form of one task.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Date      date.Date `json:"date"`
}

// Backend is a minimal key-value store. Every write replaces the whole value.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Erase(key string) error
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindDiskv  = "diskv"
	KindMemory = "memory"
)

// Open returns the backend named by kind rooted at path.
func Open(kind, path string) (Backend, error) {
	switch kind {
	case KindSQLite, "":
		return OpenSQLite(path)
	case KindDiskv:
		return OpenDiskv(path)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", kind)
	}
}
