package task

import (
	"fmt"
	"slices"

	"todue/internal/date"
	"todue/internal/storage"
)

// Store is the authoritative task collection for a session. It holds no
// state of its own between calls: the persisted document is re-read before
// every mutation and rewritten in full after it.
type Store struct {
	doc   *storage.Document
	newID func() (string, error)
}

func NewStore(doc *storage.Document) *Store {
	return &Store{doc: doc, newID: NewID}
}

// Document returns the persistence adapter behind the store.
func (s *Store) Document() *storage.Document { return s.doc }

// List returns a snapshot of the collection in insertion order.
func (s *Store) List() []Task {
	return s.doc.Load()
}

// Get returns the task with id.
func (s *Store) Get(id string) (Task, bool) {
	for _, t := range s.doc.Load() {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Add appends a new pending task and returns its id. Input is expected to be
// validated already.
func (s *Store) Add(text string, due date.Date) (string, error) {
	tasks := s.doc.Load()
	id, err := s.uniqueID(tasks)
	if err != nil {
		return "", err
	}
	tasks = append(tasks, Task{ID: id, Text: text, Completed: false, Date: due})
	if err := s.doc.Save(tasks); err != nil {
		return "", fmt.Errorf("add task: %w", err)
	}
	return id, nil
}

func (s *Store) uniqueID(tasks []Task) (string, error) {
	for {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		taken := slices.ContainsFunc(tasks, func(t Task) bool { return t.ID == id })
		if !taken {
			return id, nil
		}
	}
}

// SetCompleted sets the completed flag of id. Unknown ids are ignored.
func (s *Store) SetCompleted(id string, completed bool) error {
	return s.mutate(id, func(t *Task) {
		t.Completed = completed
	})
}

// Update replaces text and date of id together. Unknown ids are ignored.
func (s *Store) Update(id, text string, due date.Date) error {
	return s.mutate(id, func(t *Task) {
		t.Text = text
		t.Date = due
	})
}

func (s *Store) mutate(id string, fn func(*Task)) error {
	tasks := s.doc.Load()
	i := slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
	if i < 0 {
		return nil
	}
	fn(&tasks[i])
	if err := s.doc.Save(tasks); err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	return nil
}

// Remove deletes id. Unknown ids are ignored.
func (s *Store) Remove(id string) error {
	tasks := s.doc.Load()
	i := slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
	if i < 0 {
		return nil
	}
	tasks = slices.Delete(tasks, i, i+1)
	if err := s.doc.Save(tasks); err != nil {
		return fmt.Errorf("remove task %s: %w", id, err)
	}
	return nil
}

// ClearAll discards every task together with the persisted document.
func (s *Store) ClearAll() error {
	if err := s.doc.Clear(); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}

// PendingCount counts tasks that are not completed.
func (s *Store) PendingCount() int {
	return Pending(s.doc.Load())
}

// Pending counts the tasks in tasks that are not completed.
func Pending(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
