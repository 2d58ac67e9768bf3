// Package store holds the in-memory task list and its flat-file encoding.
package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no task has the requested ID.
var ErrNotFound = errors.New("Task not found")

const (
	markDone = "✓"
	markOpen = " "
)

// Task represents a single task item.
type Task struct {
	ID          int
	Description string
	Completed   bool
}

// String renders the task as a single display line.
// Format: "[✓] Task 1: Buy milk" or "[ ] Task 2: Walk dog"
func (t Task) String() string {
	mark := markOpen
	if t.Completed {
		mark = markDone
	}
	return fmt.Sprintf("[%s] Task %d: %s", mark, t.ID, t.Description)
}

// Store is an ordered collection of tasks. Insertion order is display order.
type Store struct {
	tasks []Task
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// FromTasks creates a store holding a copy of tasks, in order.
// IDs are kept as given, so a loaded file may contain duplicates or zeros.
func FromTasks(tasks []Task) *Store {
	s := &Store{tasks: make([]Task, len(tasks))}
	copy(s.tasks, tasks)
	return s
}

// Add appends a new open task and returns it.
// The ID is the store length after appending.
func (s *Store) Add(description string) Task {
	t := Task{
		ID:          len(s.tasks) + 1,
		Description: description,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Complete marks the first task with the given ID as completed.
// Completing an already completed task is not an error.
func (s *Store) Complete(id int) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = true
			return nil
		}
	}
	return ErrNotFound
}

// List returns the tasks in insertion order.
func (s *Store) List() []Task {
	result := make([]Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}
