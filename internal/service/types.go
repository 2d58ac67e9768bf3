// Package service defines the backend-agnostic interface for remote task mirrors.
package service

// Remote task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task represents a single remote task item.
type Task struct {
	ID     string
	Title  string
	Status string // StatusNeedsAction or StatusCompleted
}

// Done reports whether the remote task is completed.
func (t Task) Done() bool {
	return t.Status == StatusCompleted
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
