// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/service"
	"tasklist/internal/store"
)

// Untitled replaces empty titles when a task is sent to or shown from a remote list.
const Untitled = "(untitled)"

// FormatTask writes a task line for the list command.
// Format: "[✓] Task {ID}: {DESCRIPTION}\n", with a blank mark for open tasks.
func FormatTask(w io.Writer, task store.Task) {
	fmt.Fprintln(w, task.String())
}

// FormatListName formats a remote list name for the lists command.
func FormatListName(w io.Writer, list service.TaskList) {
	title := RemoteTitle(list.Title)
	if list.IsDefault {
		title += " [default]"
	}
	fmt.Fprintln(w, title)
}

// FormatSyncSummary writes the result line of the sync command.
func FormatSyncSummary(w io.Writer, list service.TaskList, created, completed int) {
	fmt.Fprintf(w, "synced to %s: %d created, %d completed\n", RemoteTitle(list.Title), created, completed)
}

// RemoteTitle normalizes a title for a remote list.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
// - Surrounding whitespace is trimmed
func RemoteTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	title = strings.TrimSpace(title)
	if title == "" {
		return Untitled
	}
	return title
}
