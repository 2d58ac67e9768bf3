// Package exitcode defines exit codes for the CLI.
package exitcode

// Usage errors and unknown task IDs are reported on stdout but still exit
// with Success. Only a failed save of the task file is fatal for the core
// commands.
const (
	// Success indicates successful completion.
	Success = 0

	// SaveError indicates the task file could not be written.
	SaveError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
