package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasklist/internal/cli"
	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// isolate points the config dir and task file at a temp dir and returns the
// task file path.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.txt")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv(config.DataFileEnv, path)
	return path
}

func run(t *testing.T, svc *testutil.FakeService, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_AddWritesFile(t *testing.T) {
	path := isolate(t)

	stdout, stderr, code := run(t, nil, "add", "Buy", "milk")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output, got stdout=%q stderr=%q", stdout, stderr)
	}
	if got := testutil.ReadTaskFile(t, path); got != "1|Buy milk|false\n" {
		t.Errorf("unexpected file content %q", got)
	}
}

func TestDispatcher_CompleteUpdatesFile(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("1|Buy milk|false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, code := run(t, nil, "complete", "1")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := testutil.ReadTaskFile(t, path); got != "1|Buy milk|true\n" {
		t.Errorf("unexpected file content %q", got)
	}
}

func TestDispatcher_CompleteUnknownID(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("1|Buy milk|true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, code := run(t, nil, "complete", "99")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "Error: Task not found\n" {
		t.Errorf("expected not found message, got %q", stdout)
	}
	if got := testutil.ReadTaskFile(t, path); got != "1|Buy milk|true\n" {
		t.Errorf("file must be unchanged, got %q", got)
	}
}

func TestDispatcher_ListInInsertionOrder(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("1|Buy milk|true\n2|Walk dog|false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := run(t, nil, "list")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_mixed", stdout)
}

func TestDispatcher_AddThenListAcrossRuns(t *testing.T) {
	isolate(t)

	run(t, nil, "add", "first")
	run(t, nil, "add", "second")
	run(t, nil, "add", "third")
	run(t, nil, "complete", "2")
	stdout, _, _ := run(t, nil, "list")

	expected := "[ ] Task 1: first\n[✓] Task 2: second\n[ ] Task 3: third\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestDispatcher_MalformedLinesDropped(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("abc\n1|Buy milk|false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	run(t, nil, "list")

	if got := testutil.ReadTaskFile(t, path); got != "1|Buy milk|false\n" {
		t.Errorf("unexpected file content %q", got)
	}
}

func TestDispatcher_NoArgsPrintsUsage(t *testing.T) {
	path := isolate(t)

	stdout, _, code := run(t, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "Usage: tasklist <command> [arguments]\nCommands:\n") {
		t.Errorf("expected usage, got %q", stdout)
	}
	if got := testutil.ReadTaskFile(t, path); got != "" {
		t.Errorf("expected empty task file, got %q", got)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)

	for _, name := range []string{"unknowncmd", "--quiet"} {
		stdout, stderr, code := run(t, nil, name)

		if code != exitcode.Success {
			t.Errorf("%s: expected exit code %d, got %d", name, exitcode.Success, code)
		}
		if stdout != cli.InvalidCommandText+"\n" {
			t.Errorf("%s: expected invalid command message, got %q", name, stdout)
		}
		if stderr != "" {
			t.Errorf("%s: expected no stderr, got %q", name, stderr)
		}
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	isolate(t)

	_, stderr, code := run(t, nil, "list", "--unknown")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_CompleteDashIDIsNotFound(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("1|Buy milk|false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := run(t, nil, "complete", "-1")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "Error: Task not found\n" {
		t.Errorf("expected not found message, got %q", stdout)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if got := testutil.ReadTaskFile(t, path); got != "1|Buy milk|false\n" {
		t.Errorf("file must be unchanged, got %q", got)
	}
}

func TestDispatcher_AddDashWords(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"negative number", []string{"add", "-5", "degrees"}, "1|-5 degrees|false\n"},
		{"flag-like word", []string{"add", "buy", "--quiet", "milk"}, "1|buy --quiet milk|false\n"},
		{"after terminator", []string{"add", "--", "--debug"}, "1|--debug|false\n"},
		{"common flag first", []string{"add", "--quiet", "-x"}, "1|-x|false\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := isolate(t)

			stdout, stderr, code := run(t, nil, tt.args...)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if stdout != "" || stderr != "" {
				t.Errorf("expected no output, got stdout=%q stderr=%q", stdout, stderr)
			}
			if got := testutil.ReadTaskFile(t, path); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDispatcher_FileFlagNeedsValue(t *testing.T) {
	isolate(t)

	_, stderr, _ := run(t, nil, "add", "--file")

	expected := "error: flag needs an argument: -file\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FileFlagOverridesEnv(t *testing.T) {
	envPath := isolate(t)
	flagPath := filepath.Join(t.TempDir(), "other.txt")

	run(t, nil, "add", "--file", flagPath, "Buy", "milk")

	if got := testutil.ReadTaskFile(t, flagPath); got != "1|Buy milk|false\n" {
		t.Errorf("unexpected file content %q", got)
	}
	if _, err := os.Stat(envPath); !os.IsNotExist(err) {
		t.Error("env task file must not be written")
	}
}

func TestDispatcher_SaveFailure(t *testing.T) {
	isolate(t)
	badPath := filepath.Join(t.TempDir(), "missing-dir", "tasks.txt")

	_, stderr, code := run(t, nil, "add", "--file", badPath, "Buy", "milk")

	if code != exitcode.SaveError {
		t.Errorf("expected exit code %d, got %d", exitcode.SaveError, code)
	}
	if !strings.HasPrefix(stderr, "error: failed to save tasks:") {
		t.Errorf("expected save error, got %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	isolate(t)

	stdout, stderr, _ := run(t, nil, "list", "--debug")

	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "loaded tasks") || !strings.Contains(stderr, "saved tasks") {
		t.Errorf("expected debug logs, got %q", stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolate(t)

	stdout, stderr, code := run(t, nil, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolate(t)

	stdout, _, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "tasklist 0.1.0\n" {
		t.Errorf("expected 'tasklist 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_SyncUsesFactory(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()

	run(t, svc, "add", "Buy", "milk")
	stdout, _, code := run(t, svc, "sync")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "synced to My Tasks: 1 created, 0 completed\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestDispatcher_SyncWithoutBackend(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"sync"}, &stdout, &stderr)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
}

func TestDispatcher_AuthFactoryError(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("failed to read token.json: no such file or directory")
	})

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"lists"}, &stdout, &stderr)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr.String(), "error: auth error:") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}
