package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/session"
)

func init() {
	Register(&CompleteCmd{})
}

// CompleteCmd implements the complete command.
type CompleteCmd struct{}

func (c *CompleteCmd) Name() string      { return "complete" }
func (c *CompleteCmd) Aliases() []string { return []string{"done"} }
func (c *CompleteCmd) Synopsis() string  { return "Mark a task as completed" }
func (c *CompleteCmd) Usage() string     { return "complete <task id>" }
func (c *CompleteCmd) NeedsAuth() bool   { return false }

func (c *CompleteCmd) RegisterFlags(fs *flag.FlagSet) {}

// FreeformArgs reports that arguments such as "-5" are positional.
func (c *CompleteCmd) FreeformArgs() bool { return true }

func (c *CompleteCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(out, "Usage: complete <task id>")
		return exitcode.Success
	}

	id := ParseTaskID(args[0])
	if err := sess.Store().Complete(id); err != nil {
		// Not found is reported but does not fail the run
		fmt.Fprintf(out, "Error: %v\n", err)
		return exitcode.Success
	}

	sess.Logger().Debug("completed task", "id", id)
	return exitcode.Success
}

// ParseTaskID parses a task ID argument.
// A single leading '+' is allowed. Anything else that is not a non-negative
// integer becomes 0, which never matches a task created by add.
func ParseTaskID(s string) int {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 0)
	if err != nil || n > uint64(^uint(0)>>1) {
		return 0
	}
	return int(n)
}
