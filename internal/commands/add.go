package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/session"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add a new task" }
func (c *AddCmd) Usage() string     { return "add <task description>" }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

// FreeformArgs reports that arguments such as "-5" are positional.
func (c *AddCmd) FreeformArgs() bool { return true }

// Run joins all arguments with single spaces to form the description.
// An empty description is allowed as long as an argument was given.
func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(out, "Usage: add <task description>")
		return exitcode.Success
	}

	task := sess.Store().Add(strings.Join(args, " "))
	sess.Logger().Debug("added task", "id", task.ID)
	return exitcode.Success
}
