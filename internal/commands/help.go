package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	PrintUsage(out, DefaultRegistry)
	return exitcode.Success
}

// PrintUsage writes the usage text listing every command in reg.
func PrintUsage(w io.Writer, reg *Registry) {
	fmt.Fprintln(w, "Usage: tasklist <command> [arguments]")
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range reg.All() {
		fmt.Fprintf(w, "  %-26s - %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(w, commonFlagsText)
}

const commonFlagsText = `
Common flags:
  --config <dir>   Override config directory
  --file <path>    Override the task file (default tasks.txt)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
