// Package cli parses the command line and runs one command inside a
// load → run → save session.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/logging"
	"tasklist/internal/service"
	"tasklist/internal/session"
)

// InvalidCommandText is printed for an unrecognized command.
const InvalidCommandText = "Invalid command. Use 'add', 'complete', or 'list'."

// ServiceFactory creates a Service from config.
// Used to inject the remote backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// commonOptions are the flags every command accepts.
type commonOptions struct {
	configDir string
	dataFile  string
	quiet     bool
	debug     bool
}

// Run parses arguments, runs the command and saves the task file.
// The task file is loaded and saved on every invocation, even when the
// command is missing, unknown or rejected. Returns the exit code, which is
// exitcode.SaveError whenever the final save fails.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	var (
		opts       commonOptions
		cmd        commands.Command
		positional []string
	)

	switch {
	case len(args) == 0:
		commands.PrintUsage(out, d.registry)
	default:
		found, ok := d.registry.Find(args[0])
		if !ok {
			fmt.Fprintln(out, InvalidCommandText)
			break
		}
		rest, err := parseFlags(found, args[1:], &opts)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			break
		}
		cmd, positional = found, rest
	}

	logger := logging.New(errOut, opts.debug)

	cfg, err := config.New(opts.configDir)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.Defaults(opts.configDir)
	}
	if opts.dataFile != "" {
		cfg.DataFile = opts.dataFile
	}
	cfg.Quiet = opts.quiet
	cfg.Debug = opts.debug

	sess := session.Open(cfg.DataFile, logger)

	code := exitcode.Success
	if cmd != nil {
		code = d.runCommand(ctx, cmd, cfg, sess, positional, out, errOut)
	}

	if err := sess.Close(); err != nil {
		fmt.Fprintf(errOut, "error: failed to save tasks: %v\n", err)
		return exitcode.SaveError
	}
	return code
}

// runCommand creates the remote service when needed and runs cmd.
func (d *Dispatcher) runCommand(ctx context.Context, cmd commands.Command, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	var svc service.Service
	if cmd.NeedsAuth() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no remote backend configured")
			return exitcode.BackendError
		}

		var err error
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "auth") {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
				fmt.Fprintln(errOut, "run: tasklist login")
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, cfg, sess, svc, args, out, errOut)
}

// parseFlags parses the common and command flags and returns the positional
// arguments. Parsing stops at the first non-flag argument or at "--".
// For commands implementing commands.FreeformArgs it also stops at the first
// argument that is not a defined flag, so "complete -1" and "add -5 degrees"
// reach the command as positional arguments.
func parseFlags(cmd commands.Command, args []string, opts *commonOptions) ([]string, error) {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	fs.StringVar(&opts.configDir, "config", "", "")
	fs.StringVar(&opts.dataFile, "file", "", "")
	fs.BoolVar(&opts.quiet, "quiet", false, "")
	fs.BoolVar(&opts.debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	var rest []string
	if free, ok := cmd.(commands.FreeformArgs); ok && free.FreeformArgs() {
		args, rest = leadingFlags(fs, args)
	}

	if err := fs.Parse(args); err != nil {
		return nil, flagError(err)
	}
	return append(fs.Args(), rest...), nil
}

// leadingFlags splits args after the run of flags defined in fs, including
// their values and a terminating "--".
func leadingFlags(fs *flag.FlagSet, args []string) (flags, rest []string) {
	i := 0
	for i < len(args) {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			break
		}

		name := strings.TrimPrefix(arg[1:], "-")
		hasValue := false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, hasValue = name[:eq], true
		}
		f := fs.Lookup(name)
		if f == nil {
			break
		}

		i++
		if !hasValue && !isBoolFlag(f) && i < len(args) {
			i++
		}
	}
	return args[:i], args[i:]
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) error {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return fmt.Errorf("flag needs an argument: %s", flagName)
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		return fmt.Errorf("unknown flag: %s", flagName)
	}

	if errors.Is(err, flag.ErrHelp) {
		return errors.New("use 'tasklist help' for usage")
	}

	return err
}
