package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/service"
	"tasklist/internal/session"
	"tasklist/internal/store"
)

func init() {
	Register(&SyncCmd{})
}

// SyncCmd pushes local tasks to a Google Tasks list.
// Tasks are matched by title. Missing tasks are created and locally
// completed tasks are completed remotely. Nothing is pulled back.
type SyncCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *SyncCmd) SetListName(name string) {
	c.listName = name
}

func (c *SyncCmd) Name() string      { return "sync" }
func (c *SyncCmd) Aliases() []string { return []string{"push"} }
func (c *SyncCmd) Synopsis() string  { return "Push tasks to Google Tasks" }
func (c *SyncCmd) Usage() string     { return "sync [--list <list-name>]" }
func (c *SyncCmd) NeedsAuth() bool   { return true }

func (c *SyncCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *SyncCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	listName := c.listName
	if listName == "" {
		listName = cfg.RemoteList
	}

	list, code := resolveRemoteList(ctx, svc, listName, errOut)
	if code != exitcode.Success {
		return code
	}

	remote, err := svc.ListTasks(ctx, list.ID)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	plan := planSync(sess.Store().List(), remote)
	log := sess.Logger()

	for _, task := range plan.create {
		log.Debug("creating remote task", "id", task.ID, "list", list.ID)
		if err := svc.CreateTask(ctx, list.ID, output.RemoteTitle(task.Description), task.Completed); err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
	}
	for _, taskID := range plan.complete {
		log.Debug("completing remote task", "remote_id", taskID, "list", list.ID)
		if err := svc.CompleteTask(ctx, list.ID, taskID); err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
	}

	if !cfg.Quiet {
		output.FormatSyncSummary(out, list, len(plan.create), len(plan.complete))
	}
	return exitcode.Success
}

// resolveRemoteList returns the named list, or the default list if name is empty.
func resolveRemoteList(ctx context.Context, svc service.Service, name string, errOut io.Writer) (service.TaskList, int) {
	if name == "" {
		list, err := svc.DefaultList(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return service.TaskList{}, exitcode.BackendError
		}
		return list, exitcode.Success
	}

	list, err := svc.ResolveList(ctx, name)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Fprintf(errOut, "error: list not found: %s\n", name)
			return service.TaskList{}, exitcode.BackendError
		}
		if strings.Contains(err.Error(), "ambiguous") {
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
			return service.TaskList{}, exitcode.BackendError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return service.TaskList{}, exitcode.BackendError
	}
	return list, exitcode.Success
}

// syncPlan lists the remote writes needed to mirror the local store.
type syncPlan struct {
	create   []store.Task
	complete []string // remote task IDs
}

// planSync matches local tasks to remote tasks by normalized title.
// Each remote task is matched at most once, in API order, so duplicate
// local descriptions map to distinct remote tasks.
func planSync(local []store.Task, remote []service.Task) syncPlan {
	byTitle := make(map[string][]service.Task)
	for _, r := range remote {
		title := output.RemoteTitle(r.Title)
		byTitle[title] = append(byTitle[title], r)
	}

	var plan syncPlan
	for _, task := range local {
		title := output.RemoteTitle(task.Description)
		candidates := byTitle[title]
		if len(candidates) == 0 {
			plan.create = append(plan.create, task)
			continue
		}

		match := candidates[0]
		byTitle[title] = candidates[1:]
		if task.Completed && !match.Done() {
			plan.complete = append(plan.complete, match.ID)
		}
	}
	return plan
}
