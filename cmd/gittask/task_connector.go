package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/steveyegge/gittask/internal/gittask"
	"github.com/steveyegge/gittask/internal/synclog"
	"github.com/steveyegge/gittask/internal/tracker"

	_ "github.com/steveyegge/gittask/internal/tracker/github"
	_ "github.com/steveyegge/gittask/internal/tracker/gitlab"
	_ "github.com/steveyegge/gittask/internal/tracker/jira"
	_ "github.com/steveyegge/gittask/internal/tracker/redmine"
)

var taskConnectorCmd = &cobra.Command{
	Use:   "connector",
	Short: "Inspect and drive the remote-tracker connector layer",
}

var taskConnectorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every adapter type this build registers",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range tracker.TypeNames() {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

var syncTypeFilter string

var taskConnectorSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local tasks to the first remote tracker matched from the repository's remotes",
	Long: `sync walks every task in the store and pushes it to the first connector
that SupportsRemote matches against a configured git remote (remotes in
order, then adapters in registration order), creating the task on first
sync or updating it on subsequent runs. Further matches are not synced.
Tasks track their remote linkage via the remote_type/remote_id properties.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		remotes, err := store.ListRemotes("")
		if err != nil {
			return fmt.Errorf("list remotes: %w", err)
		}
		matches := tracker.MatchingConnectors(remotes, syncTypeFilter)
		if len(matches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no connector matched any configured remote")
			return nil
		}

		tasks, err := store.ListTasks()
		if err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		run := synclog.NewRun(time.Now())

		for _, task := range tasks {
			syncTask(ctx, run, matches[0], task)
		}

		synced, skipped, failed := run.Counts()
		fmt.Fprintf(cmd.OutOrStdout(), "sync %s: %d synced, %d skipped, %d failed\n", run.ID, synced, skipped, failed)
		if outputFormat == "json" {
			return printJSON(cmd, run)
		}
		return nil
	},
}

func syncTask(ctx context.Context, run *synclog.Run, match tracker.Match, task gittask.Task) {
	now := time.Now()
	remote := tracker.RemoteTask{
		Title:       task.Props["name"],
		Description: task.Props["description"],
		State:       task.Props["status"],
	}
	for _, l := range task.Labels {
		remote.Labels = append(remote.Labels, l.Name)
	}

	if remoteID := task.Props["remote_id"]; remoteID != "" {
		updated, err := match.Connector.UpdateRemoteTask(ctx, match.Owner, match.Repo, remoteID, remote)
		if err != nil {
			log.Error("sync update failed", "task_id", task.ID, "connector", match.Connector.TypeName(), "remote_id", remoteID, "error", err)
			run.Record(task.ID, match.Connector.TypeName(), remoteID, now, err)
			return
		}
		run.Record(task.ID, match.Connector.TypeName(), updated.ID, now, nil)
		return
	}

	created, err := match.Connector.CreateRemoteTask(ctx, match.Owner, match.Repo, remote)
	if err != nil {
		log.Error("sync create failed", "task_id", task.ID, "connector", match.Connector.TypeName(), "error", err)
		run.Record(task.ID, match.Connector.TypeName(), "", now, err)
		return
	}

	task.SetProperty("remote_id", created.ID)
	task.SetProperty("remote_type", match.Connector.TypeName())
	action := gittask.SetProperty
	if _, err := store.UpdateTask(task, &action); err != nil {
		run.Record(task.ID, match.Connector.TypeName(), created.ID, now, err)
		return
	}
	run.Record(task.ID, match.Connector.TypeName(), created.ID, now, nil)
}

func init() {
	taskConnectorSyncCmd.Flags().StringVar(&syncTypeFilter, "type", "", "restrict sync to a single adapter type (e.g. github)")
	taskConnectorCmd.AddCommand(taskConnectorListCmd)
	taskConnectorCmd.AddCommand(taskConnectorSyncCmd)
	taskCmd.AddCommand(taskConnectorCmd)
}
