package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/gittask/internal/gittask"
)

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := store.FindTask(args[0])
		if err != nil {
			return fmt.Errorf("show task: %w", err)
		}
		if task == nil {
			return fmt.Errorf("task %s: %w", args[0], gittask.ErrEntryNotFound)
		}
		return printTask(cmd, *task)
	},
}

func init() {
	taskCmd.AddCommand(taskShowCmd)
}
