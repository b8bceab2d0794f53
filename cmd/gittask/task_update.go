package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/gittask/internal/gittask"
)

var (
	updateStatus      string
	updateDescription string
	updateComment     string
	updateCommentBy   string
)

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task's status, description, or append a comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		task, err := store.FindTask(id)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if task == nil {
			return fmt.Errorf("task %s: %w", id, gittask.ErrEntryNotFound)
		}

		var action gittask.TaskAction
		changed := false

		if cmd.Flags().Changed("status") {
			task.SetProperty("status", updateStatus)
			action = gittask.UpdateStatus
			changed = true
		}
		if cmd.Flags().Changed("description") {
			task.SetProperty("description", updateDescription)
			action = gittask.SetProperty
			changed = true
		}
		if updateComment != "" {
			task.AddComment("", nil, updateComment, updateCommentBy)
			action = gittask.AddComment
			changed = true
		}

		if !changed {
			return fmt.Errorf("update task %s: no changes specified", id)
		}

		if _, err := store.UpdateTask(*task, &action); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		return printTask(cmd, *task)
	},
}

func init() {
	taskUpdateCmd.Flags().StringVar(&updateStatus, "status", "", "new status")
	taskUpdateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	taskUpdateCmd.Flags().StringVar(&updateComment, "comment", "", "append a comment")
	taskUpdateCmd.Flags().StringVar(&updateCommentBy, "comment-author", "", "author of the appended comment")
	taskCmd.AddCommand(taskUpdateCmd)
}
