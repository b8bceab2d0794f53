package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/gittask/internal/gittask"
)

var (
	createDescription string
	createStatus      string
	createAuthor      string
)

var taskCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := gittask.NewTask(args[0], createDescription, createStatus, createAuthor)
		if err != nil {
			return fmt.Errorf("create task: %w", err)
		}

		created, err := store.CreateTask(task)
		if err != nil {
			return fmt.Errorf("create task: %w", err)
		}

		return printTask(cmd, created)
	},
}

func init() {
	taskCreateCmd.Flags().StringVar(&createDescription, "description", "", "task description")
	taskCreateCmd.Flags().StringVar(&createStatus, "status", "open", "initial status")
	taskCreateCmd.Flags().StringVar(&createAuthor, "author", "", "author recorded on the task (default: git signature)")
	taskCmd.AddCommand(taskCreateCmd)
}
