package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DeleteTasks(args); err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d task(s)\n", len(args))
		return nil
	},
}

func init() {
	taskCmd.AddCommand(taskDeleteCmd)
}
