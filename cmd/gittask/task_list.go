package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listStatus string

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every task in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := store.ListTasks()
		if err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}

		if listStatus != "" {
			filtered := tasks[:0]
			for _, t := range tasks {
				if t.Props["status"] == listStatus {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}

		return printTasks(cmd, tasks)
	},
}

func init() {
	taskListCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	taskCmd.AddCommand(taskListCmd)
}
