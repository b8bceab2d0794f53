package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearForce bool

var taskClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every task, permanently clearing the task reference",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearForce {
			return fmt.Errorf("refusing to clear all tasks without --force")
		}
		n, err := store.ClearTasks()
		if err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %d task(s)\n", n)
		return nil
	},
}

func init() {
	taskClearCmd.Flags().BoolVar(&clearForce, "force", false, "confirm clearing every task")
	taskCmd.AddCommand(taskClearCmd)
}
