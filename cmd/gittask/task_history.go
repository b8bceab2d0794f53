package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var taskHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the action history recorded for a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := store.GetTaskHistory(args[0])
		if err != nil {
			return fmt.Errorf("get task history: %w", err)
		}

		if outputFormat == "json" {
			names := make([]string, len(actions))
			for i, a := range actions {
				names[i] = a.String()
			}
			return printJSON(cmd, names)
		}

		out := cmd.OutOrStdout()
		for _, a := range actions {
			fmt.Fprintln(out, a.String())
		}
		return nil
	},
}

func init() {
	taskCmd.AddCommand(taskHistoryCmd)
}
