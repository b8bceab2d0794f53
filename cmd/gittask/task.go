package main

import (
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Create, inspect, and mutate tasks in the git-backed task store",
}

func init() {
	rootCmd.AddCommand(taskCmd)
}
