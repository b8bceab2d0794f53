package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/gittask/internal/gittask"
)

func printTask(cmd *cobra.Command, task gittask.Task) error {
	if outputFormat == "json" {
		return printJSON(cmd, task)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id:          %s\n", task.ID)
	fmt.Fprintf(out, "name:        %s\n", task.Props["name"])
	fmt.Fprintf(out, "status:      %s\n", task.Props["status"])
	if desc := task.Props["description"]; desc != "" {
		fmt.Fprintf(out, "description: %s\n", desc)
	}
	if author := task.Props["author"]; author != "" {
		fmt.Fprintf(out, "author:      %s\n", author)
	}
	if len(task.Labels) > 0 {
		fmt.Fprint(out, "labels:      ")
		for i, l := range task.Labels {
			if i > 0 {
				fmt.Fprint(out, ", ")
			}
			fmt.Fprint(out, l.Name)
		}
		fmt.Fprintln(out)
	}
	for _, c := range task.Comments {
		fmt.Fprintf(out, "comment %s:  %s\n", c.ID, c.Text)
	}
	return nil
}

func printTasks(cmd *cobra.Command, tasks []gittask.Task) error {
	if outputFormat == "json" {
		return printJSON(cmd, tasks)
	}

	out := cmd.OutOrStdout()
	for _, task := range tasks {
		fmt.Fprintf(out, "%-6s %-10s %s\n", task.ID, task.Props["status"], task.Props["name"])
	}
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
