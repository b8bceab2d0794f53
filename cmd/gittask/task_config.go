package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/gittask/internal/config"
	"github.com/steveyegge/gittask/internal/tracker"
)

// normalizeRefPath applies spec.md §6's front-end convenience: a bare name
// becomes a branch ref, a single "namespace/name" becomes a ref under refs/,
// anything already qualified is passed through verbatim.
func normalizeRefPath(value string) string {
	switch strings.Count(value, "/") {
	case 0:
		return "refs/heads/" + value
	case 1:
		if !strings.HasPrefix(value, "/") && !strings.HasSuffix(value, "/") {
			return "refs/" + value
		}
	}
	return value
}

var taskConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set task-store configuration",
	Long: `Configuration keys recognized by connector adapters (e.g. jira.url,
github.token) are stored in the repository's git config, same as "ref"
(task.ref, normalized per the rule below). Keys that describe the CLI
itself (output, author) are stored in .gittask.toml instead — see
internal/config.IsProjectOnlyKey.

Setting ref normalizes the given value: a bare name becomes refs/heads/name,
a single "namespace/name" becomes refs/namespace/name, anything already
qualified is stored verbatim.`,
}

var taskConfigGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if key == "ref" {
			fmt.Fprintln(cmd.OutOrStdout(), store.GetRefPath())
			return nil
		}
		if config.IsProjectOnlyKey(key) {
			fmt.Fprintln(cmd.OutOrStdout(), config.GetString(key))
			return nil
		}
		value, err := store.GetConfigValue(key)
		if err != nil {
			return fmt.Errorf("get config %s: %w", key, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var taskConfigSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if key == "ref" {
			return store.SetRefPath(normalizeRefPath(value), true)
		}
		if config.IsProjectOnlyKey(key) {
			return config.SetProjectConfigValue(repoPath, key, value)
		}
		if err := store.SetConfigValue(key, value); err != nil {
			return fmt.Errorf("set config %s: %w", key, err)
		}
		return nil
	},
}

var taskConfigListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every connector configuration key this build recognizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, key := range tracker.ConfigOptionsFromConnectors() {
			fmt.Fprintln(out, key)
		}
		return nil
	},
}

func init() {
	taskConfigCmd.AddCommand(taskConfigGetCmd)
	taskConfigCmd.AddCommand(taskConfigSetCmd)
	taskConfigCmd.AddCommand(taskConfigListCmd)
	taskCmd.AddCommand(taskConfigCmd)
}
