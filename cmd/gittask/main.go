// Command gittask is the CLI front end for the git-backed task store
// implemented in internal/taskstore. It mirrors the teacher's cmd/bd
// command-per-file layout: one package-level *cobra.Command per file,
// wired together through init().
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/gittask/internal/config"
	"github.com/steveyegge/gittask/internal/logging"
	"github.com/steveyegge/gittask/internal/taskstore"
)

var (
	repoPath     string
	refPath      string
	outputFormat string
	verbose      bool

	store *taskstore.Store
	log   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gittask",
	Short: "A git-object-backed issue tracker with pluggable remote connectors",
	Long: `gittask stores tasks, comments, labels, and their edit history directly
inside a git repository's object database, under a dedicated reference
(refs/tasks/tasks by default). Every mutation is a new commit on that
reference, giving tasks the same content-addressed history and transport
semantics as source code.

A pluggable connector layer can mirror the local task store against
external issue trackers (GitHub, GitLab, Jira, Redmine) with
'gittask task connector sync'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if repoPath == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("determine working directory: %w", err)
			}
			repoPath = wd
		}

		if err := config.Init(repoPath); err != nil {
			return fmt.Errorf("initialize config: %w", err)
		}
		if outputFormat == "" {
			outputFormat = config.GetString("output")
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		format := logging.Text
		if outputFormat == "json" {
			format = logging.JSON
		}
		log = logging.New(logging.Options{Format: format, Level: level})
		log.Debug("resolved repository", "path", repoPath)

		store = taskstore.New(repoPath)
		if refPath != "" {
			store.UseRef(refPath)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", "", "path to the git repository (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&refPath, "ref", "", "task store reference (default: refs/tasks/tasks)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "", "output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gittask:", err)
		os.Exit(1)
	}
}
