package main

import (
	"bytes"
	"strings"
	"testing"

	git "github.com/go-git/go-git/v5"
)

// runCLI executes rootCmd with args against a fresh repo at dir, resetting
// the package-level flag state cobra commands share between invocations
// (mirroring the teacher's own pattern of re-running rootCmd per test case
// in cmd/bd/init_test.go, simplified to avoid that file's daemon/storage
// setup, which has no equivalent here).
func runCLI(t *testing.T, dir string, args ...string) string {
	t.Helper()

	repoPath = ""
	refPath = ""
	outputFormat = ""
	verbose = false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--repo", dir}, args...))

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("gittask %s: %v\noutput: %s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func newRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCreateListShow(t *testing.T) {
	dir := newRepo(t)

	runCLI(t, dir, "task", "create", "write docs", "--status", "open")
	list := runCLI(t, dir, "task", "list")
	if !strings.Contains(list, "write docs") {
		t.Errorf("task list = %q, want it to contain the created task", list)
	}

	show := runCLI(t, dir, "task", "show", "1")
	if !strings.Contains(show, "write docs") {
		t.Errorf("task show 1 = %q, want it to contain the task name", show)
	}
}

func TestUpdateStatusAndComment(t *testing.T) {
	dir := newRepo(t)

	runCLI(t, dir, "task", "create", "fix bug")
	runCLI(t, dir, "task", "update", "1", "--status", "closed", "--comment", "shipped")

	show := runCLI(t, dir, "task", "show", "1")
	if !strings.Contains(show, "closed") {
		t.Errorf("task show 1 = %q, want status closed", show)
	}
	if !strings.Contains(show, "shipped") {
		t.Errorf("task show 1 = %q, want the appended comment", show)
	}
}

func TestDeleteRemovesFromList(t *testing.T) {
	dir := newRepo(t)

	runCLI(t, dir, "task", "create", "throwaway")
	runCLI(t, dir, "task", "delete", "1")

	list := runCLI(t, dir, "task", "list")
	if strings.Contains(list, "throwaway") {
		t.Errorf("task list = %q, want throwaway removed", list)
	}
}

func TestConfigSetAndGetProjectOnlyKey(t *testing.T) {
	dir := newRepo(t)

	runCLI(t, dir, "task", "config", "set", "author", "Ada Lovelace")
	got := runCLI(t, dir, "task", "config", "get", "author")
	if strings.TrimSpace(got) != "Ada Lovelace" {
		t.Errorf("task config get author = %q, want Ada Lovelace", got)
	}
}

func TestConnectorListIncludesBuiltinAdapters(t *testing.T) {
	dir := newRepo(t)
	out := runCLI(t, dir, "task", "connector", "list")
	for _, adapter := range []string{"github", "gitlab", "jira", "redmine"} {
		if !strings.Contains(out, adapter) {
			t.Errorf("task connector list = %q, want it to contain %q", out, adapter)
		}
	}
}
