package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitReadsProjectConfig(t *testing.T) {
	dir := t.TempDir()
	content := "ref = \"refs/tasks/custom\"\noutput = \"json\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".gittask.toml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := GetString("ref"); got != "refs/tasks/custom" {
		t.Errorf("GetString(ref) = %q, want refs/tasks/custom", got)
	}
	if got := GetString("output"); got != "json" {
		t.Errorf("GetString(output) = %q, want json", got)
	}
}

func TestInitDefaultsWhenNoProjectConfig(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := GetString("ref"); got != "refs/tasks/tasks" {
		t.Errorf("GetString(ref) = %q, want default refs/tasks/tasks", got)
	}
}

func TestEnvOverridesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	content := "ref = \"refs/tasks/custom\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".gittask.toml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GITTASK_REF", "refs/tasks/from-env")
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := GetString("ref"); got != "refs/tasks/from-env" {
		t.Errorf("GetString(ref) = %q, want refs/tasks/from-env", got)
	}
}

func TestGetStringWithoutInitIsEmpty(t *testing.T) {
	v = nil
	if got := GetString("ref"); got != "" {
		t.Errorf("GetString(ref) without Init = %q, want empty", got)
	}
}

func TestSetOverridesValue(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Set("ref", "refs/tasks/flag-override")
	if got := GetString("ref"); got != "refs/tasks/flag-override" {
		t.Errorf("GetString(ref) = %q, want refs/tasks/flag-override", got)
	}
}
