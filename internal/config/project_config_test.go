package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfigMissingFileIsEmpty(t *testing.T) {
	cfg := LoadProjectConfig(t.TempDir())
	if cfg.Ref != "" || cfg.Output != "" || cfg.Author != "" {
		t.Errorf("LoadProjectConfig on missing file = %+v, want zero value", cfg)
	}
}

func TestLoadProjectConfigParsesToml(t *testing.T) {
	dir := t.TempDir()
	content := "ref = \"refs/tasks/custom\"\nauthor = \"Ada Lovelace\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".gittask.toml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := LoadProjectConfig(dir)
	if cfg.Ref != "refs/tasks/custom" {
		t.Errorf("Ref = %q, want refs/tasks/custom", cfg.Ref)
	}
	if cfg.Author != "Ada Lovelace" {
		t.Errorf("Author = %q, want Ada Lovelace", cfg.Author)
	}
}

func TestLoadProjectConfigMalformedIsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gittask.toml"), []byte("not = [valid"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := LoadProjectConfig(dir)
	if cfg.Ref != "" {
		t.Errorf("LoadProjectConfig on malformed file = %+v, want zero value", cfg)
	}
}

func TestIsProjectOnlyKey(t *testing.T) {
	for _, key := range []string{"ref", "output", "author"} {
		if !IsProjectOnlyKey(key) {
			t.Errorf("IsProjectOnlyKey(%q) = false, want true", key)
		}
	}
	if IsProjectOnlyKey("jira.api_token") {
		t.Error("IsProjectOnlyKey(jira.api_token) = true, want false (belongs to git config)")
	}
}

func TestSetProjectConfigValueCreatesFile(t *testing.T) {
	dir := t.TempDir()
	if err := SetProjectConfigValue(dir, "ref", "refs/tasks/created"); err != nil {
		t.Fatalf("SetProjectConfigValue: %v", err)
	}

	cfg := LoadProjectConfig(dir)
	if cfg.Ref != "refs/tasks/created" {
		t.Errorf("Ref = %q, want refs/tasks/created", cfg.Ref)
	}
}

func TestSetProjectConfigValueUpdatesExistingKey(t *testing.T) {
	dir := t.TempDir()
	if err := SetProjectConfigValue(dir, "ref", "refs/tasks/first"); err != nil {
		t.Fatal(err)
	}
	if err := SetProjectConfigValue(dir, "ref", "refs/tasks/second"); err != nil {
		t.Fatal(err)
	}
	if err := SetProjectConfigValue(dir, "author", "Grace Hopper"); err != nil {
		t.Fatal(err)
	}

	cfg := LoadProjectConfig(dir)
	if cfg.Ref != "refs/tasks/second" {
		t.Errorf("Ref = %q, want refs/tasks/second", cfg.Ref)
	}
	if cfg.Author != "Grace Hopper" {
		t.Errorf("Author = %q, want Grace Hopper (previous key preserved)", cfg.Author)
	}
}

func TestTypedValueInfersKind(t *testing.T) {
	if v := typedValue("true"); v != true {
		t.Errorf("typedValue(true) = %#v, want bool true", v)
	}
	if v := typedValue("42"); v != int64(42) {
		t.Errorf("typedValue(42) = %#v, want int64 42", v)
	}
	if v := typedValue("hello"); v != "hello" {
		t.Errorf("typedValue(hello) = %#v, want string hello", v)
	}
}
