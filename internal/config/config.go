// Package config provides CLI-level configuration for the gittask command:
// flag/env/file binding via viper, distinct from the task store's own
// git-level config (which lives in internal/gitrepo and is read/written
// straight into the repository's .git/config, never through viper).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix applied to every environment variable binding,
// so GITTASK_REF overrides the "ref" key, GITTASK_OUTPUT overrides "output", etc.
const EnvPrefix = "GITTASK"

// ProjectConfigName is the base name (without extension) viper searches for.
const ProjectConfigName = ".gittask"

var v *viper.Viper

// Init sets up the package-level viper instance: defaults, environment
// binding, and an optional TOML project config file discovered by walking
// up from startDir. Safe to call more than once (e.g. once per CLI
// invocation in tests) — each call replaces the previous instance.
func Init(startDir string) error {
	v = viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("ref", "refs/tasks/tasks")
	v.SetDefault("output", "text")

	v.SetConfigName(ProjectConfigName)
	v.SetConfigType("toml")

	if dir, err := findProjectConfigDir(startDir); err == nil {
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return fmt.Errorf("read project config: %w", err)
			}
		}
	}

	return nil
}

// findProjectConfigDir walks up from startDir looking for a .gittask.toml file,
// the same "nearest ancestor wins" search local_config.go's caller relied on.
func findProjectConfigDir(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, ProjectConfigName+".toml")
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s.toml found above %s", ProjectConfigName, startDir)
		}
		dir = parent
	}
}

// GetString reads a CLI-config key, returning "" if Init was never called
// or the key is unset. Mirrors yaml_config.go's nil-viper guard.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool reads a boolean CLI-config key.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// Set overrides a key for the remainder of the process.
func Set(key string, value interface{}) {
	if v == nil {
		v = viper.New()
	}
	v.Set(key, value)
}
