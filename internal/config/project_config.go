package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// ProjectConfig is the subset of .gittask.toml read directly from disk rather
// than through the viper singleton — needed when the CWD has changed since
// Init, or when a caller wants the file's contents without binding env/flags
// on top of it. Mirrors the teacher's LocalConfig/LoadLocalConfig split.
type ProjectConfig struct {
	Ref    string `toml:"ref"`
	Output string `toml:"output"`
	Author string `toml:"author"`
}

// LoadProjectConfig reads and parses .gittask.toml directly from dir.
// Returns an empty ProjectConfig (not nil) if the file doesn't exist or
// can't be parsed, matching the teacher's "never fail CLI startup on a
// malformed local file" behavior.
func LoadProjectConfig(dir string) *ProjectConfig {
	path := filepath.Join(dir, ProjectConfigName+".toml")
	data, err := os.ReadFile(path) // #nosec G304 - path is joined from a caller-supplied project dir
	if err != nil {
		return &ProjectConfig{}
	}

	var cfg ProjectConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return &ProjectConfig{}
	}
	return &cfg
}

// projectOnlyKeys are configuration keys that belong in .gittask.toml rather
// than the repository's git config, because they're read before a
// taskstore.Store exists (e.g. the ref to open) or describe CLI presentation
// rather than task-store state. The gittask CLI's config get/set handle "ref"
// before consulting this set and store it as task.ref in git config.
var projectOnlyKeys = map[string]bool{
	"ref":    true,
	"output": true,
	"author": true,
}

// IsProjectOnlyKey reports whether key should be stored in .gittask.toml
// instead of being routed to the git-level config (internal/gitrepo).
func IsProjectOnlyKey(key string) bool {
	return projectOnlyKeys[key]
}

// SetProjectConfigValue sets a key in dir's .gittask.toml, creating the file
// if absent. Unlike the teacher's comment-preserving regex rewrite of
// config.yaml, this decodes the whole document into a map, updates the key,
// and re-encodes it — TOML's encoder doesn't preserve comments either way,
// so the extra complexity bought nothing here.
func SetProjectConfigValue(dir, key, value string) error {
	path := filepath.Join(dir, ProjectConfigName+".toml")

	doc := map[string]interface{}{}
	if data, err := os.ReadFile(path); err == nil { // #nosec G304 - path is joined from a caller-supplied project dir
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	doc[key] = typedValue(value)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(doc); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// typedValue infers bool/int/float from a raw CLI string, falling back to
// string, matching yaml_config.go's formatYamlValue type-sniffing intent.
func typedValue(value string) interface{} {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
