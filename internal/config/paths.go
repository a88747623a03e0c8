// Package config handles promptshear configuration.
package config

import (
	"os"
	"path/filepath"
)

// Paths provides all promptshear-related filesystem paths.
type Paths struct {
	ConfigDir     string // ~/.config/promptshear
	ConfigFile    string // ~/.config/promptshear/config.yaml
	PersonalRules string // ~/.config/promptshear/rules
}

// NewPaths creates Paths using the ~/.config directory. We use this path
// explicitly for cross-platform consistency rather than platform-specific
// defaults (like ~/Library/Application Support on macOS).
func NewPaths() *Paths {
	home := os.Getenv("HOME")
	configDir := filepath.Join(home, ".config", "promptshear")

	return &Paths{
		ConfigDir:     configDir,
		ConfigFile:    filepath.Join(configDir, "config.yaml"),
		PersonalRules: filepath.Join(configDir, "rules"),
	}
}

// NewPathsWithOverrides allows overriding the config directory for testing.
func NewPathsWithOverrides(configDir string) *Paths {
	return &Paths{
		ConfigDir:     configDir,
		ConfigFile:    filepath.Join(configDir, "config.yaml"),
		PersonalRules: filepath.Join(configDir, "rules"),
	}
}

// ProjectRulesDir returns the per-project rules directory, relative to
// the project root (.promptshear/rules/).
func ProjectRulesDir(projectRoot string) string {
	return filepath.Join(projectRoot, ".promptshear", "rules")
}
