// Package config handles promptshear configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/promptshear/promptshear/internal/errors"
	"github.com/promptshear/promptshear/internal/model"
	"github.com/promptshear/promptshear/internal/strategy"
)

// OptimizeConfig contains default optimization settings, all overridable
// per-invocation from the CLI.
type OptimizeConfig struct {
	Model             string   `yaml:"model,omitempty"`              // Default model for counting and cost
	Threshold         float64  `yaml:"threshold,omitempty"`          // Meaning-preservation floor
	TargetReduction   float64  `yaml:"target_reduction,omitempty"`   // Advisory token reduction target (0-1)
	Aggressive        bool     `yaml:"aggressive,omitempty"`         // Relaxed elision guards
	PreserveStructure bool     `yaml:"preserve_structure,omitempty"` // Skip structural reordering
	Strategies        []string `yaml:"strategies,omitempty"`         // Subset of strategies to run
}

// RulesConfig controls where custom rule packs come from.
type RulesConfig struct {
	// Source is a GitHub "owner/repo" holding shared rule packs,
	// synced with `promptshear rules sync`.
	Source string `yaml:"source,omitempty"`

	// Dir is the directory rules are synced into. Defaults to the
	// personal rules directory.
	Dir string `yaml:"dir,omitempty"`
}

// Config represents the promptshear configuration file.
type Config struct {
	Version  int            `yaml:"version"`
	Optimize OptimizeConfig `yaml:"optimize,omitempty"`
	Rules    RulesConfig    `yaml:"rules,omitempty"`
}

// Default values.
const (
	DefaultVersion = 1
	DefaultModel   = "gpt-4o"
)

// Load reads and validates config from the default location. A missing
// file is not an error: defaults apply.
func Load() (*Config, error) {
	paths := NewPaths()
	cfg, err := LoadFrom(paths.ConfigFile)
	if err != nil {
		if se, ok := errors.FromError(err); ok && se.Code == errors.ErrConfigNotFound {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFrom reads and validates config from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to read config", "", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to parse config YAML", "Check config syntax", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes config to the default location.
func Save(cfg *Config) error {
	paths := NewPaths()
	return SaveTo(cfg, paths.ConfigFile)
}

// SaveTo writes config to a specific path.
func SaveTo(cfg *Config, path string) error {
	cfg.applyDefaults()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to marshal config", "", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to create config directory", "", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks config for valid values.
func (c *Config) Validate() error {
	if c.Optimize.Threshold < 0 || c.Optimize.Threshold > 1 {
		return errors.ConfigInvalid("optimize.threshold must be between 0 and 1")
	}
	if c.Optimize.TargetReduction < 0 || c.Optimize.TargetReduction > 1 {
		return errors.ConfigInvalid("optimize.target_reduction must be between 0 and 1")
	}

	if c.Optimize.Model != "" {
		if _, err := model.New(c.Optimize.Model); err != nil {
			return err
		}
	}

	known := map[string]bool{
		strategy.NameSemanticCompression:    true,
		strategy.NameTokenReduction:         true,
		strategy.NameStructuralOptimization: true,
	}
	for _, name := range c.Optimize.Strategies {
		if !known[strings.TrimSpace(strings.ToLower(name))] {
			return errors.ConfigInvalid("unknown strategy: " + name)
		}
	}

	if c.Rules.Source != "" && !strings.Contains(c.Rules.Source, "/") {
		return errors.ConfigInvalid("rules.source must be in owner/repo format")
	}

	return nil
}

// applyDefaults sets default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = DefaultVersion
	}
	if c.Optimize.Model == "" {
		c.Optimize.Model = DefaultModel
	}
	if c.Optimize.Threshold == 0 {
		c.Optimize.Threshold = strategy.DefaultMeaningThreshold
	}
	if c.Rules.Dir == "" {
		c.Rules.Dir = NewPaths().PersonalRules
	}
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// StrategyConfig converts the optimize section into a strategy run config.
func (c *Config) StrategyConfig() strategy.Config {
	return strategy.Config{
		Aggressive:               c.Optimize.Aggressive,
		TargetReduction:          c.Optimize.TargetReduction,
		PreserveStructure:        c.Optimize.PreserveStructure,
		PreserveMeaningThreshold: c.Optimize.Threshold,
	}
}

// Exists checks if a config file exists at the default location.
func Exists() bool {
	paths := NewPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}
