package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptshear/promptshear/internal/config"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "promptshear", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	subcommands := []string{"optimize", "analyze", "models", "rules", "init", "version"}
	for _, name := range subcommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		assert.True(t, found, "subcommand %q should be registered", name)
	}
}

func TestRunInit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, runInit("claude-3-5-sonnet", false))

	paths := config.NewPaths()
	require.True(t, config.Exists())

	cfg, err := config.LoadFrom(paths.ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-sonnet", cfg.Optimize.Model)

	info, err := os.Stat(paths.PersonalRules)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRunInit_RefusesOverwriteWithoutForce(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, runInit("gpt-4", false))
	require.NoError(t, runInit("claude-3-opus", false))

	cfg, err := config.LoadFrom(config.NewPaths().ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", cfg.Optimize.Model, "second init without --force must not overwrite")

	require.NoError(t, runInit("claude-3-opus", true))
	cfg, err = config.LoadFrom(config.NewPaths().ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "claude-3-opus", cfg.Optimize.Model)
}

func TestRunInit_RejectsUnknownModel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	assert.Error(t, runInit("llama-7b", false))
}

func TestDisplayDiff_NoPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		displayDiff("Please analyze the text.\nSecond line.", "Analyze text.\nSecond line.")
	})
}

func ExampleNewVersionCmd() {
	Version = "1.2.3"
	defer func() { Version = "dev" }()

	cmd := NewVersionCmd()
	cmd.Run(cmd, nil)
	// Output: promptshear 1.2.3
}
