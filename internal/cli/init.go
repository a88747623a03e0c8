package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptshear/promptshear/internal/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	var (
		modelName string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the promptshear config file",
		Long: `Writes a config file with defaults to ~/.config/promptshear/config.yaml
and creates the personal rules directory.`,
		Example: `  promptshear init
  promptshear init --model claude-3-5-sonnet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(modelName, force)
		},
	}

	cmd.Flags().StringVar(&modelName, "model", "", "Default model to write into the config")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runInit(modelName string, force bool) error {
	paths := config.NewPaths()

	if config.Exists() && !force {
		printWarning("Config already exists at %s", paths.ConfigFile)
		fmt.Println(dim("Use --force to overwrite."))
		return nil
	}

	cfg := config.Default()
	if modelName != "" {
		cfg.Optimize.Model = modelName
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(paths.PersonalRules, 0755); err != nil {
		return err
	}

	printSuccess("Created %s", paths.ConfigFile)
	printInfo("Model", cfg.Optimize.Model)
	printInfo("Threshold", fmt.Sprintf("%.2f", cfg.Optimize.Threshold))
	printInfo("Rules dir", paths.PersonalRules)
	fmt.Println()
	fmt.Println(dim("Try: promptshear optimize \"Please could you analyze this text\""))
	return nil
}
