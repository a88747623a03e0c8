// Package cli implements the promptshear command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/promptshear/promptshear/internal/errors"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Output helpers.
	successIcon = color.New(color.FgGreen).Sprint("✓")
	warningIcon = color.New(color.FgYellow).Sprint("⚠")
	errorIcon   = color.New(color.FgRed).Sprint("✗")

	success = color.New(color.FgGreen).SprintFunc()
	danger  = color.New(color.FgRed).SprintFunc()
	info    = color.New(color.FgCyan).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "promptshear",
		Short: "Shrink LLM prompts without changing what they mean",
		Long: `Promptshear rewrites prompts to use fewer tokens.

It applies deterministic transformations (filler removal, abbreviation,
structural reordering), scores the result against the original for meaning
preservation, and rejects any rewrite that drifts too far. Token counts and
costs are computed per model.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewOptimizeCmd())
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewModelsCmd())
	rootCmd.AddCommand(NewRulesCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("promptshear %s\n", Version)
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", errorIcon, err.Error())
		if se, ok := errors.FromError(err); ok && se.Hint != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", dim(se.Hint))
		}
		return err
	}
	return nil
}

// printSuccess prints a success message.
func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successIcon, fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", warningIcon, fmt.Sprintf(format, args...))
}

// printInfo prints an info line.
func printInfo(label, value string) {
	fmt.Printf("  %s: %s\n", dim(label), value)
}
