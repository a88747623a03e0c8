package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptshear/promptshear/internal/config"
	"github.com/promptshear/promptshear/internal/model"
)

type analyzeOptions struct {
	modelName string
	file      string
	reserve   int
	asJSON    bool
}

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [prompt]",
		Short: "Report a prompt's token footprint without rewriting it",
		Long: `Counts tokens, estimates per-call cost, and checks context-window fit
for the chosen model. Nothing is rewritten; this is informational only.`,
		Example: `  promptshear analyze "Summarize the attached report"
  promptshear analyze -f prompt.txt --model gpt-4
  cat prompt.txt | promptshear analyze --reserve 2000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.modelName, "model", "m", "", "Model for token counting and cost")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the prompt from a file")
	cmd.Flags().IntVar(&opts.reserve, "reserve", 1024, "Tokens to reserve for the model's response")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Emit the report as JSON")

	return cmd
}

func runAnalyze(args []string, opts *analyzeOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	prompts, err := gatherPrompts(args, opts.file, os.Stdin)
	if err != nil {
		return err
	}
	prompt := prompts[0]

	modelName := cfg.Optimize.Model
	if opts.modelName != "" {
		modelName = opts.modelName
	}
	adapter, err := model.New(modelName)
	if err != nil {
		return err
	}

	report := adapter.SuggestOptimizations(prompt)

	if opts.asJSON {
		return writeJSON(os.Stdout, report)
	}

	fmt.Println()
	printInfo("Model", adapter.Name())
	fmt.Printf("  %s: %d\n", dim("Tokens"), report.CurrentTokens)
	fmt.Printf("  %s: %.1f%% of %d\n", dim("Context"), report.ContextUsagePercent, adapter.Spec().ContextWindow)
	fmt.Printf("  %s: $%.5f per call (input only)\n", dim("Cost"), report.EstimatedCost)

	if adapter.CanFitInContext(prompt, opts.reserve) {
		printSuccess("Fits in context with %d tokens reserved for the response", opts.reserve)
	} else {
		printWarning("Does not fit in context with %d tokens reserved", opts.reserve)
	}

	for _, s := range report.Suggestions {
		switch s.Severity {
		case model.SeverityHigh:
			printWarning("%s", s.Message)
		default:
			fmt.Printf("  %s %s\n", dim("-"), s.Message)
		}
	}

	return nil
}
