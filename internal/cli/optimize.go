package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/promptshear/promptshear/internal/config"
	"github.com/promptshear/promptshear/internal/errors"
	"github.com/promptshear/promptshear/internal/model"
	"github.com/promptshear/promptshear/internal/optimizer"
	"github.com/promptshear/promptshear/internal/rules"
)

type optimizeOptions struct {
	modelName  string
	file       string
	strategies []string
	aggressive bool
	target     float64
	threshold  float64
	preserve   bool
	asJSON     bool
	output     string
	showDiff   bool
	verbose    bool
}

// NewOptimizeCmd creates the optimize command.
func NewOptimizeCmd() *cobra.Command {
	opts := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize [prompt]...",
		Short: "Rewrite prompts to use fewer tokens",
		Long: `Rewrites one or more prompts using deterministic transformations and
reports token and cost savings for the chosen model.

The rewrite is only kept when its similarity to the original stays at or
above the meaning-preservation threshold; otherwise the original text is
returned unchanged with accepted=false.

Input comes from arguments, -f <file>, or stdin. Multiple arguments are
optimized as an independent batch.`,
		Example: `  promptshear optimize "Please could you analyze this text"
  promptshear optimize -f prompt.txt --model claude-3-5-sonnet
  cat prompt.txt | promptshear optimize --diff
  promptshear optimize --strategies token-reduction --aggressive "..."
  promptshear optimize --json "first prompt" "second prompt"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.modelName, "model", "m", "", "Model for token counting and cost")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the prompt from a file")
	cmd.Flags().StringSliceVar(&opts.strategies, "strategies", nil, "Strategies to run (default: all)")
	cmd.Flags().BoolVar(&opts.aggressive, "aggressive", false, "Relax elision guards for deeper reduction")
	cmd.Flags().Float64Var(&opts.target, "target", 0, "Advisory token reduction target (0-1)")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "Meaning-preservation floor (default 0.90)")
	cmd.Flags().BoolVar(&opts.preserve, "preserve-structure", false, "Skip structural reordering")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Emit results as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write optimized text to a file")
	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "Show a unified diff of the rewrite")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show per-strategy token deltas")

	return cmd
}

func runOptimize(args []string, opts *optimizeOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	prompts, err := gatherPrompts(args, opts.file, os.Stdin)
	if err != nil {
		return err
	}

	o, err := buildOptimizer(cfg, opts)
	if err != nil {
		return err
	}

	results := o.BatchOptimize(prompts)

	if opts.asJSON {
		return writeJSON(os.Stdout, results)
	}

	for i, result := range results {
		if len(results) > 1 {
			fmt.Printf("%s\n", dim(fmt.Sprintf("--- prompt %d/%d ---", i+1, len(results))))
		}
		displayResult(result, opts)
	}

	if opts.output != "" {
		var texts []string
		for _, r := range results {
			texts = append(texts, r.OptimizedPrompt)
		}
		content := strings.Join(texts, "\n\n")
		if err := os.WriteFile(opts.output, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		printSuccess("Wrote optimized prompt to %s", opts.output)
	}

	return nil
}

// gatherPrompts resolves input precedence: arguments, then file, then stdin.
func gatherPrompts(args []string, file string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("cannot read %s: %v", file, err))
		}
		return []string{string(data)}, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.InvalidInput("no prompt given")
	}
	return []string{strings.TrimRight(string(data), "\n")}, nil
}

func buildOptimizer(cfg *config.Config, opts *optimizeOptions) (*optimizer.Optimizer, error) {
	modelName := cfg.Optimize.Model
	if opts.modelName != "" {
		modelName = opts.modelName
	}
	adapter, err := model.New(modelName)
	if err != nil {
		return nil, err
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}

	sCfg := cfg.StrategyConfig()
	if opts.aggressive {
		sCfg.Aggressive = true
	}
	if opts.preserve {
		sCfg.PreserveStructure = true
	}
	if opts.target > 0 {
		sCfg.TargetReduction = opts.target
	}
	if opts.threshold > 0 {
		sCfg.PreserveMeaningThreshold = opts.threshold
	}

	names := opts.strategies
	if len(names) == 0 {
		names = cfg.Optimize.Strategies
	}
	strategies := optimizer.SelectStrategies(names, reg)
	if len(strategies) == 0 {
		return nil, errors.InvalidInput("no known strategies selected")
	}

	return optimizer.New(adapter, sCfg, strategies...), nil
}

// loadRegistry merges builtin, personal, and project rule packs. Pack
// parse errors are warnings, not failures: a broken custom pack should
// not block optimization with the builtin rules.
func loadRegistry(cfg *config.Config) (*rules.Registry, error) {
	personalDir := cfg.Rules.Dir
	projectDir := config.ProjectRulesDir(".")

	reg, err := rules.LoadRegistry(personalDir, projectDir)
	if err != nil {
		var parseErrs *rules.ParseErrors
		if stderrors.As(err, &parseErrs) {
			for _, e := range parseErrs.Errors {
				printWarning("skipping rule pack: %v", e)
			}
			return reg, nil
		}
		return nil, err
	}
	return reg, nil
}

func displayResult(result optimizer.Result, opts *optimizeOptions) {
	fmt.Println()
	if result.Accepted {
		fmt.Println(result.OptimizedPrompt)
	} else {
		fmt.Println(result.OriginalPrompt)
	}
	fmt.Println()

	printInfo("Model", result.Model)
	fmt.Printf("  %s: %d tokens\n", dim("Before"), result.OriginalTokens)
	fmt.Printf("  %s: %d tokens (%.0f%% reduction)\n", dim("After"), result.OptimizedTokens, result.ReductionPercent)
	fmt.Printf("  %s: %.3f\n", dim("Similarity"), result.SemanticSimilarity)
	if result.CostSavings > 0 {
		fmt.Printf("  %s: $%.5f per call\n", dim("Savings"), result.CostSavings)
	}

	if opts.verbose {
		fmt.Println()
		for _, d := range result.Deltas {
			fmt.Printf("  %s: %d -> %d tokens\n", dim(d.Strategy), d.TokensBefore, d.TokensAfter)
		}
		if result.Retried {
			fmt.Printf("  %s\n", dim("(target unmet, ran one extra reduction pass)"))
		}
	}

	if !result.Accepted {
		fmt.Println()
		printWarning("Rewrite rejected: similarity %.3f is below the meaning-preservation floor; original returned",
			result.SemanticSimilarity)
	}

	if opts.showDiff && result.OptimizedPrompt != result.OriginalPrompt {
		displayDiff(result.OriginalPrompt, result.OptimizedPrompt)
	}
}

// displayDiff shows a unified diff between original and optimized text.
func displayDiff(original, optimized string) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(optimized),
		FromFile: "original",
		ToFile:   "optimized",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return
	}

	fmt.Println()
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			fmt.Println(success(line))
		case strings.HasPrefix(line, "-"):
			fmt.Println(danger(line))
		default:
			fmt.Println(dim(line))
		}
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
