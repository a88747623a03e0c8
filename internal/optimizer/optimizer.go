// Package optimizer orchestrates transformation strategies against a model
// adapter and enforces the meaning-preservation gate.
package optimizer

import (
	"strings"
	"sync"

	"github.com/promptshear/promptshear/internal/model"
	"github.com/promptshear/promptshear/internal/rules"
	"github.com/promptshear/promptshear/internal/semantics"
	"github.com/promptshear/promptshear/internal/strategy"
)

// StrategyDelta records one strategy's effect on the token count.
type StrategyDelta struct {
	Strategy     string `json:"strategy"`
	TokensBefore int    `json:"tokens_before"`
	TokensAfter  int    `json:"tokens_after"`
}

// Result is the outcome of one optimization run. When the similarity gate
// rejects the transformed text, OptimizedPrompt carries the original and
// Accepted is false; the metrics still describe the rejected attempt.
type Result struct {
	OriginalPrompt     string          `json:"original_prompt"`
	OptimizedPrompt    string          `json:"optimized_prompt"`
	OriginalTokens     int             `json:"original_tokens"`
	OptimizedTokens    int             `json:"optimized_tokens"`
	ReductionPercent   float64         `json:"reduction_percent"`
	SemanticSimilarity float64         `json:"semantic_similarity"`
	CostSavings        float64         `json:"cost_savings"`
	StrategiesApplied  []string        `json:"strategies_applied"`
	Deltas             []StrategyDelta `json:"deltas"`
	Accepted           bool            `json:"accepted"`
	Retried            bool            `json:"retried"`
	Model              string          `json:"model"`
}

// Optimizer runs an ordered strategy pipeline for one model. Safe for
// concurrent use: strategies are pure and the adapter's counting is
// internally synchronized.
type Optimizer struct {
	adapter    model.Adapter
	strategies []strategy.Strategy
	cfg        strategy.Config
}

// New builds an optimizer. With no strategies given, the full default
// pipeline is used.
func New(adapter model.Adapter, cfg strategy.Config, strategies ...strategy.Strategy) *Optimizer {
	if cfg.PreserveMeaningThreshold == 0 {
		cfg.PreserveMeaningThreshold = strategy.DefaultMeaningThreshold
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies(nil)
	}
	return &Optimizer{
		adapter:    adapter,
		strategies: strategies,
		cfg:        cfg,
	}
}

// DefaultStrategies returns the full pipeline in its canonical order,
// enriched with custom rules from the registry when one is given.
func DefaultStrategies(reg *rules.Registry) []strategy.Strategy {
	var phrases, abbreviations, symbols []rules.Rule
	if reg != nil {
		phrases = reg.ByCategory(rules.CategoryPhrase)
		abbreviations = reg.ByCategory(rules.CategoryAbbreviation)
		symbols = reg.ByCategory(rules.CategorySymbol)
	}
	return []strategy.Strategy{
		strategy.NewSemanticCompression(phrases...),
		strategy.NewTokenReduction(abbreviations, symbols),
		strategy.NewStructuralOptimization(),
	}
}

// SelectStrategies resolves strategy names against the default pipeline,
// keeping canonical order regardless of how names were listed. Unknown
// names are ignored; an empty list selects everything.
func SelectStrategies(names []string, reg *rules.Registry) []strategy.Strategy {
	all := DefaultStrategies(reg)
	if len(names) == 0 {
		return all
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.TrimSpace(strings.ToLower(n))] = true
	}

	var out []strategy.Strategy
	for _, s := range all {
		if wanted[s.Name()] {
			out = append(out, s)
		}
	}
	return out
}

// Optimize runs the pipeline on one prompt. The original text is never
// mutated; a rejected run returns it verbatim.
func (o *Optimizer) Optimize(prompt string) Result {
	originalTokens := o.adapter.CountTokens(prompt)

	text, deltas, applied := o.runPipeline(prompt, o.cfg)
	similarity := semantics.Similarity(prompt, text)
	retried := false

	// The reduction target is advisory. In aggressive mode an unmet target
	// earns one extra token-reduction pass with the relaxed elision set;
	// its output is kept only if the meaning floor still holds.
	if o.cfg.Aggressive && o.cfg.TargetReduction > 0 &&
		similarity >= o.cfg.PreserveMeaningThreshold &&
		reductionPercent(originalTokens, o.adapter.CountTokens(text))/100 < o.cfg.TargetReduction {
		if reducer := o.tokenReduction(); reducer != nil {
			retried = true
			before := o.adapter.CountTokens(text)
			retryText := reducer.Apply(text, o.cfg)

			if rs := semantics.Similarity(prompt, retryText); rs >= o.cfg.PreserveMeaningThreshold {
				text, similarity = retryText, rs
				deltas = append(deltas, StrategyDelta{
					Strategy:     reducer.Name(),
					TokensBefore: before,
					TokensAfter:  o.adapter.CountTokens(text),
				})
			}
		}
	}

	accepted := similarity >= o.cfg.PreserveMeaningThreshold
	if !accepted {
		text = prompt
	}
	optimizedTokens := o.adapter.CountTokens(text)

	return Result{
		OriginalPrompt:     prompt,
		OptimizedPrompt:    text,
		OriginalTokens:     originalTokens,
		OptimizedTokens:    optimizedTokens,
		ReductionPercent:   reductionPercent(originalTokens, optimizedTokens),
		SemanticSimilarity: similarity,
		CostSavings:        o.adapter.Cost(originalTokens-optimizedTokens, 0),
		StrategiesApplied:  applied,
		Deltas:             deltas,
		Accepted:           accepted,
		Retried:            retried,
		Model:              o.adapter.Name(),
	}
}

// BatchOptimize optimizes each prompt independently. Results are returned
// in input order; one prompt's outcome never influences another's.
func (o *Optimizer) BatchOptimize(prompts []string) []Result {
	results := make([]Result, len(prompts))

	var wg sync.WaitGroup
	for i, p := range prompts {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			results[i] = o.Optimize(p)
		}(i, p)
	}
	wg.Wait()

	return results
}

func (o *Optimizer) runPipeline(prompt string, cfg strategy.Config) (string, []StrategyDelta, []string) {
	text := prompt
	deltas := make([]StrategyDelta, 0, len(o.strategies))
	applied := make([]string, 0, len(o.strategies))

	for _, s := range o.strategies {
		before := o.adapter.CountTokens(text)
		text = s.Apply(text, cfg)
		deltas = append(deltas, StrategyDelta{
			Strategy:     s.Name(),
			TokensBefore: before,
			TokensAfter:  o.adapter.CountTokens(text),
		})
		applied = append(applied, s.Name())
	}
	return text, deltas, applied
}

// tokenReduction finds the token-reduction strategy in the pipeline, so
// the retry pass reuses any custom rules it was built with.
func (o *Optimizer) tokenReduction() strategy.Strategy {
	for _, s := range o.strategies {
		if s.Name() == strategy.NameTokenReduction {
			return s
		}
	}
	return nil
}

func reductionPercent(before, after int) float64 {
	if before == 0 {
		return 0
	}
	return float64(before-after) / float64(before) * 100
}
