// Package model provides model-family adapters for token counting, cost
// estimation, and model-specific prompt formatting.
package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/promptshear/promptshear/internal/errors"
)

// Spec describes a supported model: context window and static prices.
type Spec struct {
	Name             string  `json:"name"`
	Family           string  `json:"family"` // "openai" or "claude"
	ContextWindow    int     `json:"context_window"`
	InputPricePer1K  float64 `json:"input_price_per_1k"`  // USD per 1000 input tokens
	OutputPricePer1K float64 `json:"output_price_per_1k"` // USD per 1000 output tokens
	Encoding         string  `json:"encoding,omitempty"`  // tiktoken encoding name, "" when none public
}

// Severity grades an optimization suggestion.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Suggestion is a single model-specific optimization hint.
type Suggestion struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report summarizes a prompt's footprint for a model.
type Report struct {
	CurrentTokens       int          `json:"current_tokens"`
	ContextUsagePercent float64      `json:"context_usage_percent"`
	EstimatedCost       float64      `json:"estimated_cost"`
	Suggestions         []Suggestion `json:"suggestions"`
}

// Adapter supplies model-family-specific token counting, cost, and
// formatting behavior.
type Adapter interface {
	// Name returns the concrete model name the adapter was built for.
	Name() string

	// Spec returns the model's static parameters.
	Spec() Spec

	// CountTokens estimates tokens for text under this model.
	CountTokens(text string) int

	// Cost returns the USD cost for the given token counts.
	Cost(inputTokens, outputTokens int) float64

	// OptimizeForModel applies family-specific formatting tweaks.
	OptimizeForModel(text string) string

	// SuggestOptimizations analyzes a prompt's footprint.
	SuggestOptimizations(text string) Report

	// CanFitInContext reports whether text plus a response reserve fits
	// the model's context window.
	CanFitInContext(text string, reserveTokens int) bool
}

const (
	familyOpenAI = "openai"
	familyClaude = "claude"
)

// specs is the static model table. Prices are USD per 1K tokens.
var specs = map[string]Spec{
	"gpt-3.5-turbo": {Name: "gpt-3.5-turbo", Family: familyOpenAI, ContextWindow: 16385, InputPricePer1K: 0.0015, OutputPricePer1K: 0.002, Encoding: "cl100k_base"},
	"gpt-4":         {Name: "gpt-4", Family: familyOpenAI, ContextWindow: 8192, InputPricePer1K: 0.03, OutputPricePer1K: 0.06, Encoding: "cl100k_base"},
	"gpt-4-turbo":   {Name: "gpt-4-turbo", Family: familyOpenAI, ContextWindow: 128000, InputPricePer1K: 0.01, OutputPricePer1K: 0.03, Encoding: "cl100k_base"},
	"gpt-4o":        {Name: "gpt-4o", Family: familyOpenAI, ContextWindow: 128000, InputPricePer1K: 0.005, OutputPricePer1K: 0.015, Encoding: "o200k_base"},
	"gpt-4o-mini":   {Name: "gpt-4o-mini", Family: familyOpenAI, ContextWindow: 128000, InputPricePer1K: 0.00015, OutputPricePer1K: 0.0006, Encoding: "o200k_base"},

	"claude-3-haiku":    {Name: "claude-3-haiku", Family: familyClaude, ContextWindow: 200000, InputPricePer1K: 0.00025, OutputPricePer1K: 0.00125},
	"claude-3-sonnet":   {Name: "claude-3-sonnet", Family: familyClaude, ContextWindow: 200000, InputPricePer1K: 0.003, OutputPricePer1K: 0.015},
	"claude-3-opus":     {Name: "claude-3-opus", Family: familyClaude, ContextWindow: 200000, InputPricePer1K: 0.015, OutputPricePer1K: 0.075},
	"claude-3-5-sonnet": {Name: "claude-3-5-sonnet", Family: familyClaude, ContextWindow: 200000, InputPricePer1K: 0.003, OutputPricePer1K: 0.015},
}

// Supported returns all known model specs, sorted by name.
func Supported() []Spec {
	out := make([]Spec, 0, len(specs))
	for _, s := range specs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SupportedNames returns all known model names, sorted.
func SupportedNames() []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the adapter for a model name. Unknown names return a
// descriptive UnknownModel error, never a silent substitute.
func New(name string) (Adapter, error) {
	spec, ok := specs[name]
	if !ok {
		// Allow dated variants like claude-3-5-sonnet-20241022 to resolve
		// to their base spec.
		base, baseOK := matchPrefix(name)
		if !baseOK {
			return nil, errors.UnknownModel(name, SupportedNames())
		}
		spec = base
		spec.Name = name
	}

	switch spec.Family {
	case familyOpenAI:
		return newOpenAIAdapter(spec), nil
	case familyClaude:
		return newClaudeAdapter(spec), nil
	default:
		return nil, errors.UnknownModel(name, SupportedNames())
	}
}

func matchPrefix(name string) (Spec, bool) {
	var best Spec
	found := false
	for known, spec := range specs {
		if strings.HasPrefix(name, known) && (!found || len(known) > len(best.Name)) {
			best = spec
			found = true
		}
	}
	return best, found
}

// cost computes token cost against a spec's static prices.
func cost(spec Spec, inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1000*spec.InputPricePer1K +
		float64(outputTokens)/1000*spec.OutputPricePer1K
}

// canFit checks a token count plus reserve against the context window.
func canFit(spec Spec, tokenCount, reserveTokens int) bool {
	return tokenCount+reserveTokens <= spec.ContextWindow
}

// contextWarnThreshold is the usage fraction above which a high-severity
// warning is suggested.
const contextWarnThreshold = 0.8

// costWarnThreshold is the single-call USD cost above which optimization
// is suggested.
const costWarnThreshold = 0.01

// buildReport assembles the shared part of SuggestOptimizations.
func buildReport(spec Spec, tokenCount int) Report {
	usage := float64(tokenCount) / float64(spec.ContextWindow)
	estimatedCost := cost(spec, tokenCount, 0)

	report := Report{
		CurrentTokens:       tokenCount,
		ContextUsagePercent: usage * 100,
		EstimatedCost:       estimatedCost,
		Suggestions:         []Suggestion{},
	}

	if usage > contextWarnThreshold {
		report.Suggestions = append(report.Suggestions, Suggestion{
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("prompt uses %.0f%% of the %s context window", usage*100, spec.Name),
		})
	}
	if estimatedCost > costWarnThreshold {
		report.Suggestions = append(report.Suggestions, Suggestion{
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("estimated cost $%.4f per call; consider token reduction", estimatedCost),
		})
	}

	return report
}
