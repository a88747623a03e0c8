package model

import (
	"regexp"
	"strings"

	"github.com/promptshear/promptshear/internal/tokens"
)

// sharedEstimator memoizes tokenizer loads across adapters so each
// encoding is loaded at most once per process.
var sharedEstimator = tokens.NewEstimator()

// openAIAdapter serves the GPT model family. Token counting is exact via
// tiktoken when the encoding is loadable.
type openAIAdapter struct {
	spec      Spec
	estimator *tokens.Estimator
}

func newOpenAIAdapter(spec Spec) *openAIAdapter {
	return &openAIAdapter{
		spec:      spec,
		estimator: sharedEstimator,
	}
}

func (a *openAIAdapter) Name() string { return a.spec.Name }
func (a *openAIAdapter) Spec() Spec   { return a.spec }

func (a *openAIAdapter) CountTokens(text string) int {
	return a.estimator.Estimate(text, a.spec.Name)
}

func (a *openAIAdapter) Cost(inputTokens, outputTokens int) float64 {
	return cost(a.spec, inputTokens, outputTokens)
}

var (
	// specialToken matches OpenAI chat-format control sequences that should
	// never appear in user prompts.
	specialToken = regexp.MustCompile(`<\|[a-z_]+\|>`)
	politePrefix = regexp.MustCompile(`(?i)\b(?:please|kindly)\s+(?:could you|would you|can you)\s+`)
	indirectAsk  = regexp.MustCompile(`(?i)\bI would like you to\s+`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// OptimizeForModel strips special control tokens and indirect instruction
// prefixes, which GPT models handle worse than direct imperatives. No
// structural tags are added; GPT takes plain text.
func (a *openAIAdapter) OptimizeForModel(text string) string {
	out := specialToken.ReplaceAllString(text, "")
	out = politePrefix.ReplaceAllString(out, "")
	out = indirectAsk.ReplaceAllString(out, "")

	// Collapse 3+ newlines so sections stay visually separated without
	// wasting tokens on blank runs.
	out = blankRuns.ReplaceAllString(out, "\n\n")

	return strings.TrimSpace(out)
}

func (a *openAIAdapter) SuggestOptimizations(text string) Report {
	return buildReport(a.spec, a.CountTokens(text))
}

func (a *openAIAdapter) CanFitInContext(text string, reserveTokens int) bool {
	return canFit(a.spec, a.CountTokens(text), reserveTokens)
}
