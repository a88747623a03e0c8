package model

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/promptshear/promptshear/internal/strategy"
)

// claudeAdapter serves the Claude model family. Anthropic publishes no
// tokenizer, so counting is a deterministic estimate tuned to Claude's
// documented characteristics.
type claudeAdapter struct {
	spec Spec
}

func newClaudeAdapter(spec Spec) *claudeAdapter {
	return &claudeAdapter{spec: spec}
}

func (a *claudeAdapter) Name() string { return a.spec.Name }
func (a *claudeAdapter) Spec() Spec   { return a.spec }

var (
	punctuation = regexp.MustCompile(`[^\w\s]`)
	xmlTag      = regexp.MustCompile(`<[^>]+>`)
)

// CountTokens estimates Claude tokens: ~4 characters per token, adjusted
// for long words, punctuation, and XML tags. Empty text is 0.
func (a *claudeAdapter) CountTokens(text string) int {
	if text == "" {
		return 0
	}

	base := float64(utf8.RuneCountInString(text)) / 4

	longWords := 0
	for _, w := range strings.Fields(text) {
		if utf8.RuneCountInString(w) > 10 {
			longWords++
		}
	}

	punctCount := len(punctuation.FindAllString(text, -1))
	tagCount := len(xmlTag.FindAllString(text, -1))

	estimate := base + float64(longWords)*0.3 + float64(punctCount)*0.25 + float64(tagCount)*0.5

	if estimate < 1 {
		return 1
	}
	return int(estimate)
}

func (a *claudeAdapter) Cost(inputTokens, outputTokens int) float64 {
	return cost(a.spec, inputTokens, outputTokens)
}

// OptimizeForModel wraps classified prompt sections in XML-style tags,
// which Claude models parse reliably. Text that already carries tags is
// left alone.
func (a *claudeAdapter) OptimizeForModel(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.Contains(trimmed, "<") {
		return trimmed
	}

	paragraphs := splitParagraphs(trimmed)
	if len(paragraphs) < 2 {
		return trimmed
	}

	var sb strings.Builder
	for i, p := range paragraphs {
		cat := strategy.Classify(p)
		if cat == strategy.CategoryUnclassified {
			sb.WriteString(p)
		} else {
			fmt.Fprintf(&sb, "<%s>\n%s\n</%s>", cat, p, cat)
		}
		if i < len(paragraphs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func (a *claudeAdapter) SuggestOptimizations(text string) Report {
	report := buildReport(a.spec, a.CountTokens(text))

	// Claude-specific: multi-section prompts without tags benefit from
	// XML structure.
	if len(splitParagraphs(text)) >= 2 && !strings.Contains(text, "<") {
		report.Suggestions = append(report.Suggestions, Suggestion{
			Severity: SeverityLow,
			Message:  "multi-section prompt has no XML tags; tagged sections parse more reliably",
		})
	}

	return report
}

func (a *claudeAdapter) CanFitInContext(text string, reserveTokens int) bool {
	return canFit(a.spec, a.CountTokens(text), reserveTokens)
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
