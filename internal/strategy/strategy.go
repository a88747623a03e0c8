// Package strategy implements the deterministic prompt transformation
// strategies: semantic compression, token reduction, and structural
// optimization. Strategies are pure functions of (text, config) with no
// hidden state; they never fail on malformed input.
package strategy

import (
	"regexp"
	"strings"
	"unicode"
)

// Config controls strategy behavior for a single optimization run.
// Read-only during the run.
type Config struct {
	// Aggressive relaxes elision guards for deeper reduction.
	Aggressive bool

	// TargetReduction is the advisory token reduction target in [0,1].
	TargetReduction float64

	// PreserveStructure skips structural reordering entirely.
	PreserveStructure bool

	// PreserveMeaningThreshold is the minimum similarity between original
	// and optimized text for the result to be accepted.
	PreserveMeaningThreshold float64

	// CustomParams carries adapter- and strategy-specific flags
	// (e.g. "tagged-sections" for Claude-style output).
	CustomParams map[string]string
}

// DefaultMeaningThreshold is the similarity floor below which an
// optimization is rejected.
const DefaultMeaningThreshold = 0.90

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		PreserveMeaningThreshold: DefaultMeaningThreshold,
	}
}

// Strategy is a pure text-to-text transformation.
type Strategy interface {
	// Name returns the strategy's stable identifier.
	Name() string

	// Apply transforms text. Empty input produces empty output;
	// malformed text is transformed best-effort, never an error.
	Apply(text string, cfg Config) string
}

// Strategy name constants, also the CLI-facing identifiers.
const (
	NameSemanticCompression    = "semantic-compression"
	NameTokenReduction         = "token-reduction"
	NameStructuralOptimization = "structural-optimization"
)

var (
	multiSpace     = regexp.MustCompile(`[ \t]{2,}`)
	spaceBeforePunct = regexp.MustCompile(`[ \t]+([,.;:!?])`)
	repeatedPeriods  = regexp.MustCompile(`\.{2,}`)
	repeatedCommas   = regexp.MustCompile(`,{2,}`)
)

// normalizeSpacing collapses runs of spaces and fixes spacing around
// punctuation. Newlines are preserved.
func normalizeSpacing(text string) string {
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = multiSpace.ReplaceAllString(text, " ")
	text = repeatedPeriods.ReplaceAllString(text, ".")
	text = repeatedCommas.ReplaceAllString(text, ",")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// capitalizeSentences uppercases the first letter of each sentence.
// Transformations that strip sentence-leading words rely on this to keep
// the output well-formed.
func capitalizeSentences(text string) string {
	runes := []rune(text)
	atStart := true
	for i, r := range runes {
		switch {
		case atStart && unicode.IsLetter(r):
			runes[i] = unicode.ToUpper(r)
			atStart = false
		case r == '.' || r == '!' || r == '?' || r == '\n':
			atStart = true
		case !unicode.IsSpace(r):
			atStart = false
		}
	}
	return string(runes)
}

// splitSentences splits a line into sentence units, keeping each unit's
// trailing punctuation.
func splitSentences(line string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range line {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// cleanWord lowercases a word and strips surrounding punctuation for
// set membership checks.
func cleanWord(w string) string {
	return strings.ToLower(strings.Trim(w, `.,;:!?"'()[]{}`))
}

// trailingPunct returns the trailing sentence punctuation of a word, if any.
func trailingPunct(w string) string {
	trimmed := strings.TrimRight(w, `.,;:!?`)
	return w[len(trimmed):]
}

// reattachPunct moves sentence-ending punctuation from a dropped word onto
// the previous kept word so sentence boundaries survive elision. Commas and
// other soft punctuation are discarded with the word.
func reattachPunct(kept []string, dropped string) {
	punct := trailingPunct(dropped)
	if !strings.ContainsAny(punct, ".!?") {
		return
	}
	if len(kept) == 0 || trailingPunct(kept[len(kept)-1]) != "" {
		return
	}
	ender := punct[strings.IndexAny(punct, ".!?"):]
	kept[len(kept)-1] += strings.Map(func(r rune) rune {
		if r == '.' || r == '!' || r == '?' {
			return r
		}
		return -1
	}, ender)
}
