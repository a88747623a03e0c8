package strategy

import (
	"strings"

	"github.com/promptshear/promptshear/internal/rules"
	"github.com/promptshear/promptshear/internal/semantics"
)

// duplicateSentenceThreshold is the word-overlap score above which a
// sentence is considered a restatement of an earlier one.
const duplicateSentenceThreshold = 0.7

// SemanticCompression removes filler words, politeness wrappers, and
// redundant clauses while leaving unmatched sentences untouched.
type SemanticCompression struct {
	fillers         map[string]struct{}
	fillerContexts  []string
	politeness      []rules.Rule
	phrases         []rules.Rule
	simplifications []rules.Rule
}

// NewSemanticCompression creates the strategy from the builtin tables,
// plus any extra phrase rules (e.g. from custom rule packs).
func NewSemanticCompression(extraPhrases ...rules.Rule) *SemanticCompression {
	return &SemanticCompression{
		fillers:         rules.FillerWords(),
		fillerContexts:  rules.ImportantFillerContexts(),
		politeness:      rules.PolitenessWrappers(),
		phrases:         append(rules.RedundantPhrases(), extraPhrases...),
		simplifications: rules.Simplifications(),
	}
}

// Name implements Strategy.
func (s *SemanticCompression) Name() string { return NameSemanticCompression }

// Apply implements Strategy.
func (s *SemanticCompression) Apply(text string, cfg Config) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	out := rules.ApplyAll(text, s.politeness)
	out = s.removeFillers(out)
	out = rules.ApplyAll(out, s.phrases)
	out = rules.ApplyAll(out, s.simplifications)
	out = s.dropNearDuplicateSentences(out)
	out = normalizeSpacing(out)
	out = capitalizeSentences(out)
	return strings.TrimSpace(out)
}

// removeFillers drops filler words line by line, keeping fillers that sit
// inside a meaning-bearing context ("very important", "really need").
// Sentence punctuation carried by a dropped word is reattached to the
// previous word so sentence boundaries survive.
func (s *SemanticCompression) removeFillers(text string) string {
	lines := strings.Split(text, "\n")
	for li, line := range lines {
		words := strings.Fields(line)
		kept := make([]string, 0, len(words))

		for i, w := range words {
			if _, isFiller := s.fillers[cleanWord(w)]; !isFiller || s.isImportantContext(words, i) {
				kept = append(kept, w)
				continue
			}
			reattachPunct(kept, w)
		}
		lines[li] = strings.Join(kept, " ")
	}
	return strings.Join(lines, "\n")
}

// isImportantContext reports whether the word at index i participates in a
// phrase where the filler carries meaning.
func (s *SemanticCompression) isImportantContext(words []string, i int) bool {
	lo := i - 2
	if lo < 0 {
		lo = 0
	}
	hi := i + 3
	if hi > len(words) {
		hi = len(words)
	}

	window := make([]string, 0, hi-lo)
	for _, w := range words[lo:hi] {
		window = append(window, cleanWord(w))
	}
	context := strings.Join(window, " ")

	for _, phrase := range s.fillerContexts {
		if strings.Contains(context, phrase) {
			return true
		}
	}
	return false
}

// dropNearDuplicateSentences removes sentences that restate an earlier
// sentence. Duplicate detection spans lines; line structure is preserved.
func (s *SemanticCompression) dropNearDuplicateSentences(text string) string {
	var kept []string // all kept sentences, across lines

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		sentences := splitSentences(line)
		lineKept := make([]string, 0, len(sentences))

		for _, sentence := range sentences {
			if isNearDuplicate(sentence, kept) {
				continue
			}
			kept = append(kept, sentence)
			lineKept = append(lineKept, sentence)
		}

		if len(sentences) == 0 {
			out = append(out, line) // blank or whitespace-only line, keep as-is
			continue
		}
		if len(lineKept) > 0 {
			out = append(out, strings.Join(lineKept, " "))
		}
	}
	return strings.Join(out, "\n")
}

func isNearDuplicate(sentence string, kept []string) bool {
	words := strings.Fields(sentence)
	if len(words) < 3 {
		return false // too short to judge
	}
	for _, existing := range kept {
		if semantics.Overlap(sentence, existing) > duplicateSentenceThreshold {
			return true
		}
	}
	return false
}
