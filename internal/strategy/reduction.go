package strategy

import (
	"strings"

	"github.com/promptshear/promptshear/internal/rules"
)

// TokenReduction shortens text through ordered substitution: contractions,
// abbreviations (longest-match-first), symbol replacement away from
// sentence starts, article elision, and number-word conversion.
type TokenReduction struct {
	contractions      []rules.Rule
	abbreviations     []rules.Rule
	symbols           []rules.Rule
	numberWords       []rules.Rule
	essentialContexts []string
}

// NewTokenReduction creates the strategy from the builtin tables, plus any
// extra abbreviation or symbol rules from custom rule packs.
func NewTokenReduction(extraAbbreviations, extraSymbols []rules.Rule) *TokenReduction {
	return &TokenReduction{
		contractions:      rules.Contractions(),
		abbreviations:     append(rules.Abbreviations(), extraAbbreviations...),
		symbols:           append(rules.SymbolSubstitutions(), extraSymbols...),
		numberWords:       rules.NumberWords(),
		essentialContexts: rules.EssentialArticleContexts(),
	}
}

// Name implements Strategy.
func (s *TokenReduction) Name() string { return NameTokenReduction }

// Apply implements Strategy.
func (s *TokenReduction) Apply(text string, cfg Config) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	out := rules.ApplyAll(text, s.contractions)
	out = rules.ApplyAll(out, s.abbreviations)
	out = rules.ApplyAll(out, s.symbols)
	out = s.removeArticles(out, cfg.Aggressive)
	out = rules.ApplyAll(out, s.numberWords)
	out = normalizeSpacing(out)
	out = capitalizeSentences(out)
	return strings.TrimSpace(out)
}

// removeArticles elides articles and weak connector words line by line.
// Words inside an essential context ("the most", "a few") are kept.
// Aggressive mode widens the removable set.
func (s *TokenReduction) removeArticles(text string, aggressive bool) string {
	removable := rules.RemovableArticles(aggressive)

	lines := strings.Split(text, "\n")
	for li, line := range lines {
		words := strings.Fields(line)
		kept := make([]string, 0, len(words))

		for i, w := range words {
			if _, ok := removable[cleanWord(w)]; !ok || s.isEssential(words, i) {
				kept = append(kept, w)
				continue
			}
			reattachPunct(kept, w)
		}
		lines[li] = strings.Join(kept, " ")
	}
	return strings.Join(lines, "\n")
}

// isEssential reports whether the removable word at index i heads a phrase
// where it is load-bearing.
func (s *TokenReduction) isEssential(words []string, i int) bool {
	if i+1 >= len(words) {
		return false
	}
	pair := cleanWord(words[i]) + " " + cleanWord(words[i+1])
	for _, ctx := range s.essentialContexts {
		if pair == ctx {
			return true
		}
	}
	return false
}
