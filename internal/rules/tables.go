package rules

import "sort"

// FillerWords returns the set of low-content words removed by semantic
// compression when no guarding context applies.
func FillerWords() map[string]struct{} {
	words := []string{
		"very", "quite", "rather", "really", "actually", "basically",
		"essentially", "obviously", "clearly", "certainly", "definitely",
		"probably", "possibly", "eventually", "naturally", "literally",
		"absolutely", "completely", "totally", "extremely", "incredibly",
		"kindly",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// ImportantFillerContexts guard filler removal: a filler inside one of
// these phrases carries meaning and is kept.
var importantFillerContexts = []string{
	"very important",
	"really need",
	"actually means",
	"absolutely required",
	"clearly labeled",
}

// ImportantFillerContexts returns phrases in which fillers must be kept.
func ImportantFillerContexts() []string {
	return importantFillerContexts
}

// PolitenessWrappers returns rules that strip polite-request framing.
func PolitenessWrappers() []Rule {
	return compileAll([]Rule{
		{Find: `\bplease\s+(?:could|can|would)\s+you\s+(?:please\s+)?`, Replace: "", IsPattern: true},
		{Find: `\b(?:could|can|would)\s+you\s+please\s+`, Replace: "", IsPattern: true},
		{Find: `\bi\s+would\s+(?:really\s+)?(?:like|love)\s+you\s+to\s+`, Replace: "", IsPattern: true},
		{Find: `\bplease\s+`, Replace: "", IsPattern: true},
		{Find: `\bthank you in advance\.?`, Replace: "", IsPattern: true},
	})
}

// RedundantPhrases returns verbose construct -> concise form rules.
func RedundantPhrases() []Rule {
	return compileAll([]Rule{
		{Find: "in order to", Replace: "to", WholeWord: true},
		{Find: "for the purpose of", Replace: "to", WholeWord: true},
		{Find: "due to the fact that", Replace: "because", WholeWord: true},
		{Find: "in spite of the fact that", Replace: "although", WholeWord: true},
		{Find: "at this point in time", Replace: "now", WholeWord: true},
		{Find: "a large number of", Replace: "many", WholeWord: true},
		{Find: "a small number of", Replace: "few", WholeWord: true},
		{Find: `\bplease note that\s*`, Replace: "", IsPattern: true},
		{Find: `\bit should be noted that\s*`, Replace: "", IsPattern: true},
		{Find: `\bit is important to note that\s*`, Replace: "", IsPattern: true},
		{Find: `\bas you can see,?\s*`, Replace: "", IsPattern: true},
		{Find: `\bas mentioned (?:before|above|earlier),?\s*`, Replace: "", IsPattern: true},
	})
}

// Simplifications returns nominalization and passive-construct rules.
func Simplifications() []Rule {
	return compileAll([]Rule{
		{Find: "it is recommended that", Replace: "recommend", WholeWord: true},
		{Find: "it is suggested that", Replace: "suggest", WholeWord: true},
		{Find: "make a decision", Replace: "decide", WholeWord: true},
		{Find: "give consideration to", Replace: "consider", WholeWord: true},
		{Find: "make an assumption", Replace: "assume", WholeWord: true},
		{Find: "conduct an analysis", Replace: "analyze", WholeWord: true},
		{Find: `there are many (.+?) that`, Replace: "many $1", IsPattern: true},
		{Find: `there is a (.+?) that`, Replace: "a $1", IsPattern: true},
	})
}

// Abbreviations returns the full-form -> abbreviation table, ordered
// longest-match-first so substrings never clobber longer forms.
func Abbreviations() []Rule {
	table := map[string]string{
		"information":    "info",
		"maximum":        "max",
		"minimum":        "min",
		"administration": "admin",
		"application":    "app",
		"documentation":  "docs",
		"configuration":  "config",
		"organization":   "org",
		"department":     "dept",
		"management":     "mgmt",
		"development":    "dev",
		"environment":    "env",
		"specification":  "spec",
		"description":    "desc",
		"reference":      "ref",
		"example":        "ex",
		"without":        "w/o",
		"database":       "db",
		"function":       "func",
		"variable":       "var",
		"parameter":      "param",
		"algorithm":      "algo",
		"repository":     "repo",
	}

	rules := make([]Rule, 0, len(table))
	for find, replace := range table {
		rules = append(rules, Rule{Find: find, Replace: replace, WholeWord: true})
	}
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].Find) != len(rules[j].Find) {
			return len(rules[i].Find) > len(rules[j].Find)
		}
		return rules[i].Find < rules[j].Find
	})
	return compileAll(rules)
}

// Contractions returns negation and auxiliary contraction rules.
func Contractions() []Rule {
	return compileAll([]Rule{
		{Find: "do not", Replace: "don't", WholeWord: true},
		{Find: "does not", Replace: "doesn't", WholeWord: true},
		{Find: "did not", Replace: "didn't", WholeWord: true},
		{Find: "will not", Replace: "won't", WholeWord: true},
		{Find: "would not", Replace: "wouldn't", WholeWord: true},
		{Find: "could not", Replace: "couldn't", WholeWord: true},
		{Find: "should not", Replace: "shouldn't", WholeWord: true},
		{Find: "cannot", Replace: "can't", WholeWord: true},
		{Find: "is not", Replace: "isn't", WholeWord: true},
		{Find: "are not", Replace: "aren't", WholeWord: true},
		{Find: "was not", Replace: "wasn't", WholeWord: true},
		{Find: "were not", Replace: "weren't", WholeWord: true},
		{Find: "have not", Replace: "haven't", WholeWord: true},
		{Find: "has not", Replace: "hasn't", WholeWord: true},
		{Find: "had not", Replace: "hadn't", WholeWord: true},
		{Find: "it is", Replace: "it's", WholeWord: true, SkipSentenceStart: true},
		{Find: "they are", Replace: "they're", WholeWord: true, SkipSentenceStart: true},
		{Find: "we are", Replace: "we're", WholeWord: true, SkipSentenceStart: true},
		{Find: "you are", Replace: "you're", WholeWord: true, SkipSentenceStart: true},
	})
}

// SymbolSubstitutions returns connector word -> symbol rules. All skip
// sentence starts to avoid breaking capitalization-sensitive parsing.
func SymbolSubstitutions() []Rule {
	return compileAll([]Rule{
		{Find: "and", Replace: "&", WholeWord: true, SkipSentenceStart: true},
		{Find: "greater than", Replace: ">", WholeWord: true, SkipSentenceStart: true},
		{Find: "less than", Replace: "<", WholeWord: true, SkipSentenceStart: true},
		{Find: "equals", Replace: "=", WholeWord: true, SkipSentenceStart: true},
		{Find: "percent", Replace: "%", WholeWord: true, SkipSentenceStart: true},
		{Find: "versus", Replace: "vs", WholeWord: true, SkipSentenceStart: true},
	})
}

// NumberWords returns spelled-out number -> digit rules. Ordered longest
// first so "seventeen" is never matched as "seven" + "teen".
func NumberWords() []Rule {
	table := map[string]string{
		"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
		"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
		"ten": "10", "eleven": "11", "twelve": "12", "thirteen": "13",
		"fourteen": "14", "fifteen": "15", "sixteen": "16", "seventeen": "17",
		"eighteen": "18", "nineteen": "19", "twenty": "20",
	}

	rules := make([]Rule, 0, len(table))
	for find, replace := range table {
		rules = append(rules, Rule{Find: find, Replace: replace, WholeWord: true})
	}
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].Find) != len(rules[j].Find) {
			return len(rules[i].Find) > len(rules[j].Find)
		}
		return rules[i].Find < rules[j].Find
	})
	return compileAll(rules)
}

// RemovableArticles returns the articles and weak prepositions elided by
// token reduction. Aggressive mode widens the set.
func RemovableArticles(aggressive bool) map[string]struct{} {
	words := []string{"a", "an", "the", "about"}
	if aggressive {
		words = append(words, "of", "in", "on", "at", "by", "for", "from",
			"up", "also", "too", "just", "only", "simply")
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// EssentialArticleContexts guard article elision: matches mean the article
// is load-bearing and must be kept.
func EssentialArticleContexts() []string {
	return []string{
		"the most", "the best", "the worst", "the first", "the last", "the same",
		"a lot", "a few", "a little",
		"an example", "an instance",
	}
}

func compileAll(rules []Rule) []Rule {
	for i := range rules {
		// Builtin patterns are static; a compile failure here is a
		// programming error surfaced on first use, not at runtime.
		_ = rules[i].Compile()
	}
	return rules
}
