// Package rules defines the substitution rules applied by optimization
// strategies: the rule model, the builtin tables, custom rule packs, and a
// registry that merges packs from multiple sources.
package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a single pattern -> replacement substitution.
type Rule struct {
	Find    string `yaml:"find"`
	Replace string `yaml:"replace"`

	// WholeWord anchors the match on word boundaries so partial words are
	// never corrupted ("maximum" matches, "maximums" does not contain a
	// boundary-clean match of "maximum" + suffix).
	WholeWord bool `yaml:"whole_word,omitempty"`

	// SkipSentenceStart leaves matches at the start of a sentence
	// untouched, for substitutions that would break capitalization-
	// sensitive parsing downstream (e.g. "and" -> "&").
	SkipSentenceStart bool `yaml:"skip_sentence_start,omitempty"`

	// MatchCase disables the default case-insensitive matching.
	MatchCase bool `yaml:"match_case,omitempty"`

	// IsPattern treats Find as a regular expression and Replace as an
	// expansion template ($1 capture references allowed).
	IsPattern bool `yaml:"pattern,omitempty"`

	re *regexp.Regexp
}

// Compile builds the rule's matcher. Called lazily by Apply; exposed so
// pack loading can reject bad patterns up front.
func (r *Rule) Compile() error {
	if r.Find == "" {
		return fmt.Errorf("rule has empty find")
	}

	expr := r.Find
	if !r.IsPattern {
		expr = regexp.QuoteMeta(expr)
	}
	if r.WholeWord {
		expr = `\b` + expr + `\b`
	}
	if !r.MatchCase {
		expr = `(?i)` + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("invalid rule pattern %q: %w", r.Find, err)
	}
	r.re = re
	return nil
}

// Apply performs the substitution on text. A rule that fails to compile
// returns the text unchanged; substitutions never error.
func (r *Rule) Apply(text string) string {
	if r.re == nil {
		if err := r.Compile(); err != nil {
			return text
		}
	}

	if !r.SkipSentenceStart {
		return r.re.ReplaceAllStringFunc(text, r.expand)
	}

	matches := r.re.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		if IsSentenceStart(text, m[0]) {
			continue
		}
		sb.WriteString(text[last:m[0]])
		sb.WriteString(r.expand(text[m[0]:m[1]]))
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// expand produces the replacement for a single match. Literal replacements
// preserve the leading capitalization of the matched text so "Maximum"
// becomes "Max", not "max".
func (r *Rule) expand(match string) string {
	if r.IsPattern {
		return r.re.ReplaceAllString(match, r.Replace)
	}
	return matchLeadingCase(match, r.Replace)
}

// ApplyAll runs every rule over text in order.
func ApplyAll(text string, rules []Rule) string {
	for i := range rules {
		text = rules[i].Apply(text)
	}
	return text
}

// IsSentenceStart reports whether idx is the first non-space position of
// the text or of a new sentence (after ., !, ? or a newline).
func IsSentenceStart(text string, idx int) bool {
	for i := idx - 1; i >= 0; i-- {
		c := text[i]
		switch {
		case c == ' ' || c == '\t':
			continue
		case c == '.' || c == '!' || c == '?' || c == '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// matchLeadingCase copies the leading capitalization of src onto repl.
func matchLeadingCase(src, repl string) string {
	if repl == "" || src == "" {
		return repl
	}
	srcFirst, _ := utf8.DecodeRuneInString(src)
	replFirst, size := utf8.DecodeRuneInString(repl)
	if unicode.IsUpper(srcFirst) && unicode.IsLower(replFirst) {
		return string(unicode.ToUpper(replFirst)) + repl[size:]
	}
	return repl
}
