package strategy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category classifies a prompt unit by its role.
type Category string

const (
	CategoryContext      Category = "context"
	CategoryInstructions Category = "instructions"
	CategoryConstraints  Category = "constraints"
	CategoryExamples     Category = "examples"
	CategoryOutput       Category = "output"
	CategoryUnclassified Category = "unclassified"
)

// CategoryOrder is the fixed emission priority: background first, then what
// to do, what not to do, examples, and finally output shape.
var CategoryOrder = []Category{
	CategoryContext,
	CategoryInstructions,
	CategoryConstraints,
	CategoryExamples,
	CategoryOutput,
	CategoryUnclassified,
}

var categoryKeywords = map[Category][]string{
	CategoryContext: {
		"background", "context", "given that", "you are", "we are",
		"currently", "scenario", "assume", "working on",
	},
	CategoryInstructions: {
		"analyze", "write", "create", "generate", "explain", "summarize",
		"list", "translate", "implement", "describe", "provide", "review",
		"your task", "extract", "classify",
	},
	CategoryConstraints: {
		"must", "must not", "should not", "do not", "don't", "avoid",
		"never", "limit", "at most", "no more than", "only use", "constraint",
	},
	CategoryExamples: {
		"example", "for instance", "e.g.", "such as", "sample",
	},
	CategoryOutput: {
		"output", "format", "respond", "return", "answer", "json",
		"markdown", "reply",
	},
}

var titleCaser = cases.Title(language.English)

// Classify assigns a unit to the category whose keywords score highest.
// Ties resolve to the earlier category in CategoryOrder; no hits means
// Unclassified.
func Classify(unit string) Category {
	lower := strings.ToLower(unit)

	best := CategoryUnclassified
	bestScore := 0
	for _, cat := range CategoryOrder {
		score := 0
		for _, kw := range categoryKeywords[cat] {
			score += strings.Count(lower, kw)
		}
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}
	return best
}

// SectionLabel returns the display header for a category ("Output:").
func SectionLabel(cat Category) string {
	return titleCaser.String(string(cat)) + ":"
}

// StructuralOptimization reorders prompt units into a fixed category
// priority, merges adjacent units of the same category, and drops
// exact-duplicate instructions. May lengthen the text when it adds
// section headers.
type StructuralOptimization struct{}

// NewStructuralOptimization creates the strategy.
func NewStructuralOptimization() *StructuralOptimization {
	return &StructuralOptimization{}
}

// Name implements Strategy.
func (s *StructuralOptimization) Name() string { return NameStructuralOptimization }

// Apply implements Strategy. When cfg.PreserveStructure is set the text
// passes through untouched.
func (s *StructuralOptimization) Apply(text string, cfg Config) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if cfg.PreserveStructure {
		return text
	}

	units := splitUnits(text)
	if len(units) < 2 {
		return strings.TrimSpace(text)
	}

	grouped := make(map[Category][]string)
	seenInstructions := make(map[string]bool)

	for _, unit := range units {
		cat := Classify(unit)

		if cat == CategoryInstructions {
			key := strings.ToLower(strings.TrimSpace(unit))
			if seenInstructions[key] {
				continue
			}
			seenInstructions[key] = true
		}

		grouped[cat] = append(grouped[cat], unit)
	}

	populated := 0
	for _, cat := range CategoryOrder {
		if len(grouped[cat]) > 0 {
			populated++
		}
	}
	withHeaders := populated >= 3

	var sections []string
	for _, cat := range CategoryOrder {
		unitsInCat := grouped[cat]
		if len(unitsInCat) == 0 {
			continue
		}

		// Adjacent units of the same category merge into one section.
		body := strings.Join(unitsInCat, " ")
		if withHeaders && cat != CategoryUnclassified {
			sections = append(sections, SectionLabel(cat)+"\n"+body)
		} else {
			sections = append(sections, body)
		}
	}

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}

// splitUnits breaks text into classification units: paragraphs when the
// text has blank-line structure, sentences otherwise.
func splitUnits(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	if len(paragraphs) > 1 {
		return paragraphs
	}

	var units []string
	for _, line := range strings.Split(text, "\n") {
		units = append(units, splitSentences(line)...)
	}
	return units
}
