package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptshear/promptshear/internal/rules"
)

func newTokenReduction() *TokenReduction {
	return NewTokenReduction(nil, nil)
}

func TestTokenReduction_AbbreviatesKnownForms(t *testing.T) {
	s := newTokenReduction()

	got := s.Apply("The maximum information about the configuration is needed", DefaultConfig())

	assert.Contains(t, got, "Max")
	assert.Contains(t, got, "info")
	assert.Contains(t, got, "config")
}

func TestTokenReduction_ContractsNegations(t *testing.T) {
	s := newTokenReduction()

	got := s.Apply("You should not repeat yourself and do not guess", DefaultConfig())

	assert.Contains(t, got, "shouldn't")
	assert.Contains(t, got, "don't")
}

func TestTokenReduction_SymbolsNotAtSentenceStart(t *testing.T) {
	s := newTokenReduction()

	got := s.Apply("And remember: review tests and docs.", DefaultConfig())

	assert.True(t, strings.HasPrefix(got, "And "), "sentence-leading And must survive: %q", got)
	assert.Contains(t, got, "tests & docs")
}

func TestTokenReduction_LongestMatchAvoidsPartialWordCorruption(t *testing.T) {
	s := newTokenReduction()

	got := s.Apply("Check configurations carefully", DefaultConfig())

	// "configurations" has no whole-word match for "configuration"
	assert.Contains(t, got, "configurations")
}

func TestTokenReduction_KeepsEssentialArticles(t *testing.T) {
	s := newTokenReduction()

	got := s.Apply("Pick the most relevant section", DefaultConfig())
	assert.Contains(t, got, "the most")
}

func TestTokenReduction_AggressiveRemovesMore(t *testing.T) {
	s := newTokenReduction()
	input := "Look for patterns in the data and also check for outliers in the results"

	normal := s.Apply(input, Config{})
	aggressive := s.Apply(input, Config{Aggressive: true})

	assert.LessOrEqual(t, len(strings.Fields(aggressive)), len(strings.Fields(normal)))
}

func TestTokenReduction_ConvertsNumberWords(t *testing.T) {
	s := newTokenReduction()

	got := s.Apply("Give me three examples with seventeen rows each", DefaultConfig())

	assert.Contains(t, got, "3")
	assert.Contains(t, got, "17")
}

func TestTokenReduction_EmptyInputEmptyOutput(t *testing.T) {
	s := newTokenReduction()
	assert.Equal(t, "", s.Apply("", DefaultConfig()))
	assert.Equal(t, "", s.Apply("\t\n", DefaultConfig()))
}

func TestTokenReduction_CustomPackRulesApply(t *testing.T) {
	extra := rules.Rule{Find: "kubernetes", Replace: "k8s", WholeWord: true}
	require.NoError(t, extra.Compile())
	s := NewTokenReduction([]rules.Rule{extra}, nil)

	got := s.Apply("Deploy the service to kubernetes", DefaultConfig())
	assert.Contains(t, got, "k8s")
}

func TestTokenReduction_Deterministic(t *testing.T) {
	s := newTokenReduction()
	input := "The development environment configuration must not change"

	first := s.Apply(input, DefaultConfig())
	second := s.Apply(input, DefaultConfig())
	assert.Equal(t, first, second)
}
