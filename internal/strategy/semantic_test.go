package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSemanticCompression_RemovesPolitenessAndFillers(t *testing.T) {
	s := NewSemanticCompression()

	got := s.Apply("Please could you very kindly analyze this text", DefaultConfig())
	assert.Equal(t, "Analyze this text", got)
}

func TestSemanticCompression_LeavesUnmatchedSentencesAlone(t *testing.T) {
	s := NewSemanticCompression()

	input := "Summarize the attached report."
	assert.Equal(t, input, s.Apply(input, DefaultConfig()))
}

func TestSemanticCompression_IdempotentOnOwnOutput(t *testing.T) {
	s := NewSemanticCompression()
	cfg := DefaultConfig()

	inputs := []string{
		"Please could you very kindly analyze this text",
		"It is important to note that you should basically just review the code. Really.",
		"Write a summary. Actually, write a very short summary.",
	}

	for _, input := range inputs {
		once := s.Apply(input, cfg)
		twice := s.Apply(once, cfg)
		assert.Equal(t, once, twice, "second application must not change %q further", input)
	}
}

func TestSemanticCompression_EmptyInputEmptyOutput(t *testing.T) {
	s := NewSemanticCompression()
	assert.Equal(t, "", s.Apply("", DefaultConfig()))
	assert.Equal(t, "", s.Apply("   \n  ", DefaultConfig()))
}

func TestSemanticCompression_KeepsImportantFillerContexts(t *testing.T) {
	s := NewSemanticCompression()

	got := s.Apply("This step is very important for the result", DefaultConfig())
	assert.Contains(t, got, "very important")
}

func TestSemanticCompression_ContractsRedundantPhrases(t *testing.T) {
	s := NewSemanticCompression()

	got := s.Apply("Rewrite the function in order to improve readability", DefaultConfig())
	assert.Equal(t, "Rewrite the function to improve readability", got)
}

func TestSemanticCompression_DropsNearDuplicateSentences(t *testing.T) {
	s := NewSemanticCompression()

	input := "Summarize the quarterly report for the team. Summarize the quarterly report for the whole team."
	got := s.Apply(input, DefaultConfig())

	assert.Equal(t, "Summarize the quarterly report for the team.", got)
}

func TestSemanticCompression_PreservesLineStructure(t *testing.T) {
	s := NewSemanticCompression()

	got := s.Apply("First line stays here\nSecond line stays too", DefaultConfig())
	assert.Equal(t, "First line stays here\nSecond line stays too", got)
}

func TestSemanticCompression_NoPanicsOnMalformedInput(t *testing.T) {
	s := NewSemanticCompression()
	cfg := DefaultConfig()

	for _, input := range []string{"...", "!!!", "\x00", "very very very", "a"} {
		assert.NotPanics(t, func() { s.Apply(input, cfg) })
	}
}
