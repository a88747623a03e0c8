package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		unit string
		want Category
	}{
		{unit: "You are a helpful assistant working on billing code.", want: CategoryContext},
		{unit: "Analyze the attached log file.", want: CategoryInstructions},
		{unit: "Do not include personal data. Avoid speculation.", want: CategoryConstraints},
		{unit: "For instance, a sample entry looks like this.", want: CategoryExamples},
		{unit: "Respond in JSON format.", want: CategoryOutput},
		{unit: "Bananas are yellow.", want: CategoryUnclassified},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.unit))
		})
	}
}

func TestStructuralOptimization_ReordersByPriority(t *testing.T) {
	s := NewStructuralOptimization()

	input := "Respond in JSON format.\n\n" +
		"Analyze the server logs.\n\n" +
		"You are a site reliability engineer."

	got := s.Apply(input, DefaultConfig())

	ctxIdx := strings.Index(got, "site reliability engineer")
	insIdx := strings.Index(got, "Analyze the server logs")
	outIdx := strings.Index(got, "Respond in JSON")

	assert.Greater(t, ctxIdx, -1)
	assert.Less(t, ctxIdx, insIdx, "context must come before instructions")
	assert.Less(t, insIdx, outIdx, "instructions must come before output")
}

func TestStructuralOptimization_AddsHeadersForThreeOrMoreSections(t *testing.T) {
	s := NewStructuralOptimization()

	input := "Respond in JSON format.\n\n" +
		"Analyze the server logs.\n\n" +
		"You are a site reliability engineer."

	got := s.Apply(input, DefaultConfig())

	assert.Contains(t, got, "Context:")
	assert.Contains(t, got, "Instructions:")
	assert.Contains(t, got, "Output:")
}

func TestStructuralOptimization_NoHeadersForTwoSections(t *testing.T) {
	s := NewStructuralOptimization()

	input := "Analyze the server logs.\n\nRespond in JSON format."
	got := s.Apply(input, DefaultConfig())

	assert.NotContains(t, got, "Instructions:")
	assert.NotContains(t, got, "Output:")
}

func TestStructuralOptimization_DropsDuplicateInstructions(t *testing.T) {
	s := NewStructuralOptimization()

	input := "Analyze the server logs.\n\n" +
		"Respond in JSON format.\n\n" +
		"Analyze the server logs."

	got := s.Apply(input, DefaultConfig())

	assert.Equal(t, 1, strings.Count(got, "Analyze the server logs"))
}

func TestStructuralOptimization_MergesAdjacentSameCategory(t *testing.T) {
	s := NewStructuralOptimization()

	input := "Analyze the server logs.\n\nSummarize the error patterns."
	got := s.Apply(input, DefaultConfig())

	assert.Equal(t, "Analyze the server logs. Summarize the error patterns.", got)
}

func TestStructuralOptimization_PreserveStructureSkipsReordering(t *testing.T) {
	s := NewStructuralOptimization()

	input := "Respond in JSON format.\n\nAnalyze the server logs."
	got := s.Apply(input, Config{PreserveStructure: true})

	assert.Equal(t, input, got)
}

func TestStructuralOptimization_SingleUnitPassesThrough(t *testing.T) {
	s := NewStructuralOptimization()

	got := s.Apply("Analyze the server logs.", DefaultConfig())
	assert.Equal(t, "Analyze the server logs.", got)
}

func TestStructuralOptimization_EmptyInputEmptyOutput(t *testing.T) {
	s := NewStructuralOptimization()
	assert.Equal(t, "", s.Apply("", DefaultConfig()))
}

func TestSectionLabel(t *testing.T) {
	assert.Equal(t, "Context:", SectionLabel(CategoryContext))
	assert.Equal(t, "Output:", SectionLabel(CategoryOutput))
}
