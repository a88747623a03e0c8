package tokens

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeEncoder tokenizes on whitespace, one token per word.
type fakeEncoder struct{}

func (fakeEncoder) Encode(text string, _, _ []string) []int {
	return make([]int, len(strings.Fields(text)))
}

func TestEstimate_EmptyStringIsZero(t *testing.T) {
	e := NewEstimator()
	assert.Equal(t, 0, e.Estimate("", "gpt-4o"))
}

func TestEstimate_UsesLoadedEncoder(t *testing.T) {
	e := newEstimatorWithLoader(func(model string) (encoder, error) {
		return fakeEncoder{}, nil
	})

	assert.Equal(t, 3, e.Estimate("analyze this text", "gpt-4o"))
}

func TestEstimate_FallsBackToHeuristicWhenLoaderFails(t *testing.T) {
	e := newEstimatorWithLoader(func(model string) (encoder, error) {
		return nil, fmt.Errorf("no tokenizer data")
	})

	// 4 words * 1.3 = 5.2, rounded up to 6
	assert.Equal(t, 6, e.Estimate("the quick brown fox", "mystery-model"))
}

func TestEstimate_LoaderCalledOncePerModel(t *testing.T) {
	calls := 0
	e := newEstimatorWithLoader(func(model string) (encoder, error) {
		calls++
		return fakeEncoder{}, nil
	})

	e.Estimate("one", "gpt-4o")
	e.Estimate("two words", "gpt-4o")
	e.Estimate("now three words", "gpt-4o")

	assert.Equal(t, 1, calls, "encoder should be memoized per model")
}

func TestEstimate_FailedLoadIsNotRetried(t *testing.T) {
	calls := 0
	e := newEstimatorWithLoader(func(model string) (encoder, error) {
		calls++
		return nil, fmt.Errorf("unavailable")
	})

	e.Estimate("a b c", "m")
	e.Estimate("d e f", "m")

	assert.Equal(t, 1, calls, "failed load should be memoized too")
}

func TestEstimate_NonASCIIDoesNotPanic(t *testing.T) {
	e := newEstimatorWithLoader(func(model string) (encoder, error) {
		return nil, fmt.Errorf("unavailable")
	})

	count := e.Estimate("日本語のテキスト with mixed 内容", "m")
	assert.GreaterOrEqual(t, count, 0)
}

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "whitespace only", text: "   \n\t ", want: 0},
		{name: "single word", text: "hello", want: 2},    // ceil(1*1.3)
		{name: "ten words", text: strings.Repeat("word ", 10), want: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Heuristic(tt.text))
		})
	}
}

func TestHeuristic_NeverNegative(t *testing.T) {
	for _, text := range []string{"", "a", "  ", "one two three", "日本語"} {
		assert.GreaterOrEqual(t, Heuristic(text), 0)
	}
}
