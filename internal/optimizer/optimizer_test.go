package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptshear/promptshear/internal/model"
	"github.com/promptshear/promptshear/internal/strategy"
)

// stubStrategy returns a fixed output regardless of input.
type stubStrategy struct {
	name string
	out  string
}

func (s stubStrategy) Name() string                         { return s.name }
func (s stubStrategy) Apply(string, strategy.Config) string { return s.out }

func newTestAdapter(t *testing.T) model.Adapter {
	t.Helper()
	adapter, err := model.New("claude-3-haiku")
	require.NoError(t, err)
	return adapter
}

func TestOptimize_RejectsWhenMeaningLost(t *testing.T) {
	destructive := stubStrategy{
		name: "destructive",
		out:  "entirely unrelated gibberish covering wildly different topics",
	}
	o := New(newTestAdapter(t), strategy.DefaultConfig(), destructive)

	original := "Summarize the quarterly sales report."
	result := o.Optimize(original)

	assert.False(t, result.Accepted)
	assert.Equal(t, original, result.OptimizedPrompt)
	assert.Equal(t, result.OriginalTokens, result.OptimizedTokens)
	assert.Less(t, result.SemanticSimilarity, strategy.DefaultMeaningThreshold)

	// Rejection still reports what the attempt measured.
	require.Len(t, result.Deltas, 1)
	assert.Equal(t, "destructive", result.Deltas[0].Strategy)
}

func TestOptimize_AcceptsMeaningPreservingPipeline(t *testing.T) {
	o := New(newTestAdapter(t), strategy.DefaultConfig())

	original := "In order to summarize the quarterly report, you must analyze the sales data."
	result := o.Optimize(original)

	assert.True(t, result.Accepted)
	assert.GreaterOrEqual(t, result.SemanticSimilarity, strategy.DefaultMeaningThreshold)
	assert.LessOrEqual(t, result.OptimizedTokens, result.OriginalTokens)
	assert.NotEqual(t, original, result.OptimizedPrompt)
	assert.Contains(t, result.OptimizedPrompt, "analyze")
}

func TestOptimize_ReportsPerStrategyDeltas(t *testing.T) {
	o := New(newTestAdapter(t), strategy.DefaultConfig())

	result := o.Optimize("Please review the attached document carefully.")

	require.Len(t, result.Deltas, 3)
	assert.Equal(t, strategy.NameSemanticCompression, result.Deltas[0].Strategy)
	assert.Equal(t, strategy.NameTokenReduction, result.Deltas[1].Strategy)
	assert.Equal(t, strategy.NameStructuralOptimization, result.Deltas[2].Strategy)
	assert.Equal(t, []string{
		strategy.NameSemanticCompression,
		strategy.NameTokenReduction,
		strategy.NameStructuralOptimization,
	}, result.StrategiesApplied)
	assert.Equal(t, "claude-3-haiku", result.Model)
}

func TestOptimize_EmptyPrompt(t *testing.T) {
	o := New(newTestAdapter(t), strategy.DefaultConfig())

	result := o.Optimize("")

	assert.True(t, result.Accepted)
	assert.Equal(t, "", result.OptimizedPrompt)
	assert.Equal(t, 0, result.OriginalTokens)
	assert.Equal(t, 0, result.OptimizedTokens)
	assert.Equal(t, 1.0, result.SemanticSimilarity)
}

func TestOptimize_AggressiveRetryIsBounded(t *testing.T) {
	cfg := strategy.DefaultConfig()
	cfg.Aggressive = true
	cfg.TargetReduction = 0.9 // unattainable, forces the retry path

	o := New(newTestAdapter(t), cfg)
	result := o.Optimize("In order to summarize the quarterly report, you must analyze the sales data.")

	assert.True(t, result.Retried)
	assert.True(t, result.Accepted)
	// Exactly one extra token-reduction pass, never a loop.
	assert.Len(t, result.Deltas, 4)
	assert.Equal(t, strategy.NameTokenReduction, result.Deltas[3].Strategy)
}

func TestOptimize_NoRetryWithoutTarget(t *testing.T) {
	cfg := strategy.DefaultConfig()
	cfg.Aggressive = true

	o := New(newTestAdapter(t), cfg)
	result := o.Optimize("In order to summarize the quarterly report, you must analyze the sales data.")

	assert.False(t, result.Retried)
	assert.Len(t, result.Deltas, 3)
}

func TestBatchOptimize_IndependentAndOrdered(t *testing.T) {
	o := New(newTestAdapter(t), strategy.DefaultConfig())

	prompts := []string{
		"In order to summarize the quarterly report, you must analyze the sales data.",
		"Please could you very kindly analyze this text",
		"Respond in JSON format.\n\nAnalyze the server logs.\n\nYou are a site reliability engineer.",
	}

	batch := o.BatchOptimize(prompts)
	require.Len(t, batch, 3)

	for i, p := range prompts {
		assert.Equal(t, p, batch[i].OriginalPrompt, "results must follow input order")
		assert.Equal(t, o.Optimize(p), batch[i], "batch element %d must match a standalone run", i)
	}
}

func TestBatchOptimize_Empty(t *testing.T) {
	o := New(newTestAdapter(t), strategy.DefaultConfig())
	assert.Empty(t, o.BatchOptimize(nil))
}

func TestSelectStrategies(t *testing.T) {
	all := SelectStrategies(nil, nil)
	require.Len(t, all, 3)

	// Selection keeps canonical order regardless of how names are listed.
	picked := SelectStrategies([]string{strategy.NameTokenReduction, strategy.NameSemanticCompression}, nil)
	require.Len(t, picked, 2)
	assert.Equal(t, strategy.NameSemanticCompression, picked[0].Name())
	assert.Equal(t, strategy.NameTokenReduction, picked[1].Name())

	assert.Empty(t, SelectStrategies([]string{"no-such-strategy"}, nil))
}
