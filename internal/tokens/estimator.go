// Package tokens estimates token counts for model families.
//
// Counting is exact when a tiktoken encoding is known for the model and
// falls back to a deterministic word-count heuristic otherwise. Encodings
// are loaded at most once per process and cached.
package tokens

import (
	"log"
	"math"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// heuristicWordFactor is the empirical tokens-per-word ratio used when no
// exact tokenizer is available.
const heuristicWordFactor = 1.3

// fallbackEncoding is used for models tiktoken doesn't know by name.
const fallbackEncoding = "cl100k_base"

// encoder is the subset of tiktoken's API the estimator needs.
type encoder interface {
	Encode(text string, allowedSpecial, disallowedSpecial []string) []int
}

// loaderFunc resolves a model name to an encoder. Injectable for tests.
type loaderFunc func(model string) (encoder, error)

// Estimator counts tokens for a given model, memoizing loaded encoders.
type Estimator struct {
	mu       sync.Mutex
	encoders map[string]encoder // model -> encoder (nil entry = load failed)
	load     loaderFunc
}

// NewEstimator creates an estimator backed by tiktoken.
func NewEstimator() *Estimator {
	return &Estimator{
		encoders: make(map[string]encoder),
		load:     loadTiktoken,
	}
}

// newEstimatorWithLoader creates an estimator with a custom encoder loader.
// Used by tests to avoid loading real tokenizer data.
func newEstimatorWithLoader(load loaderFunc) *Estimator {
	return &Estimator{
		encoders: make(map[string]encoder),
		load:     load,
	}
}

// Estimate returns the token count for text under the given model.
// Never fails: empty text is 0 tokens, and a missing tokenizer resource
// degrades to the word-count heuristic.
func (e *Estimator) Estimate(text, model string) int {
	if text == "" {
		return 0
	}
	if enc := e.encoderFor(model); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return Heuristic(text)
}

// encoderFor returns the memoized encoder for model, loading it on first
// use. Returns nil when no encoder could be loaded; the failure is recorded
// so the load is not retried on every call.
func (e *Estimator) encoderFor(model string) encoder {
	e.mu.Lock()
	defer e.mu.Unlock()

	if enc, ok := e.encoders[model]; ok {
		return enc
	}

	enc, err := e.load(model)
	if err != nil {
		log.Printf("notice: tokenizer unavailable for %s, using heuristic estimate: %v", model, err)
		enc = nil
	}
	e.encoders[model] = enc
	return enc
}

// loadTiktoken resolves a model to a tiktoken encoder, trying the model
// name first and the cl100k_base encoding as a general-purpose fallback.
func loadTiktoken(model string) (encoder, error) {
	if enc, err := tiktoken.EncodingForModel(model); err == nil {
		return enc, nil
	}
	return tiktoken.GetEncoding(fallbackEncoding)
}

// Heuristic estimates tokens from the whitespace-split word count scaled by
// an empirical factor. Deterministic and dependency-free.
func Heuristic(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) * heuristicWordFactor))
}
