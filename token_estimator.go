package imagestudio

import (
	"math"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenEstimator provides configurable token estimation strategies. Estimates
// feed the manager's request logging only; nothing throttles on them.
type TokenEstimator interface {
	EstimateTokens(text string) int
}

// SimpleTokenEstimator - fast approximation of token usage
type SimpleTokenEstimator struct {
	SafetyMargin float64
}

func NewSimpleTokenEstimator() *SimpleTokenEstimator {
	return &SimpleTokenEstimator{
		SafetyMargin: 1.2,
	}
}

func (e *SimpleTokenEstimator) EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	charCount := len([]rune(text))
	tokenEstimate := float64(charCount) / 4.0
	tokenEstimate *= e.SafetyMargin

	return int(math.Ceil(tokenEstimate)) + 3
}

// TiktokenEstimator counts tokens with a real BPE encoding. The encoding is
// loaded lazily on first use and cached; if loading fails (e.g. no network
// for the encoding file), it falls back to the simple heuristic.
type TiktokenEstimator struct {
	// Encoding name, e.g. "cl100k_base". Empty means cl100k_base.
	Encoding string

	mu  sync.Mutex
	enc *tiktoken.Tiktoken
}

// DefaultEncoding is used when TiktokenEstimator.Encoding is empty.
const DefaultEncoding = "cl100k_base"

var heuristicFallback = NewSimpleTokenEstimator()

func NewTiktokenEstimator() *TiktokenEstimator {
	return &TiktokenEstimator{Encoding: DefaultEncoding}
}

func (e *TiktokenEstimator) EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	enc := e.encoding()
	if enc == nil {
		return heuristicFallback.EstimateTokens(text)
	}
	return len(enc.Encode(text, nil, nil))
}

func (e *TiktokenEstimator) encoding() *tiktoken.Tiktoken {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.enc != nil {
		return e.enc
	}
	name := e.Encoding
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil
	}
	e.enc = enc
	return enc
}
