package imagestudio

import "testing"

func TestSimpleTokenEstimator(t *testing.T) {
	e := NewSimpleTokenEstimator()

	if got := e.EstimateTokens(""); got != 0 {
		t.Errorf("empty text should cost 0 tokens, got %d", got)
	}

	small := e.EstimateTokens("hello")
	large := e.EstimateTokens("a much longer instruction about adjusting the lighting in the scene")
	if small <= 0 {
		t.Errorf("non-empty text should cost tokens, got %d", small)
	}
	if large <= small {
		t.Errorf("longer text should cost more: %d vs %d", large, small)
	}

	// The margin rounds up: four chars is at least one token plus overhead.
	if got := e.EstimateTokens("abcd"); got < 4 {
		t.Errorf("estimate too low: %d", got)
	}
}

func TestTiktokenEstimator_FallsBack(t *testing.T) {
	// An unknown encoding can never load, so the estimator must fall back
	// to the heuristic rather than returning zero.
	e := &TiktokenEstimator{Encoding: "no-such-encoding"}

	if got := e.EstimateTokens(""); got != 0 {
		t.Errorf("empty text should cost 0 tokens, got %d", got)
	}
	if got, want := e.EstimateTokens("hello world"), heuristicFallback.EstimateTokens("hello world"); got != want {
		t.Errorf("fallback estimate = %d, want %d", got, want)
	}
}
