package imagestudio

import (
	"errors"
)

// Extraction-stage errors. The model responded, but no usable image could be
// pulled out of the response envelope. Each level of the envelope may be
// absent, and each absence is reported as its own kind so callers can render
// a precise message.
var (
	// ErrNoCandidates is returned when the response envelope has zero candidates.
	ErrNoCandidates = errors.New("no candidates returned from model")

	// ErrNoParts is returned when the first candidate carries no content parts.
	ErrNoParts = errors.New("no parts returned from model")

	// ErrNoImageData is returned when parts exist but none carries inline image data.
	ErrNoImageData = errors.New("no image data found in response")
)

// ErrModelInvocation wraps transport or provider faults raised while calling
// the model (network, quota, prompt rejection). Never retried automatically.
var ErrModelInvocation = errors.New("model invocation failed")

// ErrLineageConversion wraps failures converting a generated result back into
// the input representation for the next refinement turn. Non-fatal: the turn
// that produced the result still counts as successful.
var ErrLineageConversion = errors.New("cannot convert result into next base image")

// Refinement session errors.
var (
	// ErrTurnInFlight is returned when a turn is requested while another is
	// still processing. The session state is left untouched.
	ErrTurnInFlight = errors.New("a turn is already in flight")

	// ErrNoBaseImage is returned when a turn is requested before the session
	// has been seeded with a base image.
	ErrNoBaseImage = errors.New("no base image set for refinement")
)

// ErrStorageNotConfigured is returned when storage operations are attempted
// without a configured storage backend.
var ErrStorageNotConfigured = errors.New("storage not configured")

// IsInvalidInput reports whether err is a client-input validation error:
// missing or empty required fields, unsupported MIME types, oversized or
// over-count inputs. These are rejected before any model call is made.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyPrompt) ||
		errors.Is(err, ErrEmptyImageData) ||
		errors.Is(err, ErrInvalidMIMEType) ||
		errors.Is(err, ErrImageTooLarge) ||
		errors.Is(err, ErrTooManyImages)
}

// IsExtractionError reports whether err is one of the three extraction-stage
// error kinds.
func IsExtractionError(err error) bool {
	return errors.Is(err, ErrNoCandidates) ||
		errors.Is(err, ErrNoParts) ||
		errors.Is(err, ErrNoImageData)
}
