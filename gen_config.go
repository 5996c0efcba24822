package imagestudio

// Model represents a specific image generation model.
type Model string

// String returns the model identifier.
func (m Model) String() string {
	return string(m)
}

// ModelDefault is the model used when none is configured.
const ModelDefault Model = "gemini-2.5-flash-image-preview"

// Process-wide generation defaults. These are fixed at startup, not tuned
// per request.
const (
	DefaultTemperature     float32 = 0.4
	DefaultMaxOutputTokens int32   = 4096
)

// GenerateConfig holds the generation parameters passed to the provider.
// One config is built from process configuration at startup and reused for
// every call.
type GenerateConfig struct {
	// Model to use for generation (if empty, the provider's default)
	Model Model

	// Temperature controls randomness (0.0-2.0)
	Temperature *float32

	// MaxOutputTokens caps the response size
	MaxOutputTokens int32
}

// DefaultConfig returns a GenerateConfig with the process defaults.
func DefaultConfig() *GenerateConfig {
	temp := DefaultTemperature
	return &GenerateConfig{
		Model:           ModelDefault,
		Temperature:     &temp,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// WithModel returns a copy of the config with the specified model.
func (c *GenerateConfig) WithModel(model Model) *GenerateConfig {
	if c == nil {
		return &GenerateConfig{Model: model}
	}
	cX := *c
	cX.Model = model
	return &cX
}
