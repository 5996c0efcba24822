package imagestudio

// ModelCapabilities describes what call shapes a model supports.
type ModelCapabilities struct {
	SupportsTextToImage  bool
	SupportsImageEditing bool
	SupportsComposition  bool

	// MaxInputImages is the per-request image cap for composition.
	MaxInputImages int
}

// ModelInfo contains metadata for a model.
type ModelInfo struct {
	// Name is the public model identifier.
	Name string

	// APIModelName is the name passed to the provider API.
	APIModelName string

	// Capabilities of the model.
	Capabilities ModelCapabilities
}
