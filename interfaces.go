package imagestudio

import "context"

// ImageGenerator is the core interface for image generation backends.
// All three call shapes issue exactly one model call; the caller blocks
// until the call completes or ctx is done.
type ImageGenerator interface {
	// Generate creates an image from a text prompt.
	Generate(ctx context.Context, prompt string, genConfig *GenerateConfig) (*GeneratedImage, error)

	// Edit modifies an existing image based on a text instruction.
	Edit(ctx context.Context, image InputImage, instructions string, genConfig *GenerateConfig) (*GeneratedImage, error)

	// Compose combines multiple reference images under one instruction.
	Compose(ctx context.Context, images []InputImage, instructions string, genConfig *GenerateConfig) (*GeneratedImage, error)

	// Models returns the model definitions supported by this backend.
	Models() []ModelInfo

	// Close releases any resources held by the generator.
	Close() error
}

// RenderedImageStore holds the rendered form of generated images and hands
// out opaque references to them. Whoever creates a reference owns its
// disposal: superseded references must be released so blobs do not pile up
// across many turns.
type RenderedImageStore interface {
	// Put stores an image and returns an opaque reference to it.
	Put(img GeneratedImage) (string, error)

	// Get resolves a reference. The second return is false once the
	// reference has been released or expired.
	Get(ref string) (GeneratedImage, bool)

	// Release discards a stored image. Releasing an unknown reference is a
	// no-op.
	Release(ref string)
}
