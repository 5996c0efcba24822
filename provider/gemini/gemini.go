// Package gemini provides an ImageGenerator implementation using Google's
// Gemini API via the official Go SDK: https://github.com/googleapis/go-genai
package gemini

import (
	"context"
	"fmt"

	"github.com/mhpenta/imagestudio"
	"google.golang.org/genai"
)

// APIModelFlashImage is the API name of the image generation model this
// provider targets by default.
const APIModelFlashImage = "gemini-2.5-flash-image-preview"

// Generator implements imagestudio.ImageGenerator using the Gemini API.
type Generator struct {
	client *genai.Client
}

// Ensure Generator implements the interface.
var _ imagestudio.ImageGenerator = (*Generator)(nil)

// New creates a Generator authenticated with the given API key. If the key
// is empty the SDK falls back to the GOOGLE_API_KEY or GEMINI_API_KEY
// environment variables.
func New(ctx context.Context, apiKey string) (*Generator, error) {
	clientCfg := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	}
	if apiKey != "" {
		clientCfg.APIKey = apiKey
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{client: client}, nil
}

// Generate creates an image from a text prompt.
func (g *Generator) Generate(ctx context.Context, prompt string, config *imagestudio.GenerateConfig) (*imagestudio.GeneratedImage, error) {
	return g.invoke(ctx, imagestudio.TextToImageRequest{Prompt: prompt}, config)
}

// Edit modifies an existing image based on a text instruction.
func (g *Generator) Edit(ctx context.Context, image imagestudio.InputImage, instructions string, config *imagestudio.GenerateConfig) (*imagestudio.GeneratedImage, error) {
	return g.invoke(ctx, imagestudio.EditRequest{Image: image, Instructions: instructions}, config)
}

// Compose combines multiple reference images under one instruction. All
// images travel in a single call; the model sees them in input order after
// the instruction text.
func (g *Generator) Compose(ctx context.Context, images []imagestudio.InputImage, instructions string, config *imagestudio.GenerateConfig) (*imagestudio.GeneratedImage, error) {
	return g.invoke(ctx, imagestudio.ComposeRequest{Images: images, Instructions: instructions}, config)
}

// Models returns the model definitions supported by this provider.
func (g *Generator) Models() []imagestudio.ModelInfo {
	return []imagestudio.ModelInfo{
		{
			Name:         imagestudio.ModelDefault.String(),
			APIModelName: APIModelFlashImage,
			Capabilities: imagestudio.ModelCapabilities{
				SupportsTextToImage:  true,
				SupportsImageEditing: true,
				SupportsComposition:  true,
				MaxInputImages:       imagestudio.MaxInputImages,
			},
		},
	}
}

// Close releases any resources held by the generator.
func (g *Generator) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// invoke validates and normalizes the request into ordered parts, issues one
// GenerateContent call, and extracts the image from the response. Validation
// failures return before any network access.
func (g *Generator) invoke(ctx context.Context, req imagestudio.Request, config *imagestudio.GenerateConfig) (*imagestudio.GeneratedImage, error) {
	parts, err := req.Parts()
	if err != nil {
		return nil, err
	}

	if config == nil {
		config = imagestudio.DefaultConfig()
	}

	contents := []*genai.Content{
		{Parts: toGenaiParts(parts)},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.resolveModel(config), contents, buildGenerateContentConfig(config))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", imagestudio.ErrModelInvocation, err)
	}

	return ExtractImage(result)
}

// resolveModel determines which API model name to use.
func (g *Generator) resolveModel(config *imagestudio.GenerateConfig) string {
	if config != nil && config.Model != "" && config.Model != imagestudio.ModelDefault {
		return config.Model.String()
	}
	return APIModelFlashImage
}

// buildGenerateContentConfig converts our config to Gemini's format.
func buildGenerateContentConfig(config *imagestudio.GenerateConfig) *genai.GenerateContentConfig {
	genConfig := &genai.GenerateContentConfig{
		// Enable image output
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	if config.Temperature != nil {
		genConfig.Temperature = genai.Ptr(*config.Temperature)
	}

	if config.MaxOutputTokens > 0 {
		genConfig.MaxOutputTokens = config.MaxOutputTokens
	}

	return genConfig
}

// toGenaiParts converts ordered content parts to the SDK's part type,
// preserving order.
func toGenaiParts(parts []imagestudio.ContentPart) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.Image != nil {
			out = append(out, &genai.Part{
				InlineData: &genai.Blob{
					Data:     p.Image.Data,
					MIMEType: p.Image.MIMEType,
				},
			})
			continue
		}
		out = append(out, &genai.Part{Text: p.Text})
	}
	return out
}
