package imagestudio

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager wraps an ImageGenerator with structured logging, optional result
// persistence, and refinement-session creation. It holds exactly one
// provider; the model, temperature, and output cap are process-wide and
// fixed at construction.
type Manager struct {
	provider ImageGenerator

	// Generation parameters used for every call.
	config *GenerateConfig

	// Logger for structured logging.
	logger *slog.Logger

	// Storage for persisting generated images (optional).
	storage Storage

	tokenEstimator TokenEstimator

	mu sync.RWMutex
}

// Ensure Manager implements the interface.
var _ ImageGenerator = (*Manager)(nil)

// NewManager creates a Manager around the given provider.
//
// Example:
//
//	gen, err := gemini.NewWithAPIKey(ctx, apiKey)
//	if err != nil {
//	    return err
//	}
//	manager := imagestudio.NewManager(gen)
//
// With options:
//
//	manager := imagestudio.NewManager(gen,
//	    imagestudio.WithLogger(slog.Default()),
//	    imagestudio.WithStorage(archive),
//	)
func NewManager(provider ImageGenerator, opts ...ManagerOption) *Manager {
	m := &Manager{
		provider:       provider,
		config:         DefaultConfig(),
		logger:         slog.Default(),
		tokenEstimator: NewSimpleTokenEstimator(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Config returns a copy of the process-wide generation config.
func (m *Manager) Config() *GenerateConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg := *m.config
	return &cfg
}

// Storage returns the configured storage backend, or nil if not set.
func (m *Manager) Storage() Storage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.storage
}

// SaveResult saves a generated image to the configured storage.
// If no storage is configured, returns ErrStorageNotConfigured.
func (m *Manager) SaveResult(ctx context.Context, img *GeneratedImage, basePath string) (StorageResult, error) {
	m.mu.RLock()
	storage := m.storage
	m.mu.RUnlock()

	return SaveToStorage(ctx, storage, img, basePath)
}

// Generate creates an image from a text prompt.
func (m *Manager) Generate(ctx context.Context, prompt string, config *GenerateConfig) (*GeneratedImage, error) {
	cfg := m.effectiveConfig(config)
	start := time.Now()

	m.logger.Debug("starting image generation",
		"model", cfg.Model.String(),
		"prompt_length", len(prompt),
		"estimated_tokens", m.tokenEstimator.EstimateTokens(prompt),
	)

	img, err := m.provider.Generate(ctx, prompt, cfg)
	duration := time.Since(start)

	if err != nil {
		m.logger.Error("generation failed",
			"model", cfg.Model.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)

		return nil, err
	}

	m.logger.Info("generation completed",
		"model", cfg.Model.String(),
		"duration_ms", duration.Milliseconds(),
		"image_bytes", len(img.Data),
		"mime_type", img.MIMEType,
	)

	return img, nil
}

// Edit modifies an existing image based on a text instruction.
func (m *Manager) Edit(ctx context.Context, image InputImage, instructions string, config *GenerateConfig) (*GeneratedImage, error) {
	cfg := m.effectiveConfig(config)
	start := time.Now()

	m.logger.Debug("starting image edit",
		"model", cfg.Model.String(),
		"instruction_length", len(instructions),
		"estimated_tokens", m.tokenEstimator.EstimateTokens(instructions),
		"image_size", len(image.Data),
	)

	img, err := m.provider.Edit(ctx, image, instructions, cfg)
	duration := time.Since(start)

	if err != nil {
		m.logger.Error("edit failed",
			"model", cfg.Model.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)

		return nil, err
	}

	m.logger.Info("edit completed",
		"model", cfg.Model.String(),
		"duration_ms", duration.Milliseconds(),
		"image_bytes", len(img.Data),
	)

	return img, nil
}

// Compose combines multiple reference images under one instruction.
func (m *Manager) Compose(ctx context.Context, images []InputImage, instructions string, config *GenerateConfig) (*GeneratedImage, error) {
	cfg := m.effectiveConfig(config)
	start := time.Now()

	m.logger.Debug("starting composition",
		"model", cfg.Model.String(),
		"instruction_length", len(instructions),
		"estimated_tokens", m.tokenEstimator.EstimateTokens(instructions),
		"image_count", len(images),
	)

	img, err := m.provider.Compose(ctx, images, instructions, cfg)
	duration := time.Since(start)

	if err != nil {
		m.logger.Error("composition failed",
			"model", cfg.Model.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)

		return nil, err
	}

	m.logger.Info("composition completed",
		"model", cfg.Model.String(),
		"duration_ms", duration.Milliseconds(),
		"input_images", len(images),
		"image_bytes", len(img.Data),
	)

	return img, nil
}

// Models returns the provider's model definitions.
func (m *Manager) Models() []ModelInfo {
	return m.provider.Models()
}

// Close releases the provider's resources.
func (m *Manager) Close() error {
	return m.provider.Close()
}

// StartRefinement begins a new multi-turn refinement session backed by this
// manager, so every turn flows through the same logging and configuration.
func (m *Manager) StartRefinement(opts ...SessionOption) *RefinementSession {
	opts = append([]SessionOption{
		SessionWithConfig(m.Config()),
		SessionWithLogger(m.logger),
	}, opts...)
	return NewRefinementSession(m, opts...)
}

// effectiveConfig resolves the config for one call: the process-wide config
// unless the caller explicitly overrides it.
func (m *Manager) effectiveConfig(config *GenerateConfig) *GenerateConfig {
	if config != nil {
		return config
	}
	return m.Config()
}
