package imagestudio

import (
	"log/slog"
)

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithLogger sets a structured logger for the manager.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithStorage sets a storage backend for persisting generated images.
func WithStorage(storage Storage) ManagerOption {
	return func(m *Manager) {
		m.storage = storage
	}
}

// WithConfig sets the process-wide generation config.
func WithConfig(config *GenerateConfig) ManagerOption {
	return func(m *Manager) {
		if config != nil {
			m.config = config
		}
	}
}

// WithTokenEstimator sets the estimator used for logged token estimates.
func WithTokenEstimator(estimator TokenEstimator) ManagerOption {
	return func(m *Manager) {
		if estimator != nil {
			m.tokenEstimator = estimator
		}
	}
}
