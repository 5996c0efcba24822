// Package config loads the process-wide configuration from a YAML file,
// applies defaults and environment overrides, and validates the result.
// All values are fixed at startup; nothing is tuned per request.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Listen         string `yaml:"listen"`
		ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
		WriteTimeoutMs int    `yaml:"write_timeout_ms"`
	} `yaml:"server"`

	Gemini struct {
		// APIKey authenticates to the model provider. Overridable via
		// GEMINI_API_KEY or GOOGLE_AI_API_KEY.
		APIKey string `yaml:"api_key"`

		Model           string  `yaml:"model"`
		Temperature     float32 `yaml:"temperature"`
		MaxOutputTokens int32   `yaml:"max_output_tokens"`
	} `yaml:"gemini"`

	Images struct {
		// MaxBytes bounds the in-memory rendered-image store.
		MaxBytes int64 `yaml:"max_bytes"`
		// TTLMinutes is how long an unreleased rendered image survives.
		TTLMinutes int `yaml:"ttl_minutes"`
	} `yaml:"images"`

	Archive struct {
		// Path is an optional SQLite database file. When set, every
		// successful generation is archived into it.
		Path string `yaml:"path"`
	} `yaml:"archive"`

	Logging struct {
		Level     string `yaml:"level"`
		AccessLog bool   `yaml:"access_log"`
	} `yaml:"logging"`
}

// Load reads the config file at path. A missing path ("") yields a config
// built purely from defaults and environment overrides.
func Load(path string) (*Config, error) {
	var cfg Config
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, err
		}
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = ":3001"
	}
	if cfg.Server.ReadTimeoutMs <= 0 {
		cfg.Server.ReadTimeoutMs = 300000
	}
	if cfg.Server.WriteTimeoutMs <= 0 {
		cfg.Server.WriteTimeoutMs = 300000
	}
	if strings.TrimSpace(cfg.Gemini.Model) == "" {
		cfg.Gemini.Model = "gemini-2.5-flash-image-preview"
	}
	if cfg.Gemini.Temperature <= 0 {
		cfg.Gemini.Temperature = 0.4
	}
	if cfg.Gemini.MaxOutputTokens <= 0 {
		cfg.Gemini.MaxOutputTokens = 4096
	}
	if cfg.Images.MaxBytes <= 0 {
		cfg.Images.MaxBytes = 256 << 20
	}
	if cfg.Images.TTLMinutes <= 0 {
		cfg.Images.TTLMinutes = 60
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("GOOGLE_AI_API_KEY")); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("IMAGESTUDIO_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("IMAGESTUDIO_MODEL")); v != "" {
		cfg.Gemini.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("IMAGESTUDIO_ARCHIVE")); v != "" {
		cfg.Archive.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("IMAGESTUDIO_LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("IMAGESTUDIO_TEMPERATURE")); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Gemini.Temperature = float32(f)
		}
	}
}

func validate(cfg *Config) error {
	if !strings.Contains(cfg.Server.Listen, ":") {
		return errors.New("server.listen must be host:port or :port")
	}
	if cfg.Gemini.Temperature > 2.0 {
		return errors.New("gemini.temperature must be in (0, 2]")
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}
