package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Server.Listen)
	assert.Equal(t, 300000, cfg.Server.ReadTimeoutMs)
	assert.Equal(t, 300000, cfg.Server.WriteTimeoutMs)
	assert.Equal(t, "gemini-2.5-flash-image-preview", cfg.Gemini.Model)
	assert.Equal(t, float32(0.4), cfg.Gemini.Temperature)
	assert.Equal(t, int32(4096), cfg.Gemini.MaxOutputTokens)
	assert.Equal(t, int64(256<<20), cfg.Images.MaxBytes)
	assert.Equal(t, 60, cfg.Images.TTLMinutes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Archive.Path)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  listen: ":8080"
gemini:
  model: custom-model
  temperature: 1.5
images:
  ttl_minutes: 5
logging:
  level: debug
  access_log: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "custom-model", cfg.Gemini.Model)
	assert.Equal(t, float32(1.5), cfg.Gemini.Temperature)
	assert.Equal(t, 5, cfg.Images.TTLMinutes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.AccessLog)

	// Unset fields still get their defaults.
	assert.Equal(t, int32(4096), cfg.Gemini.MaxOutputTokens)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("IMAGESTUDIO_LISTEN", ":9090")
	t.Setenv("IMAGESTUDIO_MODEL", "env-model")
	t.Setenv("IMAGESTUDIO_TEMPERATURE", "0.8")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, "env-model", cfg.Gemini.Model)
	assert.Equal(t, float32(0.8), cfg.Gemini.Temperature)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "bad listen",
			yaml: "server:\n  listen: localhost\n",
		},
		{
			name: "temperature too high",
			yaml: "gemini:\n  temperature: 3.0\n",
		},
		{
			name: "unknown log level",
			yaml: "logging:\n  level: chatty\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
