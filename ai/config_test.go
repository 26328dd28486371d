package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.ClassifierModel)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.ClassifierHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithClassifierHost("http://classify:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://classify:9090/v1", cfg.ClassifierHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("embed-multilingual-v3.0"),
			WithClassifierModel("command-r"),
		)

		assert.Equal(t, "embed-multilingual-v3.0", cfg.EmbeddingModel)
		assert.Equal(t, "command-r", cfg.ClassifierModel)
	})

	t.Run("with key, temperature and timeout", func(t *testing.T) {
		cfg := NewConfig(
			WithAPIKey("secret"),
			WithTemperature(0.2),
			WithTimeout(5*time.Second),
		)

		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, 0.2, cfg.Temperature)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "already has v1", host: "http://localhost:11434/v1", want: "http://localhost:11434/v1"},
		{name: "missing v1", host: "http://localhost:11434", want: "http://localhost:11434/v1"},
		{name: "trailing slash", host: "http://localhost:11434/", want: "http://localhost:11434/v1"},
		{name: "empty stays empty", host: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host, ClassifierHost: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.ClassifierHost)
		})
	}

	t.Run("empty api key becomes none", func(t *testing.T) {
		cfg := &Config{}
		cfg.Normalize()
		assert.Equal(t, "none", cfg.APIKey)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "missing embedding host", mutate: func(c *Config) { c.EmbeddingHost = "" }, errMsg: "EmbeddingHost"},
		{name: "missing classifier host", mutate: func(c *Config) { c.ClassifierHost = "" }, errMsg: "ClassifierHost"},
		{name: "missing embedding model", mutate: func(c *Config) { c.EmbeddingModel = "" }, errMsg: "EmbeddingModel"},
		{name: "missing classifier model", mutate: func(c *Config) { c.ClassifierModel = "" }, errMsg: "ClassifierModel"},
		{name: "negative temperature", mutate: func(c *Config) { c.Temperature = -1 }, errMsg: "Temperature"},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, errMsg: "Timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("validate normalizes hosts", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})
}
