package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allVars = []string{
	EnvRapidAPIKey, EnvLLMAPIKey, EnvLLMHost, EnvEmbeddingHost, EnvClassifierHost,
	EnvEmbeddingModel, EnvClassifierModel, EnvLLMTemperature, EnvLLMTimeout,
	EnvSearchBaseURL, EnvSearchHost, EnvSearchMaxRetries, EnvSearchWaitTime, EnvSearchTimeout,
}

// clearEnv unsets every variable for the test and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRapidAPIKey, "rapid")
	t.Setenv(EnvLLMAPIKey, "llm")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "rapid", cfg.Search.APIKey)
	assert.Equal(t, "https://linkedin-data-api.p.rapidapi.com", cfg.Search.BaseURL)
	assert.Equal(t, 3, cfg.Search.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Search.WaitTime)
	assert.Equal(t, 30*time.Second, cfg.Search.Timeout)

	assert.Equal(t, "llm", cfg.AI.APIKey)
	assert.Equal(t, 0.7, cfg.AI.Temperature)
	assert.Equal(t, "http://localhost:11434/v1", cfg.AI.EmbeddingHost)
}

func TestFromEnv_MissingSecrets(t *testing.T) {
	t.Run("search key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvLLMAPIKey, "llm")
		_, err := FromEnv()
		assert.ErrorIs(t, err, ErrMissingSecret)
		assert.ErrorContains(t, err, EnvRapidAPIKey)
	})

	t.Run("llm key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvRapidAPIKey, "rapid")
		_, err := FromEnv()
		assert.ErrorIs(t, err, ErrMissingSecret)
		assert.ErrorContains(t, err, EnvLLMAPIKey)
	})
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRapidAPIKey, "rapid")
	t.Setenv(EnvLLMAPIKey, "llm")
	t.Setenv(EnvLLMHost, "https://api.openai.com")
	t.Setenv(EnvEmbeddingHost, "http://embed:8080/v1")
	t.Setenv(EnvEmbeddingModel, "text-embedding-3-small")
	t.Setenv(EnvClassifierModel, "gpt-4o-mini")
	t.Setenv(EnvLLMTemperature, "0.2")
	t.Setenv(EnvLLMTimeout, "5s")
	t.Setenv(EnvSearchBaseURL, "http://localhost:9999")
	t.Setenv(EnvSearchMaxRetries, "5")
	t.Setenv(EnvSearchWaitTime, "100ms")
	t.Setenv(EnvSearchTimeout, "1m")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://embed:8080/v1", cfg.AI.EmbeddingHost)
	assert.Equal(t, "https://api.openai.com/v1", cfg.AI.ClassifierHost, "hosts are normalized")
	assert.Equal(t, "text-embedding-3-small", cfg.AI.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.ClassifierModel)
	assert.Equal(t, 0.2, cfg.AI.Temperature)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "http://localhost:9999", cfg.Search.BaseURL)
	assert.Equal(t, 5, cfg.Search.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.Search.WaitTime)
	assert.Equal(t, time.Minute, cfg.Search.Timeout)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value, wantErr string
	}{
		{EnvSearchMaxRetries, "three", EnvSearchMaxRetries},
		{EnvSearchMaxRetries, "0", "maxAttempts"},
		{EnvSearchWaitTime, "2", EnvSearchWaitTime},
		{EnvLLMTemperature, "hot", EnvLLMTemperature},
		{EnvLLMTemperature, "3", "Temperature"},
		{EnvLLMTimeout, "-1s", "Timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvRapidAPIKey, "rapid")
			t.Setenv(EnvLLMAPIKey, "llm")
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RAPIDAPI_KEY=from-file\nLLM_API_KEY=llm-from-file\nSEARCH_MAX_RETRIES=4\n"), 0600))
	t.Setenv(EnvLLMAPIKey, "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Search.APIKey)
	assert.Equal(t, "from-env", cfg.AI.APIKey, "environment wins over the file")
	assert.Equal(t, 4, cfg.Search.MaxRetries)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRapidAPIKey, "rapid")
	t.Setenv(EnvLLMAPIKey, "llm")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "rapid", cfg.Search.APIKey)
}
