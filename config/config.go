// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads the assistant's secrets and endpoints from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/linkedin"
)

// ErrMissingSecret is returned when a required secret is not set.
var ErrMissingSecret = errors.New("missing secret")

const (
	EnvRapidAPIKey      = "RAPIDAPI_KEY"
	EnvLLMAPIKey        = "LLM_API_KEY"
	EnvLLMHost          = "LLM_HOST"
	EnvEmbeddingHost    = "EMBEDDING_HOST"
	EnvClassifierHost   = "CLASSIFIER_HOST"
	EnvEmbeddingModel   = "EMBEDDING_MODEL"
	EnvClassifierModel  = "CLASSIFIER_MODEL"
	EnvLLMTemperature   = "LLM_TEMPERATURE"
	EnvLLMTimeout       = "LLM_TIMEOUT"
	EnvSearchBaseURL    = "SEARCH_BASE_URL"
	EnvSearchHost       = "SEARCH_HOST"
	EnvSearchMaxRetries = "SEARCH_MAX_RETRIES"
	EnvSearchWaitTime   = "SEARCH_WAIT_TIME"
	EnvSearchTimeout    = "SEARCH_TIMEOUT"
)

// Config holds everything needed to build an assistant.
type Config struct {
	AI     *ai.Config
	Search linkedin.Config
}

// Load reads envFilePath when it exists, then builds the configuration from
// the environment. Variables already set in the environment win over the
// file. Both secrets are required; their absence is reported with
// ErrMissingSecret.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment.
func FromEnv() (*Config, error) {
	searchKey := os.Getenv(EnvRapidAPIKey)
	if searchKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingSecret, EnvRapidAPIKey)
	}
	llmKey := os.Getenv(EnvLLMAPIKey)
	if llmKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingSecret, EnvLLMAPIKey)
	}

	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = llmKey
	if host := os.Getenv(EnvLLMHost); host != "" {
		aiConfig.EmbeddingHost = host
		aiConfig.ClassifierHost = host
	}
	aiConfig.EmbeddingHost = getEnv(EnvEmbeddingHost, aiConfig.EmbeddingHost)
	aiConfig.ClassifierHost = getEnv(EnvClassifierHost, aiConfig.ClassifierHost)
	aiConfig.EmbeddingModel = getEnv(EnvEmbeddingModel, aiConfig.EmbeddingModel)
	aiConfig.ClassifierModel = getEnv(EnvClassifierModel, aiConfig.ClassifierModel)

	search := linkedin.DefaultConfig()
	search.APIKey = searchKey
	search.BaseURL = getEnv(EnvSearchBaseURL, search.BaseURL)
	search.Host = getEnv(EnvSearchHost, search.Host)

	var err error
	if aiConfig.Temperature, err = getEnvAsFloat(EnvLLMTemperature, aiConfig.Temperature); err != nil {
		return nil, err
	}
	if aiConfig.Timeout, err = getEnvAsDuration(EnvLLMTimeout, aiConfig.Timeout); err != nil {
		return nil, err
	}
	if search.MaxRetries, err = getEnvAsInt(EnvSearchMaxRetries, search.MaxRetries); err != nil {
		return nil, err
	}
	if search.WaitTime, err = getEnvAsDuration(EnvSearchWaitTime, search.WaitTime); err != nil {
		return nil, err
	}
	if search.Timeout, err = getEnvAsDuration(EnvSearchTimeout, search.Timeout); err != nil {
		return nil, err
	}

	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}
	if err := search.Validate(); err != nil {
		return nil, err
	}

	return &Config{AI: aiConfig, Search: search}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}
