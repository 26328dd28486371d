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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/prompts"
)

// Classifier implements ai.IntentClassifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client      llms.Model
	prompt      prompts.PromptTemplate
	temperature float64
	logger      *slog.Logger
}

// answer is the structured reply the instruction template asks for.
type answer struct {
	Intent  string `json:"intent"`
	Message string `json:"message"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ClassifierModel),
		openai.WithHTTPClient(newHTTPClient(config.Timeout)),
	)
	if err != nil {
		return nil, err
	}

	return newClassifierWithModel(client, config.Temperature), nil
}

// newClassifierWithModel wires a classifier around any langchaingo model.
func newClassifierWithModel(model llms.Model, temperature float64) *Classifier {
	return &Classifier{
		client:      model,
		prompt:      newClassificationPrompt(),
		temperature: temperature,
		logger:      slog.Default().With("component", "openai-classifier"),
	}
}

// NewClassifier creates a new intent classifier using the provided configuration.
//
// Returns ai.IntentClassifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.IntentClassifier, error) {
	return newClassifier(config)
}

// Classify renders the instruction template around the query and asks the
// language backend for a decision. Backend failures are returned wrapped in
// core.ErrBackendUnavailable without retrying.
func (c *Classifier) Classify(ctx context.Context, query core.Query) (*ai.Classification, error) {
	prompt, err := c.prompt.Format(map[string]any{"question": string(query)})
	if err != nil {
		return nil, fmt.Errorf("rendering classification prompt: %w", err)
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(c.temperature))
	if err != nil {
		c.logger.Error("failed to classify query", "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrBackendUnavailable, err)
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return &ai.Classification{Intent: core.IntentGeneric}, nil
	}

	result := parseClassification(response.Choices[0].Content)
	c.logger.Debug("classified query", "intent", result.Intent)
	return result, nil
}

// parseClassification reads the structured answer when the model produced
// one and falls back to marker-string routing otherwise.
func parseClassification(text string) *ai.Classification {
	if parsed, ok := parseStructuredAnswer(text); ok {
		message := parsed.Message
		if message == "" {
			message = strings.TrimSpace(text)
		}
		return &ai.Classification{
			Intent:  core.ParseIntent(parsed.Intent),
			Message: message,
		}
	}

	return &ai.Classification{
		Intent:  intentFromMarkers(text),
		Message: strings.TrimSpace(text),
	}
}

func parseStructuredAnswer(text string) (*answer, bool) {
	object := extractJSONObject(stripCodeFences(text))
	if object == "" {
		return nil, false
	}

	var parsed answer
	if err := json.Unmarshal([]byte(object), &parsed); err != nil {
		if err := json.Unmarshal([]byte(normalizeQuotes(object)), &parsed); err != nil {
			return nil, false
		}
	}
	if parsed.Intent == "" {
		return nil, false
	}
	return &parsed, true
}

// intentFromMarkers implements marker routing: any text containing a marker
// is routed to that intent, even when the marker is only quoted.
func intentFromMarkers(text string) core.Intent {
	switch {
	case strings.Contains(text, ai.PeopleMarker):
		return core.IntentPeople
	case strings.Contains(text, ai.JobsMarker):
		return core.IntentJobs
	default:
		return core.IntentGeneric
	}
}
