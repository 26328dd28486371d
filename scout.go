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


package scout

import (
	"context"
	"log/slog"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/ai/openai"
	"github.com/poiesic/scout/linkedin"
	"github.com/poiesic/scout/rerank"
	"github.com/poiesic/scout/session"
	"github.com/poiesic/scout/storage"
	"github.com/poiesic/scout/storage/badger"
)

// Assistant wires the transcript store, the AI backends, the search client
// and the orchestrator into a ready-to-use chat assistant.
type Assistant struct {
	backend      *badger.Backend
	repo         storage.TranscriptRepository
	provider     ai.AIProvider
	orchestrator *session.Orchestrator
	logger       *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig      *ai.Config
	provider      ai.AIProvider
	searchConfig  linkedin.Config
	dispatcher    session.Dispatcher
	rerankOptions []rerank.Option
	monitor       session.TurnMonitor
	logger        *slog.Logger
}

// WithAIConfig sets the configuration of the default OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithProvider replaces the AI provider. WithAIConfig is ignored.
func WithProvider(provider ai.AIProvider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithSearchConfig sets the configuration of the default LinkedIn client.
func WithSearchConfig(config linkedin.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.searchConfig = config
	}
}

// WithDispatcher replaces the search dispatcher. WithSearchConfig is ignored.
func WithDispatcher(dispatcher session.Dispatcher) AssistantOption {
	return func(o *assistantOptions) {
		o.dispatcher = dispatcher
	}
}

// WithRerankOptions passes options to the result reranker.
func WithRerankOptions(opts ...rerank.Option) AssistantOption {
	return func(o *assistantOptions) {
		o.rerankOptions = append(o.rerankOptions, opts...)
	}
}

// WithMonitor sets a monitor observing every turn.
func WithMonitor(monitor session.TurnMonitor) AssistantOption {
	return func(o *assistantOptions) {
		o.monitor = monitor
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AssistantOption {
	return func(o *assistantOptions) {
		o.logger = logger
	}
}

// NewAssistant creates an assistant. Transcripts are held in memory for the
// lifetime of the assistant.
func NewAssistant(opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig:     ai.DefaultConfig(),
		searchConfig: linkedin.DefaultConfig(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	dispatcher := options.dispatcher
	if dispatcher == nil {
		client, err := linkedin.NewClient(options.searchConfig,
			linkedin.WithLogger(options.logger.With("component", "linkedin")))
		if err != nil {
			provider.Close()
			return nil, err
		}
		dispatcher = client
	}

	ranker, err := rerank.NewReranker(provider.Embedder(),
		append([]rerank.Option{rerank.WithLogger(options.logger.With("component", "reranker"))}, options.rerankOptions...)...)
	if err != nil {
		provider.Close()
		return nil, err
	}

	orchestrator, err := session.NewOrchestrator(provider.Classifier(), dispatcher, ranker,
		session.WithMonitor(options.monitor),
		session.WithLogger(options.logger.With("component", "orchestrator")))
	if err != nil {
		provider.Close()
		return nil, err
	}

	backend, err := badger.OpenBackend("", true)
	if err != nil {
		provider.Close()
		return nil, err
	}

	repo, err := badger.NewTranscriptRepository(backend)
	if err != nil {
		backend.Close()
		provider.Close()
		return nil, err
	}

	return &Assistant{
		backend:      backend,
		repo:         repo,
		provider:     provider,
		orchestrator: orchestrator,
		logger:       options.logger,
	}, nil
}

// NewSession starts an empty conversation.
func (a *Assistant) NewSession(opts ...session.StateOption) (*session.State, error) {
	opts = append([]session.StateOption{session.WithStateLogger(a.logger.With("component", "session"))}, opts...)
	state, err := session.NewState(a.repo, opts...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("session started", "session", state.ID())
	return state, nil
}

// HandleTurn answers one user message within state.
func (a *Assistant) HandleTurn(ctx context.Context, state *session.State, query string) (*session.TurnResult, error) {
	return a.orchestrator.HandleTurn(ctx, state, query)
}

// Logout clears the session transcript and history.
func (a *Assistant) Logout(ctx context.Context, state *session.State) error {
	if state == nil {
		return session.ErrStateRequired
	}
	return state.Clear(ctx)
}

// Sessions returns the IDs of sessions with at least one stored turn.
func (a *Assistant) Sessions(ctx context.Context) ([]string, error) {
	return a.repo.ListSessions(ctx)
}

// Close releases the AI provider and the transcript store.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.repo.Close(); err != nil {
		a.logger.Error("error closing transcript repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
