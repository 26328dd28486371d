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


package rerank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

const (
	// DefaultKey is the result field used as text for ranking.
	DefaultKey = "name"

	// DefaultProbe is the neutral query used to order the index.
	DefaultProbe = "orden semántico"
)

// Reranker reorders result sets by similarity to a fixed probe.
type Reranker struct {
	embedder    ai.Embedder
	key         string
	probe       string
	textMapping bool
	logger      *slog.Logger
}

// Option configures a Reranker.
type Option func(*Reranker) error

// WithKey sets the result field used as text.
// Default is "name".
func WithKey(key string) Option {
	return func(r *Reranker) error {
		r.key = key
		return nil
	}
}

// WithProbe replaces the probe text. Changing the probe changes the ordering.
func WithProbe(probe string) Option {
	return func(r *Reranker) error {
		r.probe = probe
		return nil
	}
}

// WithTextMapping maps neighbours back to items by text instead of by index.
// Items that share a text all resolve to the first of them, so the output
// may repeat one item and lose another.
func WithTextMapping() Option {
	return func(r *Reranker) error {
		r.textMapping = true
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewReranker creates a reranker backed by the given embedder.
func NewReranker(embedder ai.Embedder, opts ...Option) (*Reranker, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Reranker{
		embedder: embedder,
		key:      DefaultKey,
		probe:    DefaultProbe,
		logger:   slog.Default().With("component", "reranker"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Rerank returns the items of results in semantic order.
// An empty input is returned unchanged without calling the embedder.
// Items missing the key field are ranked by the empty text.
func (r *Reranker) Rerank(ctx context.Context, results core.ResultSet) (core.ResultSet, error) {
	if len(results) == 0 {
		return results, nil
	}

	texts := make([]string, len(results))
	for i, item := range results {
		texts[i] = item.Text(r.key)
	}

	index, err := BuildIndex(ctx, r.embedder, texts)
	if err != nil {
		r.logger.Error("error building similarity index", "count", len(texts), "err", err)
		return nil, wrapBackend(err)
	}

	neighbors, err := index.Search(ctx, r.embedder, r.probe, index.Len())
	if err != nil {
		r.logger.Error("error probing similarity index", "err", err)
		return nil, wrapBackend(err)
	}

	ordered := make(core.ResultSet, 0, len(neighbors))
	for _, n := range neighbors {
		pos := n.Index
		if r.textMapping {
			pos = firstIndexOf(texts, n.Text)
		}
		ordered = append(ordered, results[pos])
	}

	r.logger.Debug("reranked results", "count", len(ordered))
	return ordered, nil
}

func firstIndexOf(texts []string, text string) int {
	for i, t := range texts {
		if t == text {
			return i
		}
	}
	return -1
}

// wrapBackend tags embedder failures as backend failures unless they already are.
func wrapBackend(err error) error {
	if errors.Is(err, ErrEmbedderRequired) || errors.Is(err, core.ErrBackendUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", core.ErrBackendUnavailable, err)
}
