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


package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

// genericFallback is shown when a generic turn comes back without a message.
const genericFallback = "No he entendido tu consulta. Escribe 'ayuda' para ver qué puedo buscar."

// Dispatcher runs an external search.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind core.SearchKind, params core.SearchParameters) (core.ResultSet, error)
}

// Ranker reorders a result set. It must return a permutation of its input.
type Ranker interface {
	Rerank(ctx context.Context, results core.ResultSet) (core.ResultSet, error)
}

// TurnResult describes how a turn ended.
type TurnResult struct {
	Query             core.Query
	Intent            core.Intent
	ClassifierMessage string         // Classifier output shown to the user
	Results           core.ResultSet // Nil unless a search ran
	Ranked            bool           // Results are in reranked order
	Help              bool           // Help guidance is part of the reply
	Reply             string         // Content of the assistant turn
	Stage             Stage          // StageAppended or StageTurnFailed
	Err               error          // Cause of a failed turn
}

// Failed reports whether the turn ended in StageTurnFailed.
func (r *TurnResult) Failed() bool {
	return r.Stage == StageTurnFailed
}

// Orchestrator sequences classification, search and reranking for each turn.
type Orchestrator struct {
	classifier ai.IntentClassifier
	dispatcher Dispatcher
	ranker     Ranker
	monitor    TurnMonitor
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithMonitor sets a monitor notified at every stage.
func WithMonitor(monitor TurnMonitor) Option {
	return func(o *Orchestrator) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		o.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(classifier ai.IntentClassifier, dispatcher Dispatcher, ranker Ranker, opts ...Option) (*Orchestrator, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if dispatcher == nil {
		return nil, ErrDispatcherRequired
	}
	if ranker == nil {
		return nil, ErrRankerRequired
	}

	o := &Orchestrator{
		classifier: classifier,
		dispatcher: dispatcher,
		ranker:     ranker,
		monitor:    &noopMonitor{},
		logger:     slog.Default().With("component", "orchestrator"),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// HandleTurn runs one user message through the pipeline and appends the user
// turn and the assistant reply to state.
//
// Classifier and search failures do not return an error: the turn ends in
// StageTurnFailed with a failure reply appended and the session stays usable.
// An error is returned only for blank input or when the transcript cannot be
// written.
func (o *Orchestrator) HandleTurn(ctx context.Context, state *State, query string) (*TurnResult, error) {
	if state == nil {
		return nil, ErrStateRequired
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	result := &TurnResult{Query: core.Query(query)}
	o.monitor.Enter(StageReceived)

	if _, err := state.Append(ctx, core.NewTurn(core.RoleUser, query)); err != nil {
		o.logger.Error("error appending user turn", "session", state.ID(), "err", err)
		return nil, err
	}

	help := IsHelpRequest(query)
	classification, err := o.classifier.Classify(ctx, result.Query)
	switch {
	case err != nil && help:
		o.logger.Warn("classifier failed on a help request", "session", state.ID(), "err", err)
		classification = &ai.Classification{Intent: core.IntentHelp}
	case err != nil:
		o.logger.Error("error classifying query", "session", state.ID(), "err", err)
		return o.fail(ctx, state, result, err)
	case classification == nil:
		classification = &ai.Classification{}
	}
	result.Intent = classification.Intent
	result.ClassifierMessage = classification.Message
	result.Help = help || result.Intent == core.IntentHelp
	if help && !result.Intent.IsSearch() {
		result.Intent = core.IntentHelp
	}
	o.monitor.Enter(StageClassified)
	o.monitor.AfterClassification(classification)
	o.logger.Debug("classified query", "session", state.ID(), "intent", result.Intent)

	switch kind, isSearch := result.Intent.SearchKind(); {
	case isSearch:
		if err := o.search(ctx, kind, result); err != nil {
			return o.fail(ctx, state, result, err)
		}
		if result.Help {
			result.Reply = HelpText + "\n\n" + result.Reply
		}
	case result.Intent == core.IntentHelp:
		result.Reply = HelpText
	default:
		result.Reply = classification.Message
		if strings.TrimSpace(result.Reply) == "" {
			result.Reply = genericFallback
		}
	}

	if _, err := state.Append(ctx, core.NewTurn(core.RoleAssistant, result.Reply)); err != nil {
		o.logger.Error("error appending assistant turn", "session", state.ID(), "err", err)
		return nil, err
	}

	result.Stage = StageAppended
	o.monitor.Enter(StageAppended)
	o.monitor.Finish(result)
	return result, nil
}

// search dispatches the query, reranks the results and renders the reply.
// Rerank failures are logged and the unranked results kept.
func (o *Orchestrator) search(ctx context.Context, kind core.SearchKind, result *TurnResult) error {
	results, err := o.dispatcher.Dispatch(ctx, kind, core.KeywordParameters(result.Query))
	if err != nil {
		o.logger.Error("error dispatching search", "kind", kind, "err", err)
		return err
	}
	o.monitor.Enter(StageDispatched)
	o.monitor.AfterDispatch(kind, results)

	ranked, err := o.ranker.Rerank(ctx, results)
	if err != nil {
		o.logger.Warn("reranking failed, keeping original order", "kind", kind, "count", len(results), "err", err)
	} else {
		results = ranked
		result.Ranked = true
	}
	o.monitor.Enter(StageReranked)
	o.monitor.AfterRerank(results, result.Ranked)

	reply, err := renderResults(results)
	if err != nil {
		return err
	}
	result.Results = results
	result.Reply = reply
	return nil
}

// fail ends the turn with a failure reply.
func (o *Orchestrator) fail(ctx context.Context, state *State, result *TurnResult, cause error) (*TurnResult, error) {
	result.Stage = StageTurnFailed
	result.Err = cause
	result.Reply = failureMessage(cause)

	if _, err := state.Append(ctx, core.NewTurn(core.RoleAssistant, result.Reply)); err != nil {
		o.logger.Error("error appending failure turn", "session", state.ID(), "err", err)
		return nil, errors.Join(cause, err)
	}

	o.monitor.Enter(StageTurnFailed)
	o.monitor.Finish(result)
	return result, nil
}

// renderResults serializes results as indented JSON.
func renderResults(results core.ResultSet) (string, error) {
	if results == nil {
		results = core.ResultSet{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrMalformedResult, err)
	}
	return string(data), nil
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrBackendUnavailable):
		return "Lo siento, el servicio de lenguaje no está disponible. Inténtalo de nuevo."
	case errors.Is(err, core.ErrUpstreamRejected):
		return "Lo siento, la búsqueda en LinkedIn falló. Inténtalo de nuevo más tarde."
	case errors.Is(err, core.ErrMalformedResult):
		return "Lo siento, no pude interpretar la respuesta de LinkedIn."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "La consulta se canceló antes de terminar."
	default:
		return "Lo siento, no pude completar tu consulta."
	}
}
