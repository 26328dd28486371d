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
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
)

// State is the transcript and identity of one chat session.
//
// Every turn lives in two places: the langchaingo chat history handed to
// language-model calls and the display transcript kept in the repository.
// Append writes both in one step; Sync repairs the transcript when the
// history was written directly.
type State struct {
	id      string
	history *memory.ChatMessageHistory
	turns   []*core.Turn
	known   map[core.ID]struct{}
	synced  int // history messages reflected in turns
	repo    storage.TranscriptRepository
	logger  *slog.Logger
}

// StateOption configures a State.
type StateOption func(*State) error

// WithSessionID sets the session identifier instead of a random UUID.
func WithSessionID(id string) StateOption {
	return func(s *State) error {
		if id == "" {
			return fmt.Errorf("%w: empty", storage.ErrInvalidSessionID)
		}
		s.id = id
		return nil
	}
}

// WithStateLogger sets a custom logger.
// Default is slog.Default().
func WithStateLogger(logger *slog.Logger) StateOption {
	return func(s *State) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewState creates an empty session backed by repo.
func NewState(repo storage.TranscriptRepository, opts ...StateOption) (*State, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	s := &State{
		id:      uuid.NewString(),
		history: memory.NewChatMessageHistory(),
		known:   make(map[core.ID]struct{}),
		repo:    repo,
		logger:  slog.Default().With("component", "session"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ID returns the session identifier.
func (s *State) ID() string {
	return s.id
}

// History returns the chat history shared with language-model calls.
// Messages added to it directly show up in the transcript after Sync.
func (s *State) History() *memory.ChatMessageHistory {
	return s.history
}

// Append adds turn to the history and the transcript.
// Messages written to the history directly are synced first, so they keep
// their place ahead of turn.
// Re-appending a turn already in the session is rejected and returns false;
// a new turn with the same role and content is appended normally.
func (s *State) Append(ctx context.Context, turn *core.Turn) (bool, error) {
	if err := core.ValidateTurn(turn); err != nil {
		return false, err
	}
	if _, err := s.Sync(ctx); err != nil {
		return false, err
	}

	id := turn.ID()
	if _, ok := s.known[id]; ok {
		s.logger.Debug("skipping duplicate turn", "session", s.id, "role", turn.Role)
		return false, nil
	}

	if err := s.repo.AppendTurns(ctx, s.id, turn); err != nil {
		return false, err
	}
	if err := s.addToHistory(ctx, turn); err != nil {
		return false, err
	}

	s.known[id] = struct{}{}
	s.turns = append(s.turns, turn)
	s.synced++
	return true, nil
}

// Sync appends to the transcript every history message added since the
// last Append or Sync and returns how many turns were added. Messages are
// consumed by position, so repeated messages are kept and none is copied twice.
func (s *State) Sync(ctx context.Context) (int, error) {
	messages, err := s.history.Messages(ctx)
	if err != nil {
		return 0, err
	}
	if s.synced > len(messages) {
		s.logger.Warn("history shorter than transcript", "session", s.id, "messages", len(messages), "synced", s.synced)
		s.synced = len(messages)
	}

	added := 0
	for _, msg := range messages[s.synced:] {
		s.synced++
		role := roleOf(msg)
		if role == 0 || msg.GetContent() == "" {
			s.logger.Debug("skipping history message", "session", s.id, "type", msg.GetType())
			continue
		}
		turn := core.NewTurn(role, msg.GetContent())
		if err := s.repo.AppendTurns(ctx, s.id, turn); err != nil {
			return added, err
		}
		s.known[turn.ID()] = struct{}{}
		s.turns = append(s.turns, turn)
		added++
	}

	if added > 0 {
		s.logger.Debug("synced transcript from history", "session", s.id, "added", added)
	}
	return added, nil
}

// Turns returns the stored transcript in order.
func (s *State) Turns(ctx context.Context) ([]*core.Turn, error) {
	return s.repo.GetTurns(ctx, s.id)
}

// Len returns the number of turns in the session.
func (s *State) Len() int {
	return len(s.turns)
}

// Clear empties the history and the transcript. The session ID is kept.
func (s *State) Clear(ctx context.Context) error {
	if err := s.history.Clear(ctx); err != nil {
		return err
	}
	if err := s.repo.ClearSession(ctx, s.id); err != nil {
		return err
	}
	s.turns = nil
	s.known = make(map[core.ID]struct{})
	s.synced = 0
	s.logger.Info("session cleared", "session", s.id)
	return nil
}

func (s *State) addToHistory(ctx context.Context, turn *core.Turn) error {
	switch turn.Role {
	case core.RoleUser:
		return s.history.AddUserMessage(ctx, turn.Content)
	case core.RoleAssistant:
		return s.history.AddAIMessage(ctx, turn.Content)
	default:
		return fmt.Errorf("%w: value %d", core.ErrInvalidRole, turn.Role)
	}
}

func roleOf(msg llms.ChatMessage) core.Role {
	switch msg.GetType() {
	case llms.ChatMessageTypeHuman:
		return core.RoleUser
	case llms.ChatMessageTypeAI:
		return core.RoleAssistant
	default:
		return 0
	}
}
