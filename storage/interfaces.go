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


package storage

import (
	"context"

	"github.com/poiesic/scout/core"
)

// Repository is the lifecycle shared by every storage repository.
type Repository interface {
	// Close releases resources held by the repository.
	// The underlying backend is closed separately.
	Close() error
}

// TranscriptRepository stores the display transcript of each chat session.
// Turns are kept in insertion order per session.
type TranscriptRepository interface {
	Repository

	// AppendTurns appends turns to the session transcript in order.
	// Returns ErrDuplicateKey, writing nothing, if any turn (by Turn.ID)
	// is already stored for the session or repeated within turns.
	AppendTurns(ctx context.Context, sessionID string, turns ...*core.Turn) error

	// GetTurns returns the session transcript in insertion order.
	// An unknown session yields an empty slice.
	GetTurns(ctx context.Context, sessionID string) ([]*core.Turn, error)

	// HasTurn reports whether the turn with the given ID is stored for the session.
	HasTurn(ctx context.Context, sessionID string, id core.ID) (bool, error)

	// CountTurns returns the number of turns stored for the session.
	CountTurns(ctx context.Context, sessionID string) (int, error)

	// ClearSession removes every turn of the session.
	// Clearing an unknown session is not an error.
	ClearSession(ctx context.Context, sessionID string) error

	// ListSessions returns the IDs of sessions holding at least one turn.
	ListSessions(ctx context.Context) ([]string, error)
}
