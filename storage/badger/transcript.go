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


package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

// TranscriptRepository implements storage.TranscriptRepository using BadgerDB.
type TranscriptRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.TranscriptRepository = (*TranscriptRepository)(nil)

// NewTranscriptRepository creates a new TranscriptRepository.
func NewTranscriptRepository(backend *Backend) (*TranscriptRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	seq, err := backend.GetSequence(turnSeq)
	if err != nil {
		return nil, err
	}

	return &TranscriptRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the sequence.
func (r *TranscriptRepository) Close() error {
	return r.seq.Release()
}

// AppendTurns appends turns to the session transcript.
func (r *TranscriptRepository) AppendTurns(ctx context.Context, sessionID string, turns ...*core.Turn) error {
	if err := r.check(sessionID); err != nil {
		return err
	}
	for _, turn := range turns {
		if err := core.ValidateTurn(turn); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		seen := make(map[core.ID]struct{}, len(turns))
		for _, turn := range turns {
			id := turn.ID()
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: turn %d repeated in batch", storage.ErrDuplicateKey, id)
			}
			seen[id] = struct{}{}

			idKey := makeTurnIDKey(sessionID, id)
			exists, err := keyExists(tx, idKey)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%w: turn %d already in session %s", storage.ErrDuplicateKey, id, sessionID)
			}

			next, err := r.seq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if next == 0 {
				next, err = r.seq.Next()
				if err != nil {
					return err
				}
			}

			if err := tx.Set(makeTurnKey(sessionID, next), storage.MarshalTurn(turn)); err != nil {
				return err
			}
			if err := tx.Set(idKey, storage.MarshalSequence(next)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetTurns returns the session transcript in insertion order.
func (r *TranscriptRepository) GetTurns(ctx context.Context, sessionID string) ([]*core.Turn, error) {
	if err := r.check(sessionID); err != nil {
		return nil, err
	}

	turns := []*core.Turn{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSessionPrefix(turnRecordPrefix, sessionID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var turn *core.Turn
			err := iter.Item().Value(func(val []byte) error {
				var err error
				turn, err = storage.UnmarshalTurn(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
			}
			turns = append(turns, turn)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return turns, nil
}

// HasTurn reports whether the turn is stored for the session.
func (r *TranscriptRepository) HasTurn(ctx context.Context, sessionID string, id core.ID) (bool, error) {
	if err := r.check(sessionID); err != nil {
		return false, err
	}

	var exists bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		exists, err = keyExists(tx, makeTurnIDKey(sessionID, id))
		return err
	}, false)
	return exists, err
}

// CountTurns returns the number of turns stored for the session.
func (r *TranscriptRepository) CountTurns(ctx context.Context, sessionID string) (int, error) {
	if err := r.check(sessionID); err != nil {
		return 0, err
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeSessionPrefix(turnRecordPrefix, sessionID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// ClearSession removes every turn and index entry of the session.
func (r *TranscriptRepository) ClearSession(ctx context.Context, sessionID string) error {
	if err := r.check(sessionID); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		var keys [][]byte
		for _, prefix := range []string{turnRecordPrefix, turnIDPrefix} {
			keys = append(keys, collectKeys(tx, makeSessionPrefix(prefix, sessionID))...)
		}
		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ListSessions returns the IDs of sessions holding at least one turn, sorted.
func (r *TranscriptRepository) ListSessions(ctx context.Context) ([]string, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	sessions := []string{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range collectKeys(tx, []byte(turnRecordPrefix+":")) {
			sessionID, ok := sessionFromTurnKey(key)
			if !ok {
				continue
			}
			// Keys are sorted, so a session's entries are contiguous
			if n := len(sessions); n > 0 && sessions[n-1] == sessionID {
				continue
			}
			sessions = append(sessions, sessionID)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	slices.Sort(sessions)
	return sessions, nil
}

func (r *TranscriptRepository) check(sessionID string) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return validateSessionID(sessionID)
}

func keyExists(tx *badger.Txn, key []byte) (bool, error) {
	_, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// collectKeys returns copies of every key under prefix.
func collectKeys(tx *badger.Txn, prefix []byte) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	return keys
}
