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
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

const (
	turnRecordPrefix = "trnrec"
	turnIDPrefix     = "trnidx"
	turnSeq          = "trnseq"
)

// validateSessionID rejects IDs that would break key prefixes.
func validateSessionID(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: empty", storage.ErrInvalidSessionID)
	}
	if strings.Contains(sessionID, ":") {
		return fmt.Errorf("%w: %q contains ':'", storage.ErrInvalidSessionID, sessionID)
	}
	return nil
}

// makeSessionPrefix generates the key prefix shared by one session.
// Format: prefix:sessionID:
func makeSessionPrefix(prefix, sessionID string) []byte {
	return []byte(prefix + ":" + sessionID + ":")
}

// makeTurnKey generates the key of a transcript entry.
// Format: prefix:sessionID:seq
func makeTurnKey(sessionID string, seq uint64) []byte {
	prefix := makeSessionPrefix(turnRecordPrefix, sessionID)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// BigEndian keeps lexicographic order equal to insertion order
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeTurnIDKey generates the duplicate-guard index key for a turn.
// Format: prefix:sessionID:turnID
func makeTurnIDKey(sessionID string, id core.ID) []byte {
	prefix := makeSessionPrefix(turnIDPrefix, sessionID)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// sessionFromTurnKey extracts the session ID from a transcript entry key.
func sessionFromTurnKey(key []byte) (string, bool) {
	head := len(turnRecordPrefix) + 1
	tail := 1 + 8
	if len(key) <= head+tail {
		return "", false
	}
	return string(key[head : len(key)-tail]), true
}
