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


package core

import (
	"encoding/binary"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Query is the raw text a user entered for one turn.
type Query string

// Intent is the classified purpose of a query.
type Intent int

const (
	// IntentGeneric covers greetings, meta-questions and anything that is not a search.
	IntentGeneric Intent = iota
	// IntentPeople asks for a person search.
	IntentPeople
	// IntentJobs asks for a job search.
	IntentJobs
	// IntentHelp asks how to use the assistant.
	IntentHelp
)

func (i Intent) String() string {
	switch i {
	case IntentPeople:
		return "people"
	case IntentJobs:
		return "jobs"
	case IntentHelp:
		return "help"
	default:
		return "generic"
	}
}

// IsSearch reports whether the intent is dispatched to the search API.
func (i Intent) IsSearch() bool {
	return i == IntentPeople || i == IntentJobs
}

// SearchKind returns the search endpoint that serves the intent.
// The second return value is false for intents that do not search.
func (i Intent) SearchKind() (SearchKind, bool) {
	switch i {
	case IntentPeople:
		return SearchPeople, true
	case IntentJobs:
		return SearchJobs, true
	default:
		return 0, false
	}
}

// ParseIntent maps a label produced by the language backend to an Intent.
// Both the English names and the Spanish labels used in the instruction
// template are accepted. Unknown labels map to IntentGeneric.
func ParseIntent(label string) Intent {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "people", "personas", "persona":
		return IntentPeople
	case "jobs", "trabajos", "trabajo":
		return IntentJobs
	case "help", "ayuda":
		return IntentHelp
	default:
		return IntentGeneric
	}
}

// SearchKind selects one of the external search endpoints.
type SearchKind int

const (
	// SearchPeople searches for people profiles.
	SearchPeople SearchKind = iota + 1
	// SearchJobs searches for job postings.
	SearchJobs
)

func (k SearchKind) String() string {
	switch k {
	case SearchPeople:
		return "people"
	case SearchJobs:
		return "jobs"
	default:
		return "unknown"
	}
}

// Endpoint returns the path of the search API endpoint for the kind.
func (k SearchKind) Endpoint() string {
	switch k {
	case SearchPeople:
		return "search-people"
	case SearchJobs:
		return "search-jobs-v2"
	default:
		return ""
	}
}

// SearchParameters maps filter names to values.
// A nil value means the filter is absent; a pointer to "" is an explicit empty filter.
type SearchParameters map[string]*string

// KeywordParameters builds the parameters for a query. The whole query is
// passed as the keywords filter; no structured extraction takes place.
func KeywordParameters(query Query) SearchParameters {
	keywords := string(query)
	return SearchParameters{"keywords": &keywords}
}

// Set stores an explicit value for a filter.
func (p SearchParameters) Set(name, value string) {
	p[name] = &value
}

// Compact returns the filters that are present, ready to be encoded as a
// query string. Absent filters are dropped; empty strings are kept.
func (p SearchParameters) Compact() url.Values {
	values := url.Values{}
	for name, value := range p {
		if value == nil {
			continue
		}
		values.Set(name, *value)
	}
	return values
}

// ResultItem is a loosely structured record returned by the search API.
type ResultItem map[string]any

// Text returns the named field as text. Missing or non-string fields yield "".
func (r ResultItem) Text(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// ResultSet is an ordered sequence of result items.
type ResultSet []ResultItem

// Role identifies who authored a conversation turn.
type Role int

const (
	// RoleUser marks a turn typed by the user.
	RoleUser Role = iota + 1
	// RoleAssistant marks a turn produced by the assistant.
	RoleAssistant
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// Turn is a single message in a session transcript.
type Turn struct {
	Role      Role
	Content   string
	Timestamp time.Time // When the turn was added to the session
}

// NewTurn creates a turn stamped with the current time at microsecond
// precision, the resolution turns are stored with. Stamps are strictly
// increasing within the process, so two turns never share an ID.
func NewTurn(role Role, content string) *Turn {
	return &Turn{
		Role:      role,
		Content:   content,
		Timestamp: nextStamp(),
	}
}

var lastStamp atomic.Int64

func nextStamp() time.Time {
	now := time.Now().UnixMicro()
	for {
		last := lastStamp.Load()
		if now <= last {
			now = last + 1
		}
		if lastStamp.CompareAndSwap(last, now) {
			return time.UnixMicro(now).UTC()
		}
	}
}

// SameMessage reports whether two turns carry the same role and content.
func (t *Turn) SameMessage(other *Turn) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Role == other.Role && t.Content == other.Content
}

// ID returns the identity of this turn instance. Two turns with the same
// role and content but different timestamps have different IDs.
func (t *Turn) ID() ID {
	return IDFromContent(t.Role.String() + "|" + t.Timestamp.UTC().Format(time.RFC3339Nano) + "|" + t.Content)
}
