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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/scout/core"
)

// TurnMUS serializes a core.Turn as role (varint), content (length-prefixed
// string) and timestamp (varint Unix microseconds).
var TurnMUS = turnMUS{}

type turnMUS struct{}

func (turnMUS) Marshal(t core.Turn, bs []byte) (n int) {
	n = varint.Int64.Marshal(int64(t.Role), bs)
	n += ord.String.Marshal(t.Content, bs[n:])
	return n + varint.Int64.Marshal(t.Timestamp.UnixMicro(), bs[n:])
}

func (turnMUS) Unmarshal(bs []byte) (t core.Turn, n int, err error) {
	role, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	t.Role = core.Role(role)

	var n1 int
	t.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	micros, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	t.Timestamp = time.UnixMicro(micros).UTC()
	return
}

func (turnMUS) Size(t core.Turn) (size int) {
	size = varint.Int64.Size(int64(t.Role))
	size += ord.String.Size(t.Content)
	return size + varint.Int64.Size(t.Timestamp.UnixMicro())
}

// MarshalTurn serializes a Turn to bytes.
// Timestamps are stored with microsecond precision.
func MarshalTurn(turn *core.Turn) []byte {
	buf := make([]byte, TurnMUS.Size(*turn))
	TurnMUS.Marshal(*turn, buf)
	return buf
}

// UnmarshalTurn deserializes a Turn from bytes.
func UnmarshalTurn(data []byte) (*core.Turn, error) {
	turn, _, err := TurnMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateRole(turn.Role); err != nil {
		return nil, err
	}
	return &turn, nil
}

// MarshalSequence serializes a transcript sequence number to bytes.
func MarshalSequence(seq uint64) []byte {
	buf := make([]byte, varint.Uint64.Size(seq))
	varint.Uint64.Marshal(seq, buf)
	return buf
}

// UnmarshalSequence deserializes a transcript sequence number from bytes.
func UnmarshalSequence(data []byte) (uint64, error) {
	seq, _, err := varint.Uint64.Unmarshal(data)
	return seq, err
}
