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


// Package storage defines where chat transcripts live.
//
// TranscriptRepository keeps the ordered display transcript of every session
// so the chat surface can re-render it. Turns are serialized with mus-go (see
// TurnMUS). The badger subpackage provides the implementation, opened
// in-memory by default: transcripts last for the lifetime of the process and
// are never shared across processes.
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer func() { repo.Close(); backend.Close() }()
//
// All repository implementations must be safe for concurrent use.
package storage
