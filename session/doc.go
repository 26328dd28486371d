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


// Package session runs the conversation: one State per chat session and an
// Orchestrator that takes each user message through classification, search
// dispatch and reranking before appending the reply to the transcript.
//
// A turn moves through the stages
//
//	Idle → Received → Classified → Dispatched → Reranked → Appended
//
// Help and generic turns skip straight from Classified to Appended. A failing
// classifier or search call ends the turn in TurnFailed: a failure reply is
// appended and the session stays usable. A failing reranker is not fatal;
// the unranked results are shown instead.
//
// State is owned by a single conversation and must not be shared between
// goroutines. Independent sessions may run concurrently.
package session
