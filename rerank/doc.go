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


// Package rerank orders search results by semantic similarity.
//
// A Reranker extracts one text field from every result item, builds an
// ephemeral Index over the embeddings of those texts, and probes it with a
// fixed neutral query asking for every neighbour. The neighbour order,
// nearest first, becomes the new order of the items.
//
// The Index lives for a single Rerank call. It is an exact search over an
// in-memory slice; nothing is persisted or shared between calls.
package rerank
