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


// Package ai provides abstractions for the AI services used by Scout.
//
// Two backends sit behind these interfaces:
//
//   - Embedder: turns text into vectors, used to rerank search results
//   - IntentClassifier: decides whether a query is a person search, a job
//     search, a request for help, or something else
//
// AIProvider aggregates both so they share configuration and lifecycle.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs via langchaingo
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return interface types. The mock
// constructors return concrete types so tests can inspect call counts and
// inject behavior.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithAPIKey(key))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	c, err := provider.Classifier().Classify(ctx, "busca un senior developer en Madrid")
//	vectors, err := provider.Embedder().EmbedTexts(ctx, []string{"Ada", "Grace"})
package ai
