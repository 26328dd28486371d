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

import "errors"

var (
	// ErrClassifierRequired is returned when an intent classifier is not provided.
	ErrClassifierRequired = errors.New("intent classifier required")

	// ErrDispatcherRequired is returned when a search dispatcher is not provided.
	ErrDispatcherRequired = errors.New("search dispatcher required")

	// ErrRankerRequired is returned when a result ranker is not provided.
	ErrRankerRequired = errors.New("result ranker required")

	// ErrRepositoryRequired is returned when a transcript repository is not provided.
	ErrRepositoryRequired = errors.New("transcript repository required")

	// ErrStateRequired is returned when a turn is handled without session state.
	ErrStateRequired = errors.New("session state required")

	// ErrEmptyQuery is returned for blank user input.
	ErrEmptyQuery = errors.New("query cannot be empty")
)
