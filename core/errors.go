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

import "errors"

// Pipeline failure classes. Components wrap these so the session layer can
// tell them apart with errors.Is.
var (
	// ErrBackendUnavailable indicates the language or embedding backend failed.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrUpstreamRejected indicates the search API answered with a non-2xx
	// status after the retry budget was spent.
	ErrUpstreamRejected = errors.New("upstream rejected request")

	// ErrMalformedResult indicates the search API body could not be decoded.
	ErrMalformedResult = errors.New("malformed result")
)

// Domain validation errors
var (
	// ErrInvalidTurn indicates a Turn failed validation.
	ErrInvalidTurn = errors.New("invalid turn")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidRole indicates an invalid Role value.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrInvalidSearchKind indicates an unknown SearchKind value.
	ErrInvalidSearchKind = errors.New("invalid search kind")
)
