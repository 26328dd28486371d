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


package linkedin

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrAPIKeyRequired is returned when no RapidAPI key is configured.
	ErrAPIKeyRequired = errors.New("search API key is required")

	ErrBaseURLRequired    = errors.New("linkedin config: BaseURL is required")
	ErrHostRequired       = errors.New("linkedin config: Host is required")
	ErrNegativeWaitTime   = errors.New("linkedin config: WaitTime must not be negative")
	ErrInvalidTimeout     = errors.New("linkedin config: Timeout must be positive")
	ErrHTTPClientRequired = errors.New("http client cannot be nil")
)

// StatusError records a non-2xx answer from the search API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("search API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("search API returned status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the status is worth another attempt.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
