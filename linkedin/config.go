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
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the RapidAPI gateway for the LinkedIn data API.
	DefaultBaseURL = "https://linkedin-data-api.p.rapidapi.com"

	// DefaultHost is sent as x-rapidapi-host.
	DefaultHost = "linkedin-data-api.p.rapidapi.com"

	DefaultMaxRetries = 3
	DefaultWaitTime   = 2 * time.Second
	DefaultTimeout    = 30 * time.Second
)

// Config holds the search API endpoint, credentials and retry budget.
type Config struct {
	BaseURL    string
	Host       string
	APIKey     string
	MaxRetries int           // Total attempts per dispatch
	WaitTime   time.Duration // Fixed wait between attempts
	Timeout    time.Duration // Per-request HTTP timeout
}

// DefaultConfig returns a Config with the public RapidAPI endpoint and the
// default retry budget. APIKey is left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		Host:       DefaultHost,
		MaxRetries: DefaultMaxRetries,
		WaitTime:   DefaultWaitTime,
		Timeout:    DefaultTimeout,
	}
}

// Validate checks that the configuration can be used to dispatch requests.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrBaseURLRequired
	}
	if strings.TrimSpace(c.Host) == "" {
		return ErrHostRequired
	}
	if c.APIKey == "" {
		return ErrAPIKeyRequired
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("linkedin config: %w", ErrInvalidMaxAttempts)
	}
	if c.WaitTime < 0 {
		return ErrNegativeWaitTime
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
