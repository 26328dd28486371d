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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/poiesic/scout/core"
)

// maxErrorBody caps how much of a rejected response is kept in a StatusError.
const maxErrorBody = 512

// Client dispatches searches to the LinkedIn data API.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient replaces the HTTP client. Its Timeout is left untouched.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			return ErrHTTPClientRequired
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a search client from config.
func NewClient(config Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     slog.Default().With("component", "linkedin"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// SearchPeople dispatches a people search.
func (c *Client) SearchPeople(ctx context.Context, params core.SearchParameters) (core.ResultSet, error) {
	return c.Dispatch(ctx, core.SearchPeople, params)
}

// SearchJobs dispatches a job search.
func (c *Client) SearchJobs(ctx context.Context, params core.SearchParameters) (core.ResultSet, error) {
	return c.Dispatch(ctx, core.SearchJobs, params)
}

// Dispatch runs one search of the given kind.
// Absent parameters are dropped before the request is built; empty strings
// are sent. Transport errors, 429 and 5xx answers are retried up to
// MaxRetries attempts; any other non-2xx answer fails at once. Both outcomes
// wrap core.ErrUpstreamRejected. An undecodable body wraps
// core.ErrMalformedResult.
func (c *Client) Dispatch(ctx context.Context, kind core.SearchKind, params core.SearchParameters) (core.ResultSet, error) {
	if err := core.ValidateSearchKind(kind); err != nil {
		return nil, err
	}

	endpoint := c.endpointURL(kind, params)
	c.logger.Debug("dispatching search", "kind", kind, "url", endpoint)

	var body []byte
	err := RetryFixed(ctx, func() error {
		b, err := c.get(ctx, endpoint)
		if err != nil {
			return err
		}
		body = b
		return nil
	}, c.config.MaxRetries, c.config.WaitTime, isRetryable)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		c.logger.Error("search request failed", "kind", kind, "err", err)
		return nil, fmt.Errorf("%w: %s: %w", core.ErrUpstreamRejected, kind, err)
	}

	results, err := decodeResults(body)
	if err != nil {
		c.logger.Error("error decoding search response", "kind", kind, "err", err)
		return nil, err
	}

	c.logger.Debug("search complete", "kind", kind, "count", len(results))
	return results, nil
}

func (c *Client) endpointURL(kind core.SearchKind, params core.SearchParameters) string {
	base := strings.TrimRight(c.config.BaseURL, "/") + "/" + kind.Endpoint()
	query := params.Compact().Encode()
	if query == "" {
		return base
	}
	return base + "?" + query
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", c.config.APIKey)
	req.Header.Set("x-rapidapi-host", c.config.Host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet}
	}
	return body, nil
}

// isRetryable retries transport failures and temporary statuses.
// Context cancellation is never retried.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

// decodeResults extracts the items array from a search response.
// A JSON object without items decodes to an empty set.
func decodeResults(body []byte) (core.ResultSet, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty response body", core.ErrMalformedResult)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedResult, err)
	}

	raw, ok := envelope["items"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return core.ResultSet{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var items core.ResultSet
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: items: %w", core.ErrMalformedResult, err)
	}
	if items == nil {
		items = core.ResultSet{}
	}
	return items, nil
}
