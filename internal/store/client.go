// Package store is the HTTP client for the remote record store, the sole
// source of truth for entity data. It normalizes the store's response
// shapes and error bodies into the types the controllers consume.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the record store API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// Options configures the store client.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// NewClient creates a record store client for the given base URL.
func NewClient(baseURL string, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("store base URL is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}, nil
}

// do performs one request against the store. A nil result discards the
// response body; otherwise the body is decoded as JSON into result.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	requestID := uuid.NewString()

	c.logger.Debug("store request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
	)

	var bodyReader io.Reader

	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: method, URL: reqURL, Err: err}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp, path, requestID)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// errorFromResponse maps a non-2xx response onto the error taxonomy: 404
// to NotFoundError, a structured {errors:[{field,message}]} body to
// ValidationError, anything else to StatusError.
func (c *Client) errorFromResponse(resp *http.Response, path, requestID string) error {
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	c.logger.Debug("store error response",
		slog.Int("status", resp.StatusCode),
		slog.String("path", path),
		slog.String("request_id", requestID),
	)

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Path: path}
	}

	if resp.StatusCode < 500 {
		var structured struct {
			Errors []FieldError `json:"errors"`
		}

		if err := json.Unmarshal(respBody, &structured); err == nil && len(structured.Errors) > 0 {
			return &ValidationError{Errors: structured.Errors}
		}
	}

	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
}
