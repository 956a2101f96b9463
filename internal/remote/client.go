// Package remote is the HTTP client for the lead backend. It implements the
// lead, note, follow-up and user collections consumed by the view-models.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vinayk98/mini-crm/internal/model"
)

// ErrorResponse is the JSON error envelope returned by the backend.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error codes carried in ErrorResponse.Code.
const (
	CodeNotFound   = "not_found"
	CodeValidation = "validation_failed"
	CodeBadRequest = "bad_request"
	CodeInternal   = "internal_error"
)

// Client is a thin JSON client for the lead backend. Requests are never
// retried; the caller decides whether to try again.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the backend rooted at baseURL
// (e.g., http://localhost:3001). timeout bounds each request; zero means
// 30 seconds.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do builds the request, sends it, and decodes the JSON response into
// result. Transport failures and 5xx responses become model.NetworkError,
// 404 becomes model.ErrNotFound, and validation failures become
// model.ValidationError.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	op := method + " " + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &model.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.NetworkError{Op: op, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(op, resp.StatusCode, respBody)
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s: %w", op, err)
	}
	return nil
}

// decodeError maps a non-2xx response onto the error taxonomy.
func decodeError(op string, status int, body []byte) error {
	var envelope ErrorResponse
	_ = json.Unmarshal(body, &envelope)

	msg := envelope.Error
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}

	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, model.ErrNotFound)
	case envelope.Code == CodeValidation && len(envelope.Fields) > 0:
		return &model.ValidationError{Fields: envelope.Fields}
	case status >= 500:
		return &model.NetworkError{
			Op:  op,
			Err: fmt.Errorf("server error (%d): %s", status, msg),
		}
	default:
		return fmt.Errorf("unexpected status %d on %s: %s", status, op, msg)
	}
}
