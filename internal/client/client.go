// Package client is a typed Go client for the leadflow API. It checks the
// caller's capability before any mutating request, maps error statuses to
// typed errors and never retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leadflow_backend/internal/access"
)

const apiPrefix = "/api/v1"

// Client calls one leadflow server on behalf of one caller.
type Client struct {
	baseURL    string
	token      string
	capability access.Capability
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for baseURL (scheme and host, no /api/v1). The
// capability decides which mutations are attempted at all.
func New(baseURL, token string, capability access.Capability, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		capability: capability,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capability returns the capability the client was created with.
func (c *Client) Capability() access.Capability {
	return c.capability
}

// Can reports whether the caller may perform a.
func (c *Client) Can(a access.Action) bool {
	return access.CanMutate(c.capability, a)
}

func (c *Client) authorize(a access.Action) error {
	if !c.Can(a) {
		return &ForbiddenError{Action: a}
	}
	return nil
}

type errorBody struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	contentType := ""
	if in != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, path, query, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	reqURL := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(payload) == 0 {
			return nil
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}
	return statusError(resp.StatusCode, payload)
}

func statusError(status int, payload []byte) error {
	var body errorBody
	_ = json.Unmarshal(payload, &body)
	message := body.Error
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		return &UnauthorizedError{Message: message}
	case status == http.StatusForbidden:
		return &ForbiddenError{Message: message}
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		var fields map[string]string
		if len(body.Details) > 0 {
			_ = json.Unmarshal(body.Details, &fields)
		}
		return &ValidationError{Message: message, Fields: fields}
	case status == http.StatusNotFound:
		return &NotFoundError{Message: message}
	case status == http.StatusConflict:
		return &ConflictError{Message: message}
	default:
		return &UpstreamError{Status: status, Message: message}
	}
}
