// Package testutil provides HTTP helpers for end-to-end tests of the storefront API.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/require"
)

// Envelope is dto.Response with a typed payload
type Envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

// Client sends JSON requests to an http.Handler
type Client struct {
	t       *testing.T
	handler http.Handler
	// Token is sent as a bearer token when set
	Token string
}

// NewClient creates a client for handler
func NewClient(t *testing.T, handler http.Handler) *Client {
	return &Client{t: t, handler: handler}
}

// Do performs a request. A non-nil body is encoded as JSON.
func (c *Client) Do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err, "Failed to marshal request body")
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

// Create posts body to path, requires 201 and returns the created id
func (c *Client) Create(path string, body any) uint64 {
	c.t.Helper()

	w := c.Do(http.MethodPost, path, body)
	require.Equal(c.t, http.StatusCreated, w.Code, "POST %s: %s", path, w.Body.String())
	return Decode[struct {
		ID uint64 `json:"id"`
	}](c.t, w).Data.ID
}

// Decode parses the response envelope
func Decode[T any](t *testing.T, w *httptest.ResponseRecorder) Envelope[T] {
	t.Helper()

	var env Envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "Failed to decode %s", w.Body.String())
	return env
}

// ErrorCode returns the error code of a failed response
func ErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	env := Decode[json.RawMessage](t, w)
	require.False(t, env.Success, "expected a failed response: %s", w.Body.String())
	require.NotNil(t, env.Error)
	return env.Error.Code
}
