package testhelpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/stretchr/testify/require"
)

// BuildRequest creates a request against BaseURL. A non-nil body is JSON encoded.
func (h *TestHelper) BuildRequest(method, path string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.T, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.BaseURL+path, reader)
	require.NoError(h.T, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// NewHTTPClient creates an HTTP client with a generous timeout; calendar
// regeneration runs inside some requests.
func (h *TestHelper) NewHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// DoRequest performs an HTTP request and asserts that no network-level error occurred.
func (h *TestHelper) DoRequest(req *http.Request, client *http.Client) *http.Response {
	resp, err := client.Do(req)
	require.NoError(h.T, err, "HTTP request failed")
	return resp
}

// ReadBody reads the response body and returns it as a string for logging or inspection.
func (h *TestHelper) ReadBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return "<nil response or body>"
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	// After reading, we need to restore the body so it can be read again if needed.
	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	require.NoError(h.T, err, "Failed to read response body")
	return string(bodyBytes)
}

// DecodeJSON reads resp into dst and closes the body.
func (h *TestHelper) DecodeJSON(resp *http.Response, dst any) {
	defer resp.Body.Close()
	require.NoError(h.T, json.NewDecoder(resp.Body).Decode(dst), "Failed to decode response body")
}
