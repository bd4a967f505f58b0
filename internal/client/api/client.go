package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/forkahq/forka-cli/internal/logging"
)

const defaultTimeout = 10 * time.Second

// Client talks to the ForKa REST API. All methods are safe for concurrent
// use; token handling lives in the underlying transport.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  logging.Logger
}

// Options tune a Client beyond the required arguments.
type Options struct {
	// RefreshPath overrides the token-refresh endpoint. Empty selects the
	// SimpleJWT default used by the backend.
	RefreshPath string

	// Timeout bounds every request. Zero selects defaultTimeout.
	Timeout time.Duration

	// OnSessionExpired fires after an unrecoverable 401 purged the session.
	OnSessionExpired func()

	// Transport replaces the base RoundTripper, for tests.
	Transport http.RoundTripper
}

// New builds a Client for the API at baseURL. tokens supplies and receives
// the persisted credential pair.
func New(baseURL string, tokens TokenSource, logger logging.Logger, opts Options) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")

	refreshPath := opts.RefreshPath
	if refreshPath == "" {
		refreshPath = "/auth/token/refresh/"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	transport := newAuthTransport(opts.Transport, baseURL+refreshPath, tokens, logger.With("component", "transport"), opts.OnSessionExpired)

	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout, Transport: transport},
		logger:  logger,
	}
}

// do sends a JSON request and decodes the response body into out when the
// status matches want. Any other status is mapped through parseError.
func (c *Client) do(ctx context.Context, method, path string, in any, out any, want int) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out, want)
}

// send executes a prepared request and handles status mapping and decoding.
func (c *Client) send(req *http.Request, out any, want int) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return req.Context().Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != want {
		return parseError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
