// Package backend is the typed HTTP gateway to the REST API. All outbound
// portal traffic passes through one Client, which attaches the bearer token
// when one is available and normalizes every failure into the gateway error
// taxonomy (APIError, UnauthorizedError, TransportError).
package backend

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
)

// TokenProvider supplies the current access token, if any. Implemented by
// the session token storage so login/logout are immediately visible to the
// next request.
type TokenProvider interface {
	AccessToken() (string, bool)
}

// TokenProviderFunc adapts a function to the TokenProvider interface.
type TokenProviderFunc func() (string, bool)

// AccessToken implements TokenProvider.
func (f TokenProviderFunc) AccessToken() (string, bool) { return f() }

// StaticToken is a TokenProvider for a fixed token (CLI usage).
type StaticToken string

// AccessToken implements TokenProvider.
func (t StaticToken) AccessToken() (string, bool) { return string(t), t != "" }

// Client is the REST API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Tokens supplies the bearer token attached to outbound requests.
	// May be nil for anonymous use.
	Tokens TokenProvider

	// OnUnauthorized fires exactly once per request that the backend
	// answers with 401, before the error is returned to the caller. The
	// hook must not call back into the client; the client never retries,
	// so the hook cannot recurse.
	OnUnauthorized func()
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// WithTokens returns a shallow copy of the client bound to a token provider.
// The underlying http.Client is shared.
func (c *Client) WithTokens(tokens TokenProvider) *Client {
	clone := *c
	clone.Tokens = tokens
	return &clone
}

// do dispatches one request and decodes a 2xx JSON body into out (skipped
// when out is nil). skipAuthHook suppresses the OnUnauthorized hook; it is
// set only for the best-effort logout call, which may race an already
// expired token.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, skipAuthHook bool) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Tokens != nil {
		if token, ok := c.Tokens.AccessToken(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		detail, _ := parseErrorDetail(raw)
		if !skipAuthHook && c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return &UnauthorizedError{Detail: detail}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, fields := parseErrorDetail(raw)
		return &APIError{StatusCode: resp.StatusCode, Detail: detail, Fields: fields}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, false)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, false)
}
