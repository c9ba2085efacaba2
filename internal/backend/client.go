// Package backend is the typed client for the storefront's remote API. All
// calls go through a Doer so callers can layer retries and circuit breaking
// on the transport without this package knowing about it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
)

// Doer executes HTTP requests. Both *httpclient.Client and
// *httpclient.CircuitBreakerClient satisfy it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the remote storefront API.
type Client struct {
	http    Doer
	baseURL string
	logger  *slog.Logger
}

func NewClient(doer Doer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getJSON issues a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, target, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return apperrors.Transport(target, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return apperrors.Transport(target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, target)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Transport(target, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// sendJSON issues a request with a JSON body and, when out is non-nil,
// decodes the response into it.
func (c *Client) sendJSON(ctx context.Context, method, target, rawURL string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return apperrors.Transport(target, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(payload))
	if err != nil {
		return apperrors.Transport(target, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return apperrors.Transport(target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, target)
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Transport(target, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// delete issues a DELETE. A 404 counts as success since the resource is
// already gone, which is what the caller wanted.
func (c *Client) delete(ctx context.Context, target, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, rawURL, nil)
	if err != nil {
		return apperrors.Transport(target, err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return apperrors.Transport(target, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		c.logger.DebugContext(ctx, "delete target already absent", "target", target)
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, target)
	}
	return resp.Body.Close()
}
