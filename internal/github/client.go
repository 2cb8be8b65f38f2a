// Package github provides the outbound client for GitHub's REST API.
// It is the only component that talks to the upstream; every failure is
// mapped onto the package's sentinel errors so callers never see raw
// transport or status-code details.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Request headers required by the GitHub REST API.
const (
	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"
	userAgent    = "gistrelay/1.0"
)

// maxBodySnippet bounds how much of an unexpected upstream body is kept
// in error messages.
const maxBodySnippet = 256

// Doer performs HTTP requests. Satisfied by *http.Client; tests substitute
// a double to inspect outbound requests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient Doer
}

// NewClient creates a GitHub API client. An empty token means outbound
// calls are sent unauthenticated.
func NewClient(baseURL, token string, httpClient Doer) *Client {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// ListGists fetches the first page of public gists for a user and returns
// the upstream JSON array verbatim. One attempt per call; no retries, no
// pagination traversal.
func (c *Client) ListGists(ctx context.Context, username string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/gists", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnreachable, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return json.RawMessage(body), nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
	case http.StatusForbidden, http.StatusTooManyRequests:
		if reset := rateLimitReset(resp.Header); !reset.IsZero() {
			return nil, fmt.Errorf("%w, resets at %s", ErrRateLimited, reset.UTC().Format(time.RFC3339))
		}
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, bodySnippet(body))
	}
}

// Ping checks upstream reachability for readiness probes. It hits the
// rate-limit endpoint, which GitHub does not count against the quota.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rate_limit", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return nil
}

// setHeaders applies the standard GitHub API headers, attaching the bearer
// token only when one is configured.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// rateLimitReset parses the X-RateLimit-Reset header (Unix seconds).
// Returns the zero time if the header is absent or malformed.
func rateLimitReset(h http.Header) time.Time {
	raw := h.Get("X-RateLimit-Reset")
	if raw == "" {
		return time.Time{}
	}
	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(epoch, 0)
}

// bodySnippet truncates an upstream body for inclusion in error messages.
func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodySnippet {
		s = s[:maxBodySnippet] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}
