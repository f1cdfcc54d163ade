// Package transit is the client for the upstream transit open-data API and
// the decoders for its response shapes. The API returns JSON with kebab-case
// keys and a few inconsistently-typed fields; the types in this package
// normalize those at the deserialization boundary so the service layer never
// inspects raw JSON.
package transit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// AuditSink receives the raw body of every upstream call for the audit log.
// Recording is best-effort: the client logs a failed Record and carries on.
// messageID correlates the call with the inbound message that triggered it,
// and is nil when that message could not be persisted.
type AuditSink interface {
	Record(ctx context.Context, query, body string, messageID *uuid.UUID) error
}

// Client fetches relative paths from the transit open-data service,
// appending the API key each service call requires.
type Client struct {
	base   *url.URL
	apiKey string
	http   *http.Client
	audit  AuditSink
}

// NewClient builds a Client for the service at baseAddress.
// audit may be nil, in which case calls are not recorded.
func NewClient(baseAddress, apiKey string, audit AuditSink) (*Client, error) {
	base, err := url.Parse(baseAddress)
	if err != nil {
		return nil, fmt.Errorf("transit.NewClient: parse base address: %w", err)
	}
	return &Client{
		base:   base,
		apiKey: apiKey,
		http:   &http.Client{},
		audit:  audit,
	}, nil
}

// Fetch performs exactly one GET against the joined base+path URL and returns
// the status code and raw body. There are no retries. A non-2xx status is
// returned as data, not as an error, so callers can render a user-facing
// "not found" reply; only transport failures are errors.
//
// Whenever a body was received, {path, body} is handed to the audit sink
// before returning, regardless of status. A sink failure is logged and never
// affects the returned result.
func (c *Client) Fetch(ctx context.Context, path string, messageID *uuid.UUID) (int, string, error) {
	u, err := c.base.Parse(path)
	if err != nil {
		return 0, "", fmt.Errorf("transit.Client.Fetch: parse path %q: %w", path, err)
	}

	query := u.Query()
	query.Set("api-key", c.apiKey)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, "", fmt.Errorf("transit.Client.Fetch: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("transit.Client.Fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("transit.Client.Fetch: read body: %w", err)
	}

	if c.audit != nil {
		if err := c.audit.Record(ctx, path, string(body), messageID); err != nil {
			slog.ErrorContext(ctx, "failed to record api response", "query", path, "error", err)
		}
	}

	return resp.StatusCode, string(body), nil
}
