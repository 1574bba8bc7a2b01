// Package cms implements the HTTP client for the headless content API
// (a Strapi-style REST surface). The CMS is the sole datastore of the
// storefront: products, sizes, categories, orders, POS sales and media all
// live there. The client normalizes the two response-envelope generations
// the API can serve (v4 nested attributes, v5 flat records) and bridges the
// two record-addressing conventions (numeric id vs. stable document id).
package cms

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

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
)

// Config holds the content-API connection settings
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// Client is the content-API client. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	log        *zap.Logger
}

// Configuration and transport errors
var (
	ErrMissingBaseURL = fmt.Errorf("cms: missing base URL")
	ErrUnavailable    = fmt.Errorf("cms: upstream unavailable")
)

// StatusError is returned for non-2xx responses. Status and body are kept
// verbatim so callers can render the upstream failure. A 404 matches
// shared.ErrNotFound through errors.Is.
type StatusError struct {
	Status int
	Body   string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("cms: HTTP %d: %s", e.Status, e.Body)
}

// Is reports whether the error matches a sentinel
func (e *StatusError) Is(target error) bool {
	return target == shared.ErrNotFound && e.Status == http.StatusNotFound
}

// NewClient creates a content-API client
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}, nil
}

// ListOptions controls collection reads
type ListOptions struct {
	// Filters maps field name to exact-match value
	// (rendered as filters[field][$eq]=value). Dotted names address
	// relation fields: "typeProducts.type" becomes
	// filters[typeProducts][type][$eq].
	Filters map[string]string
	Page     int
	PageSize int
	// Populate requests all relations (populate=*)
	Populate bool
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Populate {
		q.Set("populate", "*")
	}
	for field, value := range o.Filters {
		key := "filters"
		for _, part := range strings.Split(field, ".") {
			key += "[" + part + "]"
		}
		q.Set(key+"[$eq]", value)
	}
	if o.Page > 0 {
		q.Set("pagination[page]", fmt.Sprintf("%d", o.Page))
	}
	if o.PageSize > 0 {
		q.Set("pagination[pageSize]", fmt.Sprintf("%d", o.PageSize))
	}
	return q
}

// do issues a request against the content API and decodes the standard
// {data, meta, error} envelope. A nil body sends no payload; otherwise the
// body is wrapped as {"data": body} the way Strapi write endpoints expect.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(map[string]any{"data": body})
		if err != nil {
			return nil, fmt.Errorf("cms: failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("cms: failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cms: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return &envelope{}, nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("cms: failed to decode response: %w", err)
	}
	return &env, nil
}

// doRaw issues a request outside the content envelope (admin endpoints,
// uploads) and returns the raw response body
func (c *Client) doRaw(ctx context.Context, method, path string, headers map[string]string, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("cms: failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cms: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
