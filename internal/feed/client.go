package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// Client fetches pages from an HTTP feed serving
// GET /api/pages?page=N as JSON-encoded Page values.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "swiperefresh/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for the given base URL. A bare host:port is
// treated as http.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Fetch retrieves one page. Server errors (5xx) wrap ErrUnavailable so
// callers handle them like any other failed fetch.
func (c *Client) Fetch(ctx context.Context, page int) (Page, error) {
	if page < 0 {
		return Page{}, fmt.Errorf("fetch page %d: negative page", page)
	}
	rel := &url.URL{Path: "/api/pages", RawQuery: url.Values{"page": {strconv.Itoa(page)}}.Encode()}

	var payload Page
	if err := c.get(ctx, rel, &payload); err != nil {
		return Page{}, fmt.Errorf("fetch page %d: %w", page, err)
	}
	if payload.Index != page {
		return Page{}, fmt.Errorf("fetch page %d: server returned page %d", page, payload.Index)
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("api %s returned status %d: %w", rel.Path, resp.StatusCode, ErrUnavailable)
	case resp.StatusCode >= 400:
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("parse feed url: empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse feed url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
