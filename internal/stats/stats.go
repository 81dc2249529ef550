// Package stats fetches package download counts from pypistats.org for
// the info command.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DefaultBaseURL is the pypistats.org API root.
const DefaultBaseURL = "https://pypistats.org/api"

// DefaultTimeout bounds a stats request end to end.
const DefaultTimeout = 5 * time.Second

// Client queries the pypistats.org API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient creates a stats client identifying itself as the given forge
// release.
func NewClient(version string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  "Forge-CLI/" + version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// overallResponse mirrors the payload of the overall endpoint.
type overallResponse struct {
	Data []struct {
		Category  string `json:"category"`
		Downloads int64  `json:"downloads"`
	} `json:"data"`
}

// Downloads returns the all-time download count of the package. Only the
// rows that include mirror traffic are summed, so the number matches what
// pypistats.org shows as the total.
func (c *Client) Downloads(ctx context.Context, pkg string) (int64, error) {
	if pkg == "" {
		return 0, fmt.Errorf("package name is empty")
	}

	url := fmt.Sprintf("%s/packages/%s/overall", c.baseURL, pkg)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating stats request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching download stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetching download stats: unexpected status %s", resp.Status)
	}

	var payload overallResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decoding download stats: %w", err)
	}

	var total int64
	for _, row := range payload.Data {
		if row.Category == "with_mirrors" {
			total += row.Downloads
		}
	}
	return total, nil
}

// FormatCount renders a download count the way the info panel shows it:
// millions and thousands get one decimal, small counts stay plain.
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}
