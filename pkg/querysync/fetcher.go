package querysync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Vinzor11/hrgrid/pkg/querystate"
)

// HTTPFetcher fetches listing pages from the hrgrid server over HTTP.
type HTTPFetcher struct {
	baseURL string
	path    string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher for the employee listing endpoint.
// baseURL is the server root, e.g. "http://localhost:8080".
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: baseURL,
		path:    "/api/employees",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch issues a GET with the flattened query parameters and decodes the
// page envelope.
func (f *HTTPFetcher) Fetch(ctx context.Context, params url.Values) (*querystate.Page, error) {
	u := f.baseURL + f.path
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("listing request returned %d: %s", resp.StatusCode, string(body))
	}

	var page querystate.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode listing response: %w", err)
	}
	return &page, nil
}
