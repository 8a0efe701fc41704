package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jobdeck/jobdeck/internal/apperr"
)

// Result is one hit from the web-search API.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Client is a thin wrapper over the outbound web-search API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Search runs one query and returns up to limit organic results.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if c.apiKey == "" {
		return nil, &apperr.ConfigurationError{
			Setting: "SEARCH_API_KEY",
			Hint:    "set SEARCH_API_KEY to enable web-search enrichment",
		}
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("api_key", c.apiKey)
	q.Set("num", fmt.Sprint(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &apperr.UpstreamError{Provider: "search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apperr.UpstreamError{Provider: "search", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var body struct {
		OrganicResults []Result `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &apperr.UpstreamError{Provider: "search", Err: fmt.Errorf("malformed response: %w", err)}
	}

	if len(body.OrganicResults) > limit {
		body.OrganicResults = body.OrganicResults[:limit]
	}
	return body.OrganicResults, nil
}
