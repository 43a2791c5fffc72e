package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client queries a SearxNG-compatible JSON endpoint for candidate recipe
// pages. Result freshness and count are not guaranteed; an empty result is
// not an error.
type Client struct {
	client     *resty.Client
	endpoint   string
	maxResults int
}

type searchResponse struct {
	Results []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"results"`
}

func NewClient(endpoint string, maxResults int, timeout time.Duration, userAgent string) *Client {
	return &Client{
		client:     resty.New().SetTimeout(timeout).SetHeader("User-Agent", userAgent),
		endpoint:   endpoint,
		maxResults: maxResults,
	}
}

// Run returns candidate URLs for a dish, in result order. The dish name is
// quoted in the query to keep results on topic.
func (c *Client) Run(ctx context.Context, dishName string) ([]string, error) {
	query := fmt.Sprintf("%q ingredients recipe", dishName)

	response := &searchResponse{}
	res, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      query,
			"format": "json",
		}).
		SetResult(response).
		Get(c.endpoint)

	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("search service status %s", res.Status())
	}

	urls := make([]string, 0, c.maxResults)
	for _, result := range response.Results {
		if result.URL == "" {
			continue
		}
		urls = append(urls, result.URL)
		if len(urls) >= c.maxResults {
			break
		}
	}

	slog.Debug("Search completed", "query", query, "candidates", len(urls))

	return urls, nil
}
