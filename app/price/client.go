package price

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Quote is one store price for an item. Currency is whatever the price
// service reports, passed through untouched.
type Quote struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// Client queries the price lookup service. Prices are best-effort: any
// failure leaves the price absent, never blocks a shopping list.
type Client struct {
	client   *resty.Client
	endpoint string
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		client:   resty.New().SetTimeout(timeout),
		endpoint: endpoint,
	}
}

// Run looks up the price of an item at a store. Returns nil without error
// when the service has no price for the item.
func (c *Client) Run(ctx context.Context, itemName string, store string) (*Quote, error) {
	quote := &Quote{}
	res, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"item":  itemName,
			"store": store,
		}).
		SetResult(quote).
		Get(c.endpoint)

	if err != nil {
		return nil, fmt.Errorf("price request failed: %w", err)
	}
	if res.StatusCode() == 404 {
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("price service status %s", res.Status())
	}

	slog.Debug("Price lookup completed", "item", itemName, "store", store, "price", quote.Price)

	return quote, nil
}
