package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetMarketsOptions filters a /markets query.
type GetMarketsOptions struct {
	Slug   string
	Closed *bool // nil = no filter
}

// GetMarkets fetches the markets matching opts.
func (c *Client) GetMarkets(ctx context.Context, opts GetMarketsOptions) ([]Market, error) {
	query := url.Values{}

	if opts.Slug != "" {
		query.Set("slug", opts.Slug)
	}
	if opts.Closed != nil {
		query.Set("closed", strconv.FormatBool(*opts.Closed))
	}

	var markets []Market
	if err := c.get(ctx, "/markets", query, &markets); err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}

	return markets, nil
}

// FindMarket looks up the market with the given slug. With openOnly set the
// query is filtered to markets that are not closed.
//
// It returns (nil, nil) when the catalog has no matching market; only transport,
// status and decoding failures are errors.
func (c *Client) FindMarket(ctx context.Context, slug string, openOnly bool) (*Market, error) {
	opts := GetMarketsOptions{Slug: slug}
	if openOnly {
		closed := false
		opts.Closed = &closed
	}

	markets, err := c.GetMarkets(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("find market %s: %w", slug, err)
	}

	if len(markets) == 0 {
		return nil, nil
	}
	return &markets[0], nil
}
