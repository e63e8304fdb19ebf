package market

import (
	"context"
	"fmt"
	"net/url"
)

// SearchListings fetches the auction listings matching a keyword search for
// itemName. The API treats item_name as a keyword, so loosely related
// listings may be returned; callers filter. An empty result is not an error.
func (c *Client) SearchListings(ctx context.Context, itemName string) ([]Listing, error) {
	query := url.Values{}
	query.Set("item_name", itemName)

	var resp AuctionListResponse
	if err := c.get(ctx, "/auction/list", query, &resp); err != nil {
		return nil, fmt.Errorf("list auctions for %q: %w", itemName, err)
	}

	return resp.AuctionItems, nil
}
