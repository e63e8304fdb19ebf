package market

// AuctionListResponse from GET /auction/list
type AuctionListResponse struct {
	AuctionItems []Listing `json:"auction_item"`
}

// Listing is a single auction offer.
type Listing struct {
	DisplayName  string `json:"item_display_name"`
	PricePerUnit int64  `json:"auction_price_per_unit"`
}
