// Package market provides the Nexon Open API client for auction data.
//
// REST endpoint:
//   - https://open.api.nexon.com/mabinogi/v1
//
// Authentication is a per-request x-nxopen-api-key header. The only
// operation used here is GET /auction/list, a keyword search over active
// auction listings.
package market
