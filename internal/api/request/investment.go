package request

import "github.com/shopspring/decimal"

// CreateInvestmentRequest is the payload for registering a holding.
// The invested cost is derived (quantity * purchasePrice) and cannot be
// supplied directly.
type CreateInvestmentRequest struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	AssetType     string          `json:"assetType"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	PurchaseDate  string          `json:"purchaseDate"`
}

// UpdateQuoteRequest supplies the latest market quote for a holding.
// Quotes are pushed by the caller; this service never fetches them.
type UpdateQuoteRequest struct {
	Quote decimal.Decimal `json:"quote"`
}
