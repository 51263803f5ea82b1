package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment represents a holding owned by a single user.
//
// InvestedCost is fixed at acquisition (quantity * purchase price) and
// never changes afterwards. LatestQuote is supplied by the caller (quote
// sourcing lives outside this service); everything derived from it
// (current value, profit, return rate) is computed on demand and never
// stored.
type Investment struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	AssetType     string          `json:"assetType"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	InvestedCost  decimal.Decimal `json:"investedCost"`
	LatestQuote   decimal.Decimal `json:"latestQuote"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt,omitempty"`
}

// ValidAssetTypes contains the allowed asset type values.
var ValidAssetTypes = map[string]bool{
	"stock": true, "etf": true, "bond": true, "crypto": true, "fund": true,
}

// InvestmentValuation holds the derived worth of a holding at the
// latest supplied quote.
type InvestmentValuation struct {
	CurrentValue decimal.Decimal `json:"currentValue"`
	Profit       decimal.Decimal `json:"profit"`
	ReturnRate   decimal.Decimal `json:"returnRate"`
}

// InvestmentResponse combines a stored investment with its valuation for
// API responses.
type InvestmentResponse struct {
	Investment
	InvestmentValuation
}
