package model

import "time"

// Holding represents a user position in a product. CurrentPrice is nil
// until the first successful price fetch for the product.
type Holding struct {
	ID            int64           `json:"id"`
	ProductCode   string          `json:"productCode"`
	ProductName   string          `json:"productName"`
	ProductType   ProductCategory `json:"productType"`
	Category      AssetCategory   `json:"category"`
	Quantity      float64         `json:"quantity"`
	PurchasePrice float64         `json:"purchasePrice"`
	CurrentPrice  *float64        `json:"currentPrice"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CostTotal returns the position cost basis.
func (h Holding) CostTotal() float64 {
	return h.Quantity * h.PurchasePrice
}

// CurrentTotal returns the current market value. A missing current price
// contributes zero rather than excluding the holding.
func (h Holding) CurrentTotal() float64 {
	if h.CurrentPrice == nil {
		return 0
	}
	return h.Quantity * *h.CurrentPrice
}

// ProfitTotal returns the unrealized profit over cost.
func (h Holding) ProfitTotal() float64 {
	return h.CurrentTotal() - h.CostTotal()
}

// ProfitRate returns the profit as a fraction of cost, 0 when the cost
// basis is zero.
func (h Holding) ProfitRate() float64 {
	cost := h.CostTotal()
	if cost <= 0 {
		return 0
	}
	return h.ProfitTotal() / cost
}

// HoldingDetail is a holding enriched with its derived monetary values,
// returned by the single-holding detail endpoint.
type HoldingDetail struct {
	Holding
	CostTotal    float64 `json:"costTotal"`
	CurrentTotal float64 `json:"currentTotal"`
	ProfitTotal  float64 `json:"profitTotal"`
	ProfitRate   float64 `json:"profitRate"`
}

// Detail computes the derived fields for a holding.
func (h Holding) Detail() HoldingDetail {
	return HoldingDetail{
		Holding:      h,
		CostTotal:    h.CostTotal(),
		CurrentTotal: h.CurrentTotal(),
		ProfitTotal:  h.ProfitTotal(),
		ProfitRate:   h.ProfitRate(),
	}
}

// PortfolioStats aggregates cost, value and profit across all holdings.
type PortfolioStats struct {
	TotalCost       float64 `json:"totalCost"`
	TotalValue      float64 `json:"totalValue"`
	TotalProfit     float64 `json:"totalProfit"`
	TotalProfitRate float64 `json:"totalProfitRate"`
	StockCount      int     `json:"stockCount"`
	ETFCount        int     `json:"etfCount"`
	FundCount       int     `json:"fundCount"`
	TotalHoldings   int     `json:"totalHoldings"`
}
