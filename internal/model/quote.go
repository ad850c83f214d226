package model

import "time"

// ProductCategory identifies the market namespace a product code belongs to.
type ProductCategory string

const (
	CategoryStock ProductCategory = "stock"
	CategoryETF   ProductCategory = "etf"
	CategoryFund  ProductCategory = "fund"
)

// ResolveOrder is the fixed priority in which a bare product code is
// classified: the stock lookup is the cheapest provider call, funds the
// most expensive. A code valid in more than one namespace resolves to the
// first match.
var ResolveOrder = []ProductCategory{CategoryStock, CategoryETF, CategoryFund}

// Valid reports whether the category is one of the known product categories.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryStock, CategoryETF, CategoryFund:
		return true
	}
	return false
}

// Quote is an immutable snapshot of a tradable product. Price fields are
// pointers: nil means the upstream value was absent or could not be
// normalized, never zero. A quote is superseded by the next successful
// fetch for the same code, not mutated.
type Quote struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    ProductCategory `json:"category"`
	Price       *float64        `json:"price"`
	PrevPrice   *float64        `json:"prevPrice"`
	ChangeValue *float64        `json:"changeValue"`
	ChangeRate  *float64        `json:"changeRate"`
	FetchedAt   time.Time       `json:"fetchedAt"`
}

// RefreshResult summarizes a bulk price refresh across all holdings.
type RefreshResult struct {
	TotalHoldings int `json:"totalHoldings"`
	UpdatedCount  int `json:"updatedCount"`
	FailedCount   int `json:"failedCount"`
}
