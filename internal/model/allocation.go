package model

// AssetCategory is a bucket in a target-asset-allocation policy. It is
// distinct from ProductCategory: a gold ETF has ProductType etf and
// Category gold.
type AssetCategory string

const (
	CategoryChinaStockETF   AssetCategory = "china_stock_etf"
	CategoryForeignStockETF AssetCategory = "foreign_stock_etf"
	CategoryCommodity       AssetCategory = "commodity"
	CategoryGold            AssetCategory = "gold"
	CategoryLongBond        AssetCategory = "long_bond"
	CategoryShortBond       AssetCategory = "short_bond"
	CategoryCreditBond      AssetCategory = "credit_bond"
	CategoryCash            AssetCategory = "cash"

	// CategoryUnclassified buckets holdings without an assigned category
	// so they stay visible in allocation totals.
	CategoryUnclassified AssetCategory = "unclassified"
)

// CategoryTarget is the policy for one asset category: the target share of
// total portfolio value and the tolerated absolute deviation before a
// warning is raised.
type CategoryTarget struct {
	TargetRatio  float64 `json:"targetRatio"`
	MaxDeviation float64 `json:"maxDeviation"`
}

// AllocationStrategy maps asset categories to their targets.
type AllocationStrategy map[AssetCategory]CategoryTarget

// DefaultStrategy returns the all-weather allocation policy. Target ratios
// sum to 1.0.
func DefaultStrategy() AllocationStrategy {
	return AllocationStrategy{
		CategoryChinaStockETF:   {TargetRatio: 0.10, MaxDeviation: 0.03},
		CategoryForeignStockETF: {TargetRatio: 0.10, MaxDeviation: 0.03},
		CategoryCommodity:       {TargetRatio: 0.10, MaxDeviation: 0.02},
		CategoryGold:            {TargetRatio: 0.10, MaxDeviation: 0.02},
		CategoryLongBond:        {TargetRatio: 0.30, MaxDeviation: 0.015},
		CategoryShortBond:       {TargetRatio: 0.198, MaxDeviation: 0.015},
		CategoryCreditBond:      {TargetRatio: 0.102, MaxDeviation: 0.015},
		CategoryCash:            {TargetRatio: 0.0, MaxDeviation: 0.0},
	}
}

// CategoryAllocation is the current state of one asset category: its
// aggregated market value, share of total value, and number of holdings.
type CategoryAllocation struct {
	Value        float64 `json:"value"`
	Ratio        float64 `json:"ratio"`
	HoldingCount int     `json:"holdingCount"`
}

// AllocationSummary is the current allocation across all held categories.
type AllocationSummary struct {
	TotalValue float64                              `json:"totalValue"`
	Categories map[AssetCategory]CategoryAllocation `json:"categories"`
}

// DeviationStatus marks whether a category is above or below target.
type DeviationStatus string

const (
	StatusOver  DeviationStatus = "over"
	StatusUnder DeviationStatus = "under"
)

// DeviationWarning is emitted for every strategy category whose absolute
// deviation from target exceeds its tolerance.
type DeviationWarning struct {
	Category     AssetCategory   `json:"category"`
	TargetRatio  float64         `json:"targetRatio"`
	CurrentRatio float64         `json:"currentRatio"`
	Deviation    float64         `json:"deviation"`
	MaxDeviation float64         `json:"maxDeviation"`
	Status       DeviationStatus `json:"status"`
}

// RebalanceSuggestion is a human-readable adjustment hint derived from a
// deviation warning.
type RebalanceSuggestion struct {
	Category   AssetCategory   `json:"category"`
	Status     DeviationStatus `json:"status"`
	Suggestion string          `json:"suggestion"`
}

// AllocationReport is the full target-vs-actual report: current
// allocation, the strategy it was checked against, warnings for
// out-of-tolerance categories, and rebalancing suggestions.
type AllocationReport struct {
	CurrentAllocation AllocationSummary     `json:"currentAllocation"`
	Strategy          AllocationStrategy    `json:"strategy"`
	Warnings          []DeviationWarning    `json:"warnings"`
	Suggestions       []RebalanceSuggestion `json:"suggestions"`
	TotalHoldingCount int                   `json:"totalHoldingCount"`
}
