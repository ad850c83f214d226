// Package provider fetches raw market quotes from an external data
// service. Responses are loosely-typed field bags; normalizing them into
// model.Quote values is the resolver's job, not the provider's.
package provider

import (
	"context"

	"github.com/bafang/portfolio-tracker/internal/model"
)

// RawQuote is the untyped field bag a provider returns for one product.
// Field presence and naming vary by category and by snapshot date; fund
// snapshots carry date-suffixed NAV columns (see LatestDatedField).
type RawQuote map[string]any

// Well-known raw field names shared across categories. Values behind them
// may still be strings, numbers or absent.
const (
	FieldCode       = "code"
	FieldName       = "name"
	FieldPrice      = "price"
	FieldPrevPrice  = "prevPrice"
	FieldChange     = "change"
	FieldChangeRate = "changeRate"
)

// Date-suffixed NAV column suffixes on fund snapshots. The full key embeds
// the publication date, e.g. "2025-06-02-unit-nav".
const (
	SuffixUnitNAV       = "-unit-nav"
	SuffixCumulativeNAV = "-cumulative-nav"
)

// Name returns the product display name, empty when absent. A quote
// without a name is treated as "this code does not exist in this
// namespace" by the resolver.
func (r RawQuote) Name() string {
	name, _ := r[FieldName].(string)
	return name
}

// QuoteProvider is the external market-data capability: given a product
// code and its candidate category, return a raw snapshot or fail. A
// failure carries no retry semantics here; callers treat it as "no data".
type QuoteProvider interface {
	Fetch(ctx context.Context, category model.ProductCategory, code string) (RawQuote, error)
}
