// Package resolver classifies bare product codes and serves quotes
// through the cache/refresh pipeline. It is the only place that calls the
// external quote provider.
package resolver

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bafang/portfolio-tracker/internal/apperrors"
	"github.com/bafang/portfolio-tracker/internal/market/cache"
	"github.com/bafang/portfolio-tracker/internal/market/provider"
	"github.com/bafang/portfolio-tracker/internal/market/refresh"
	"github.com/bafang/portfolio-tracker/internal/model"
	"github.com/bafang/portfolio-tracker/internal/numeric"
)

// Resolver resolves product codes against the stock, ETF and fund
// namespaces in fixed priority order and keeps the quote cache current as
// a side effect of every successful provider call.
type Resolver struct {
	provider provider.QuoteProvider
	cache    *cache.Cache
	policy   *refresh.Policy
	now      func() time.Time
}

// New creates a Resolver using the wall clock.
func New(p provider.QuoteProvider, c *cache.Cache, policy *refresh.Policy) *Resolver {
	return NewWithClock(p, c, policy, time.Now)
}

// NewWithClock creates a Resolver with an injected clock for tests.
func NewWithClock(p provider.QuoteProvider, c *cache.Cache, policy *refresh.Policy, now func() time.Time) *Resolver {
	return &Resolver{
		provider: p,
		cache:    c,
		policy:   policy,
		now:      now,
	}
}

// Resolve classifies code by trying stock, then ETF, then fund, accepting
// the first namespace that yields a named quote. A provider failure in one
// branch is not fatal: resolution falls through to the next candidate.
// First match wins even when a code happens to be valid in more than one
// namespace; that asymmetry is deliberate.
func (r *Resolver) Resolve(ctx context.Context, code string) (model.Quote, error) {
	for _, category := range model.ResolveOrder {
		quote, err := r.Quote(ctx, category, code)
		if err == nil {
			return quote, nil
		}
		if ctx.Err() != nil {
			return model.Quote{}, ctx.Err()
		}
	}
	return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrProductNotFound, code)
}

// Quote returns the current quote for a code whose category is already
// known. The refresh policy decides whether the cached snapshot is served
// or the provider is called; a failed fetch degrades to the cached entry
// when one exists and to ErrQuoteUnavailable otherwise.
func (r *Resolver) Quote(ctx context.Context, category model.ProductCategory, code string) (model.Quote, error) {
	if !category.Valid() {
		return model.Quote{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidProductType, category)
	}

	now := r.now()
	entry, cached := r.cache.Read(category, code)

	action := r.policy.Decide(now, entry.FetchedAt, cached)
	if !action.Fetch() {
		return entry.Quote, nil
	}

	raw, err := r.provider.Fetch(ctx, category, code)
	if err != nil || raw.Name() == "" {
		if err != nil {
			log.Printf("quote fetch %s for %s %s failed: %v", action, category, code, err)
		}
		if cached {
			// Best effort: stale beats nothing.
			return entry.Quote, nil
		}
		return model.Quote{}, fmt.Errorf("%w: %s %s", apperrors.ErrQuoteUnavailable, category, code)
	}

	quote := buildQuote(category, code, raw, now)
	r.cache.Write(category, code, quote, now)
	return quote, nil
}

// buildQuote normalizes a raw field bag into an immutable Quote snapshot.
// Fund prices come from the newest dated NAV column; other categories use
// the plain price field. Fields that fail normalization stay nil.
func buildQuote(category model.ProductCategory, code string, raw provider.RawQuote, fetchedAt time.Time) model.Quote {
	quote := model.Quote{
		Code:        code,
		Name:        raw.Name(),
		Category:    category,
		PrevPrice:   numeric.NormalizePtr(raw[provider.FieldPrevPrice]),
		ChangeValue: numeric.NormalizePtr(raw[provider.FieldChange]),
		ChangeRate:  numeric.NormalizePtr(raw[provider.FieldChangeRate]),
		FetchedAt:   fetchedAt,
	}

	if category == model.CategoryFund {
		if nav, ok := provider.LatestUnitNAV(raw); ok {
			quote.Price = numeric.NormalizePtr(nav)
		}
	} else {
		quote.Price = numeric.NormalizePtr(raw[provider.FieldPrice])
	}

	return quote
}
