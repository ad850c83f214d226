package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/bafang/portfolio-tracker/internal/market/provider"
	"github.com/bafang/portfolio-tracker/internal/model"
)

// ProviderCall records one Fetch invocation on the mock provider.
type ProviderCall struct {
	Category model.ProductCategory
	Code     string
}

// MockQuoteProvider is a provider.QuoteProvider returning canned raw
// quotes per category. It records every call so tests can assert call
// order and count.
type MockQuoteProvider struct {
	mu sync.Mutex

	// Responses maps a category to the raw quote returned for it. A
	// category without an entry yields a not-found error.
	Responses map[model.ProductCategory]provider.RawQuote
	// Errors maps a category to a forced fetch error, taking precedence
	// over Responses.
	Errors map[model.ProductCategory]error

	calls []ProviderCall
}

// NewMockQuoteProvider creates an empty mock; configure Responses and
// Errors per test.
func NewMockQuoteProvider() *MockQuoteProvider {
	return &MockQuoteProvider{
		Responses: make(map[model.ProductCategory]provider.RawQuote),
		Errors:    make(map[model.ProductCategory]error),
	}
}

// Fetch implements provider.QuoteProvider.
func (m *MockQuoteProvider) Fetch(_ context.Context, category model.ProductCategory, code string) (provider.RawQuote, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ProviderCall{Category: category, Code: code})
	m.mu.Unlock()

	if err, ok := m.Errors[category]; ok {
		return nil, err
	}
	if raw, ok := m.Responses[category]; ok {
		return raw, nil
	}
	return nil, fmt.Errorf("no data for %s %s", category, code)
}

// Calls returns a copy of the recorded calls in order.
func (m *MockQuoteProvider) Calls() []ProviderCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]ProviderCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of Fetch invocations.
func (m *MockQuoteProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.calls)
}

// Reset clears the recorded calls.
func (m *MockQuoteProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = nil
}

// StockRawQuote builds a plausible raw stock snapshot.
func StockRawQuote(name string, price float64) provider.RawQuote {
	return provider.RawQuote{
		provider.FieldName:       name,
		provider.FieldPrice:      price,
		provider.FieldPrevPrice:  price - 0.5,
		provider.FieldChange:     0.5,
		provider.FieldChangeRate: "0.35",
	}
}

// FundRawQuote builds a raw fund snapshot with a dated unit-NAV column.
func FundRawQuote(name, navDate string, nav float64) provider.RawQuote {
	raw := provider.RawQuote{
		provider.FieldName:       name,
		provider.FieldChangeRate: "0.12",
	}
	raw[navDate+provider.SuffixUnitNAV] = fmt.Sprintf("%v", nav)
	raw[navDate+provider.SuffixCumulativeNAV] = fmt.Sprintf("%v", nav+1)
	return raw
}
