package testutil

import (
	"database/sql"
	"testing"

	"github.com/bafang/portfolio-tracker/internal/model"
)

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	// Simple creation with defaults
//	holding := testutil.NewHolding().Build(t, db)
//
//	// Customized holding
//	holding := testutil.NewHolding().
//	    WithCode("510300").
//	    WithCategory(model.CategoryChinaStockETF).
//	    WithQuantity(1000).
//	    Build(t, db)
type HoldingBuilder struct {
	ProductCode   string
	ProductName   string
	ProductType   model.ProductCategory
	Category      model.AssetCategory
	Quantity      float64
	PurchasePrice float64
	CurrentPrice  *float64
}

// NewHolding creates a HoldingBuilder with sensible defaults.
func NewHolding() *HoldingBuilder {
	price := 4.2
	return &HoldingBuilder{
		ProductCode:   "510300",
		ProductName:   "Test ETF",
		ProductType:   model.CategoryETF,
		Category:      model.CategoryChinaStockETF,
		Quantity:      100,
		PurchasePrice: 4.0,
		CurrentPrice:  &price,
	}
}

// WithCode sets a custom product code.
func (b *HoldingBuilder) WithCode(code string) *HoldingBuilder {
	b.ProductCode = code
	return b
}

// WithName sets a custom product name.
func (b *HoldingBuilder) WithName(name string) *HoldingBuilder {
	b.ProductName = name
	return b
}

// WithType sets a custom product type.
func (b *HoldingBuilder) WithType(productType model.ProductCategory) *HoldingBuilder {
	b.ProductType = productType
	return b
}

// WithCategory sets a custom asset category.
func (b *HoldingBuilder) WithCategory(category model.AssetCategory) *HoldingBuilder {
	b.Category = category
	return b
}

// WithQuantity sets a custom quantity.
func (b *HoldingBuilder) WithQuantity(quantity float64) *HoldingBuilder {
	b.Quantity = quantity
	return b
}

// WithPurchasePrice sets a custom purchase price.
func (b *HoldingBuilder) WithPurchasePrice(price float64) *HoldingBuilder {
	b.PurchasePrice = price
	return b
}

// WithCurrentPrice sets a custom current price.
func (b *HoldingBuilder) WithCurrentPrice(price float64) *HoldingBuilder {
	b.CurrentPrice = &price
	return b
}

// WithoutCurrentPrice clears the current price, as for a product that has
// never been fetched.
func (b *HoldingBuilder) WithoutCurrentPrice() *HoldingBuilder {
	b.CurrentPrice = nil
	return b
}

// Build inserts the holding and returns it with its assigned id.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	query := `
		INSERT INTO holdings (product_code, product_name, product_type, category,
			quantity, purchase_price, current_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var currentPrice sql.NullFloat64
	if b.CurrentPrice != nil {
		currentPrice = sql.NullFloat64{Float64: *b.CurrentPrice, Valid: true}
	}

	result, err := db.Exec(query, b.ProductCode, b.ProductName, string(b.ProductType),
		string(b.Category), b.Quantity, b.PurchasePrice, currentPrice)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read test holding id: %v", err)
	}

	return model.Holding{
		ID:            id,
		ProductCode:   b.ProductCode,
		ProductName:   b.ProductName,
		ProductType:   b.ProductType,
		Category:      b.Category,
		Quantity:      b.Quantity,
		PurchasePrice: b.PurchasePrice,
		CurrentPrice:  b.CurrentPrice,
	}
}

// Convenience functions

// CreateHolding creates a holding with the given code and default values.
func CreateHolding(t *testing.T, db *sql.DB, code string) model.Holding {
	t.Helper()
	return NewHolding().WithCode(code).Build(t, db)
}
