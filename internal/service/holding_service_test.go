package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/bafang/portfolio-tracker/internal/apperrors"
	"github.com/bafang/portfolio-tracker/internal/market/cache"
	"github.com/bafang/portfolio-tracker/internal/market/calendar"
	"github.com/bafang/portfolio-tracker/internal/market/provider"
	"github.com/bafang/portfolio-tracker/internal/market/refresh"
	"github.com/bafang/portfolio-tracker/internal/market/resolver"
	"github.com/bafang/portfolio-tracker/internal/model"
	"github.com/bafang/portfolio-tracker/internal/repository"
	"github.com/bafang/portfolio-tracker/internal/testutil"
)

// tuesdayMorning is a live trading session instant; quote decisions at
// this time always fetch on a cold cache.
var tuesdayMorning = time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)

type holdingServiceFixture struct {
	svc  *HoldingService
	repo *repository.HoldingRepository
	db   *sql.DB
}

func newHoldingServiceFixture(t *testing.T, mock *testutil.MockQuoteProvider) holdingServiceFixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := repository.NewHoldingRepository(db)

	policy := refresh.New(calendar.NewFallback(nil))
	res := resolver.NewWithClock(mock, cache.New(), policy, func() time.Time { return tuesdayMorning })

	return holdingServiceFixture{svc: NewHoldingService(repo, res), repo: repo, db: db}
}

func TestHoldingService_CreateResolvesProduct(t *testing.T) {
	mock := &testutil.MockQuoteProvider{
		Responses: map[model.ProductCategory]provider.RawQuote{
			model.CategoryETF: testutil.StockRawQuote("CSI 300 ETF", 4.25),
		},
		Errors: map[model.ProductCategory]error{
			model.CategoryStock: errors.New("no such stock"),
		},
	}
	f := newHoldingServiceFixture(t, mock)

	detail, err := f.svc.Create(context.Background(), model.Holding{
		ProductCode:   "510300",
		Category:      model.CategoryChinaStockETF,
		Quantity:      1000,
		PurchasePrice: 4.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.ID == 0 {
		t.Error("expected an assigned id")
	}
	if detail.ProductType != model.CategoryETF {
		t.Errorf("expected resolved type etf, got %s", detail.ProductType)
	}
	if detail.ProductName != "CSI 300 ETF" {
		t.Errorf("expected resolved name, got %q", detail.ProductName)
	}
	if detail.CurrentPrice == nil || *detail.CurrentPrice != 4.25 {
		t.Errorf("expected backfilled current price 4.25, got %v", detail.CurrentPrice)
	}
	if detail.CurrentTotal != 4250 {
		t.Errorf("expected current total 4250, got %v", detail.CurrentTotal)
	}
}

func TestHoldingService_CreateUnknownProduct(t *testing.T) {
	mock := &testutil.MockQuoteProvider{
		Errors: map[model.ProductCategory]error{
			model.CategoryStock: errors.New("not found"),
			model.CategoryETF:   errors.New("not found"),
			model.CategoryFund:  errors.New("not found"),
		},
	}
	f := newHoldingServiceFixture(t, mock)

	_, err := f.svc.Create(context.Background(), model.Holding{
		ProductCode: "999999",
		Quantity:    10,
	})
	if !errors.Is(err, apperrors.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestHoldingService_CreateWithExplicitType(t *testing.T) {
	mock := &testutil.MockQuoteProvider{
		Responses: map[model.ProductCategory]provider.RawQuote{
			model.CategoryFund: testutil.FundRawQuote("Bond Fund", "2025-06-09", 1.5321),
		},
	}
	f := newHoldingServiceFixture(t, mock)

	detail, err := f.svc.Create(context.Background(), model.Holding{
		ProductCode: "000001",
		ProductType: model.CategoryFund,
		Quantity:    500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only the named namespace is queried.
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.CallCount())
	}
	if detail.CurrentPrice == nil || *detail.CurrentPrice != 1.5321 {
		t.Errorf("expected unit NAV as price, got %v", detail.CurrentPrice)
	}
}

func TestHoldingService_UpdatePartial(t *testing.T) {
	mock := &testutil.MockQuoteProvider{
		Responses: map[model.ProductCategory]provider.RawQuote{
			model.CategoryStock: testutil.StockRawQuote("Test Stock", 10),
		},
	}
	f := newHoldingServiceFixture(t, mock)

	created, err := f.svc.Create(context.Background(), model.Holding{
		ProductCode:   "600519",
		Quantity:      100,
		PurchasePrice: 9.5,
		Category:      model.CategoryChinaStockETF,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quantity := 200.0
	updated, err := f.svc.Update(context.Background(), created.ID, HoldingUpdate{Quantity: &quantity})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Quantity != 200 {
		t.Errorf("expected quantity 200, got %v", updated.Quantity)
	}
	if updated.PurchasePrice != 9.5 {
		t.Errorf("purchase price must be unchanged, got %v", updated.PurchasePrice)
	}
	if updated.Category != model.CategoryChinaStockETF {
		t.Errorf("category must be unchanged, got %s", updated.Category)
	}
}

func TestHoldingService_UpdateMissing(t *testing.T) {
	f := newHoldingServiceFixture(t, &testutil.MockQuoteProvider{})

	quantity := 10.0
	_, err := f.svc.Update(context.Background(), 42, HoldingUpdate{Quantity: &quantity})
	if !errors.Is(err, apperrors.ErrHoldingNotFound) {
		t.Errorf("expected ErrHoldingNotFound, got %v", err)
	}
}

func TestHoldingService_DeleteThenGet(t *testing.T) {
	mock := &testutil.MockQuoteProvider{
		Responses: map[model.ProductCategory]provider.RawQuote{
			model.CategoryStock: testutil.StockRawQuote("Test Stock", 10),
		},
	}
	f := newHoldingServiceFixture(t, mock)

	created, err := f.svc.Create(context.Background(), model.Holding{ProductCode: "600519", Quantity: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), created.ID); !errors.Is(err, apperrors.ErrHoldingNotFound) {
		t.Errorf("expected ErrHoldingNotFound after delete, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), created.ID); !errors.Is(err, apperrors.ErrHoldingNotFound) {
		t.Errorf("expected ErrHoldingNotFound on double delete, got %v", err)
	}
}

func TestHoldingService_IDsNotReused(t *testing.T) {
	mock := &testutil.MockQuoteProvider{
		Responses: map[model.ProductCategory]provider.RawQuote{
			model.CategoryStock: testutil.StockRawQuote("Test Stock", 10),
		},
	}
	f := newHoldingServiceFixture(t, mock)

	first, err := f.svc.Create(context.Background(), model.Holding{ProductCode: "600519", Quantity: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.Delete(context.Background(), first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := f.svc.Create(context.Background(), model.Holding{ProductCode: "600519", Quantity: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("expected a fresh id after delete, got %d after %d", second.ID, first.ID)
	}
}

func TestHoldingService_RefreshAllPrices(t *testing.T) {
	mock := &testutil.MockQuoteProvider{
		Responses: map[model.ProductCategory]provider.RawQuote{
			model.CategoryETF: testutil.StockRawQuote("Test ETF", 5.5),
		},
		Errors: map[model.ProductCategory]error{
			model.CategoryFund: errors.New("gateway unavailable"),
		},
	}
	f := newHoldingServiceFixture(t, mock)

	etf := testutil.NewHolding().WithCode("510300").WithType(model.CategoryETF).Build(t, f.db)
	fund := testutil.NewHolding().WithCode("000001").WithType(model.CategoryFund).WithoutCurrentPrice().Build(t, f.db)

	result, err := f.svc.RefreshAllPrices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalHoldings != 2 || result.UpdatedCount != 1 || result.FailedCount != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	refreshed, err := f.repo.GetByID(context.Background(), etf.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.CurrentPrice == nil || *refreshed.CurrentPrice != 5.5 {
		t.Errorf("expected refreshed price 5.5, got %v", refreshed.CurrentPrice)
	}

	untouched, err := f.repo.GetByID(context.Background(), fund.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if untouched.CurrentPrice != nil {
		t.Errorf("failed refresh must not write a price, got %v", untouched.CurrentPrice)
	}
}
