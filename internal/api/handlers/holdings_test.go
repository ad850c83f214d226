package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bafang/portfolio-tracker/internal/market/cache"
	"github.com/bafang/portfolio-tracker/internal/market/calendar"
	"github.com/bafang/portfolio-tracker/internal/market/provider"
	"github.com/bafang/portfolio-tracker/internal/market/refresh"
	"github.com/bafang/portfolio-tracker/internal/market/resolver"
	"github.com/bafang/portfolio-tracker/internal/model"
	"github.com/bafang/portfolio-tracker/internal/repository"
	"github.com/bafang/portfolio-tracker/internal/service"
	"github.com/bafang/portfolio-tracker/internal/testutil"
)

// liveSession is a weekday instant inside the morning trading session.
var liveSession = time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)

func setupHoldingHandler(t *testing.T, mock *testutil.MockQuoteProvider) (*HoldingHandler, *sql.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := repository.NewHoldingRepository(db)
	policy := refresh.New(calendar.NewFallback(nil))
	res := resolver.NewWithClock(mock, cache.New(), policy, func() time.Time { return liveSession })

	return NewHoldingHandler(service.NewHoldingService(repo, res)), db
}

// holdingRouter mounts the handler the way the real router does, so URL
// parameters resolve.
func holdingRouter(handler *HoldingHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/holdings", handler.Holdings)
	r.Post("/holdings", handler.CreateHolding)
	r.Post("/holdings/refresh", handler.RefreshPrices)
	r.Get("/holdings/{id}", handler.Holding)
	r.Put("/holdings/{id}", handler.UpdateHolding)
	r.Delete("/holdings/{id}", handler.DeleteHolding)
	return r
}

func TestHoldingHandler_CreateAndGet(t *testing.T) {
	mock := &testutil.MockQuoteProvider{
		Responses: map[model.ProductCategory]provider.RawQuote{
			model.CategoryETF: testutil.StockRawQuote("CSI 300 ETF", 4.25),
		},
		Errors: map[model.ProductCategory]error{
			model.CategoryStock: errors.New("not found"),
		},
	}
	handler, _ := setupHoldingHandler(t, mock)
	router := holdingRouter(handler)

	body := bytes.NewBufferString(`{
		"productCode": "510300",
		"category": "china_stock_etf",
		"quantity": 1000,
		"purchasePrice": 4.0
	}`)
	req := httptest.NewRequest(http.MethodPost, "/holdings", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created model.HoldingDetail
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&created)

	if created.ProductName != "CSI 300 ETF" {
		t.Errorf("Expected resolved name, got '%s'", created.ProductName)
	}
	if created.ProductType != model.CategoryETF {
		t.Errorf("Expected resolved type etf, got '%s'", created.ProductType)
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/holdings/%d", created.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHoldingHandler_CreateValidation(t *testing.T) {
	handler, _ := setupHoldingHandler(t, &testutil.MockQuoteProvider{})
	router := holdingRouter(handler)

	cases := []struct {
		name string
		body string
	}{
		{"missing code", `{"quantity": 10}`},
		{"zero quantity", `{"productCode": "510300", "quantity": 0}`},
		{"negative price", `{"productCode": "510300", "quantity": 10, "purchasePrice": -1}`},
		{"bad product type", `{"productCode": "510300", "quantity": 10, "productType": "bond"}`},
		{"malformed json", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/holdings", bytes.NewBufferString(tc.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestHoldingHandler_CreateUnknownProduct(t *testing.T) {
	handler, _ := setupHoldingHandler(t, &testutil.MockQuoteProvider{})
	router := holdingRouter(handler)

	body := bytes.NewBufferString(`{"productCode": "999999", "quantity": 10}`)
	req := httptest.NewRequest(http.MethodPost, "/holdings", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHoldingHandler_UpdateAndDelete(t *testing.T) {
	handler, db := setupHoldingHandler(t, &testutil.MockQuoteProvider{})
	router := holdingRouter(handler)

	holding := testutil.NewHolding().Build(t, db)

	body := bytes.NewBufferString(`{"quantity": 250}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/holdings/%d", holding.ID), body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated model.HoldingDetail
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Quantity != 250 {
		t.Errorf("Expected quantity 250, got %v", updated.Quantity)
	}

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/holdings/%d", holding.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/holdings/%d", holding.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestHoldingHandler_RefreshPrices(t *testing.T) {
	mock := &testutil.MockQuoteProvider{
		Responses: map[model.ProductCategory]provider.RawQuote{
			model.CategoryETF: testutil.StockRawQuote("Test ETF", 9.9),
		},
	}
	handler, db := setupHoldingHandler(t, mock)
	router := holdingRouter(handler)

	testutil.NewHolding().WithType(model.CategoryETF).Build(t, db)

	req := httptest.NewRequest(http.MethodPost, "/holdings/refresh", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result model.RefreshResult
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&result)

	if result.TotalHoldings != 1 || result.UpdatedCount != 1 {
		t.Errorf("Unexpected refresh result: %+v", result)
	}
}
