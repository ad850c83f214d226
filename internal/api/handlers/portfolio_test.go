package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bafang/portfolio-tracker/internal/model"
	"github.com/bafang/portfolio-tracker/internal/repository"
	"github.com/bafang/portfolio-tracker/internal/service"
	"github.com/bafang/portfolio-tracker/internal/testutil"
)

func TestPortfolioHandler_Stats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewPortfolioService(repository.NewHoldingRepository(db), service.NewAllocationService())
	handler := NewPortfolioHandler(svc)

	testutil.NewHolding().WithQuantity(100).WithPurchasePrice(4).WithCurrentPrice(4.2).Build(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio/stats", nil)
	w := httptest.NewRecorder()
	handler.Stats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stats model.PortfolioStats
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&stats)

	if stats.TotalHoldings != 1 || stats.TotalCost != 400 || stats.TotalValue != 420 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestPortfolioHandler_Report(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewPortfolioService(repository.NewHoldingRepository(db), service.NewAllocationService())
	handler := NewPortfolioHandler(svc)

	// A gold-only portfolio is far over the default 10% gold target.
	testutil.NewHolding().WithCategory(model.CategoryGold).Build(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio/report", nil)
	w := httptest.NewRecorder()
	handler.Report(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report model.AllocationReport
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&report)

	if len(report.Warnings) == 0 {
		t.Error("Expected deviation warnings for a gold-only portfolio")
	}
	if report.TotalHoldingCount != 1 {
		t.Errorf("Expected 1 holding, got %d", report.TotalHoldingCount)
	}
}
