package service

import (
	"context"
	"fmt"

	"github.com/bafang/portfolio-tracker/internal/model"
	"github.com/bafang/portfolio-tracker/internal/repository"
)

// PortfolioService computes portfolio-level aggregates over all holdings.
type PortfolioService struct {
	repo       *repository.HoldingRepository
	allocation *AllocationService
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(repo *repository.HoldingRepository, allocation *AllocationService) *PortfolioService {
	return &PortfolioService{repo: repo, allocation: allocation}
}

// Stats returns total cost, market value and profit across the whole
// portfolio, plus per-product-type counts.
func (s *PortfolioService) Stats(ctx context.Context) (model.PortfolioStats, error) {
	holdings, err := s.repo.GetAll(ctx)
	if err != nil {
		return model.PortfolioStats{}, fmt.Errorf("failed to list holdings: %w", err)
	}

	stats := model.PortfolioStats{TotalHoldings: len(holdings)}
	for _, holding := range holdings {
		stats.TotalCost += holding.CostTotal()
		stats.TotalValue += holding.CurrentTotal()

		switch holding.ProductType {
		case model.CategoryStock:
			stats.StockCount++
		case model.CategoryETF:
			stats.ETFCount++
		case model.CategoryFund:
			stats.FundCount++
		}
	}
	stats.TotalProfit = stats.TotalValue - stats.TotalCost
	if stats.TotalCost > 0 {
		stats.TotalProfitRate = stats.TotalProfit / stats.TotalCost
	}
	return stats, nil
}

// Allocation returns the current allocation across asset categories.
func (s *PortfolioService) Allocation(ctx context.Context) (model.AllocationSummary, error) {
	holdings, err := s.repo.GetAll(ctx)
	if err != nil {
		return model.AllocationSummary{}, fmt.Errorf("failed to list holdings: %w", err)
	}
	return s.allocation.CurrentAllocation(holdings), nil
}

// HoldingsByCategory returns the holdings of one asset category with
// derived values, for drilling into an allocation bucket.
func (s *PortfolioService) HoldingsByCategory(ctx context.Context, category model.AssetCategory) ([]model.HoldingDetail, error) {
	holdings, err := s.repo.GetByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s holdings: %w", category, err)
	}

	details := make([]model.HoldingDetail, 0, len(holdings))
	for _, holding := range holdings {
		details = append(details, holding.Detail())
	}
	return details, nil
}

// Report returns the target-vs-actual allocation report against the
// given strategy, falling back to the default strategy when nil.
func (s *PortfolioService) Report(ctx context.Context, strategy model.AllocationStrategy) (model.AllocationReport, error) {
	holdings, err := s.repo.GetAll(ctx)
	if err != nil {
		return model.AllocationReport{}, fmt.Errorf("failed to list holdings: %w", err)
	}
	if strategy == nil {
		strategy = model.DefaultStrategy()
	}
	return s.allocation.Report(holdings, strategy)
}
