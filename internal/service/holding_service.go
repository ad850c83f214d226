package service

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/bafang/portfolio-tracker/internal/model"
	"github.com/bafang/portfolio-tracker/internal/repository"
)

// refreshConcurrency bounds parallel provider calls during a bulk refresh
// so a large portfolio does not hammer the quote gateway.
const refreshConcurrency = 4

// QuoteResolver is the slice of the market resolver the holding service
// needs: code classification on create and per-holding quotes on refresh.
type QuoteResolver interface {
	Resolve(ctx context.Context, code string) (model.Quote, error)
	Quote(ctx context.Context, category model.ProductCategory, code string) (model.Quote, error)
}

// HoldingService manages portfolio holdings and keeps their current
// prices in sync with the market resolver.
type HoldingService struct {
	repo     *repository.HoldingRepository
	resolver QuoteResolver
}

// NewHoldingService creates a new HoldingService.
func NewHoldingService(repo *repository.HoldingRepository, resolver QuoteResolver) *HoldingService {
	return &HoldingService{repo: repo, resolver: resolver}
}

// GetAll returns every holding enriched with derived monetary values.
func (s *HoldingService) GetAll(ctx context.Context) ([]model.HoldingDetail, error) {
	holdings, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	details := make([]model.HoldingDetail, 0, len(holdings))
	for _, holding := range holdings {
		details = append(details, holding.Detail())
	}
	return details, nil
}

// GetByID returns one holding with derived values.
func (s *HoldingService) GetByID(ctx context.Context, id int64) (model.HoldingDetail, error) {
	holding, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.HoldingDetail{}, err
	}
	return holding.Detail(), nil
}

// Create adds a holding. The product code is resolved against the market
// first: an unknown code is rejected, and the resolved name, category and
// current price are backfilled onto the stored holding. When the request
// names a product type the code is only checked in that namespace.
func (s *HoldingService) Create(ctx context.Context, holding model.Holding) (model.HoldingDetail, error) {
	var quote model.Quote
	var err error
	if holding.ProductType != "" {
		quote, err = s.resolver.Quote(ctx, holding.ProductType, holding.ProductCode)
	} else {
		quote, err = s.resolver.Resolve(ctx, holding.ProductCode)
	}
	if err != nil {
		return model.HoldingDetail{}, fmt.Errorf("failed to resolve product %s: %w", holding.ProductCode, err)
	}

	holding.ProductType = quote.Category
	if holding.ProductName == "" {
		holding.ProductName = quote.Name
	}
	holding.CurrentPrice = quote.Price

	id, err := s.repo.Create(ctx, holding)
	if err != nil {
		return model.HoldingDetail{}, fmt.Errorf("failed to create holding: %w", err)
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.HoldingDetail{}, fmt.Errorf("failed to load created holding: %w", err)
	}
	return created.Detail(), nil
}

// HoldingUpdate carries the editable fields of a holding; nil fields are
// left unchanged. Product code and type are immutable after creation; a
// different product is a new holding.
type HoldingUpdate struct {
	ProductName   *string
	Category      *model.AssetCategory
	Quantity      *float64
	PurchasePrice *float64
}

// Update applies a partial update to a holding.
func (s *HoldingService) Update(ctx context.Context, id int64, changes HoldingUpdate) (model.HoldingDetail, error) {
	holding, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.HoldingDetail{}, err
	}

	if changes.Quantity != nil {
		holding.Quantity = *changes.Quantity
	}
	if changes.PurchasePrice != nil {
		holding.PurchasePrice = *changes.PurchasePrice
	}
	if changes.Category != nil {
		holding.Category = *changes.Category
	}
	if changes.ProductName != nil {
		holding.ProductName = *changes.ProductName
	}

	if err := s.repo.Update(ctx, holding); err != nil {
		return model.HoldingDetail{}, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.HoldingDetail{}, err
	}
	return updated.Detail(), nil
}

// Delete removes a holding. The row id is never reused for a later
// holding.
func (s *HoldingService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// RefreshAllPrices refetches the current price of every holding with
// bounded concurrency. Individual failures are logged and counted, never
// fatal: one suspended fund must not block the rest of the portfolio.
func (s *HoldingService) RefreshAllPrices(ctx context.Context) (model.RefreshResult, error) {
	holdings, err := s.repo.GetAll(ctx)
	if err != nil {
		return model.RefreshResult{}, fmt.Errorf("failed to list holdings: %w", err)
	}

	var updated, failed atomic.Int64

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(refreshConcurrency)
	for _, holding := range holdings {
		group.Go(func() error {
			quote, err := s.resolver.Quote(ctx, holding.ProductType, holding.ProductCode)
			if err != nil || quote.Price == nil {
				log.Printf("price refresh skipped for %s %s: %v", holding.ProductType, holding.ProductCode, err)
				failed.Add(1)
				return nil
			}
			if err := s.repo.UpdateCurrentPrice(ctx, holding.ID, *quote.Price); err != nil {
				log.Printf("price update failed for holding %d: %v", holding.ID, err)
				failed.Add(1)
				return nil
			}
			updated.Add(1)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return model.RefreshResult{}, err
	}

	return model.RefreshResult{
		TotalHoldings: len(holdings),
		UpdatedCount:  int(updated.Load()),
		FailedCount:   int(failed.Load()),
	}, nil
}
