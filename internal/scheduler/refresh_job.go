package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/bafang/portfolio-tracker/internal/service"
)

// refreshTimeout bounds one scheduled refresh pass over the whole
// portfolio.
const refreshTimeout = 2 * time.Minute

// PriceRefreshJob periodically refetches the current price of every
// holding.
type PriceRefreshJob struct {
	holdings *service.HoldingService
}

// NewPriceRefreshJob creates a new PriceRefreshJob.
func NewPriceRefreshJob(holdings *service.HoldingService) *PriceRefreshJob {
	return &PriceRefreshJob{holdings: holdings}
}

// Name implements Job.
func (j *PriceRefreshJob) Name() string {
	return "price-refresh"
}

// Run implements Job.
func (j *PriceRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	result, err := j.holdings.RefreshAllPrices(ctx)
	if err != nil {
		return err
	}

	log.Printf("Price refresh: %d holdings, %d updated, %d failed",
		result.TotalHoldings, result.UpdatedCount, result.FailedCount)
	return nil
}
