package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/bafang/portfolio-tracker/internal/apperrors"
	"github.com/bafang/portfolio-tracker/internal/model"
)

// AllocationService classifies holdings into asset categories and checks
// the resulting allocation against a target strategy. All methods are pure
// computations over their inputs; loading holdings is the caller's job.
type AllocationService struct{}

// NewAllocationService creates a new AllocationService.
func NewAllocationService() *AllocationService {
	return &AllocationService{}
}

// CurrentAllocation aggregates market value per asset category. Holdings
// without a category land in the unclassified bucket rather than being
// dropped; missing current prices contribute zero value but still count
// toward the category's holding count.
func (s *AllocationService) CurrentAllocation(holdings []model.Holding) model.AllocationSummary {
	summary := model.AllocationSummary{
		Categories: make(map[model.AssetCategory]model.CategoryAllocation),
	}

	for _, holding := range holdings {
		category := holding.Category
		if category == "" {
			category = model.CategoryUnclassified
		}

		value := holding.CurrentTotal()
		entry := summary.Categories[category]
		entry.Value += value
		entry.HoldingCount++
		summary.Categories[category] = entry

		summary.TotalValue += value
	}

	// Ratios stay zero when the portfolio has no value at all.
	if summary.TotalValue > 0 {
		for category, entry := range summary.Categories {
			entry.Ratio = entry.Value / summary.TotalValue
			summary.Categories[category] = entry
		}
	}

	return summary
}

// Deviations checks a current allocation against a strategy and returns a
// warning for every category whose absolute deviation exceeds its
// tolerance. Every strategy category is evaluated, including those with no
// matching holdings: under-allocation is invisible if only held categories
// are checked. A deviation exactly equal to the tolerance does not warn.
func (s *AllocationService) Deviations(current model.AllocationSummary, strategy model.AllocationStrategy) ([]model.DeviationWarning, error) {
	if err := ValidateStrategy(strategy); err != nil {
		return nil, err
	}

	warnings := []model.DeviationWarning{}
	for _, category := range sortedCategories(strategy) {
		target := strategy[category]

		currentRatio := 0.0
		if entry, ok := current.Categories[category]; ok {
			currentRatio = entry.Ratio
		}

		deviation := math.Abs(currentRatio - target.TargetRatio)
		if deviation <= target.MaxDeviation {
			continue
		}

		status := model.StatusUnder
		if currentRatio > target.TargetRatio {
			status = model.StatusOver
		}

		warnings = append(warnings, model.DeviationWarning{
			Category:     category,
			TargetRatio:  target.TargetRatio,
			CurrentRatio: currentRatio,
			Deviation:    deviation,
			MaxDeviation: target.MaxDeviation,
			Status:       status,
		})
	}

	return warnings, nil
}

// Suggestions turns deviation warnings into human-readable rebalancing
// hints.
func (s *AllocationService) Suggestions(warnings []model.DeviationWarning) []model.RebalanceSuggestion {
	suggestions := make([]model.RebalanceSuggestion, 0, len(warnings))
	for _, warning := range warnings {
		var text string
		switch warning.Status {
		case model.StatusOver:
			text = fmt.Sprintf("%s is at %.2f%% against a %.2f%% target; consider reducing the position",
				warning.Category, warning.CurrentRatio*100, warning.TargetRatio*100)
		default:
			text = fmt.Sprintf("%s is at %.2f%% against a %.2f%% target; consider adding to the position",
				warning.Category, warning.CurrentRatio*100, warning.TargetRatio*100)
		}
		suggestions = append(suggestions, model.RebalanceSuggestion{
			Category:   warning.Category,
			Status:     warning.Status,
			Suggestion: text,
		})
	}
	return suggestions
}

// Report runs the full pipeline: current allocation, deviation check and
// suggestions, against the given strategy.
func (s *AllocationService) Report(holdings []model.Holding, strategy model.AllocationStrategy) (model.AllocationReport, error) {
	current := s.CurrentAllocation(holdings)

	warnings, err := s.Deviations(current, strategy)
	if err != nil {
		return model.AllocationReport{}, err
	}

	return model.AllocationReport{
		CurrentAllocation: current,
		Strategy:          strategy,
		Warnings:          warnings,
		Suggestions:       s.Suggestions(warnings),
		TotalHoldingCount: len(holdings),
	}, nil
}

// ValidateStrategy rejects malformed strategies: empty, ratios or
// tolerances outside [0, 1]. A bad strategy is a programming-contract
// violation, the one input class this engine refuses to degrade on.
func ValidateStrategy(strategy model.AllocationStrategy) error {
	if len(strategy) == 0 {
		return fmt.Errorf("%w: no categories defined", apperrors.ErrInvalidStrategy)
	}
	for category, target := range strategy {
		if target.TargetRatio < 0 || target.TargetRatio > 1 {
			return fmt.Errorf("%w: %s target ratio %v out of range",
				apperrors.ErrInvalidStrategy, category, target.TargetRatio)
		}
		if target.MaxDeviation < 0 || target.MaxDeviation > 1 {
			return fmt.Errorf("%w: %s max deviation %v out of range",
				apperrors.ErrInvalidStrategy, category, target.MaxDeviation)
		}
	}
	return nil
}

// sortedCategories returns strategy categories in stable name order so
// warning output is deterministic.
func sortedCategories(strategy model.AllocationStrategy) []model.AssetCategory {
	categories := make([]model.AssetCategory, 0, len(strategy))
	for category := range strategy {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}
