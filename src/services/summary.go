package services

import (
	"sort"

	"server/src/models"
	"server/src/schemas"

	"github.com/shopspring/decimal"
)

const goalProgressLimit = 10

var hundred = decimal.NewFromInt(100)

// BuildPortfolioSummary derives totals, profit/loss and per-asset-class
// allocation from a snapshot of a user's holdings. Pure; the input order does
// not affect totals and groups come out sorted by asset type.
func BuildPortfolioSummary(investments []models.Investment) *schemas.PortfolioSummary {
	totalInvested := decimal.Zero
	totalCurrentValue := decimal.Zero
	byAssetType := make(map[string]decimal.Decimal)

	for _, inv := range investments {
		totalInvested = totalInvested.Add(inv.CostBasis)
		totalCurrentValue = totalCurrentValue.Add(inv.CurrentValue)
		byAssetType[inv.AssetType] = byAssetType[inv.AssetType].Add(inv.CurrentValue)
	}

	allocation := make([]schemas.AssetAllocationItem, 0, len(byAssetType))
	for _, assetType := range sortedKeys(byAssetType) {
		value := byAssetType[assetType]
		allocation = append(allocation, schemas.AssetAllocationItem{
			AssetType:  assetType,
			Value:      value,
			Percentage: percentageOf(value, totalCurrentValue),
		})
	}

	return &schemas.PortfolioSummary{
		TotalInvested:     totalInvested,
		TotalCurrentValue: totalCurrentValue,
		TotalProfitLoss:   totalCurrentValue.Sub(totalInvested),
		AssetAllocation:   allocation,
	}
}

// BuildAllocationResponse is the /portfolio/allocation shape: current value
// only, grouped by asset class.
func BuildAllocationResponse(investments []models.Investment) *schemas.AllocationResponse {
	total := decimal.Zero
	byAssetType := make(map[string]decimal.Decimal)
	for _, inv := range investments {
		total = total.Add(inv.CurrentValue)
		byAssetType[inv.AssetType] = byAssetType[inv.AssetType].Add(inv.CurrentValue)
	}

	allocation := make([]schemas.AllocationItem, 0, len(byAssetType))
	for _, assetType := range sortedKeys(byAssetType) {
		value := byAssetType[assetType]
		allocation = append(allocation, schemas.AllocationItem{
			AssetClass: assetType,
			TotalValue: value,
			Percentage: percentageOf(value, total),
		})
	}

	return &schemas.AllocationResponse{
		TotalValue: total,
		Allocation: allocation,
	}
}

// BuildDashboardSummary folds the goal rollup into the portfolio summary.
// Goals never interact with ledger math; this is a second read-only view.
func BuildDashboardSummary(investments []models.Investment, goals []models.Goal, activeGoals int) *schemas.DashboardSummary {
	portfolio := BuildPortfolioSummary(investments)

	progress := make([]schemas.GoalProgressItem, 0, goalProgressLimit)
	for _, g := range goals {
		if len(progress) == goalProgressLimit {
			break
		}
		progress = append(progress, schemas.GoalProgressItem{
			ID:                  g.ID,
			GoalType:            g.GoalType,
			TargetAmount:        g.TargetAmount,
			TargetDate:          g.TargetDate.Format("2006-01-02"),
			Status:              g.Status,
			MonthlyContribution: g.MonthlyContribution,
		})
	}

	return &schemas.DashboardSummary{
		TotalInvested:       portfolio.TotalInvested,
		TotalCurrentValue:   portfolio.TotalCurrentValue,
		TotalProfitLoss:     portfolio.TotalProfitLoss,
		AssetAllocation:     portfolio.AssetAllocation,
		ActiveGoalsCount:    activeGoals,
		GoalProgressSummary: progress,
	}
}

// percentageOf is value/total*100 rounded to 2 decimal places, and 0 when the
// total is zero or negative so an empty portfolio never divides by zero.
func percentageOf(value, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	pct, _ := value.Div(total).Mul(hundred).Round(2).Float64()
	return pct
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
