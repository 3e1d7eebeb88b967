package services_test

import (
	"testing"
	"time"

	"server/src/models"
	"server/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holdings() []models.Investment {
	return []models.Investment{
		{AssetType: "stock", Symbol: "AAPL", CostBasis: dec("1000"), CurrentValue: dec("1500")},
		{AssetType: "stock", Symbol: "MSFT", CostBasis: dec("2000"), CurrentValue: dec("1800")},
		{AssetType: "crypto", Symbol: "BTC", CostBasis: dec("500"), CurrentValue: dec("700")},
		{AssetType: "etf", Symbol: "VOO", CostBasis: dec("3000"), CurrentValue: dec("3300")},
	}
}

func TestBuildPortfolioSummary(t *testing.T) {
	t.Run("Totals", func(t *testing.T) {
		summary := services.BuildPortfolioSummary(holdings())

		assert.True(t, summary.TotalInvested.Equal(dec("6500")), "invested = %s", summary.TotalInvested)
		assert.True(t, summary.TotalCurrentValue.Equal(dec("7300")), "value = %s", summary.TotalCurrentValue)
		assert.True(t, summary.TotalProfitLoss.Equal(dec("800")), "pl = %s", summary.TotalProfitLoss)
	})

	t.Run("ProfitLossIdentity", func(t *testing.T) {
		summary := services.BuildPortfolioSummary(holdings())
		assert.True(t, summary.TotalProfitLoss.Equal(summary.TotalCurrentValue.Sub(summary.TotalInvested)))
	})

	t.Run("GroupsByAssetType", func(t *testing.T) {
		summary := services.BuildPortfolioSummary(holdings())
		require.Len(t, summary.AssetAllocation, 3)

		// Sorted by asset type.
		assert.Equal(t, "crypto", summary.AssetAllocation[0].AssetType)
		assert.Equal(t, "etf", summary.AssetAllocation[1].AssetType)
		assert.Equal(t, "stock", summary.AssetAllocation[2].AssetType)

		assert.True(t, summary.AssetAllocation[0].Value.Equal(dec("700")))
		assert.True(t, summary.AssetAllocation[1].Value.Equal(dec("3300")))
		assert.True(t, summary.AssetAllocation[2].Value.Equal(dec("3300")))
	})

	t.Run("PercentagesSumToHundred", func(t *testing.T) {
		summary := services.BuildPortfolioSummary(holdings())

		var sum float64
		for _, item := range summary.AssetAllocation {
			sum += item.Percentage
		}
		assert.InDelta(t, 100.0, sum, 0.01)
	})

	t.Run("InputOrderDoesNotMatter", func(t *testing.T) {
		forward := services.BuildPortfolioSummary(holdings())

		reversed := holdings()
		for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
			reversed[i], reversed[j] = reversed[j], reversed[i]
		}
		backward := services.BuildPortfolioSummary(reversed)

		assert.True(t, forward.TotalInvested.Equal(backward.TotalInvested))
		assert.True(t, forward.TotalCurrentValue.Equal(backward.TotalCurrentValue))
		require.Equal(t, len(forward.AssetAllocation), len(backward.AssetAllocation))
		for i := range forward.AssetAllocation {
			assert.Equal(t, forward.AssetAllocation[i].AssetType, backward.AssetAllocation[i].AssetType)
			assert.True(t, forward.AssetAllocation[i].Value.Equal(backward.AssetAllocation[i].Value))
		}
	})

	t.Run("EmptyPortfolio", func(t *testing.T) {
		summary := services.BuildPortfolioSummary(nil)
		assert.True(t, summary.TotalInvested.IsZero())
		assert.True(t, summary.TotalCurrentValue.IsZero())
		assert.True(t, summary.TotalProfitLoss.IsZero())
		assert.Empty(t, summary.AssetAllocation)
	})

	t.Run("ZeroValueHoldingsGetZeroPercent", func(t *testing.T) {
		summary := services.BuildPortfolioSummary([]models.Investment{
			{AssetType: "stock", Symbol: "XYZ", CostBasis: dec("100"), CurrentValue: dec("0")},
		})
		require.Len(t, summary.AssetAllocation, 1)
		assert.Equal(t, 0.0, summary.AssetAllocation[0].Percentage)
	})
}

func TestBuildAllocationResponse(t *testing.T) {
	resp := services.BuildAllocationResponse(holdings())

	assert.True(t, resp.TotalValue.Equal(dec("7300")), "total = %s", resp.TotalValue)
	require.Len(t, resp.Allocation, 3)

	var sum float64
	for _, item := range resp.Allocation {
		sum += item.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.01)
}

func TestBuildDashboardSummary(t *testing.T) {
	goal := func(id int) models.Goal {
		return models.Goal{
			ID:                  id,
			GoalType:            "retirement",
			TargetAmount:        dec("100000"),
			TargetDate:          time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
			MonthlyContribution: dec("500"),
			Status:              models.GoalStatusActive,
		}
	}

	t.Run("FoldsPortfolioAndGoals", func(t *testing.T) {
		summary := services.BuildDashboardSummary(holdings(), []models.Goal{goal(1), goal(2)}, 2)

		assert.True(t, summary.TotalInvested.Equal(dec("6500")))
		assert.True(t, summary.TotalProfitLoss.Equal(dec("800")))
		assert.Equal(t, 2, summary.ActiveGoalsCount)
		require.Len(t, summary.GoalProgressSummary, 2)
		assert.Equal(t, "2030-06-01", summary.GoalProgressSummary[0].TargetDate)
		assert.Equal(t, "retirement", summary.GoalProgressSummary[0].GoalType)
	})

	t.Run("GoalRollupCapped", func(t *testing.T) {
		goals := make([]models.Goal, 0, 15)
		for i := 1; i <= 15; i++ {
			goals = append(goals, goal(i))
		}
		summary := services.BuildDashboardSummary(nil, goals, 15)

		assert.Len(t, summary.GoalProgressSummary, 10)
		assert.Equal(t, 15, summary.ActiveGoalsCount)
		assert.Equal(t, 1, summary.GoalProgressSummary[0].ID)
		assert.Equal(t, 10, summary.GoalProgressSummary[9].ID)
	})

	t.Run("NoGoals", func(t *testing.T) {
		summary := services.BuildDashboardSummary(holdings(), nil, 0)
		assert.Empty(t, summary.GoalProgressSummary)
		assert.Equal(t, 0, summary.ActiveGoalsCount)
	})
}
