package schemas

import "github.com/shopspring/decimal"

type GoalProgressItem struct {
	ID                  int             `json:"id"`
	GoalType            string          `json:"goal_type"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	TargetDate          string          `json:"target_date"`
	Status              string          `json:"status"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
}

type DashboardSummary struct {
	TotalInvested       decimal.Decimal       `json:"total_invested"`
	TotalCurrentValue   decimal.Decimal       `json:"total_current_value"`
	TotalProfitLoss     decimal.Decimal       `json:"total_profit_loss"`
	AssetAllocation     []AssetAllocationItem `json:"asset_allocation"`
	ActiveGoalsCount    int                   `json:"active_goals_count"`
	GoalProgressSummary []GoalProgressItem    `json:"goal_progress_summary"`
}
