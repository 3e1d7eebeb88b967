package schemas

import "github.com/shopspring/decimal"

type AssetAllocationItem struct {
	AssetType  string          `json:"asset_type"`
	Value      decimal.Decimal `json:"value"`
	Percentage float64         `json:"percentage"`
}

type PortfolioSummary struct {
	TotalInvested     decimal.Decimal       `json:"total_invested"`
	TotalCurrentValue decimal.Decimal       `json:"total_current_value"`
	TotalProfitLoss   decimal.Decimal       `json:"total_profit_loss"`
	AssetAllocation   []AssetAllocationItem `json:"asset_allocation"`
}

type AllocationItem struct {
	AssetClass string          `json:"asset_class"`
	TotalValue decimal.Decimal `json:"total_value"`
	Percentage float64         `json:"percentage"`
}

type AllocationResponse struct {
	TotalValue decimal.Decimal  `json:"total_value"`
	Allocation []AllocationItem `json:"allocation"`
}
