package schemas

import (
	"time"

	"server/src/models"

	"github.com/shopspring/decimal"
)

type InvestmentCreate struct {
	AssetType   string          `json:"asset_type"`
	Symbol      string          `json:"symbol"`
	Units       decimal.Decimal `json:"units"`
	AvgBuyPrice decimal.Decimal `json:"avg_buy_price"`
}

// InvestmentUpdate is the manual-correction escape hatch: it writes holding
// fields directly, bypassing reconciliation.
type InvestmentUpdate struct {
	Units        *decimal.Decimal `json:"units"`
	AvgBuyPrice  *decimal.Decimal `json:"avg_buy_price"`
	CostBasis    *decimal.Decimal `json:"cost_basis"`
	CurrentValue *decimal.Decimal `json:"current_value"`
	LastPrice    *decimal.Decimal `json:"last_price"`
}

func (u *InvestmentUpdate) Apply(inv *models.Investment) {
	if u.Units != nil {
		inv.Units = *u.Units
	}
	if u.AvgBuyPrice != nil {
		inv.AvgBuyPrice = *u.AvgBuyPrice
	}
	if u.CostBasis != nil {
		inv.CostBasis = *u.CostBasis
	}
	if u.CurrentValue != nil {
		inv.CurrentValue = *u.CurrentValue
	}
	if u.LastPrice != nil {
		price := *u.LastPrice
		inv.LastPrice = &price
		now := time.Now().UTC()
		inv.LastPriceAt = &now
	}
}

type InvestmentResponse struct {
	ID           int              `json:"id"`
	UserID       int              `json:"user_id"`
	AssetType    string           `json:"asset_type"`
	Symbol       string           `json:"symbol"`
	Units        decimal.Decimal  `json:"units"`
	AvgBuyPrice  decimal.Decimal  `json:"avg_buy_price"`
	CostBasis    decimal.Decimal  `json:"cost_basis"`
	CurrentValue decimal.Decimal  `json:"current_value"`
	LastPrice    *decimal.Decimal `json:"last_price,omitempty"`
	LastPriceAt  *time.Time       `json:"last_price_at,omitempty"`
}

func NewInvestmentResponse(inv *models.Investment) *InvestmentResponse {
	return &InvestmentResponse{
		ID:           inv.ID,
		UserID:       inv.UserID,
		AssetType:    inv.AssetType,
		Symbol:       inv.Symbol,
		Units:        inv.Units,
		AvgBuyPrice:  inv.AvgBuyPrice,
		CostBasis:    inv.CostBasis,
		CurrentValue: inv.CurrentValue,
		LastPrice:    inv.LastPrice,
		LastPriceAt:  inv.LastPriceAt,
	}
}
