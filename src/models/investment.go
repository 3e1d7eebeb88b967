package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a user's current position in one symbol. One row per
// (user_id, symbol); a position whose units reach zero is deleted, never stored.
// CostBasis == Units * AvgBuyPrice holds after every reconciled mutation.
type Investment struct {
	ID           int              `db:"id"`
	UserID       int              `db:"user_id"`
	AssetType    string           `db:"asset_type"`
	Symbol       string           `db:"symbol"`
	Units        decimal.Decimal  `db:"units"`
	AvgBuyPrice  decimal.Decimal  `db:"avg_buy_price"`
	CostBasis    decimal.Decimal  `db:"cost_basis"`
	CurrentValue decimal.Decimal  `db:"current_value"`
	LastPrice    *decimal.Decimal `db:"last_price"`
	LastPriceAt  *time.Time       `db:"last_price_at"`
}
