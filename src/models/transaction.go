package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only record of a buy/sell/contribution/withdrawal
// event. Editing or deleting a past transaction does not re-reconcile the
// holding it touched.
type Transaction struct {
	ID         int             `db:"id"`
	UserID     int             `db:"user_id"`
	Symbol     string          `db:"symbol"`
	Type       string          `db:"type"`
	Quantity   decimal.Decimal `db:"quantity"`
	Price      decimal.Decimal `db:"price"`
	Fees       decimal.Decimal `db:"fees"`
	ExecutedAt time.Time       `db:"executed_at"`
}
