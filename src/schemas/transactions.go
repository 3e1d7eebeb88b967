package schemas

import (
	"time"

	"server/src/models"

	"github.com/shopspring/decimal"
)

type TransactionCreate struct {
	Symbol   string          `json:"symbol"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Fees     decimal.Decimal `json:"fees"`
	// AssetType classifies the holding when this transaction opens a new
	// position. Required in that case, ignored otherwise.
	AssetType string `json:"asset_type"`
}

// TransactionUpdate edits the historical record only; the holding it
// reconciled against is not recomputed.
type TransactionUpdate struct {
	Symbol   *string          `json:"symbol"`
	Type     *string          `json:"type"`
	Quantity *decimal.Decimal `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
	Fees     *decimal.Decimal `json:"fees"`
}

func (u *TransactionUpdate) Apply(t *models.Transaction) {
	if u.Symbol != nil {
		t.Symbol = *u.Symbol
	}
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.Quantity != nil {
		t.Quantity = *u.Quantity
	}
	if u.Price != nil {
		t.Price = *u.Price
	}
	if u.Fees != nil {
		t.Fees = *u.Fees
	}
}

type TransactionResponse struct {
	ID         int             `json:"id"`
	UserID     int             `json:"user_id"`
	Symbol     string          `json:"symbol"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Fees       decimal.Decimal `json:"fees"`
	ExecutedAt time.Time       `json:"executed_at"`
}

func NewTransactionResponse(t *models.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:         t.ID,
		UserID:     t.UserID,
		Symbol:     t.Symbol,
		Type:       t.Type,
		Quantity:   t.Quantity,
		Price:      t.Price,
		Fees:       t.Fees,
		ExecutedAt: t.ExecutedAt,
	}
}
