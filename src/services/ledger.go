package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scales for persisted decimals: currency amounts keep 2 fractional digits,
// per-unit prices 4, unit quantities 6. All intermediate math is exact
// decimal; rounding happens once, on the resulting state.
const (
	MoneyScale = 2
	PriceScale = 4
	UnitScale  = 6
)

// EventKind is the type of a recorded transaction. Contributions behave like
// buys and withdrawals like sells; the distinction only matters for reporting.
type EventKind string

const (
	EventBuy          EventKind = "buy"
	EventSell         EventKind = "sell"
	EventContribution EventKind = "contribution"
	EventWithdrawal   EventKind = "withdrawal"
)

// ParseEventKind rejects unknown transaction types instead of silently
// skipping them.
func ParseEventKind(s string) (EventKind, error) {
	switch EventKind(s) {
	case EventBuy, EventSell, EventContribution, EventWithdrawal:
		return EventKind(s), nil
	}
	return "", NewError(KindInvalidEvent, fmt.Sprintf("unrecognized transaction type %q", s))
}

func (k EventKind) IsPurchase() bool {
	return k == EventBuy || k == EventContribution
}

func (k EventKind) IsDisposal() bool {
	return k == EventSell || k == EventWithdrawal
}

// PositionState is the mutable accounting state of one holding.
type PositionState struct {
	Units        decimal.Decimal
	AvgBuyPrice  decimal.Decimal
	CostBasis    decimal.Decimal
	CurrentValue decimal.Decimal
}

// ApplyPurchase folds a buy or contribution of quantity units at price into
// the position, recomputing the weighted-average cost per unit. CurrentValue
// grows by the cost added; it tracks cumulative cost, not a live market mark,
// until a price refresh overwrites it.
func ApplyPurchase(p PositionState, quantity, price decimal.Decimal) (PositionState, error) {
	if err := validateEvent(quantity, price); err != nil {
		return p, err
	}

	cost := quantity.Mul(price)
	newUnits := p.Units.Add(quantity)
	if newUnits.IsZero() {
		return p, NewError(KindArithmetic, "purchase results in zero units, cannot derive average price")
	}
	newCost := p.CostBasis.Add(cost)

	return PositionState{
		Units:        newUnits.Round(UnitScale),
		AvgBuyPrice:  newCost.Div(newUnits).Round(PriceScale),
		CostBasis:    newCost.Round(MoneyScale),
		CurrentValue: p.CurrentValue.Add(cost).Round(MoneyScale),
	}, nil
}

// ApplyDisposal removes quantity units from the position. Selling more than
// is held is rejected with KindInsufficientUnits. Selling exactly everything
// closes the position (closed=true, zeroed state); otherwise cost basis and
// current value scale by the fraction of units remaining and the average buy
// price is untouched.
func ApplyDisposal(p PositionState, quantity, price decimal.Decimal) (state PositionState, closed bool, err error) {
	if err := validateEvent(quantity, price); err != nil {
		return p, false, err
	}
	if quantity.GreaterThan(p.Units) {
		return p, false, NewError(KindInsufficientUnits,
			fmt.Sprintf("cannot dispose of %s units, only %s held", quantity, p.Units))
	}

	remaining := p.Units.Sub(quantity)
	if !remaining.IsPositive() {
		return PositionState{}, true, nil
	}

	return PositionState{
		Units:        remaining.Round(UnitScale),
		AvgBuyPrice:  p.AvgBuyPrice,
		CostBasis:    p.CostBasis.Mul(remaining).Div(p.Units).Round(MoneyScale),
		CurrentValue: p.CurrentValue.Mul(remaining).Div(p.Units).Round(MoneyScale),
	}, false, nil
}

func validateEvent(quantity, price decimal.Decimal) error {
	if !quantity.IsPositive() {
		return NewError(KindInvalidEvent, "quantity must be greater than zero")
	}
	if price.IsNegative() {
		return NewError(KindInvalidEvent, "price must not be negative")
	}
	return nil
}
