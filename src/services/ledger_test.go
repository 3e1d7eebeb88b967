package services_test

import (
	"testing"

	"server/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseEventKind(t *testing.T) {
	for _, valid := range []string{"buy", "sell", "contribution", "withdrawal"} {
		kind, err := services.ParseEventKind(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(kind))
	}

	for _, invalid := range []string{"", "BUY", "dividend", "transfer"} {
		_, err := services.ParseEventKind(invalid)
		require.Error(t, err)
		kind, ok := services.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, services.KindInvalidEvent, kind)
	}
}

func TestEventKindClassification(t *testing.T) {
	assert.True(t, services.EventBuy.IsPurchase())
	assert.True(t, services.EventContribution.IsPurchase())
	assert.False(t, services.EventBuy.IsDisposal())

	assert.True(t, services.EventSell.IsDisposal())
	assert.True(t, services.EventWithdrawal.IsDisposal())
	assert.False(t, services.EventSell.IsPurchase())
}

func TestApplyPurchase(t *testing.T) {
	t.Run("OpensPosition", func(t *testing.T) {
		state, err := services.ApplyPurchase(services.PositionState{}, dec("10"), dec("100"))
		require.NoError(t, err)

		assert.True(t, state.Units.Equal(dec("10")), "units = %s", state.Units)
		assert.True(t, state.AvgBuyPrice.Equal(dec("100")), "avg = %s", state.AvgBuyPrice)
		assert.True(t, state.CostBasis.Equal(dec("1000")), "cost = %s", state.CostBasis)
		assert.True(t, state.CurrentValue.Equal(dec("1000")), "value = %s", state.CurrentValue)
	})

	t.Run("WeightedAverage", func(t *testing.T) {
		state, err := services.ApplyPurchase(services.PositionState{}, dec("10"), dec("100"))
		require.NoError(t, err)
		state, err = services.ApplyPurchase(state, dec("5"), dec("120"))
		require.NoError(t, err)

		assert.True(t, state.Units.Equal(dec("15")), "units = %s", state.Units)
		assert.True(t, state.CostBasis.Equal(dec("1600")), "cost = %s", state.CostBasis)
		// 1600 / 15 rounded to 4 decimal places
		assert.True(t, state.AvgBuyPrice.Equal(dec("106.6667")), "avg = %s", state.AvgBuyPrice)
	})

	t.Run("CostBasisIsSumOfCosts", func(t *testing.T) {
		buys := []struct{ qty, price string }{
			{"3.5", "12.40"},
			{"1.25", "9.99"},
			{"10", "0.07"},
			{"0.000001", "50000"},
		}

		state := services.PositionState{}
		expectedCost := decimal.Zero
		expectedUnits := decimal.Zero
		for _, b := range buys {
			var err error
			state, err = services.ApplyPurchase(state, dec(b.qty), dec(b.price))
			require.NoError(t, err)
			expectedCost = expectedCost.Add(dec(b.qty).Mul(dec(b.price)))
			expectedUnits = expectedUnits.Add(dec(b.qty))
		}

		assert.True(t, state.Units.Equal(expectedUnits.Round(services.UnitScale)), "units = %s", state.Units)
		assert.True(t, state.CostBasis.Equal(expectedCost.Round(services.MoneyScale)), "cost = %s", state.CostBasis)
		assert.True(t, state.AvgBuyPrice.Equal(expectedCost.Div(expectedUnits).Round(services.PriceScale)),
			"avg = %s", state.AvgBuyPrice)
	})

	t.Run("FreePurchaseAllowed", func(t *testing.T) {
		state, err := services.ApplyPurchase(services.PositionState{}, dec("4"), dec("0"))
		require.NoError(t, err)
		assert.True(t, state.CostBasis.IsZero())
		assert.True(t, state.AvgBuyPrice.IsZero())
	})

	t.Run("RejectsNonPositiveQuantity", func(t *testing.T) {
		for _, qty := range []string{"0", "-1"} {
			_, err := services.ApplyPurchase(services.PositionState{}, dec(qty), dec("100"))
			require.Error(t, err)
			kind, ok := services.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, services.KindInvalidEvent, kind)
		}
	})

	t.Run("RejectsNegativePrice", func(t *testing.T) {
		_, err := services.ApplyPurchase(services.PositionState{}, dec("1"), dec("-0.01"))
		require.Error(t, err)
		kind, _ := services.KindOf(err)
		assert.Equal(t, services.KindInvalidEvent, kind)
	})
}

func TestApplyDisposal(t *testing.T) {
	position := func(t *testing.T) services.PositionState {
		t.Helper()
		state, err := services.ApplyPurchase(services.PositionState{}, dec("10"), dec("100"))
		require.NoError(t, err)
		state, err = services.ApplyPurchase(state, dec("5"), dec("120"))
		require.NoError(t, err)
		return state
	}

	t.Run("PartialSellScalesCostBasis", func(t *testing.T) {
		state, closed, err := services.ApplyDisposal(position(t), dec("5"), dec("150"))
		require.NoError(t, err)
		assert.False(t, closed)

		assert.True(t, state.Units.Equal(dec("10")), "units = %s", state.Units)
		// 1600 * 10/15 rounded to cents
		assert.True(t, state.CostBasis.Equal(dec("1066.67")), "cost = %s", state.CostBasis)
		// The sale price never moves the average buy price.
		assert.True(t, state.AvgBuyPrice.Equal(dec("106.6667")), "avg = %s", state.AvgBuyPrice)
	})

	t.Run("SellingEverythingClosesPosition", func(t *testing.T) {
		state, closed, err := services.ApplyDisposal(position(t), dec("15"), dec("90"))
		require.NoError(t, err)
		assert.True(t, closed)
		assert.True(t, state.Units.IsZero())
		assert.True(t, state.CostBasis.IsZero())
	})

	t.Run("OverSellRejected", func(t *testing.T) {
		before := position(t)
		after, closed, err := services.ApplyDisposal(before, dec("15.000001"), dec("90"))
		require.Error(t, err)
		assert.False(t, closed)
		kind, ok := services.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, services.KindInsufficientUnits, kind)
		// State is handed back untouched on rejection.
		assert.True(t, after.Units.Equal(before.Units))
		assert.True(t, after.CostBasis.Equal(before.CostBasis))
	})

	t.Run("SellFromEmptyPositionRejected", func(t *testing.T) {
		_, _, err := services.ApplyDisposal(services.PositionState{}, dec("1"), dec("10"))
		require.Error(t, err)
		kind, _ := services.KindOf(err)
		assert.Equal(t, services.KindInsufficientUnits, kind)
	})

	t.Run("RejectsNonPositiveQuantity", func(t *testing.T) {
		_, _, err := services.ApplyDisposal(position(t), dec("0"), dec("10"))
		require.Error(t, err)
		kind, _ := services.KindOf(err)
		assert.Equal(t, services.KindInvalidEvent, kind)
	})

	t.Run("BuySellRoundTripKeepsAverage", func(t *testing.T) {
		state := position(t)
		avg := state.AvgBuyPrice

		state, closed, err := services.ApplyDisposal(state, dec("3"), dec("200"))
		require.NoError(t, err)
		require.False(t, closed)
		assert.True(t, state.AvgBuyPrice.Equal(avg))

		state, closed, err = services.ApplyDisposal(state, dec("3"), dec("50"))
		require.NoError(t, err)
		require.False(t, closed)
		assert.True(t, state.AvgBuyPrice.Equal(avg))
	})
}
