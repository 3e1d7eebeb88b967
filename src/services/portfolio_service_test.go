package services_test

import (
	"context"
	"testing"

	"server/src/models"
	"server/src/repositories"
	"server/src/schemas"
	"server/src/services"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTx satisfies pgx.Tx and records the commit/rollback outcome; the
// in-memory repositories below ignore the tx entirely.
type stubTx struct {
	committed  bool
	rolledBack bool
}

var _ pgx.Tx = (*stubTx)(nil)

func (t *stubTx) Begin(_ context.Context) (pgx.Tx, error) { return t, nil }

func (t *stubTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(_ context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *stubTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *stubTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (t *stubTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }

func (t *stubTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *stubTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *stubTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return nil, nil }
func (t *stubTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row        { return nil }
func (t *stubTx) Conn() *pgx.Conn                                               { return nil }

type stubDB struct {
	txs []*stubTx
}

func (d *stubDB) Begin(_ context.Context) (pgx.Tx, error) {
	tx := &stubTx{}
	d.txs = append(d.txs, tx)
	return tx, nil
}

func (d *stubDB) lastTx(t *testing.T) *stubTx {
	t.Helper()
	require.NotEmpty(t, d.txs)
	return d.txs[len(d.txs)-1]
}

type memHoldings struct {
	items  []models.Investment
	nextID int
}

var _ repositories.InvestmentRepository = (*memHoldings)(nil)

func (r *memHoldings) GetByUserID(_ context.Context, userID int) ([]models.Investment, error) {
	var out []models.Investment
	for _, inv := range r.items {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memHoldings) GetByID(_ context.Context, id, userID int) (*models.Investment, error) {
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].UserID == userID {
			inv := r.items[i]
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *memHoldings) GetByUserAndSymbol(_ context.Context, userID int, symbol string) (*models.Investment, error) {
	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].Symbol == symbol {
			inv := r.items[i]
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *memHoldings) GetByUserAndSymbolForUpdate(ctx context.Context, userID int, symbol string, _ pgx.Tx) (*models.Investment, error) {
	return r.GetByUserAndSymbol(ctx, userID, symbol)
}

func (r *memHoldings) Create(_ context.Context, inv *models.Investment, _ pgx.Tx) error {
	r.nextID++
	inv.ID = r.nextID
	r.items = append(r.items, *inv)
	return nil
}

func (r *memHoldings) Update(_ context.Context, inv *models.Investment, _ pgx.Tx) error {
	for i := range r.items {
		if r.items[i].ID == inv.ID {
			r.items[i] = *inv
			return nil
		}
	}
	return nil
}

func (r *memHoldings) Delete(_ context.Context, id int, _ pgx.Tx) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type memEvents struct {
	items  []models.Transaction
	nextID int
}

var _ repositories.TransactionRepository = (*memEvents)(nil)

func (r *memEvents) GetByUserID(_ context.Context, userID int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range r.items {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memEvents) GetByID(_ context.Context, id, userID int) (*models.Transaction, error) {
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].UserID == userID {
			t := r.items[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (r *memEvents) Create(_ context.Context, t *models.Transaction, _ pgx.Tx) error {
	r.nextID++
	t.ID = r.nextID
	r.items = append(r.items, *t)
	return nil
}

func (r *memEvents) Update(_ context.Context, t *models.Transaction) error {
	for i := range r.items {
		if r.items[i].ID == t.ID {
			r.items[i] = *t
			return nil
		}
	}
	return nil
}

func (r *memEvents) Delete(_ context.Context, id, userID int) (bool, error) {
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newReconciler() (*services.PortfolioService, *stubDB, *memHoldings, *memEvents) {
	db := &stubDB{}
	holdings := &memHoldings{}
	events := &memEvents{}
	return services.NewPortfolioService(db, holdings, events, nil), db, holdings, events
}

func buy(symbol, assetType, quantity, price string) *schemas.TransactionCreate {
	return &schemas.TransactionCreate{
		Symbol:    symbol,
		Type:      "buy",
		Quantity:  dec(quantity),
		Price:     dec(price),
		AssetType: assetType,
	}
}

func sell(symbol, quantity, price string) *schemas.TransactionCreate {
	return &schemas.TransactionCreate{
		Symbol:   symbol,
		Type:     "sell",
		Quantity: dec(quantity),
		Price:    dec(price),
	}
}

func TestRecordTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("BuyOpensPosition", func(t *testing.T) {
		svc, db, holdings, events := newReconciler()

		record, err := svc.RecordTransaction(ctx, 1, buy("AAPL", "stock", "10", "100"))
		require.NoError(t, err)
		assert.Equal(t, "buy", record.Type)

		require.Len(t, holdings.items, 1)
		inv := holdings.items[0]
		assert.Equal(t, "stock", inv.AssetType)
		assert.True(t, inv.Units.Equal(dec("10")))
		assert.True(t, inv.AvgBuyPrice.Equal(dec("100")))
		assert.True(t, inv.CostBasis.Equal(dec("1000")))
		require.NotNil(t, inv.LastPrice)
		assert.True(t, inv.LastPrice.Equal(dec("100")))

		assert.Len(t, events.items, 1)
		assert.True(t, db.lastTx(t).committed)
	})

	t.Run("MissingAssetTypeRejected", func(t *testing.T) {
		svc, db, holdings, _ := newReconciler()

		_, err := svc.RecordTransaction(ctx, 1, buy("AAPL", "", "10", "100"))
		require.Error(t, err)
		kind, ok := services.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, services.KindInvalidEvent, kind)

		assert.Empty(t, holdings.items)
		assert.False(t, db.lastTx(t).committed)
		assert.True(t, db.lastTx(t).rolledBack)
	})

	t.Run("SellUnheldSymbolRejected", func(t *testing.T) {
		svc, db, _, _ := newReconciler()

		_, err := svc.RecordTransaction(ctx, 1, sell("TSLA", "5", "200"))
		require.Error(t, err)
		kind, ok := services.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, services.KindInsufficientUnits, kind)

		assert.True(t, db.lastTx(t).rolledBack)
	})

	t.Run("BuyFoldsIntoExistingPosition", func(t *testing.T) {
		svc, _, holdings, _ := newReconciler()

		_, err := svc.RecordTransaction(ctx, 1, buy("AAPL", "stock", "10", "100"))
		require.NoError(t, err)
		_, err = svc.RecordTransaction(ctx, 1, buy("AAPL", "", "5", "120"))
		require.NoError(t, err)

		require.Len(t, holdings.items, 1)
		inv := holdings.items[0]
		assert.True(t, inv.Units.Equal(dec("15")), "units = %s", inv.Units)
		assert.True(t, inv.CostBasis.Equal(dec("1600")), "cost = %s", inv.CostBasis)
		assert.True(t, inv.AvgBuyPrice.Equal(dec("106.6667")), "avg = %s", inv.AvgBuyPrice)
	})

	t.Run("PartialSellScalesHolding", func(t *testing.T) {
		svc, _, holdings, _ := newReconciler()

		_, err := svc.RecordTransaction(ctx, 1, buy("AAPL", "stock", "15", "100"))
		require.NoError(t, err)
		_, err = svc.RecordTransaction(ctx, 1, sell("AAPL", "5", "150"))
		require.NoError(t, err)

		require.Len(t, holdings.items, 1)
		inv := holdings.items[0]
		assert.True(t, inv.Units.Equal(dec("10")))
		assert.True(t, inv.CostBasis.Equal(dec("1000")))
		assert.True(t, inv.AvgBuyPrice.Equal(dec("100")))
	})

	t.Run("SellAllDeletesHolding", func(t *testing.T) {
		svc, db, holdings, events := newReconciler()

		_, err := svc.RecordTransaction(ctx, 1, buy("AAPL", "stock", "10", "100"))
		require.NoError(t, err)
		_, err = svc.RecordTransaction(ctx, 1, sell("AAPL", "10", "150"))
		require.NoError(t, err)

		assert.Empty(t, holdings.items)
		// Both events stay on the books after the position closes.
		assert.Len(t, events.items, 2)
		assert.True(t, db.lastTx(t).committed)
	})

	t.Run("OverSellRollsBack", func(t *testing.T) {
		svc, db, holdings, _ := newReconciler()

		_, err := svc.RecordTransaction(ctx, 1, buy("AAPL", "stock", "10", "100"))
		require.NoError(t, err)
		_, err = svc.RecordTransaction(ctx, 1, sell("AAPL", "20", "150"))
		require.Error(t, err)
		kind, _ := services.KindOf(err)
		assert.Equal(t, services.KindInsufficientUnits, kind)

		assert.True(t, db.lastTx(t).rolledBack)
		require.Len(t, holdings.items, 1)
		assert.True(t, holdings.items[0].Units.Equal(dec("10")))
	})

	t.Run("UnknownTypeRejectedBeforeTransactionStarts", func(t *testing.T) {
		svc, db, _, _ := newReconciler()

		_, err := svc.RecordTransaction(ctx, 1, &schemas.TransactionCreate{
			Symbol: "AAPL", Type: "dividend", Quantity: dec("1"), Price: dec("10"),
		})
		require.Error(t, err)
		kind, _ := services.KindOf(err)
		assert.Equal(t, services.KindInvalidEvent, kind)
		assert.Empty(t, db.txs)
	})

	t.Run("WithdrawalBehavesLikeSell", func(t *testing.T) {
		svc, _, holdings, _ := newReconciler()

		_, err := svc.RecordTransaction(ctx, 1, &schemas.TransactionCreate{
			Symbol: "BOND", Type: "contribution", Quantity: dec("100"), Price: dec("10"), AssetType: "bond",
		})
		require.NoError(t, err)
		_, err = svc.RecordTransaction(ctx, 1, &schemas.TransactionCreate{
			Symbol: "BOND", Type: "withdrawal", Quantity: dec("100"), Price: dec("10"),
		})
		require.NoError(t, err)

		assert.Empty(t, holdings.items)
	})
}
