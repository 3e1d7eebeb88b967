package repositories

import (
	"context"
	"errors"

	"server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvestmentRepository interface {
	GetByUserID(ctx context.Context, userID int) ([]models.Investment, error)
	GetByID(ctx context.Context, id, userID int) (*models.Investment, error)
	// GetByUserAndSymbolForUpdate locks the holding row inside tx so two
	// concurrent reconciliations of the same position cannot interleave.
	GetByUserAndSymbolForUpdate(ctx context.Context, userID int, symbol string, tx pgx.Tx) (*models.Investment, error)
	GetByUserAndSymbol(ctx context.Context, userID int, symbol string) (*models.Investment, error)
	Create(ctx context.Context, inv *models.Investment, tx pgx.Tx) error
	Update(ctx context.Context, inv *models.Investment, tx pgx.Tx) error
	Delete(ctx context.Context, id int, tx pgx.Tx) error
}

type investmentRepo struct {
	db *pgxpool.Pool
}

func NewInvestmentRepository(db *pgxpool.Pool) InvestmentRepository {
	return &investmentRepo{db: db}
}

const investmentColumns = `id, user_id, asset_type, symbol, units, avg_buy_price, cost_basis, current_value, last_price, last_price_at`

func (r *investmentRepo) GetByUserID(ctx context.Context, userID int) ([]models.Investment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE user_id = $1 ORDER BY symbol`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []models.Investment
	for rows.Next() {
		var inv models.Investment
		if err := scanInvestment(rows, &inv); err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func (r *investmentRepo) GetByID(ctx context.Context, id, userID int) (*models.Investment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE id = $1 AND user_id = $2`, id, userID)

	var inv models.Investment
	err := scanInvestment(row, &inv)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *investmentRepo) GetByUserAndSymbolForUpdate(ctx context.Context, userID int, symbol string, tx pgx.Tx) (*models.Investment, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE user_id = $1 AND symbol = $2 FOR UPDATE`,
		userID, symbol)

	var inv models.Investment
	err := scanInvestment(row, &inv)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *investmentRepo) GetByUserAndSymbol(ctx context.Context, userID int, symbol string) (*models.Investment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE user_id = $1 AND symbol = $2`,
		userID, symbol)

	var inv models.Investment
	err := scanInvestment(row, &inv)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func scanInvestment(row pgx.Row, inv *models.Investment) error {
	return row.Scan(&inv.ID, &inv.UserID, &inv.AssetType, &inv.Symbol, &inv.Units,
		&inv.AvgBuyPrice, &inv.CostBasis, &inv.CurrentValue, &inv.LastPrice, &inv.LastPriceAt)
}

const insertInvestment = `
	INSERT INTO investments (user_id, asset_type, symbol, units, avg_buy_price, cost_basis, current_value, last_price, last_price_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id`

func (r *investmentRepo) Create(ctx context.Context, inv *models.Investment, tx pgx.Tx) error {
	if tx != nil {
		return tx.QueryRow(ctx, insertInvestment,
			inv.UserID, inv.AssetType, inv.Symbol, inv.Units, inv.AvgBuyPrice,
			inv.CostBasis, inv.CurrentValue, inv.LastPrice, inv.LastPriceAt,
		).Scan(&inv.ID)
	}
	return r.db.QueryRow(ctx, insertInvestment,
		inv.UserID, inv.AssetType, inv.Symbol, inv.Units, inv.AvgBuyPrice,
		inv.CostBasis, inv.CurrentValue, inv.LastPrice, inv.LastPriceAt,
	).Scan(&inv.ID)
}

const updateInvestment = `
	UPDATE investments
	SET units = $1, avg_buy_price = $2, cost_basis = $3, current_value = $4, last_price = $5, last_price_at = $6
	WHERE id = $7`

func (r *investmentRepo) Update(ctx context.Context, inv *models.Investment, tx pgx.Tx) error {
	if tx != nil {
		_, err := tx.Exec(ctx, updateInvestment,
			inv.Units, inv.AvgBuyPrice, inv.CostBasis, inv.CurrentValue,
			inv.LastPrice, inv.LastPriceAt, inv.ID)
		return err
	}
	_, err := r.db.Exec(ctx, updateInvestment,
		inv.Units, inv.AvgBuyPrice, inv.CostBasis, inv.CurrentValue,
		inv.LastPrice, inv.LastPriceAt, inv.ID)
	return err
}

func (r *investmentRepo) Delete(ctx context.Context, id int, tx pgx.Tx) error {
	if tx != nil {
		_, err := tx.Exec(ctx, `DELETE FROM investments WHERE id = $1`, id)
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM investments WHERE id = $1`, id)
	return err
}
