package repositories

import (
	"context"
	"errors"

	"server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository interface {
	GetByUserID(ctx context.Context, userID int) ([]models.Transaction, error)
	GetByID(ctx context.Context, id, userID int) (*models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, id, userID int) (bool, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

const transactionColumns = `id, user_id, symbol, type, quantity, price, fees, executed_at`

func (r *transactionRepo) GetByUserID(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY executed_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Symbol, &t.Type, &t.Quantity,
			&t.Price, &t.Fees, &t.ExecutedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepo) GetByID(ctx context.Context, id, userID int) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&t.ID, &t.UserID, &t.Symbol, &t.Type, &t.Quantity, &t.Price, &t.Fees, &t.ExecutedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const insertTransaction = `
	INSERT INTO transactions (user_id, symbol, type, quantity, price, fees)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, executed_at`

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error {
	if tx != nil {
		return tx.QueryRow(ctx, insertTransaction,
			t.UserID, t.Symbol, t.Type, t.Quantity, t.Price, t.Fees,
		).Scan(&t.ID, &t.ExecutedAt)
	}
	return r.db.QueryRow(ctx, insertTransaction,
		t.UserID, t.Symbol, t.Type, t.Quantity, t.Price, t.Fees,
	).Scan(&t.ID, &t.ExecutedAt)
}

func (r *transactionRepo) Update(ctx context.Context, t *models.Transaction) error {
	_, err := r.db.Exec(ctx,
		`UPDATE transactions
		SET symbol = $1, type = $2, quantity = $3, price = $4, fees = $5
		WHERE id = $6 AND user_id = $7`,
		t.Symbol, t.Type, t.Quantity, t.Price, t.Fees, t.ID, t.UserID)
	return err
}

func (r *transactionRepo) Delete(ctx context.Context, id, userID int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
