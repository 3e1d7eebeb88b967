package repositories

import (
	"context"
	"errors"

	"server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GoalRepository interface {
	GetByUserID(ctx context.Context, userID int) ([]models.Goal, error)
	GetByID(ctx context.Context, id, userID int) (*models.Goal, error)
	CountActiveByUserID(ctx context.Context, userID int) (int, error)
	Create(ctx context.Context, g *models.Goal) error
	Update(ctx context.Context, g *models.Goal) error
	Delete(ctx context.Context, id, userID int) (bool, error)
}

type goalRepo struct {
	db *pgxpool.Pool
}

func NewGoalRepository(db *pgxpool.Pool) GoalRepository {
	return &goalRepo{db: db}
}

const goalColumns = `id, user_id, goal_type, target_amount, target_date, monthly_contribution, status, created_at`

func (r *goalRepo) GetByUserID(ctx context.Context, userID int) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.GoalType, &g.TargetAmount, &g.TargetDate,
			&g.MonthlyContribution, &g.Status, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *goalRepo) GetByID(ctx context.Context, id, userID int) (*models.Goal, error) {
	var g models.Goal
	err := r.db.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&g.ID, &g.UserID, &g.GoalType, &g.TargetAmount, &g.TargetDate,
		&g.MonthlyContribution, &g.Status, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *goalRepo) CountActiveByUserID(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM goals WHERE user_id = $1 AND status = $2`,
		userID, models.GoalStatusActive,
	).Scan(&count)
	return count, err
}

func (r *goalRepo) Create(ctx context.Context, g *models.Goal) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO goals (user_id, goal_type, target_amount, target_date, monthly_contribution, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		g.UserID, g.GoalType, g.TargetAmount, g.TargetDate, g.MonthlyContribution, g.Status,
	).Scan(&g.ID, &g.CreatedAt)
}

func (r *goalRepo) Update(ctx context.Context, g *models.Goal) error {
	_, err := r.db.Exec(ctx,
		`UPDATE goals
		SET goal_type = $1, target_amount = $2, target_date = $3, monthly_contribution = $4, status = $5
		WHERE id = $6 AND user_id = $7`,
		g.GoalType, g.TargetAmount, g.TargetDate, g.MonthlyContribution, g.Status, g.ID, g.UserID)
	return err
}

func (r *goalRepo) Delete(ctx context.Context, id, userID int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
