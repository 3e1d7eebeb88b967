package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
)

type Goal struct {
	ID                  int             `db:"id"`
	UserID              int             `db:"user_id"`
	GoalType            string          `db:"goal_type"`
	TargetAmount        decimal.Decimal `db:"target_amount"`
	TargetDate          time.Time       `db:"target_date"`
	MonthlyContribution decimal.Decimal `db:"monthly_contribution"`
	Status              string          `db:"status"`
	CreatedAt           time.Time       `db:"created_at"`
}
