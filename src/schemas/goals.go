package schemas

import (
	"time"

	"server/src/models"

	"github.com/shopspring/decimal"
)

type GoalCreate struct {
	GoalType            string          `json:"goal_type"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	TargetDate          string          `json:"target_date"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	Status              string          `json:"status"`
}

// GoalUpdate names every updatable field; nil means "leave unchanged".
type GoalUpdate struct {
	GoalType            *string          `json:"goal_type"`
	TargetAmount        *decimal.Decimal `json:"target_amount"`
	TargetDate          *string          `json:"target_date"`
	MonthlyContribution *decimal.Decimal `json:"monthly_contribution"`
	Status              *string          `json:"status"`
}

// Apply merges the patch into the goal. The target date is parsed as
// YYYY-MM-DD; a malformed date is returned as an error rather than ignored.
func (g *GoalUpdate) Apply(goal *models.Goal) error {
	if g.GoalType != nil {
		goal.GoalType = *g.GoalType
	}
	if g.TargetAmount != nil {
		goal.TargetAmount = *g.TargetAmount
	}
	if g.TargetDate != nil {
		date, err := time.Parse("2006-01-02", *g.TargetDate)
		if err != nil {
			return err
		}
		goal.TargetDate = date
	}
	if g.MonthlyContribution != nil {
		goal.MonthlyContribution = *g.MonthlyContribution
	}
	if g.Status != nil {
		goal.Status = *g.Status
	}
	return nil
}

type GoalResponse struct {
	ID                  int             `json:"id"`
	UserID              int             `json:"user_id"`
	GoalType            string          `json:"goal_type"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	TargetDate          string          `json:"target_date"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
}

func NewGoalResponse(g *models.Goal) *GoalResponse {
	return &GoalResponse{
		ID:                  g.ID,
		UserID:              g.UserID,
		GoalType:            g.GoalType,
		TargetAmount:        g.TargetAmount,
		TargetDate:          g.TargetDate.Format("2006-01-02"),
		MonthlyContribution: g.MonthlyContribution,
		Status:              g.Status,
		CreatedAt:           g.CreatedAt,
	}
}
