package controllers

import (
	"context"
	"time"

	"server/src/models"
	"server/src/schemas"
	"server/src/services"
)

func (c *Controller) GetAllGoals(ctx context.Context, userID int) ([]schemas.GoalResponse, error) {
	goals, err := c.Goals.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]schemas.GoalResponse, 0, len(goals))
	for i := range goals {
		responses = append(responses, *schemas.NewGoalResponse(&goals[i]))
	}
	return responses, nil
}

func (c *Controller) GetGoal(ctx context.Context, id, userID int) (*schemas.GoalResponse, error) {
	goal, err := c.Goals.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, services.NewError(services.KindNotFound, "goal not found")
	}
	return schemas.NewGoalResponse(goal), nil
}

func (c *Controller) CreateGoal(ctx context.Context, userID int, req *schemas.GoalCreate) (*schemas.GoalResponse, error) {
	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		return nil, services.NewError(services.KindInvalidEvent, "target_date must be YYYY-MM-DD")
	}

	status := req.Status
	if status == "" {
		status = models.GoalStatusActive
	}

	goal := &models.Goal{
		UserID:              userID,
		GoalType:            req.GoalType,
		TargetAmount:        req.TargetAmount,
		TargetDate:          targetDate,
		MonthlyContribution: req.MonthlyContribution,
		Status:              status,
	}
	if err := c.Goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return schemas.NewGoalResponse(goal), nil
}

func (c *Controller) UpdateGoal(ctx context.Context, id, userID int, patch *schemas.GoalUpdate) (*schemas.GoalResponse, error) {
	goal, err := c.Goals.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, services.NewError(services.KindNotFound, "goal not found")
	}

	if err := patch.Apply(goal); err != nil {
		return nil, services.NewError(services.KindInvalidEvent, "target_date must be YYYY-MM-DD")
	}
	if err := c.Goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return schemas.NewGoalResponse(goal), nil
}

func (c *Controller) DeleteGoal(ctx context.Context, id, userID int) error {
	deleted, err := c.Goals.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return services.NewError(services.KindNotFound, "goal not found")
	}
	return nil
}
