package controllers

import (
	"context"

	"server/src/schemas"
)

func (c *Controller) GetPortfolioSummary(ctx context.Context, userID int) (*schemas.PortfolioSummary, error) {
	return c.Portfolio.PortfolioSummary(ctx, userID)
}

func (c *Controller) GetPortfolioAllocation(ctx context.Context, userID int) (*schemas.AllocationResponse, error) {
	return c.Portfolio.PortfolioAllocation(ctx, userID)
}

func (c *Controller) GetDashboardSummary(ctx context.Context, userID int) (*schemas.DashboardSummary, error) {
	return c.Portfolio.DashboardSummary(ctx, userID)
}
