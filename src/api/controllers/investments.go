package controllers

import (
	"context"
	"time"

	"server/src/models"
	"server/src/schemas"
	"server/src/services"
)

func (c *Controller) GetAllInvestments(ctx context.Context, userID int) ([]schemas.InvestmentResponse, error) {
	investments, err := c.Investments.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]schemas.InvestmentResponse, 0, len(investments))
	for i := range investments {
		responses = append(responses, *schemas.NewInvestmentResponse(&investments[i]))
	}
	return responses, nil
}

// CreateInvestment registers a position directly, without a transaction
// event. A submission for a symbol already held folds into the existing
// position with the same weighted-average math as a buy: the current value
// keeps the prior market mark plus the cost of the added lot.
func (c *Controller) CreateInvestment(ctx context.Context, userID int, req *schemas.InvestmentCreate) (*schemas.InvestmentResponse, error) {
	existing, err := c.Investments.GetByUserAndSymbol(ctx, userID, req.Symbol)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	price := req.AvgBuyPrice

	if existing != nil {
		state, err := services.ApplyPurchase(services.PositionState{
			Units:        existing.Units,
			AvgBuyPrice:  existing.AvgBuyPrice,
			CostBasis:    existing.CostBasis,
			CurrentValue: existing.CurrentValue,
		}, req.Units, req.AvgBuyPrice)
		if err != nil {
			return nil, err
		}
		existing.Units = state.Units
		existing.AvgBuyPrice = state.AvgBuyPrice
		existing.CostBasis = state.CostBasis
		existing.CurrentValue = state.CurrentValue
		existing.LastPrice = &price
		existing.LastPriceAt = &now

		if err := c.Investments.Update(ctx, existing, nil); err != nil {
			return nil, err
		}
		return schemas.NewInvestmentResponse(existing), nil
	}

	state, err := services.ApplyPurchase(services.PositionState{}, req.Units, req.AvgBuyPrice)
	if err != nil {
		return nil, err
	}
	investment := &models.Investment{
		UserID:       userID,
		AssetType:    req.AssetType,
		Symbol:       req.Symbol,
		Units:        state.Units,
		AvgBuyPrice:  state.AvgBuyPrice,
		CostBasis:    state.CostBasis,
		CurrentValue: state.CurrentValue,
		LastPrice:    &price,
		LastPriceAt:  &now,
	}
	if err := c.Investments.Create(ctx, investment, nil); err != nil {
		return nil, err
	}
	return schemas.NewInvestmentResponse(investment), nil
}

// UpdateInvestment is the manual-correction escape hatch: fields are written
// as given, bypassing reconciliation.
func (c *Controller) UpdateInvestment(ctx context.Context, id, userID int, patch *schemas.InvestmentUpdate) (*schemas.InvestmentResponse, error) {
	investment, err := c.Investments.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if investment == nil {
		return nil, services.NewError(services.KindNotFound, "investment not found")
	}

	patch.Apply(investment)
	if err := c.Investments.Update(ctx, investment, nil); err != nil {
		return nil, err
	}
	return schemas.NewInvestmentResponse(investment), nil
}

func (c *Controller) DeleteInvestment(ctx context.Context, id, userID int) error {
	investment, err := c.Investments.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if investment == nil {
		return services.NewError(services.KindNotFound, "investment not found")
	}
	return c.Investments.Delete(ctx, investment.ID, nil)
}
