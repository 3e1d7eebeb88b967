package services

import (
	"context"
	"time"

	"server/src/models"
	"server/src/repositories"
	"server/src/schemas"
	"server/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PortfolioServiceI interface {
	RecordTransaction(ctx context.Context, userID int, req *schemas.TransactionCreate) (*models.Transaction, error)
	PortfolioSummary(ctx context.Context, userID int) (*schemas.PortfolioSummary, error)
	PortfolioAllocation(ctx context.Context, userID int) (*schemas.AllocationResponse, error)
	DashboardSummary(ctx context.Context, userID int) (*schemas.DashboardSummary, error)
}

// TxBeginner starts the database transaction a reconciliation runs in.
// *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PortfolioService owns holding reconciliation and the derived summaries.
// It is the only writer of units/avg_buy_price/cost_basis outside of the
// manual investment-update escape hatch.
type PortfolioService struct {
	db           TxBeginner
	investments  repositories.InvestmentRepository
	transactions repositories.TransactionRepository
	goals        repositories.GoalRepository
}

func NewPortfolioService(
	db TxBeginner,
	investments repositories.InvestmentRepository,
	transactions repositories.TransactionRepository,
	goals repositories.GoalRepository,
) *PortfolioService {
	return &PortfolioService{
		db:           db,
		investments:  investments,
		transactions: transactions,
		goals:        goals,
	}
}

// RecordTransaction persists the transaction event and reconciles the holding
// it touches in one database transaction: either both writes commit or
// neither does. The holding row is locked (SELECT ... FOR UPDATE) for the
// duration, so concurrent events for the same user+symbol serialize at the
// datastore.
func (s *PortfolioService) RecordTransaction(ctx context.Context, userID int, req *schemas.TransactionCreate) (*models.Transaction, error) {
	kind, err := ParseEventKind(req.Type)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	record := &models.Transaction{
		UserID:   userID,
		Symbol:   req.Symbol,
		Type:     string(kind),
		Quantity: req.Quantity,
		Price:    req.Price,
		Fees:     req.Fees,
	}
	if err := s.transactions.Create(ctx, record, tx); err != nil {
		return nil, err
	}

	existing, err := s.investments.GetByUserAndSymbolForUpdate(ctx, userID, req.Symbol, tx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	price := req.Price

	switch {
	case existing == nil && kind.IsPurchase():
		// A purchase of a symbol not yet held opens a new position. The
		// caller must say what kind of instrument it is; there is no
		// default asset class.
		if req.AssetType == "" {
			return nil, NewError(KindInvalidEvent,
				"asset_type is required when a transaction opens a new position")
		}
		state, err := ApplyPurchase(PositionState{}, req.Quantity, req.Price)
		if err != nil {
			return nil, err
		}
		inv := &models.Investment{
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
		if err := s.investments.Create(ctx, inv, tx); err != nil {
			return nil, err
		}

	case existing == nil:
		return nil, NewError(KindInsufficientUnits,
			"cannot sell "+req.Symbol+": no position held")

	case kind.IsPurchase():
		state, err := ApplyPurchase(positionOf(existing), req.Quantity, req.Price)
		if err != nil {
			return nil, err
		}
		applyState(existing, state, price, now)
		if err := s.investments.Update(ctx, existing, tx); err != nil {
			return nil, err
		}

	default:
		state, closed, err := ApplyDisposal(positionOf(existing), req.Quantity, req.Price)
		if err != nil {
			return nil, err
		}
		if closed {
			utils.LoggerFromContext(ctx).WithField("symbol", req.Symbol).
				Info("position fully disposed, deleting holding")
			if err := s.investments.Delete(ctx, existing.ID, tx); err != nil {
				return nil, err
			}
		} else {
			applyState(existing, state, price, now)
			if err := s.investments.Update(ctx, existing, tx); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func positionOf(inv *models.Investment) PositionState {
	return PositionState{
		Units:        inv.Units,
		AvgBuyPrice:  inv.AvgBuyPrice,
		CostBasis:    inv.CostBasis,
		CurrentValue: inv.CurrentValue,
	}
}

func applyState(inv *models.Investment, state PositionState, lastPrice decimal.Decimal, at time.Time) {
	inv.Units = state.Units
	inv.AvgBuyPrice = state.AvgBuyPrice
	inv.CostBasis = state.CostBasis
	inv.CurrentValue = state.CurrentValue
	inv.LastPrice = &lastPrice
	inv.LastPriceAt = &at
}

func (s *PortfolioService) PortfolioSummary(ctx context.Context, userID int) (*schemas.PortfolioSummary, error) {
	investments, err := s.investments.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildPortfolioSummary(investments), nil
}

func (s *PortfolioService) PortfolioAllocation(ctx context.Context, userID int) (*schemas.AllocationResponse, error) {
	investments, err := s.investments.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildAllocationResponse(investments), nil
}

func (s *PortfolioService) DashboardSummary(ctx context.Context, userID int) (*schemas.DashboardSummary, error) {
	investments, err := s.investments.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	activeGoals, err := s.goals.CountActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildDashboardSummary(investments, goals, activeGoals), nil
}
