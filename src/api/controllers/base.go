package controllers

import (
	"context"
	"io"

	"server/src/repositories"
	"server/src/schemas"
	"server/src/services"
)

// IController is the surface the HTTP handlers program against; tests swap in
// a fake.
type IController interface {
	Register(ctx context.Context, req *schemas.RegisterRequest) (*schemas.UserResponse, error)
	Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*schemas.TokenResponse, error)

	GetProfile(ctx context.Context, userID int) (*schemas.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int, patch *schemas.UserUpdate) (*schemas.UserResponse, error)

	GetAllGoals(ctx context.Context, userID int) ([]schemas.GoalResponse, error)
	GetGoal(ctx context.Context, id, userID int) (*schemas.GoalResponse, error)
	CreateGoal(ctx context.Context, userID int, req *schemas.GoalCreate) (*schemas.GoalResponse, error)
	UpdateGoal(ctx context.Context, id, userID int, patch *schemas.GoalUpdate) (*schemas.GoalResponse, error)
	DeleteGoal(ctx context.Context, id, userID int) error

	GetAllInvestments(ctx context.Context, userID int) ([]schemas.InvestmentResponse, error)
	CreateInvestment(ctx context.Context, userID int, req *schemas.InvestmentCreate) (*schemas.InvestmentResponse, error)
	UpdateInvestment(ctx context.Context, id, userID int, patch *schemas.InvestmentUpdate) (*schemas.InvestmentResponse, error)
	DeleteInvestment(ctx context.Context, id, userID int) error

	GetAllTransactions(ctx context.Context, userID int) ([]schemas.TransactionResponse, error)
	RecordTransaction(ctx context.Context, userID int, req *schemas.TransactionCreate) (*schemas.TransactionResponse, error)
	UpdateTransaction(ctx context.Context, id, userID int, patch *schemas.TransactionUpdate) (*schemas.TransactionResponse, error)
	DeleteTransaction(ctx context.Context, id, userID int) error
	ExportTransactionsCSV(ctx context.Context, userID int, w io.Writer) error

	GetPortfolioSummary(ctx context.Context, userID int) (*schemas.PortfolioSummary, error)
	GetPortfolioAllocation(ctx context.Context, userID int) (*schemas.AllocationResponse, error)
	GetDashboardSummary(ctx context.Context, userID int) (*schemas.DashboardSummary, error)
}

type Controller struct {
	Users        repositories.UserRepository
	Goals        repositories.GoalRepository
	Investments  repositories.InvestmentRepository
	Transactions repositories.TransactionRepository

	Auth      services.AuthServiceI
	Portfolio services.PortfolioServiceI
}

func NewController(
	users repositories.UserRepository,
	goals repositories.GoalRepository,
	investments repositories.InvestmentRepository,
	transactions repositories.TransactionRepository,
	auth services.AuthServiceI,
	portfolio services.PortfolioServiceI,
) *Controller {
	return &Controller{
		Users:        users,
		Goals:        goals,
		Investments:  investments,
		Transactions: transactions,
		Auth:         auth,
		Portfolio:    portfolio,
	}
}
