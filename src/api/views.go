package api

import (
	"net/http"
	"time"

	"server/src/api/controllers"
	"server/src/api/handlers"
	"server/src/config"
	"server/src/database"
	"server/src/repositories"
	"server/src/services"
	"server/src/utils"
	redis_utils "server/src/utils/redis"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router    *chi.Mux
	Handler   *handlers.Handler
	logger    *logrus.Logger
	tokenAuth *jwtauth.JWTAuth
	cfg       *config.Config
}

func NewServer(cfg *config.Config) (*Server, error) {
	logger := utils.NewLogger(cfg.Service.LogLevel)

	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	redisHandler, err := redis_utils.NewRedisHandler(cfg)
	if err != nil {
		return nil, err
	}

	users := repositories.NewUserRepository(db)
	goals := repositories.NewGoalRepository(db)
	investments := repositories.NewInvestmentRepository(db)
	transactions := repositories.NewTransactionRepository(db)

	authService, err := services.NewAuthService(cfg, users, redisHandler)
	if err != nil {
		return nil, err
	}
	portfolioService := services.NewPortfolioService(db, investments, transactions, goals)

	controller := controllers.NewController(users, goals, investments, transactions, authService, portfolioService)

	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   handlers.NewHandler(controller),
		logger:    logger,
		tokenAuth: authService.TokenAuth(),
		cfg:       cfg,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// requestLogger attaches a per-request logger carrying a request id, method
// and path, so every log line downstream can be correlated.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestLogger := s.logger.WithFields(logrus.Fields{
			"request_id": uuid.NewString(),
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		ctx := utils.WithLogger(r.Context(), requestLogger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) InitRoutes() {
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	s.Router.Use(corsMiddleware.Handler)
	s.Router.Use(s.requestLogger)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.Handler.Register)
		r.Post("/login", s.Handler.Login)
		r.Post("/refresh", s.Handler.Refresh)
		r.Post("/forgot-password", s.Handler.ForgotPassword)
	})

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.tokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Route("/api/profile", func(r chi.Router) {
			r.Get("/me", s.Handler.GetProfile)
			r.Patch("/me", s.Handler.UpdateProfile)
		})

		r.Route("/api/goals", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllGoals)
			r.Post("/", s.Handler.CreateGoal)
			r.Get("/{id}", s.Handler.GetGoal)
			r.Put("/{id}", s.Handler.UpdateGoal)
			r.Delete("/{id}", s.Handler.DeleteGoal)
		})

		r.Route("/api/investments", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllInvestments)
			r.Post("/", s.Handler.CreateInvestment)
			r.Put("/{id}", s.Handler.UpdateInvestment)
			r.Delete("/{id}", s.Handler.DeleteInvestment)
		})

		r.Route("/api/transactions", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllTransactions)
			r.Post("/", s.Handler.RecordTransaction)
			r.Get("/export", s.Handler.ExportTransactions)
			r.Put("/{id}", s.Handler.UpdateTransaction)
			r.Delete("/{id}", s.Handler.DeleteTransaction)
		})

		r.Route("/api/portfolio", func(r chi.Router) {
			r.Get("/summary", s.Handler.GetPortfolioSummary)
			r.Get("/allocation", s.Handler.GetPortfolioAllocation)
		})

		r.Get("/api/dashboard/summary", s.Handler.GetDashboardSummary)
	})
}

func NewHTTPServer(server *Server) *http.Server {
	port := server.cfg.Service.Port
	if port == "" {
		port = "8000"
	}
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
