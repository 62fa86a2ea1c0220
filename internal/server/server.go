package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sebuszqo/ExpenseTracker/internal/auth"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/interfaces"
	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"github.com/sebuszqo/ExpenseTracker/internal/reference"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// HealthChecker reports the state of a backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	Expense     *interfaces.ExpenseHandler
	Transaction *interfaces.TransactionHandler
	Reference   *reference.Handler
}

type Server struct {
	router      *chi.Mux
	handlers    Handlers
	authService auth.Service
	health      HealthChecker
	log         *zap.Logger
}

func NewServer(handlers Handlers, authService auth.Service, health HealthChecker, log *zap.Logger) *Server {
	s := &Server{
		handlers:    handlers,
		authService: authService,
		health:      health,
		log:         log,
	}
	s.RegisterRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) RegisterRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(s.log))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.RespondError(w, http.StatusNotFound, "Path not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Public routes
	r.Get("/health", s.handleHealth)
	r.Post("/user/register", s.handlers.User.HandleRegister)
	r.Post("/user/auth", s.handlers.Auth.HandleLogin)
	r.Post("/user/activate/{token}", s.handlers.User.HandleActivate)
	// the emailed link is opened with a GET
	r.Get("/user/activate/{token}", s.handlers.User.HandleActivate)
	// logout answers 400 itself when no session cookie was sent
	r.Post("/user/logout", s.handlers.Auth.HandleLogout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.authService.SessionMiddleware())

		r.Get("/user/me", s.handlers.User.HandleMe)

		r.Post("/expense", s.handlers.Expense.CreateExpense)
		r.Get("/expense/predefined", s.handlers.Expense.GetPredefinedExpenses)
		r.Post("/expense/predefined", s.handlers.Expense.CreatePredefinedExpense)
		r.Get("/expense/{id}", s.handlers.Expense.GetUserExpenses)
		r.Delete("/expense/{id}", s.handlers.Expense.DeleteExpense)
		r.Get("/expense/{id}/transactions", s.handlers.Transaction.GetExpenseTransactions)

		r.Post("/transaction", s.handlers.Transaction.CreateTransaction)
		r.Delete("/transaction/{id}", s.handlers.Transaction.DeleteTransaction)

		r.Get("/currency", s.handlers.Reference.HandleGetCurrencyTypes)
		r.Get("/recurrence", s.handlers.Reference.HandleGetRecurrenceTypes)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	stats := s.health.Health(ctx)
	if stats["status"] != "up" {
		httputil.RespondJSON(w, http.StatusServiceUnavailable, stats)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, stats)
}
