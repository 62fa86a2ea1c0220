package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockExpenseService struct {
	CreateExpenseFunc           func(ctx context.Context, userID int64, req domain.CreateExpenseRequest) (int64, error)
	GetUserExpensesFunc         func(ctx context.Context, requestingUserID, targetUserID int64) ([]domain.Expense, error)
	DeleteExpenseFunc           func(ctx context.Context, userID, expenseID int64) error
	CreatePredefinedExpenseFunc func(ctx context.Context, req domain.CreatePredefinedExpenseRequest) (int64, error)
	GetPredefinedExpensesFunc   func(ctx context.Context) ([]domain.PredefinedExpense, error)
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, userID int64, req domain.CreateExpenseRequest) (int64, error) {
	return m.CreateExpenseFunc(ctx, userID, req)
}

func (m *MockExpenseService) GetUserExpenses(ctx context.Context, requestingUserID, targetUserID int64) ([]domain.Expense, error) {
	return m.GetUserExpensesFunc(ctx, requestingUserID, targetUserID)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, userID, expenseID int64) error {
	return m.DeleteExpenseFunc(ctx, userID, expenseID)
}

func (m *MockExpenseService) CreatePredefinedExpense(ctx context.Context, req domain.CreatePredefinedExpenseRequest) (int64, error) {
	return m.CreatePredefinedExpenseFunc(ctx, req)
}

func (m *MockExpenseService) GetPredefinedExpenses(ctx context.Context) ([]domain.PredefinedExpense, error) {
	return m.GetPredefinedExpensesFunc(ctx)
}

type MockTransactionService struct {
	CreateTransactionFunc      func(ctx context.Context, userID int64, req domain.CreateTransactionRequest) (int64, error)
	DeleteTransactionFunc      func(ctx context.Context, userID, transactionID int64) error
	GetExpenseTransactionsFunc func(ctx context.Context, userID, expenseID int64) (*domain.ExpenseTransactions, error)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID int64, req domain.CreateTransactionRequest) (int64, error) {
	return m.CreateTransactionFunc(ctx, userID, req)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	return m.DeleteTransactionFunc(ctx, userID, transactionID)
}

func (m *MockTransactionService) GetExpenseTransactions(ctx context.Context, userID, expenseID int64) (*domain.ExpenseTransactions, error) {
	return m.GetExpenseTransactionsFunc(ctx, userID, expenseID)
}

func newTestRouter(expenses *MockExpenseService, transactions *MockTransactionService) http.Handler {
	expenseHandler := NewExpenseHandler(expenses, httputil.RespondJSON, httputil.RespondError)
	transactionHandler := NewTransactionHandler(transactions, httputil.RespondJSON, httputil.RespondError)

	r := chi.NewRouter()
	r.Post("/expense", expenseHandler.CreateExpense)
	r.Get("/expense/predefined", expenseHandler.GetPredefinedExpenses)
	r.Get("/expense/{id}", expenseHandler.GetUserExpenses)
	r.Delete("/expense/{id}", expenseHandler.DeleteExpense)
	r.Get("/expense/{id}/transactions", transactionHandler.GetExpenseTransactions)
	r.Post("/transaction", transactionHandler.CreateTransaction)
	r.Delete("/transaction/{id}", transactionHandler.DeleteTransaction)
	return r
}

func serve(t *testing.T, h http.Handler, method, target, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(httputil.WithUserID(req.Context(), userID))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateExpenseHandler(t *testing.T) {
	var gotUserID int64
	expenses := &MockExpenseService{
		CreateExpenseFunc: func(_ context.Context, userID int64, req domain.CreateExpenseRequest) (int64, error) {
			gotUserID = userID
			if req.Name == "" {
				return 0, expenseErrors.NewInvalidExpenseError(appErrors.FieldErrors{"name": "must be between 1 and 255 characters"})
			}
			return 11, nil
		},
	}
	router := newTestRouter(expenses, &MockTransactionService{})

	w := serve(t, router, http.MethodPost, "/expense", `{"name":"Rent","user_id":99,"value":"10"}`, 3)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(3), gotUserID)
	assert.JSONEq(t, `{"id":11}`, w.Body.String())

	w = serve(t, router, http.MethodPost, "/expense", `{"name":""}`, 3)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Invalid expense data", body.Reason)
	assert.Contains(t, body.Details, "name")

	w = serve(t, router, http.MethodPost, "/expense", `{not json`, 3)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, router, http.MethodPost, "/expense", `{"name":"Rent"}`, 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserExpensesHandler(t *testing.T) {
	expenses := &MockExpenseService{
		GetUserExpensesFunc: func(_ context.Context, requestingUserID, targetUserID int64) ([]domain.Expense, error) {
			if requestingUserID != targetUserID {
				return nil, expenseErrors.ErrNotAuthorized
			}
			return []domain.Expense{}, nil
		},
	}
	router := newTestRouter(expenses, &MockTransactionService{})

	w := serve(t, router, http.MethodGet, "/expense/4", "", 4)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serve(t, router, http.MethodGet, "/expense/4", "", 5)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(t, router, http.MethodGet, "/expense/abc", "", 4)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteExpenseHandler(t *testing.T) {
	expenses := &MockExpenseService{
		DeleteExpenseFunc: func(_ context.Context, userID, expenseID int64) error {
			switch {
			case expenseID == 404:
				return expenseErrors.ErrExpenseNotFound
			case userID != 1:
				return expenseErrors.ErrNotAuthorized
			case expenseID == 500:
				return errors.New("boom")
			}
			return nil
		},
	}
	router := newTestRouter(expenses, &MockTransactionService{})

	tests := []struct {
		target string
		userID int64
		want   int
	}{
		{"/expense/1", 1, http.StatusNoContent},
		{"/expense/1", 2, http.StatusForbidden},
		{"/expense/404", 1, http.StatusNotFound},
		{"/expense/500", 1, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := serve(t, router, http.MethodDelete, tt.target, "", tt.userID)
		assert.Equal(t, tt.want, w.Code, tt.target)
	}
}

func TestPredefinedExpenseHandlers(t *testing.T) {
	expenses := &MockExpenseService{
		GetPredefinedExpensesFunc: func(context.Context) ([]domain.PredefinedExpense, error) {
			return []domain.PredefinedExpense{{ID: 1, Name: "Netflix"}}, nil
		},
	}
	router := newTestRouter(expenses, &MockTransactionService{})

	w := serve(t, router, http.MethodGet, "/expense/predefined", "", 1)
	require.Equal(t, http.StatusOK, w.Code)
	var predefined []domain.PredefinedExpense
	require.NoError(t, json.NewDecoder(w.Body).Decode(&predefined))
	require.Len(t, predefined, 1)
	assert.Equal(t, "Netflix", predefined[0].Name)
}

func TestTransactionHandlers(t *testing.T) {
	transactions := &MockTransactionService{
		CreateTransactionFunc: func(_ context.Context, userID int64, req domain.CreateTransactionRequest) (int64, error) {
			if req.ExpenseID == 404 {
				return 0, expenseErrors.NewInvalidTransactionError(appErrors.FieldErrors{"expense_id": "does not exist"})
			}
			if userID != 1 {
				return 0, expenseErrors.ErrNotAuthorized
			}
			return 21, nil
		},
		DeleteTransactionFunc: func(_ context.Context, userID, transactionID int64) error {
			if transactionID == 404 {
				return expenseErrors.ErrTransactionNotFound
			}
			return nil
		},
		GetExpenseTransactionsFunc: func(_ context.Context, userID, expenseID int64) (*domain.ExpenseTransactions, error) {
			return domain.NewExpenseTransactions(&domain.Expense{ID: expenseID}, nil), nil
		},
	}
	router := newTestRouter(&MockExpenseService{}, transactions)

	w := serve(t, router, http.MethodPost, "/transaction", `{"expense_id":1}`, 1)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":21}`, w.Body.String())

	w = serve(t, router, http.MethodPost, "/transaction", `{"expense_id":404}`, 1)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "does not exist", body.Details["expense_id"])

	w = serve(t, router, http.MethodPost, "/transaction", `{"expense_id":1}`, 2)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(t, router, http.MethodDelete, "/transaction/404", "", 1)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Transaction not found", body.Reason)

	w = serve(t, router, http.MethodDelete, "/transaction/3", "", 1)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(t, router, http.MethodGet, "/expense/8/transactions", "", 1)
	require.Equal(t, http.StatusOK, w.Code)
	var summary domain.ExpenseTransactions
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, int64(8), summary.ExpenseID)
	assert.Empty(t, summary.Transactions)
}
