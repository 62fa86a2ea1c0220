package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
)

type ExpenseServiceInterface interface {
	CreateExpense(ctx context.Context, userID int64, req domain.CreateExpenseRequest) (int64, error)
	GetUserExpenses(ctx context.Context, requestingUserID, targetUserID int64) ([]domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID int64) error
	CreatePredefinedExpense(ctx context.Context, req domain.CreatePredefinedExpenseRequest) (int64, error)
	GetPredefinedExpenses(ctx context.Context) ([]domain.PredefinedExpense, error)
}

type ExpenseHandler struct {
	service      ExpenseServiceInterface
	respondJSON  httputil.RespondJSONFunc
	respondError httputil.RespondErrorFunc
}

func NewExpenseHandler(service ExpenseServiceInterface, respondJSON httputil.RespondJSONFunc, respondError httputil.RespondErrorFunc) *ExpenseHandler {
	return &ExpenseHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req domain.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.service.CreateExpense(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, h.respondError, err, "Failed to create expense")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *ExpenseHandler) GetUserExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetUserID, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	expenses, err := h.service.GetUserExpenses(r.Context(), userID, targetUserID)
	if err != nil {
		respondServiceError(w, h.respondError, err, "Failed to retrieve expenses")
		return
	}

	h.respondJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	expenseID, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	if err := h.service.DeleteExpense(r.Context(), userID, expenseID); err != nil {
		respondServiceError(w, h.respondError, err, "Failed to delete expense")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ExpenseHandler) CreatePredefinedExpense(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePredefinedExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.service.CreatePredefinedExpense(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.respondError, err, "Failed to create predefined expense")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *ExpenseHandler) GetPredefinedExpenses(w http.ResponseWriter, r *http.Request) {
	predefined, err := h.service.GetPredefinedExpenses(r.Context())
	if err != nil {
		respondServiceError(w, h.respondError, err, "Failed to retrieve predefined expenses")
		return
	}

	h.respondJSON(w, http.StatusOK, predefined)
}
