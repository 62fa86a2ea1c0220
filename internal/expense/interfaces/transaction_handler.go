package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
)

type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, userID int64, req domain.CreateTransactionRequest) (int64, error)
	DeleteTransaction(ctx context.Context, userID, transactionID int64) error
	GetExpenseTransactions(ctx context.Context, userID, expenseID int64) (*domain.ExpenseTransactions, error)
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  httputil.RespondJSONFunc
	respondError httputil.RespondErrorFunc
}

func NewTransactionHandler(service TransactionServiceInterface, respondJSON httputil.RespondJSONFunc, respondError httputil.RespondErrorFunc) *TransactionHandler {
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req domain.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.service.CreateTransaction(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, h.respondError, err, "Failed to create transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactionID, ok := pathID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	if err := h.service.DeleteTransaction(r.Context(), userID, transactionID); err != nil {
		respondServiceError(w, h.respondError, err, "Failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) GetExpenseTransactions(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.GetExpenseTransactions(r.Context(), userID, expenseID)
	if err != nil {
		respondServiceError(w, h.respondError, err, "Failed to retrieve transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}
