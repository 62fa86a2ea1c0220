package interfaces

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
)

// respondServiceError maps a service error to its status code. Unknown
// errors are reported without detail.
func respondServiceError(w http.ResponseWriter, respondError httputil.RespondErrorFunc, err error, fallback string) {
	var validationErr *appErrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Msg, validationErr.Details)
	case errors.Is(err, expenseErrors.ErrNotAuthorized):
		respondError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, expenseErrors.ErrExpenseNotFound):
		respondError(w, http.StatusNotFound, "Expense not found")
	case errors.Is(err, expenseErrors.ErrTransactionNotFound):
		respondError(w, http.StatusNotFound, "Transaction not found")
	default:
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
