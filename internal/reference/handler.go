package reference

import (
	"net/http"

	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
)

type Handler struct {
	service      Service
	respondJSON  httputil.RespondJSONFunc
	respondError httputil.RespondErrorFunc
}

func NewHandler(service Service, respondJSON httputil.RespondJSONFunc, respondError httputil.RespondErrorFunc) *Handler {
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *Handler) HandleGetCurrencyTypes(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.service.GetCurrencyTypes(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve currency types")
		return
	}
	h.respondJSON(w, http.StatusOK, currencies)
}

func (h *Handler) HandleGetRecurrenceTypes(w http.ResponseWriter, r *http.Request) {
	recurrences, err := h.service.GetRecurrenceTypes(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve recurrence types")
		return
	}
	h.respondJSON(w, http.StatusOK, recurrences)
}
