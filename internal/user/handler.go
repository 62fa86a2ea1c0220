package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
)

type Handler struct {
	userService  Service
	respondJSON  httputil.RespondJSONFunc
	respondError httputil.RespondErrorFunc
}

func NewHandler(userService Service, respondJSON httputil.RespondJSONFunc, respondError httputil.RespondErrorFunc) *Handler {
	return &Handler{
		userService:  userService,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		switch {
		case appErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, "Invalid registration data", appErrors.ValidationDetails(err))
		case errors.Is(err, ErrEmailAlreadyExists):
			h.respondError(w, http.StatusBadRequest, "Email already exists")
		default:
			h.respondError(w, http.StatusInternalServerError, "Could not register user")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	err := h.userService.Activate(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, ErrActivationTokenNotFound):
			h.respondError(w, http.StatusBadRequest, "Activation token not found")
		case errors.Is(err, ErrActivationTokenExpired):
			h.respondError(w, http.StatusBadRequest, "Activation token expired")
		default:
			h.respondError(w, http.StatusInternalServerError, "Could not activate account")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Account activated",
	})
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// a valid session for a user that no longer exists
			h.respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Could not fetch user data")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}
