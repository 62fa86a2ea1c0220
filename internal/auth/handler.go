package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
)

type Handler struct {
	authService     Service
	cookie          CookieConfig
	sessionDuration time.Duration
	respondJSON     httputil.RespondJSONFunc
	respondError    httputil.RespondErrorFunc
}

func NewHandler(authService Service, cookie CookieConfig, sessionDuration time.Duration, respondJSON httputil.RespondJSONFunc, respondError httputil.RespondErrorFunc) *Handler {
	return &Handler{
		authService:     authService,
		cookie:          cookie,
		sessionDuration: sessionDuration,
		respondJSON:     respondJSON,
		respondError:    respondError,
	}
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	existingUser, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			h.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, ErrAccountNotActivated):
			h.respondError(w, http.StatusForbidden, "Account not activated")
		default:
			h.respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	http.SetCookie(w, h.cookie.sessionCookie(token, h.sessionDuration))
	h.respondJSON(w, http.StatusOK, existingUser)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookie.Name)
	if err != nil || cookie.Value == "" {
		h.respondError(w, http.StatusBadRequest, "Not logged in")
		return
	}

	http.SetCookie(w, h.cookie.expiredCookie())
	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Logout successful",
	})
}
