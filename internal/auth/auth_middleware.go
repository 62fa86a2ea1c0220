package auth

import (
	"net/http"

	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
)

// SessionMiddleware rejects requests without a valid session cookie and puts
// the session's user id on the request context.
func (s *service) SessionMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(s.cookie.Name)
			if err != nil || cookie.Value == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userID, err := s.jwtManager.ValidateSessionToken(cookie.Value)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			ctx := httputil.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
