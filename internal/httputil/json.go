package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Reason  string            `json:"reason"`
	Details map[string]string `json:"details,omitempty"`
}

type RespondJSONFunc func(w http.ResponseWriter, status int, payload interface{})

type RespondErrorFunc func(w http.ResponseWriter, status int, reason string, details ...map[string]string)

func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	// headers are already sent, so an encoding failure cannot be reported
	_ = json.NewEncoder(w).Encode(payload)
}

func RespondError(w http.ResponseWriter, status int, reason string, details ...map[string]string) {
	payload := ErrorResponse{Reason: reason}
	if len(details) > 0 && len(details[0]) > 0 {
		payload.Details = details[0]
	}
	RespondJSON(w, status, payload)
}
