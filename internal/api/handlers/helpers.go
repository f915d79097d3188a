package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"road-snap-service/internal/adapters/roads"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeProviderError maps the road provider's error taxonomy to HTTP statuses.
// Local and remote input problems are the caller's fault; everything else is
// an upstream failure.
func writeProviderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roads.ErrInvalidArgument), errors.Is(err, roads.ErrInvalidRequest):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, roads.ErrRateLimitExceeded):
		writeError(w, r, http.StatusServiceUnavailable, "upstream rate limit exceeded")
	case errors.Is(err, roads.ErrRequestDenied):
		log.Printf("roads request denied: %v", err)
		writeError(w, r, http.StatusBadGateway, "upstream request denied")
	default:
		log.Printf("roads request failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "upstream error")
	}
}
