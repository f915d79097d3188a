package api

import (
	"net/http"

	"road-snap-service/internal/api/handlers"
	"road-snap-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(provider ports.RoadProvider, limitCache ports.SpeedLimitCache) http.Handler {
	mux := http.NewServeMux()

	snapHandler := &handlers.SnapHandler{Provider: provider}
	speedLimitHandler := &handlers.SpeedLimitHandler{Provider: provider}
	annotateHandler := &handlers.AnnotateHandler{
		Provider:   provider,
		LimitCache: limitCache,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/snap", snapHandler.Snap)
	mux.HandleFunc("/speed-limits", speedLimitHandler.List)
	mux.HandleFunc("/snapped-speed-limits", speedLimitHandler.Snapped)
	mux.HandleFunc("/annotate", annotateHandler.Annotate)

	return loggingMiddleware(mux)
}
