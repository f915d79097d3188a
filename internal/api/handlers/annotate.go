package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"road-snap-service/internal/api/dto"
	"road-snap-service/internal/domain"
	"road-snap-service/internal/ports"
	"road-snap-service/internal/services"
)

type AnnotateHandler struct {
	Provider   ports.RoadProvider
	LimitCache ports.SpeedLimitCache
}

// Annotate snaps a trace and joins each snapped point with the posted speed
// limit of its road segment. It coordinates the provider and the speed limit
// cache through the service layer.
func (h *AnnotateHandler) Annotate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SnapRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Path) == 0 {
		writeError(w, r, http.StatusBadRequest, "path is required")
		return
	}

	path := make([]domain.LatLng, 0, len(req.Path))
	for _, p := range req.Path {
		path = append(path, domain.LatLng{Lat: p.Lat, Lng: p.Lng})
	}

	svcReq := services.AnnotateTraceRequest{
		Path:        path,
		Interpolate: req.Interpolate,
	}

	points, err := services.AnnotateTrace(r.Context(), svcReq, h.Provider, h.LimitCache)
	if err != nil {
		writeProviderError(w, r, err)
		return
	}

	res := dto.AnnotateResponse{
		Points: make([]dto.AnnotatedPointResponse, 0, len(points)),
	}
	for _, p := range points {
		out := dto.AnnotatedPointResponse{
			Location:      dto.LatLng{Lat: p.Location.Lat, Lng: p.Location.Lng},
			OriginalIndex: p.OriginalIndex,
			PlaceID:       string(p.PlaceID),
		}
		if p.Limit != nil {
			out.SpeedLimit = &dto.SpeedLimitResponse{
				PlaceID:    string(p.Limit.PlaceID),
				SpeedLimit: p.Limit.Limit,
				Units:      string(p.Limit.Units),
			}
		}
		res.Points = append(res.Points, out)
	}

	writeJSON(w, r, http.StatusOK, res)
}
