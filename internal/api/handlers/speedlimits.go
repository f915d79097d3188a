package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"road-snap-service/internal/api/dto"
	"road-snap-service/internal/domain"
	"road-snap-service/internal/ports"
)

// SpeedLimitHandler exposes posted speed limit lookups by place ID.
type SpeedLimitHandler struct {
	Provider ports.RoadProvider
}

// List returns speed limits for the place IDs given as repeated placeId
// query parameters, mirroring the upstream endpoint's shape.
func (h *SpeedLimitHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := r.URL.Query()["placeId"]
	if len(raw) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one placeId query parameter is required")
		return
	}

	ids := make([]domain.PlaceID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, domain.PlaceID(id))
	}

	limits, err := h.Provider.SpeedLimits(r.Context(), ids)
	if err != nil {
		writeProviderError(w, r, err)
		return
	}

	res := dto.ListSpeedLimitsResponse{
		SpeedLimits: make([]dto.SpeedLimitResponse, 0, len(limits)),
	}
	for _, l := range limits {
		res.SpeedLimits = append(res.SpeedLimits, dto.SpeedLimitResponse{
			PlaceID:    string(l.PlaceID),
			SpeedLimit: l.Limit,
			Units:      string(l.Units),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Snapped snaps a trace and returns it together with the speed limits of the
// segments it crosses, in one upstream round trip.
func (h *SpeedLimitHandler) Snapped(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.Provider.SnappedSpeedLimits(r.Context(), path)
	if err != nil {
		writeProviderError(w, r, err)
		return
	}

	res := dto.SnappedSpeedLimitsResponse{
		SpeedLimits:   make([]dto.SpeedLimitResponse, 0, len(result.SpeedLimits)),
		SnappedPoints: make([]dto.SnappedPointResponse, 0, len(result.SnappedPoints)),
	}
	for _, l := range result.SpeedLimits {
		res.SpeedLimits = append(res.SpeedLimits, dto.SpeedLimitResponse{
			PlaceID:    string(l.PlaceID),
			SpeedLimit: l.Limit,
			Units:      string(l.Units),
		})
	}
	for _, p := range result.SnappedPoints {
		res.SnappedPoints = append(res.SnappedPoints, dto.SnappedPointResponse{
			Location:      dto.LatLng{Lat: p.Location.Lat, Lng: p.Location.Lng},
			OriginalIndex: p.OriginalIndex,
			PlaceID:       string(p.PlaceID),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
