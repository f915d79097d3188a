package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"road-snap-service/internal/api/dto"
	"road-snap-service/internal/domain"
	"road-snap-service/internal/ports"
)

type SnapHandler struct {
	Provider ports.RoadProvider
}

// Snap aligns a raw GPS trace to road geometry via the road provider.
func (h *SnapHandler) Snap(w http.ResponseWriter, r *http.Request) {
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

	points, err := h.Provider.SnapToRoads(r.Context(), path, req.Interpolate)
	if err != nil {
		writeProviderError(w, r, err)
		return
	}

	res := dto.SnapResponse{
		SnappedPoints: make([]dto.SnappedPointResponse, 0, len(points)),
	}
	for _, p := range points {
		res.SnappedPoints = append(res.SnappedPoints, dto.SnappedPointResponse{
			Location:      dto.LatLng{Lat: p.Location.Lat, Lng: p.Location.Lng},
			OriginalIndex: p.OriginalIndex,
			PlaceID:       string(p.PlaceID),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
