package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"road-snap-service/internal/adapters/roads"
	"road-snap-service/internal/api/dto"
	"road-snap-service/internal/domain"
)

func intPtr(i int) *int { return &i }

func TestSnapHandler(t *testing.T) {
	provider := &roads.MockRoadProvider{
		Snapped: []domain.SnappedPoint{
			{Location: domain.LatLng{Lat: 1.5, Lng: 2.5}, OriginalIndex: intPtr(0), PlaceID: "A"},
		},
	}
	h := &SnapHandler{Provider: provider}

	t.Run("rejects non-POST", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Snap(rec, httptest.NewRequest(http.MethodGet, "/snap", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", rec.Code)
		}
	})

	t.Run("rejects invalid body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/snap", strings.NewReader("not json"))
		h.Snap(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects empty path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/snap", strings.NewReader(`{"path":[]}`))
		h.Snap(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("snaps a trace", func(t *testing.T) {
		rec := httptest.NewRecorder()
		body := `{"path":[{"lat":1.5,"lng":2.5}],"interpolate":true}`
		req := httptest.NewRequest(http.MethodPost, "/snap", strings.NewReader(body))
		h.Snap(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}

		var res dto.SnapResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(res.SnappedPoints) != 1 {
			t.Fatalf("expected 1 point, got %d", len(res.SnappedPoints))
		}
		if res.SnappedPoints[0].PlaceID != "A" {
			t.Fatalf("place id = %q, want A", res.SnappedPoints[0].PlaceID)
		}
	})
}

func TestSpeedLimitHandler(t *testing.T) {
	provider := &roads.MockRoadProvider{
		Limits: map[domain.PlaceID]domain.SpeedLimit{
			"A": {PlaceID: "A", Limit: 60, Units: domain.SpeedUnitKPH},
			"B": {PlaceID: "B", Limit: 35, Units: domain.SpeedUnitMPH},
		},
	}
	h := &SpeedLimitHandler{Provider: provider}

	t.Run("requires placeId", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/speed-limits", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("returns limits in order", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/speed-limits?placeId=A&placeId=B", nil)
		h.List(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}

		var res dto.ListSpeedLimitsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(res.SpeedLimits) != 2 {
			t.Fatalf("expected 2 limits, got %d", len(res.SpeedLimits))
		}
		if res.SpeedLimits[0].PlaceID != "A" || res.SpeedLimits[1].PlaceID != "B" {
			t.Fatalf("unexpected order: %+v", res.SpeedLimits)
		}
	})
}

func TestSnappedSpeedLimitsHandler(t *testing.T) {
	provider := &roads.MockRoadProvider{
		Snapped: []domain.SnappedPoint{
			{Location: domain.LatLng{Lat: 1, Lng: 2}, OriginalIndex: intPtr(0), PlaceID: "A"},
		},
		Limits: map[domain.PlaceID]domain.SpeedLimit{
			"A": {PlaceID: "A", Limit: 60, Units: domain.SpeedUnitKPH},
		},
	}
	h := &SpeedLimitHandler{Provider: provider}

	rec := httptest.NewRecorder()
	body := `{"path":[{"lat":1,"lng":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/snapped-speed-limits", strings.NewReader(body))
	h.Snapped(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.SnappedSpeedLimitsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.SpeedLimits) != 1 || len(res.SnappedPoints) != 1 {
		t.Fatalf("unexpected response: %+v", res)
	}
	if res.SpeedLimits[0].Units != "KPH" {
		t.Fatalf("units = %q, want KPH", res.SpeedLimits[0].Units)
	}
}

// erroringProvider returns a fixed error from every operation.
type erroringProvider struct {
	err error
}

func (p *erroringProvider) SnapToRoads(ctx context.Context, path []domain.LatLng, interpolate bool) ([]domain.SnappedPoint, error) {
	return nil, p.err
}

func (p *erroringProvider) SpeedLimits(ctx context.Context, placeIDs []domain.PlaceID) ([]domain.SpeedLimit, error) {
	return nil, p.err
}

func (p *erroringProvider) SnappedSpeedLimits(ctx context.Context, path []domain.LatLng) (domain.SnappedSpeedLimits, error) {
	return domain.SnappedSpeedLimits{}, p.err
}

func TestProviderErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid request", roads.ErrInvalidRequest, http.StatusBadRequest},
		{"invalid argument", roads.ErrInvalidArgument, http.StatusBadRequest},
		{"rate limited", roads.ErrRateLimitExceeded, http.StatusServiceUnavailable},
		{"denied", roads.ErrRequestDenied, http.StatusBadGateway},
		{"other upstream failure", &roads.HTTPError{StatusCode: 500}, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &SnapHandler{Provider: &erroringProvider{err: tc.err}}

			rec := httptest.NewRecorder()
			body := `{"path":[{"lat":1,"lng":2}]}`
			req := httptest.NewRequest(http.MethodPost, "/snap", strings.NewReader(body))
			h.Snap(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestAnnotateHandler(t *testing.T) {
	provider := &roads.MockRoadProvider{
		Snapped: []domain.SnappedPoint{
			{Location: domain.LatLng{Lat: 1, Lng: 2}, OriginalIndex: intPtr(0), PlaceID: "A"},
		},
		Limits: map[domain.PlaceID]domain.SpeedLimit{
			"A": {PlaceID: "A", Limit: 60, Units: domain.SpeedUnitKPH},
		},
	}
	h := &AnnotateHandler{Provider: provider}

	rec := httptest.NewRecorder()
	body := `{"path":[{"lat":1,"lng":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/annotate", strings.NewReader(body))
	h.Annotate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.AnnotateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(res.Points))
	}
	if res.Points[0].SpeedLimit == nil || res.Points[0].SpeedLimit.SpeedLimit != 60 {
		t.Fatalf("expected speed limit 60, got %+v", res.Points[0].SpeedLimit)
	}
}
