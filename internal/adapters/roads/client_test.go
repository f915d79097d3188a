package roads

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"road-snap-service/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.baseURL = srv.URL
	return c
}

func TestSnapToRoadsQueryParameters(t *testing.T) {
	var gotPath, gotKey string
	var gotInterpolate []string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/snapToRoads" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotPath = r.URL.Query().Get("path")
		gotKey = r.URL.Query().Get("key")
		gotInterpolate = r.URL.Query()["interpolate"]
		w.Write([]byte(`{"snappedPoints":[]}`))
	})

	path := []domain.LatLng{{Lat: 1.0, Lng: 2.0}, {Lat: 3.0, Lng: 4.0}}

	if _, err := c.SnapToRoads(context.Background(), path, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "1.0,2.0|3.0,4.0" {
		t.Fatalf("path = %q, want %q", gotPath, "1.0,2.0|3.0,4.0")
	}
	if gotKey != "test-key" {
		t.Fatalf("key = %q, want %q", gotKey, "test-key")
	}
	if len(gotInterpolate) != 0 {
		t.Fatalf("interpolate=false must omit the parameter, got %v", gotInterpolate)
	}

	if _, err := c.SnapToRoads(context.Background(), path, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotInterpolate) != 1 || gotInterpolate[0] != "true" {
		t.Fatalf("interpolate = %v, want [true]", gotInterpolate)
	}
}

func TestSnapToRoadsDecodesPoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"snappedPoints":[
			{"location":{"latitude":-35.27801,"longitude":149.12958},"originalIndex":0,"placeId":"ChIJA"},
			{"location":{"latitude":-35.28032,"longitude":149.12907},"placeId":"ChIJB"}
		]}`))
	})

	points, err := c.SnapToRoads(context.Background(), []domain.LatLng{{Lat: -35.27801, Lng: 149.12958}}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].PlaceID != "ChIJA" {
		t.Fatalf("place id = %q, want ChIJA", points[0].PlaceID)
	}
	if points[0].OriginalIndex == nil || *points[0].OriginalIndex != 0 {
		t.Fatalf("expected original index 0, got %v", points[0].OriginalIndex)
	}
	if points[1].OriginalIndex != nil {
		t.Fatal("interpolated point must not carry an original index")
	}
	if points[1].Location != (domain.LatLng{Lat: -35.28032, Lng: 149.12907}) {
		t.Fatalf("unexpected location %v", points[1].Location)
	}
}

func TestSpeedLimitsRepeatedPlaceIDParameters(t *testing.T) {
	var gotIDs []string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/speedLimits" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotIDs = r.URL.Query()["placeId"]
		w.Write([]byte(`{"speedLimits":[
			{"placeId":"A","speedLimit":60,"units":"KPH"},
			{"placeId":"B","speedLimit":35,"units":"MPH"}
		]}`))
	})

	limits, err := c.SpeedLimits(context.Background(), []domain.PlaceID{"A", "B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotIDs) != 2 || gotIDs[0] != "A" || gotIDs[1] != "B" {
		t.Fatalf("placeId params = %v, want [A B] in order", gotIDs)
	}

	if len(limits) != 2 {
		t.Fatalf("expected 2 limits, got %d", len(limits))
	}
	if limits[0] != (domain.SpeedLimit{PlaceID: "A", Limit: 60, Units: domain.SpeedUnitKPH}) {
		t.Fatalf("unexpected limit %+v", limits[0])
	}
	if limits[1].Units != domain.SpeedUnitMPH {
		t.Fatalf("units = %q, want MPH", limits[1].Units)
	}
}

func TestSnappedSpeedLimitsUsesPathParameter(t *testing.T) {
	var gotPath string
	var gotPlaceIDs []string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Query().Get("path")
		gotPlaceIDs = r.URL.Query()["placeId"]
		w.Write([]byte(`{
			"speedLimits":[{"placeId":"A","speedLimit":50,"units":"KPH"}],
			"snappedPoints":[{"location":{"latitude":1,"longitude":2},"originalIndex":0,"placeId":"A"}]
		}`))
	})

	res, err := c.SnappedSpeedLimits(context.Background(), []domain.LatLng{{Lat: 1.0, Lng: 2.0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "1.0,2.0" {
		t.Fatalf("path = %q, want %q", gotPath, "1.0,2.0")
	}
	if len(gotPlaceIDs) != 0 {
		t.Fatalf("expected no placeId params, got %v", gotPlaceIDs)
	}

	if len(res.SpeedLimits) != 1 || len(res.SnappedPoints) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.SnappedPoints[0].PlaceID != "A" {
		t.Fatalf("place id = %q, want A", res.SnappedPoints[0].PlaceID)
	}
}

func TestClientRetriesTransientStatus(t *testing.T) {
	attempts := 0

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"snappedPoints":[]}`))
	})

	if _, err := c.SnapToRoads(context.Background(), []domain.LatLng{{Lat: 1, Lng: 2}}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestClientSurfacesRateLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Quota errors arrive with a 200 transport status and a structured body.
		w.Write([]byte(`{"error":{"status":"RESOURCE_EXHAUSTED","message":"quota"}}`))
	})

	_, err := c.SpeedLimits(context.Background(), []domain.PlaceID{"A"})
	if !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("expected ErrRateLimitExceeded, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "quota" {
		t.Fatalf("expected message %q, got %v", "quota", err)
	}
}

func TestClientValidatesInputLocally(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for invalid input")
	})

	if _, err := c.SnapToRoads(context.Background(), nil, false); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty path, got %v", err)
	}

	if _, err := c.SpeedLimits(context.Background(), nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for no place IDs, got %v", err)
	}

	big := make([]domain.LatLng, maxPointsPerRequest+1)
	if _, err := c.SnapToRoads(context.Background(), big, false); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for oversized path, got %v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("expected an error for empty api key")
	}
}
