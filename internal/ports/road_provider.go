package ports

import (
	"context"

	"road-snap-service/internal/domain"
)

// Contract for snapping GPS traces to road geometry and fetching posted
// speed limits. Implemented by the Roads API client adapter.
type RoadProvider interface {
	// Align a raw GPS trace to road geometry. When interpolate is true the
	// result includes extra points for smoother road-following geometry.
	SnapToRoads(ctx context.Context, path []domain.LatLng, interpolate bool) ([]domain.SnappedPoint, error)

	// Return posted speed limits for the given road segments.
	SpeedLimits(ctx context.Context, placeIDs []domain.PlaceID) ([]domain.SpeedLimit, error)

	// Snap a trace and return both the snapped points and the speed limits
	// of the segments they lie on.
	SnappedSpeedLimits(ctx context.Context, path []domain.LatLng) (domain.SnappedSpeedLimits, error)
}
