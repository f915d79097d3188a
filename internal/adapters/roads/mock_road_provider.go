package roads

import (
	"context"
	"fmt"

	"road-snap-service/internal/domain"
)

// MockRoadProvider is a canned RoadProvider for tests. Snap calls return
// Snapped verbatim; speed-limit lookups are served from Limits and recorded
// so tests can assert which IDs reached the provider.
type MockRoadProvider struct {
	Snapped []domain.SnappedPoint
	Limits  map[domain.PlaceID]domain.SpeedLimit

	SnapCalls       int
	SpeedLimitCalls [][]domain.PlaceID
}

func (m *MockRoadProvider) SnapToRoads(ctx context.Context, path []domain.LatLng, interpolate bool) ([]domain.SnappedPoint, error) {
	m.SnapCalls++
	return m.Snapped, nil
}

func (m *MockRoadProvider) SpeedLimits(ctx context.Context, placeIDs []domain.PlaceID) ([]domain.SpeedLimit, error) {
	ids := make([]domain.PlaceID, len(placeIDs))
	copy(ids, placeIDs)
	m.SpeedLimitCalls = append(m.SpeedLimitCalls, ids)

	out := make([]domain.SpeedLimit, 0, len(placeIDs))
	for _, id := range placeIDs {
		l, ok := m.Limits[id]
		if !ok {
			return nil, fmt.Errorf("missing speed limit for %q", id)
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *MockRoadProvider) SnappedSpeedLimits(ctx context.Context, path []domain.LatLng) (domain.SnappedSpeedLimits, error) {
	snapped, err := m.SnapToRoads(ctx, path, false)
	if err != nil {
		return domain.SnappedSpeedLimits{}, err
	}

	ids := make([]domain.PlaceID, 0, len(snapped))
	for _, p := range snapped {
		ids = append(ids, p.PlaceID)
	}

	limits, err := m.SpeedLimits(ctx, ids)
	if err != nil {
		return domain.SnappedSpeedLimits{}, err
	}

	return domain.SnappedSpeedLimits{SpeedLimits: limits, SnappedPoints: snapped}, nil
}
