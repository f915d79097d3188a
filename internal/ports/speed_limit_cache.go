package ports

import (
	"context"

	"road-snap-service/internal/domain"
)

// Persistent cache of posted speed limits keyed by place ID.
type SpeedLimitCache interface {
	// Return cached limits for the given place IDs. Missing IDs are simply
	// absent from the result map.
	GetMany(ctx context.Context, placeIDs []domain.PlaceID) (map[domain.PlaceID]domain.SpeedLimit, error)

	// Store place ID -> speed limit mappings.
	PutMany(ctx context.Context, limits []domain.SpeedLimit) error
}
