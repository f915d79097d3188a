package roads

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"road-snap-service/internal/domain"
	"road-snap-service/internal/platform/obs"
)

// SpeedLimits returns posted speed limits for the given road segments
// (GET /v1/speedLimits). Each ID is sent as a repeated placeId parameter.
func (c *Client) SpeedLimits(
	ctx context.Context,
	placeIDs []domain.PlaceID,
) (_ []domain.SpeedLimit, err error) {
	defer obs.Time(ctx, "roads.SpeedLimits")(&err)

	if len(placeIDs) == 0 {
		return nil, fmt.Errorf("speed limits: %w: at least one place ID is required", ErrInvalidArgument)
	}
	if len(placeIDs) > maxPointsPerRequest {
		return nil, fmt.Errorf(
			"speed limits: %w: at most %d place IDs per request, got %d",
			ErrInvalidArgument, maxPointsPerRequest, len(placeIDs),
		)
	}
	for _, id := range placeIDs {
		if id == "" {
			return nil, fmt.Errorf("speed limits: %w: empty place ID", ErrInvalidArgument)
		}
	}

	makeReq := func() (*http.Request, error) {
		q := url.Values{}
		for _, id := range placeIDs {
			q.Add("placeId", string(id))
		}
		return c.newRequest(ctx, speedLimitsEndpoint, q)
	}

	resp, err := c.doWithRetry(ctx, makeReq)
	if err != nil {
		return nil, fmt.Errorf("speed limits: %w", err)
	}

	var decoded speedLimitsResponse
	if err := decode(resp, &decoded); err != nil {
		return nil, fmt.Errorf("speed limits: %w", err)
	}

	return speedLimitsToDomain(decoded.SpeedLimits), nil
}

// SnappedSpeedLimits snaps a raw trace first, then returns the speed limits
// of the segments it crosses. Same endpoint and response shape as
// SpeedLimits, with a path parameter in place of place IDs.
func (c *Client) SnappedSpeedLimits(
	ctx context.Context,
	path []domain.LatLng,
) (_ domain.SnappedSpeedLimits, err error) {
	defer obs.Time(ctx, "roads.SnappedSpeedLimits")(&err)

	if len(path) > maxPointsPerRequest {
		return domain.SnappedSpeedLimits{}, fmt.Errorf(
			"snapped speed limits: %w: at most %d points per request, got %d",
			ErrInvalidArgument, maxPointsPerRequest, len(path),
		)
	}

	encoded, err := pathParam{Points: path}.encode()
	if err != nil {
		return domain.SnappedSpeedLimits{}, fmt.Errorf("snapped speed limits: %w", err)
	}

	makeReq := func() (*http.Request, error) {
		q := url.Values{}
		q.Set("path", encoded)
		return c.newRequest(ctx, speedLimitsEndpoint, q)
	}

	resp, err := c.doWithRetry(ctx, makeReq)
	if err != nil {
		return domain.SnappedSpeedLimits{}, fmt.Errorf("snapped speed limits: %w", err)
	}

	var decoded speedLimitsResponse
	if err := decode(resp, &decoded); err != nil {
		return domain.SnappedSpeedLimits{}, fmt.Errorf("snapped speed limits: %w", err)
	}

	return domain.SnappedSpeedLimits{
		SpeedLimits:   speedLimitsToDomain(decoded.SpeedLimits),
		SnappedPoints: snappedPointsToDomain(decoded.SnappedPoints),
	}, nil
}
