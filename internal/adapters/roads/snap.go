package roads

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"road-snap-service/internal/domain"
	"road-snap-service/internal/platform/obs"
)

// maxPointsPerRequest is the remote service's per-call cap on path points
// and place IDs.
const maxPointsPerRequest = 100

// SnapToRoads aligns a raw GPS trace to road geometry (GET /v1/snapToRoads).
// The interpolate parameter is only sent when requested; the service treats
// its absence as false.
func (c *Client) SnapToRoads(
	ctx context.Context,
	path []domain.LatLng,
	interpolate bool,
) (_ []domain.SnappedPoint, err error) {
	defer obs.Time(ctx, "roads.SnapToRoads")(&err)

	if len(path) > maxPointsPerRequest {
		return nil, fmt.Errorf(
			"snap to roads: %w: at most %d points per request, got %d",
			ErrInvalidArgument, maxPointsPerRequest, len(path),
		)
	}

	encoded, err := pathParam{Points: path}.encode()
	if err != nil {
		return nil, fmt.Errorf("snap to roads: %w", err)
	}

	makeReq := func() (*http.Request, error) {
		q := url.Values{}
		q.Set("path", encoded)
		if interpolate {
			q.Set("interpolate", "true")
		}
		return c.newRequest(ctx, snapEndpoint, q)
	}

	resp, err := c.doWithRetry(ctx, makeReq)
	if err != nil {
		return nil, fmt.Errorf("snap to roads: %w", err)
	}

	var decoded snapResponse
	if err := decode(resp, &decoded); err != nil {
		return nil, fmt.Errorf("snap to roads: %w", err)
	}

	if decoded.WarningMessage != "" {
		log.Printf("roads: snap warning: %s", decoded.WarningMessage)
	}

	return snappedPointsToDomain(decoded.SnappedPoints), nil
}
