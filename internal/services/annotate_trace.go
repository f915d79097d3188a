package services

import (
	"context"
	"fmt"
	"log"

	"road-snap-service/internal/domain"
	"road-snap-service/internal/ports"
)

// chunkSize matches the remote service's per-call cap on path points and
// place IDs, so oversized traces are split before dispatch.
const chunkSize = 100

type AnnotateTraceRequest struct {
	Path        []domain.LatLng
	Interpolate bool
}

// AnnotatedPoint is one snapped point joined with the posted speed limit of
// the segment it lies on. Limit is nil when the service has no data for the
// segment.
type AnnotatedPoint struct {
	Location      domain.LatLng
	OriginalIndex *int
	PlaceID       domain.PlaceID
	Limit         *domain.SpeedLimit
}

// AnnotateTrace snaps a raw GPS trace to road geometry and resolves posted
// speed limits for the snapped segments, cache-first. Traces longer than the
// remote per-call cap are snapped in chunks; speed limits are fetched only
// for place IDs the cache misses, and fresh results are written back.
func AnnotateTrace(
	ctx context.Context,
	req AnnotateTraceRequest,
	provider ports.RoadProvider,
	limitCache ports.SpeedLimitCache,
) ([]AnnotatedPoint, error) {
	if len(req.Path) == 0 {
		return []AnnotatedPoint{}, nil
	}

	snapped := make([]domain.SnappedPoint, 0, len(req.Path))
	for start := 0; start < len(req.Path); start += chunkSize {
		end := start + chunkSize
		if end > len(req.Path) {
			end = len(req.Path)
		}

		points, err := provider.SnapToRoads(ctx, req.Path[start:end], req.Interpolate)
		if err != nil {
			return nil, fmt.Errorf("annotate trace: snap points %d-%d: %w", start, end-1, err)
		}

		// Re-anchor chunk-relative indexes to the full trace.
		for _, p := range points {
			if p.OriginalIndex != nil {
				idx := *p.OriginalIndex + start
				p.OriginalIndex = &idx
			}
			snapped = append(snapped, p)
		}
	}

	seen := make(map[domain.PlaceID]struct{}, len(snapped))
	ids := make([]domain.PlaceID, 0, len(snapped))
	for _, p := range snapped {
		if p.PlaceID == "" {
			continue
		}
		if _, ok := seen[p.PlaceID]; ok {
			continue
		}
		seen[p.PlaceID] = struct{}{}
		ids = append(ids, p.PlaceID)
	}

	limits := make(map[domain.PlaceID]domain.SpeedLimit, len(ids))
	// Check the persistent cache before issuing external API calls.
	if limitCache != nil {
		hits, err := limitCache.GetMany(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("annotate trace: get speed limit cache: %w", err)
		}
		for id, l := range hits {
			limits[id] = l
		}
	}

	misses := make([]domain.PlaceID, 0, len(ids))
	for _, id := range ids {
		if _, ok := limits[id]; !ok {
			misses = append(misses, id)
		}
	}

	fresh := make([]domain.SpeedLimit, 0, len(misses))
	for start := 0; start < len(misses); start += chunkSize {
		end := start + chunkSize
		if end > len(misses) {
			end = len(misses)
		}

		batch, err := provider.SpeedLimits(ctx, misses[start:end])
		if err != nil {
			return nil, fmt.Errorf("annotate trace: get speed limits: %w", err)
		}

		for _, l := range batch {
			limits[l.PlaceID] = l
			fresh = append(fresh, l)
		}
	}

	if limitCache != nil && len(fresh) > 0 {
		if err := limitCache.PutMany(ctx, fresh); err != nil {
			log.Printf("speed limit cache write failed: %v", err)
		}
	}

	out := make([]AnnotatedPoint, 0, len(snapped))
	for _, p := range snapped {
		point := AnnotatedPoint{
			Location:      p.Location,
			OriginalIndex: p.OriginalIndex,
			PlaceID:       p.PlaceID,
		}
		if l, ok := limits[p.PlaceID]; ok {
			limit := l
			point.Limit = &limit
		}
		out = append(out, point)
	}

	return out, nil
}
