package roads

import (
	"fmt"
	"strings"

	"road-snap-service/internal/domain"
)

// pathParam is the loosely typed path input the encoder accepts: a single
// coordinate pair, a sequence of pairs, or a sequence of place IDs.
// Exactly one field may be set; a bare pair normalizes to a one-element
// sequence before encoding.
type pathParam struct {
	Point    *domain.LatLng
	Points   []domain.LatLng
	PlaceIDs []domain.PlaceID
}

// encode joins the components with "|". Coordinates render as "lat,lng";
// place IDs pass through unchanged.
func (p pathParam) encode() (string, error) {
	set := 0
	if p.Point != nil {
		set++
	}
	if p.Points != nil {
		set++
	}
	if p.PlaceIDs != nil {
		set++
	}
	if set != 1 {
		return "", fmt.Errorf("%w: exactly one of point, points, or place IDs must be set", ErrInvalidArgument)
	}

	points := p.Points
	if p.Point != nil {
		points = []domain.LatLng{*p.Point}
	}

	if p.PlaceIDs != nil {
		parts := make([]string, 0, len(p.PlaceIDs))
		for _, id := range p.PlaceIDs {
			if id == "" {
				return "", fmt.Errorf("%w: empty place ID", ErrInvalidArgument)
			}
			parts = append(parts, string(id))
		}
		return strings.Join(parts, "|"), nil
	}

	if len(points) == 0 {
		return "", fmt.Errorf("%w: path must contain at least one point", ErrInvalidArgument)
	}

	parts := make([]string, 0, len(points))
	for i, pt := range points {
		if !pt.Valid() {
			return "", fmt.Errorf("%w: path point %d is not a finite coordinate pair", ErrInvalidArgument, i)
		}
		parts = append(parts, pt.String())
	}
	return strings.Join(parts, "|"), nil
}
