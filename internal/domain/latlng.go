package domain

import (
	"math"
	"strconv"
	"strings"
)

// Immutable geographic coordinates (latitude, longitude).
type LatLng struct {
	Lat float64
	Lng float64
}

// Valid reports whether both components are finite numbers.
func (l LatLng) Valid() bool {
	return !math.IsNaN(l.Lat) && !math.IsInf(l.Lat, 0) &&
		!math.IsNaN(l.Lng) && !math.IsInf(l.Lng, 0)
}

// String renders the pair as "lat,lng" for external API compatibility.
// Integral values keep a trailing ".0" so encodings stay stable across inputs.
func (l LatLng) String() string {
	return formatCoord(l.Lat) + "," + formatCoord(l.Lng)
}

func formatCoord(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
