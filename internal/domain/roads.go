package domain

// PlaceID is an opaque identifier for a road segment, returned by the snap
// operation and consumed by the speed-limit operation.
type PlaceID string

// SpeedUnit is the unit a posted speed limit is expressed in.
type SpeedUnit string

const (
	SpeedUnitKPH SpeedUnit = "KPH"
	SpeedUnitMPH SpeedUnit = "MPH"
)

// SnappedPoint is a raw GPS point aligned to road geometry.
// OriginalIndex is nil for points the service interpolated (they do not
// correspond to any point in the input trace).
type SnappedPoint struct {
	Location      LatLng
	OriginalIndex *int
	PlaceID       PlaceID
}

// SpeedLimit is the posted speed limit for one road segment.
type SpeedLimit struct {
	PlaceID PlaceID
	Limit   float64
	Units   SpeedUnit
}

// SnappedSpeedLimits pairs a snapped trace with the speed limits of the
// segments it crosses.
type SnappedSpeedLimits struct {
	SpeedLimits   []SpeedLimit
	SnappedPoints []SnappedPoint
}
