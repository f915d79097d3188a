package dto

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SnapRequest struct {
	Path        []LatLng `json:"path"`
	Interpolate bool     `json:"interpolate"`
}

type SnappedPointResponse struct {
	Location      LatLng `json:"location"`
	OriginalIndex *int   `json:"original_index,omitempty"`
	PlaceID       string `json:"place_id"`
}

type SnapResponse struct {
	SnappedPoints []SnappedPointResponse `json:"snapped_points"`
}

type SpeedLimitResponse struct {
	PlaceID    string  `json:"place_id"`
	SpeedLimit float64 `json:"speed_limit"`
	Units      string  `json:"units"`
}

type ListSpeedLimitsResponse struct {
	SpeedLimits []SpeedLimitResponse `json:"speed_limits"`
}

type SnappedSpeedLimitsResponse struct {
	SpeedLimits   []SpeedLimitResponse   `json:"speed_limits"`
	SnappedPoints []SnappedPointResponse `json:"snapped_points"`
}

type AnnotatedPointResponse struct {
	Location      LatLng              `json:"location"`
	OriginalIndex *int                `json:"original_index,omitempty"`
	PlaceID       string              `json:"place_id"`
	SpeedLimit    *SpeedLimitResponse `json:"speed_limit,omitempty"`
}

type AnnotateResponse struct {
	Points []AnnotatedPointResponse `json:"points"`
}
