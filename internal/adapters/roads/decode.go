package roads

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"road-snap-service/internal/domain"
)

// --- JSON types for the Roads API v1 ---

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// responseEnvelope carries the shared error shape every endpoint may return.
type responseEnvelope struct {
	Error *errorEnvelope `json:"error"`
}

type latLngJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type snappedPointJSON struct {
	Location      latLngJSON `json:"location"`
	OriginalIndex *int       `json:"originalIndex"`
	PlaceID       string     `json:"placeId"`
}

type speedLimitJSON struct {
	PlaceID    string  `json:"placeId"`
	SpeedLimit float64 `json:"speedLimit"`
	Units      string  `json:"units"`
}

type snapResponse struct {
	SnappedPoints  []snappedPointJSON `json:"snappedPoints"`
	WarningMessage string             `json:"warningMessage"`
}

type speedLimitsResponse struct {
	SpeedLimits   []speedLimitJSON   `json:"speedLimits"`
	SnappedPoints []snappedPointJSON `json:"snappedPoints"`
}

// decode reads the response body and either fills out with the decoded
// payload or returns a classified error:
//
//   - body not JSON, HTTP != 200 -> *HTTPError with the transport status
//   - body not JSON, HTTP == 200 -> *MalformedResponseError
//   - error envelope present     -> *APIError via the status table
//   - no envelope, HTTP != 200   -> *HTTPError
//   - otherwise                  -> success, body decoded into out
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env responseEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &HTTPError{
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(body)),
			}
		}
		return &MalformedResponseError{Body: string(body), err: err}
	}

	if env.Error != nil {
		return classify(resp.StatusCode, *env.Error)
	}

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{Body: string(body), err: err}
	}

	return nil
}

func (p snappedPointJSON) toDomain() domain.SnappedPoint {
	return domain.SnappedPoint{
		Location: domain.LatLng{
			Lat: p.Location.Latitude,
			Lng: p.Location.Longitude,
		},
		OriginalIndex: p.OriginalIndex,
		PlaceID:       domain.PlaceID(p.PlaceID),
	}
}

func (l speedLimitJSON) toDomain() domain.SpeedLimit {
	return domain.SpeedLimit{
		PlaceID: domain.PlaceID(l.PlaceID),
		Limit:   l.SpeedLimit,
		Units:   domain.SpeedUnit(l.Units),
	}
}

func snappedPointsToDomain(points []snappedPointJSON) []domain.SnappedPoint {
	out := make([]domain.SnappedPoint, 0, len(points))
	for _, p := range points {
		out = append(out, p.toDomain())
	}
	return out
}

func speedLimitsToDomain(limits []speedLimitJSON) []domain.SpeedLimit {
	out := make([]domain.SpeedLimit, 0, len(limits))
	for _, l := range limits {
		out = append(out, l.toDomain())
	}
	return out
}
