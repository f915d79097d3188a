package roads

import (
	"errors"
	"net/http"
	"time"
)

const (
	// roadsAPIURL is the fixed base URL of the Roads API.
	roadsAPIURL = "https://roads.googleapis.com"

	snapEndpoint        = "/v1/snapToRoads"
	speedLimitsEndpoint = "/v1/speedLimits"
)

// Client implements RoadProvider against the Google Roads API.
//
// The Roads endpoints authenticate with a plain API key; they do not use
// the client-id/signing mechanism some other Maps endpoints require.
//
// The client is stateless and safe for concurrent use.
type Client struct {
	session *http.Client
	apiKey  string
	// baseURL is the Roads API endpoint. Overrideable in tests.
	baseURL string
}

func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("roads api key is empty")
	}

	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: roadsAPIURL,
	}, nil
}
