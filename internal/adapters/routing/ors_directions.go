package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"eta-service/internal/domain"
	"eta-service/internal/metrics"
	"eta-service/internal/platform/obs"
	"eta-service/internal/ports"
	"fmt"
	"net/http"
	"time"
)

// ORSRouteProvider implements RouteProvider using the OpenRouteService
// directions endpoint with the driving-car profile.
//
// Each lookup is a single request: the retry budget of the pipeline lives
// with the geocoder, and routing failures are absorbed into absence upstream.
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	metrics *metrics.Collector
}

func NewORSRouteProvider(apiKey string, baseURL string, m *metrics.Collector) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}

	return &ORSRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
		profile: "driving-car",
		metrics: m,
	}, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// DrivingDistance fetches the best driving route between two coordinate
// pairs and returns its summary. Distance is meters, duration seconds, as
// reported by the first route option.
func (o *ORSRouteProvider) DrivingDistance(
	ctx context.Context,
	start, end domain.Coordinates,
) (_ ports.RouteSummary, err error) {
	defer obs.Time(ctx, "ors.DrivingDistance")(&err)

	if o.metrics != nil {
		o.metrics.RoutingRequests.Inc()
		defer func() {
			if err != nil {
				o.metrics.RoutingErrors.Inc()
			}
		}()
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{start.LonLat(), end.LonLat()},
	})
	if err != nil {
		return ports.RouteSummary{}, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)
	req, err := o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.RouteSummary{}, fmt.Errorf("directions request: %w", err)
	}

	resp, err := o.do(req)
	if err != nil {
		return ports.RouteSummary{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteSummary{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return ports.RouteSummary{}, errors.New("no route returned")
	}

	summary := decoded.Routes[0].Summary
	return ports.RouteSummary{
		DistanceMeters:  summary.Distance,
		DurationSeconds: summary.Duration,
	}, nil
}
