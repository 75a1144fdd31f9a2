package model

import (
	"bytes"
	"context"
	"encoding/json"
	"eta-service/internal/domain"
	"fmt"
	"net/http"
	"time"
)

// HTTPModel serves predictions from an external model service instead of a
// local artifact, for deployments where the trained pipeline stays in its
// native runtime. Selected by configuration; interchangeable with the
// file-backed model behind the same port.
type HTTPModel struct {
	endpoint string
	client   *http.Client
}

func NewHTTPModel(endpoint string) *HTTPModel {
	return &HTTPModel{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Field names follow the training dataset's column names.
type predictRequest struct {
	DistanceTravelled float64 `json:"distance_travelled"`
	DayOfWeek         string  `json:"day_of_week"`
	TimeOfDay         int     `json:"time_of_day"`
	PeakTraffic       string  `json:"peak_traffic"`
}

type predictResponse struct {
	ETAMinutes float64 `json:"eta_minutes"`
}

func (m *HTTPModel) Predict(ctx context.Context, row domain.FeatureRow) (float64, error) {
	if err := row.Validate(); err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}

	body, err := json.Marshal(predictRequest{
		DistanceTravelled: row.DistanceKm,
		DayOfWeek:         string(row.DayOfWeek),
		TimeOfDay:         row.Hour,
		PeakTraffic:       string(row.Traffic),
	})
	if err != nil {
		return 0, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("model service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model service returned status: %d", resp.StatusCode)
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode model response: %w", err)
	}

	return decoded.ETAMinutes, nil
}

func (m *HTTPModel) Version() string { return "remote" }
