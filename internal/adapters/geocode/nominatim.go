package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"eta-service/internal/domain"
	"eta-service/internal/metrics"
	"eta-service/internal/platform/obs"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RetryPolicy bounds the lookup loop: at most MaxAttempts calls with a fixed
// Delay between consecutive attempts. No delay is taken after the final one.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second}
}

// Client resolves free-text place names using the Nominatim search API.
// Every query carries the configured city suffix so short neighborhood names
// stay unambiguous. The client is safe for concurrent use.
type Client struct {
	session    *http.Client
	baseURL    string
	userAgent  string
	citySuffix string
	retry      RetryPolicy
	metrics    *metrics.Collector

	// sleep is replaceable so tests can observe delays with a fake clock.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(baseURL, citySuffix string, retry RetryPolicy, m *metrics.Collector) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("geocode: base URL is empty")
	}
	if strings.TrimSpace(citySuffix) == "" {
		return nil, errors.New("geocode: city suffix is empty")
	}
	if retry.MaxAttempts < 1 {
		return nil, fmt.Errorf("geocode: retry attempts must be at least 1, got %d", retry.MaxAttempts)
	}
	if retry.Delay < 0 {
		return nil, fmt.Errorf("geocode: retry delay must be non-negative, got %v", retry.Delay)
	}

	return &Client{
		session:    &http.Client{Timeout: 5 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "eta-service/1.0",
		citySuffix: citySuffix,
		retry:      retry,
		metrics:    m,
		sleep:      sleepCtx,
	}, nil
}

// Nominatim encodes lat/lon as JSON strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a place name to coordinates, retrying failed lookups with
// a fixed inter-attempt delay. A transport error, a bad status and an empty
// result set each consume one attempt and are logged non-fatally; once the
// budget is exhausted the place is reported as unresolved rather than as an
// error. The first successful attempt returns immediately.
func (c *Client) Geocode(ctx context.Context, place string) (domain.Coordinates, bool, error) {
	query := strings.Join(strings.Fields(place), " ")
	if query == "" {
		return domain.Coordinates{}, false, nil
	}
	query = query + ", " + c.citySuffix

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.Coordinates{}, false, err
		}

		if c.metrics != nil {
			c.metrics.GeocodeAttempts.Inc()
		}

		coords, err := c.lookup(ctx, query)
		if err == nil {
			return coords, true, nil
		}
		// Only the caller's context decides cancellation. The transport's own
		// timeout also reports context.DeadlineExceeded, and that one is a
		// retryable failure like any other.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Coordinates{}, false, ctxErr
		}

		log.Printf("geocode attempt %d/%d failed: place=%q err=%v", attempt, c.retry.MaxAttempts, place, err)
		if c.metrics != nil {
			c.metrics.GeocodeFailures.Inc()
		}

		if attempt == c.retry.MaxAttempts {
			break
		}
		if err := c.sleep(ctx, c.retry.Delay); err != nil {
			return domain.Coordinates{}, false, err
		}
	}

	return domain.Coordinates{}, false, nil
}

func (c *Client) lookup(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.lookup")(&err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode search response: %w", err)
	}
	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no results for %q", query)
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lat %q: %w", decoded[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lon %q: %w", decoded[0].Lon, err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
