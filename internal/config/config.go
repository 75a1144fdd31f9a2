package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	ORSAPIKey  string
	ORSBaseURL string

	NominatimURL string
	City         string

	GeocodeRetries int
	GeocodeDelay   time.Duration

	ModelPath string
	ModelURL  string

	DatabaseURL string
	SaveTrips   bool

	MetricsAddr string
}

// Load builds the configuration from the environment, reading .env first
// when present. The routing API key is the only hard requirement; the
// database and metrics server are optional so the service can run
// standalone against the two external APIs and a local model artifact.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.ORSAPIKey = strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	if cfg.ORSAPIKey == "" {
		return nil, errors.New("ORS_API_KEY is required")
	}
	cfg.ORSBaseURL = getenvDefault("ORS_BASE_URL", "https://api.openrouteservice.org")

	cfg.NominatimURL = getenvDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org")

	// Suffix appended to every place query to disambiguate short names.
	cfg.City = getenvDefault("CITY", "Bengaluru, India")

	if v := os.Getenv("GEOCODE_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid GEOCODE_RETRIES: %q", v)
		}
		cfg.GeocodeRetries = n
	} else {
		cfg.GeocodeRetries = 3
	}

	if v := os.Getenv("GEOCODE_RETRY_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid GEOCODE_RETRY_DELAY_MS: %q", v)
		}
		cfg.GeocodeDelay = time.Duration(ms) * time.Millisecond
	} else {
		cfg.GeocodeDelay = 2 * time.Second
	}

	cfg.ModelPath = getenvDefault("MODEL_PATH", "data/eta_model.json")
	cfg.ModelURL = strings.TrimSpace(os.Getenv("MODEL_URL"))

	cfg.DatabaseURL = firstNonEmpty(
		os.Getenv("DATABASE_URL"),
		os.Getenv("PG_DSN"),
	)

	cfg.SaveTrips = boolEnv("SAVE_TRIPS", true)

	// Metrics listen address (e.g., ":9102"). Empty disables the metrics server.
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func boolEnv(k string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(k)))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
