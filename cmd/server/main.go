package main

import (
	"eta-service/internal/adapters/geocode"
	"eta-service/internal/adapters/model"
	"eta-service/internal/adapters/repositories"
	"eta-service/internal/adapters/routing"
	"eta-service/internal/api"
	"eta-service/internal/config"
	"eta-service/internal/metrics"
	"eta-service/internal/platform/db"
	"eta-service/internal/ports"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, ORS, Postgres, the model artifact)
// behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		collector.StartServer(cfg.MetricsAddr)
	}

	retry := geocode.RetryPolicy{
		MaxAttempts: cfg.GeocodeRetries,
		Delay:       cfg.GeocodeDelay,
	}
	geocoder, err := geocode.NewClient(cfg.NominatimURL, cfg.City, retry, collector)
	if err != nil {
		log.Fatal(err)
	}

	routes, err := routing.NewORSRouteProvider(cfg.ORSAPIKey, cfg.ORSBaseURL, collector)
	if err != nil {
		log.Fatal(err)
	}

	// The model is loaded once here and read-only for the process lifetime.
	var etaModel ports.ETAModel
	if cfg.ModelURL != "" {
		etaModel = model.NewHTTPModel(cfg.ModelURL)
	} else {
		m, err := model.Load(cfg.ModelPath)
		if err != nil {
			log.Fatal(err)
		}
		etaModel = m
	}
	log.Printf("model ready version=%s", etaModel.Version())

	var recorder ports.TripRecorder
	var trips ports.TripRecorder
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer dbConn.Close()

		repo := repositories.NewPostgresTripRepository(dbConn)
		trips = repo
		if cfg.SaveTrips {
			recorder = repo
		}
	}

	router := api.NewRouter(geocoder, routes, etaModel, recorder, trips, collector)

	// The write timeout leaves room for geocode retries against slow upstreams.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
