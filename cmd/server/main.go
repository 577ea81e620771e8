package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"healthycity-service/internal/adapters/cache"
	"healthycity-service/internal/adapters/earthengine"
	"healthycity-service/internal/adapters/geocode"
	"healthycity-service/internal/adapters/simulated"
	"healthycity-service/internal/api"
	"healthycity-service/internal/config"
	"healthycity-service/internal/platform/db"
	"healthycity-service/internal/ports"
	"healthycity-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Earth Engine, OpenWeatherMap, geocode caches)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8000")

	// Geocoding fallback is optional: without the key, any city outside the
	// static table resolves to 503.
	var geocoder ports.Geocoder
	if key := strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")); key != "" {
		g, err := geocode.NewOpenWeatherGeocoder(key)
		if err != nil {
			log.Fatal(err)
		}
		geocoder = g
	} else {
		log.Println("OPENWEATHER_API_KEY not set; geocoding fallback disabled")
	}

	geocodeCache, cacheBackend, closeCache := openGeocodeCache()
	defer closeCache()

	ee := earthengine.NewClient(earthengine.Config{
		Project: os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Token:   os.Getenv("EE_ACCESS_TOKEN"),
		BaseURL: os.Getenv("EE_BASE_URL"),
	})

	// Initialization failure is logged, not fatal: the process still serves
	// the simulated endpoints while real-data endpoints return 503.
	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := ee.Initialize(initCtx); err != nil {
		log.Printf("earth engine initialization failed: %v", err)
	} else {
		log.Printf("earth engine initialized project=%s", os.Getenv("GOOGLE_CLOUD_PROJECT"))
	}
	cancel()

	seed, _ := strconv.ParseInt(os.Getenv("SIM_SEED"), 10, 64)

	router := api.NewRouter(api.Deps{
		Resolver:     &services.CityResolver{Geocoder: geocoder, Cache: geocodeCache},
		GreenCover:   &services.GreenCoverService{Imagery: ee},
		Heat:         &services.HeatService{Imagery: ee},
		Sim:          &services.SimulatedMetricsService{Values: simulated.NewRandSource(seed)},
		Imagery:      ee,
		CacheBackend: cacheBackend,
	})

	// Timeouts are tuned for satellite compute calls (external platform latency).
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("shutdown failed: %v", err)
	}
}

// openGeocodeCache picks a cache backend from the environment: Postgres when
// DATABASE_URL is set, Redis when REDIS_ADDR is set, otherwise none. A cache
// that fails to come up degrades to none; it never blocks startup.
func openGeocodeCache() (ports.GeocodeCache, string, func()) {
	noop := func() {}

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Printf("Warning: postgres geocode cache unavailable: %v", err)
			return nil, "none", noop
		}

		c := cache.NewPGGeocodeCache(pg)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = c.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Printf("Warning: postgres geocode cache schema: %v", err)
			pg.Close()
			return nil, "none", noop
		}

		log.Println("geocode cache backend=postgres")
		return c, "postgres", func() { pg.Close() }
	}

	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Printf("Warning: redis geocode cache unavailable: %v", err)
			client.Close()
			return nil, "none", noop
		}

		log.Println("geocode cache backend=redis")
		return cache.NewRedisGeocodeCache(client), "redis", func() { client.Close() }
	}

	return nil, "none", noop
}
