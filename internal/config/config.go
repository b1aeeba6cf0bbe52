package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// WatchedRoute is a source/destination pair the scheduler re-plans.
type WatchedRoute struct {
	Source      string
	Destination string
}

type AppConfig struct {
	OpenWeatherAPIKey  string
	WeatherAPIKey      string
	WeatherProvider    string // openweather, weatherapi or openmeteo
	ORSAPIKey          string
	GoogleMapsAPIKey   string
	TicketmasterAPIKey string
	AmadeusAPIKey      string
	AmadeusAPISecret   string
	AmadeusEnv         string

	// HTTPTimeout bounds every outbound HTTP request.
	HTTPTimeout time.Duration
	// ProviderTimeout bounds each provider call made by the orchestrator,
	// including geocoding and token exchange.
	ProviderTimeout time.Duration

	// Scheduled planning.
	PlanInterval time.Duration
	Routes       []WatchedRoute
	LeadDays     int // days from today to the trip start
	TripDays     int // trip length in days

	// Plan store.
	StoreDriver     string // memory or sqlite
	StorePath       string
	StoreMaxHistory int           // max number of plans per route (0 = unlimited)
	StoreMaxAge     time.Duration // max age of plans (0 = unlimited)

	Port     string
	LogLevel slog.Level
}

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.ORSAPIKey = os.Getenv("ORS_API_KEY")
	cfg.GoogleMapsAPIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.TicketmasterAPIKey = os.Getenv("TICKETMASTER_API_KEY")
	cfg.AmadeusAPIKey = os.Getenv("AMADEUS_API_KEY")
	cfg.AmadeusAPISecret = os.Getenv("AMADEUS_API_SECRET")
	cfg.AmadeusEnv = getenvDefault("AMADEUS_ENV", "test")

	cfg.WeatherProvider = strings.ToLower(getenvDefault("WEATHER_PROVIDER", "openweather"))
	switch cfg.WeatherProvider {
	case "openweather", "weatherapi", "openmeteo":
	default:
		return nil, fmt.Errorf("invalid WEATHER_PROVIDER %q", cfg.WeatherProvider)
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ProviderTimeout, err = getenvDuration("PROVIDER_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.PlanInterval, err = getenvDuration("PLAN_INTERVAL", "6h"); err != nil {
		return nil, err
	}

	cfg.LeadDays = getenvInt("PLAN_LEAD_DAYS", 14)
	cfg.TripDays = getenvInt("PLAN_TRIP_DAYS", 5)

	routes, err := loadRoutes()
	if err != nil {
		return nil, err
	}
	cfg.Routes = routes

	cfg.StoreDriver = strings.ToLower(getenvDefault("STORE_DRIVER", "memory"))
	switch cfg.StoreDriver {
	case "memory", "sqlite":
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q", cfg.StoreDriver)
	}
	cfg.StorePath = getenvDefault("STORE_PATH", "travel-genie.db")
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 20)
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "168h"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")
	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

func loadRoutes() ([]WatchedRoute, error) {
	sources := splitList(os.Getenv("PLAN_SOURCES"))
	destinations := splitList(os.Getenv("PLAN_DESTINATIONS"))
	if len(sources) != len(destinations) {
		return nil, fmt.Errorf("number of plan sources and destinations must be the same")
	}
	var routes []WatchedRoute
	for i := range sources {
		routes = append(routes, WatchedRoute{
			Source:      sources[i],
			Destination: destinations[i],
		})
	}

	return routes, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
