package travel

import (
	"context"
	"time"
)

// WeatherProvider abstracts a weather data source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
type WeatherProvider interface {
	Name() string
	CurrentWeather(ctx context.Context, city string, date time.Time) (WeatherReading, error)
}

// RouteProvider computes a route between two cities.
type RouteProvider interface {
	Route(ctx context.Context, source, destination string) (RouteInfo, error)
}

// PlacesProvider searches points of interest in a city.
// A nil *PlaceResults with a nil error means the provider returned no container.
type PlacesProvider interface {
	Attractions(ctx context.Context, city string) (*PlaceResults, error)
	Restaurants(ctx context.Context, city string) (*PlaceResults, error)
}

// EventProvider lists events in a city between two dates.
type EventProvider interface {
	Events(ctx context.Context, city string, start, end time.Time) ([]Event, error)
}

// FlightProvider searches live flight offers. Configured reports whether
// credentials are present, so callers can skip the provider up front.
type FlightProvider interface {
	Configured() bool
	SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOption, error)
}

// RouteAdvisor turns raw route data into the summary handed to callers.
type RouteAdvisor func(RouteInfo) RouteSummary

// Providers is the set of adapters an Orchestrator talks to. Any field may
// be nil; the matching domain then fails (or falls back, for flights).
type Providers struct {
	Weather WeatherProvider
	Route   RouteProvider
	Places  PlacesProvider
	Events  EventProvider
	Flights FlightProvider
}

// MetricsRecorder receives per-domain outcomes.
type MetricsRecorder interface {
	ObserveDomain(domain Domain, ok bool, elapsed time.Duration)
	IncFlightFallback(reason string)
}

// PlanStore is the contract the in-memory store (and the SQLite store) must satisfy.
type PlanStore interface {
	SavePlan(plan Plan) error
	GetLatest(source, destination string) (Plan, error)
	GetRange(source, destination string, from, to time.Time) ([]Plan, error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveDomain(Domain, bool, time.Duration) {}
func (noopRecorder) IncFlightFallback(string)                  {}
