package travel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// MaxPlaces caps the attractions and restaurants kept per search.
const MaxPlaces = 10

// ErrProviderMissing is returned by a domain whose adapter was not wired.
var ErrProviderMissing = errors.New("provider not configured")

// Orchestrator runs the per-domain lookups for one trip. Each Run* method is
// independent of the others and never returns a Go error: failures are
// carried inside the Result.
type Orchestrator struct {
	trip TripContext

	weather WeatherProvider
	route   RouteProvider
	places  PlacesProvider
	events  EventProvider
	// nil when the flight adapter is absent or unconfigured.
	flights FlightProvider

	advisor     RouteAdvisor
	callTimeout time.Duration
	logger      *slog.Logger
	metrics     MetricsRecorder
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. Every entry carries the trip_id field.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the recorder for domain outcomes.
func WithMetrics(m MetricsRecorder) Option {
	return func(o *Orchestrator) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithRouteAdvisor replaces the default route formatter.
func WithRouteAdvisor(a RouteAdvisor) Option {
	return func(o *Orchestrator) {
		if a != nil {
			o.advisor = a
		}
	}
}

// WithCallTimeout bounds each provider call. Zero disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.callTimeout = d
	}
}

// NewOrchestrator creates an Orchestrator for trip. The flight provider is
// checked once here; if it lacks credentials every flight search falls back
// to the built-in dataset.
func NewOrchestrator(trip TripContext, p Providers, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		trip:    trip,
		weather: p.Weather,
		route:   p.Route,
		places:  p.Places,
		events:  p.Events,
		advisor: FormatRouteAdvice,
		logger:  slog.Default(),
		metrics: noopRecorder{},
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("trip_id", trip.ID)

	if p.Flights != nil && p.Flights.Configured() {
		o.flights = p.Flights
		o.logger.Info("flight search initialized")
	} else {
		o.logger.Warn("flight provider not configured; flight search will use built-in data")
	}
	return o
}

// Trip returns the trip this orchestrator plans.
func (o *Orchestrator) Trip() TripContext {
	return o.trip
}

// RunWeatherPreparedness fetches weather for both ends of the trip at the
// start date. Either fetch failing fails the whole operation.
func (o *Orchestrator) RunWeatherPreparedness(ctx context.Context) Result[WeatherReport] {
	start := time.Now()
	log := o.domainLogger(DomainWeather)
	log.Info("getting weather for source and destination")

	if o.weather == nil {
		log.Error("weather fetch failed", "error", ErrProviderMissing)
		return finish(o, DomainWeather, start, Fail[WeatherReport](ErrWeatherFailed))
	}

	var src, dst WeatherReading
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		src, err = o.fetchWeather(gctx, o.trip.Source)
		return err
	})
	g.Go(func() (err error) {
		dst, err = o.fetchWeather(gctx, o.trip.Destination)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("weather fetch failed", "error", err)
		return finish(o, DomainWeather, start, Fail[WeatherReport](ErrWeatherFailed))
	}

	report := WeatherReport{
		Source:      o.cityWeather(o.trip.Source, src),
		Destination: o.cityWeather(o.trip.Destination, dst),
	}
	log.Debug("weather fetched", "source_weather", report.Source, "destination_weather", report.Destination)
	return finish(o, DomainWeather, start, Ok(report))
}

func (o *Orchestrator) fetchWeather(ctx context.Context, city string) (WeatherReading, error) {
	ctx, cancel := o.callContext(ctx)
	defer cancel()
	r, err := o.weather.CurrentWeather(ctx, city, o.trip.StartDate)
	if err != nil {
		return WeatherReading{}, fmt.Errorf("weather for %s: %w", city, err)
	}
	return r, nil
}

func (o *Orchestrator) cityWeather(city string, r WeatherReading) CityWeather {
	return CityWeather{
		City:        city,
		Date:        o.trip.StartDate.Format(DateLayout),
		Temperature: formatNumber(r.TemperatureC) + "°C",
		Condition:   r.Condition,
		WindSpeed:   formatNumber(r.WindSpeedMS) + " m/s",
		Humidity:    formatNumber(r.HumidityPct) + "%",
	}
}

// RunRouteSummary fetches the route between source and destination and
// passes it through the route advisor. Provider errors are returned as is.
func (o *Orchestrator) RunRouteSummary(ctx context.Context) Result[RouteSummary] {
	start := time.Now()
	log := o.domainLogger(DomainRoute)
	log.Info("getting route details")

	if o.route == nil {
		return finish(o, DomainRoute, start, Fail[RouteSummary](ErrProviderMissing))
	}

	cctx, cancel := o.callContext(ctx)
	defer cancel()
	info, err := o.route.Route(cctx, o.trip.Source, o.trip.Destination)
	if err != nil {
		log.Error("error getting route", "error", err)
		return finish(o, DomainRoute, start, Fail[RouteSummary](err))
	}
	return finish(o, DomainRoute, start, Ok(o.advisor(info)))
}

// RunExplorationGuide fetches up to MaxPlaces attractions at the destination.
func (o *Orchestrator) RunExplorationGuide(ctx context.Context) Result[[]Place] {
	start := time.Now()
	log := o.domainLogger(DomainExplore)
	log.Info("exploring top attractions", "destination", o.trip.Destination)

	res := o.searchPlaces(ctx, PlacesProvider.Attractions, ErrNoAttractions)
	if !res.IsOK() {
		log.Error("exploration guide failed", "error", res.Err)
	}
	return finish(o, DomainExplore, start, res)
}

// RunFoodExploration fetches up to MaxPlaces restaurants at the destination.
func (o *Orchestrator) RunFoodExploration(ctx context.Context) Result[[]Place] {
	start := time.Now()
	log := o.domainLogger(DomainFood)
	log.Info("exploring top restaurants", "destination", o.trip.Destination)

	res := o.searchPlaces(ctx, PlacesProvider.Restaurants, ErrNoRestaurants)
	if !res.IsOK() {
		log.Error("food exploration failed", "error", res.Err)
	}
	return finish(o, DomainFood, start, res)
}

// searchPlaces applies the shared places contract: provider error first,
// then a missing container or an empty list, reported as errEmpty.
func (o *Orchestrator) searchPlaces(
	ctx context.Context,
	search func(PlacesProvider, context.Context, string) (*PlaceResults, error),
	errEmpty error,
) Result[[]Place] {
	if o.places == nil {
		return Fail[[]Place](ErrProviderMissing)
	}

	cctx, cancel := o.callContext(ctx)
	defer cancel()
	res, err := search(o.places, cctx, o.trip.Destination)
	switch {
	case err != nil:
		return Fail[[]Place](err)
	case res == nil, len(res.Places) == 0:
		return Fail[[]Place](errEmpty)
	}

	n := min(len(res.Places), MaxPlaces)
	places := make([]Place, n)
	copy(places, res.Places[:n])
	return Ok(places)
}

// RunEventExplorer lists events at the destination within the trip dates.
// The provider's error value is returned unchanged.
func (o *Orchestrator) RunEventExplorer(ctx context.Context) Result[[]Event] {
	start := time.Now()
	log := o.domainLogger(DomainEvents)
	log.Info("fetching upcoming events", "destination", o.trip.Destination)

	if o.events == nil {
		return finish(o, DomainEvents, start, Fail[[]Event](ErrProviderMissing))
	}

	cctx, cancel := o.callContext(ctx)
	defer cancel()
	events, err := o.events.Events(cctx, o.trip.Destination, o.trip.StartDate, o.trip.EndDate)
	if err != nil {
		log.Error("event provider error", "error", err)
		return finish(o, DomainEvents, start, Fail[[]Event](err))
	}
	if events == nil {
		events = []Event{}
	}
	return finish(o, DomainEvents, start, Ok(events))
}

// RunFlightSearch never fails: when the live provider is unconfigured,
// errors or finds nothing, the built-in flight options are returned.
func (o *Orchestrator) RunFlightSearch(ctx context.Context) Result[[]FlightOption] {
	start := time.Now()
	log := o.domainLogger(DomainFlights)
	log.Info("searching for flights")

	if o.flights == nil {
		return finish(o, DomainFlights, start, o.fallbackFlights(log, FallbackUnconfigured, nil))
	}

	flights, err := o.searchFlights(ctx)
	if err != nil {
		return finish(o, DomainFlights, start, o.fallbackFlights(log, FallbackError, err))
	}
	if len(flights) == 0 {
		return finish(o, DomainFlights, start, o.fallbackFlights(log, FallbackEmpty, nil))
	}

	log.Info("found flight options", "count", len(flights))
	return finish(o, DomainFlights, start, Ok(flights))
}

func (o *Orchestrator) searchFlights(ctx context.Context) (flights []FlightOption, err error) {
	// A panicking adapter is treated like a failed search.
	defer func() {
		if r := recover(); r != nil {
			flights, err = nil, fmt.Errorf("flight search panicked: %v", r)
		}
	}()

	cctx, cancel := o.callContext(ctx)
	defer cancel()
	return o.flights.SearchFlights(cctx, FlightQuery{
		Origin:        o.trip.Source,
		Destination:   o.trip.Destination,
		DepartureDate: o.trip.StartDate,
		ReturnDate:    o.trip.EndDate,
		Adults:        1,
	})
}

func (o *Orchestrator) fallbackFlights(log *slog.Logger, reason string, err error) Result[[]FlightOption] {
	if err != nil {
		log.Warn("flight search failed; using built-in flight data", "reason", reason, "error", err)
	} else {
		log.Warn("using built-in flight data", "reason", reason)
	}
	o.metrics.IncFlightFallback(reason)
	return Ok(MockFlights())
}

// RunAll runs every domain concurrently. The only state the domains share
// is the read-only trip.
func (o *Orchestrator) RunAll(ctx context.Context) Results {
	var (
		res Results
		g   errgroup.Group
	)
	g.Go(func() error { res.Weather = o.RunWeatherPreparedness(ctx); return nil })
	g.Go(func() error { res.Route = o.RunRouteSummary(ctx); return nil })
	g.Go(func() error { res.Explore = o.RunExplorationGuide(ctx); return nil })
	g.Go(func() error { res.Food = o.RunFoodExploration(ctx); return nil })
	g.Go(func() error { res.Events = o.RunEventExplorer(ctx); return nil })
	g.Go(func() error { res.Flights = o.RunFlightSearch(ctx); return nil })
	_ = g.Wait()
	return res
}

func (o *Orchestrator) domainLogger(d Domain) *slog.Logger {
	return o.logger.With("domain", string(d))
}

func (o *Orchestrator) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.callTimeout)
}

func finish[T any](o *Orchestrator, d Domain, start time.Time, r Result[T]) Result[T] {
	o.metrics.ObserveDomain(d, r.IsOK(), time.Since(start))
	return r
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
