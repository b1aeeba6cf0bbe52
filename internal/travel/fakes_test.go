package travel

import (
	"context"
	"errors"
	"sync"
	"time"
)

type fakeWeather struct {
	readings map[string]WeatherReading
	errs     map[string]error
}

func (f *fakeWeather) Name() string { return "fake" }

func (f *fakeWeather) CurrentWeather(_ context.Context, city string, _ time.Time) (WeatherReading, error) {
	if err, ok := f.errs[city]; ok {
		return WeatherReading{}, err
	}
	r, ok := f.readings[city]
	if !ok {
		return WeatherReading{}, errors.New("city not found")
	}
	return r, nil
}

type fakeRoute struct {
	info RouteInfo
	err  error
}

func (f *fakeRoute) Route(_ context.Context, source, destination string) (RouteInfo, error) {
	if f.err != nil {
		return RouteInfo{}, f.err
	}
	info := f.info
	info.Source, info.Destination = source, destination
	return info, nil
}

type fakePlaces struct {
	attractions *PlaceResults
	restaurants *PlaceResults
	err         error
}

func (f *fakePlaces) Attractions(context.Context, string) (*PlaceResults, error) {
	return f.attractions, f.err
}

func (f *fakePlaces) Restaurants(context.Context, string) (*PlaceResults, error) {
	return f.restaurants, f.err
}

type fakeEvents struct {
	events []Event
	err    error
}

func (f *fakeEvents) Events(context.Context, string, time.Time, time.Time) ([]Event, error) {
	return f.events, f.err
}

type fakeFlights struct {
	configured bool
	flights    []FlightOption
	err        error
	panicMsg   string

	mu      sync.Mutex
	queries []FlightQuery
}

func (f *fakeFlights) Configured() bool { return f.configured }

func (f *fakeFlights) SearchFlights(_ context.Context, q FlightQuery) ([]FlightOption, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.flights, f.err
}

type fakeRecorder struct {
	mu        sync.Mutex
	observed  map[Domain]bool
	fallbacks []string
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{observed: make(map[Domain]bool)}
}

func (r *fakeRecorder) ObserveDomain(d Domain, ok bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observed[d] = ok
}

func (r *fakeRecorder) IncFlightFallback(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks = append(r.fallbacks, reason)
}

type memStore struct {
	mu    sync.Mutex
	plans []Plan
	err   error
}

func (m *memStore) SavePlan(p Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.plans = append(m.plans, p)
	return nil
}

func (m *memStore) GetLatest(source, destination string) (Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.plans) - 1; i >= 0; i-- {
		if m.plans[i].Trip.RouteKey() == RouteKey(source, destination) {
			return m.plans[i], nil
		}
	}
	return Plan{}, errors.New("not found")
}

func (m *memStore) GetRange(source, destination string, from, to time.Time) ([]Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Plan
	for _, p := range m.plans {
		if p.Trip.RouteKey() == RouteKey(source, destination) && !p.CreatedAt.Before(from) && !p.CreatedAt.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func makePlaces(n int) *PlaceResults {
	res := &PlaceResults{Location: "Goa"}
	for i := 0; i < n; i++ {
		res.Places = append(res.Places, Place{
			Name:    "Place " + string(rune('A'+i)),
			Address: "Street " + string(rune('A'+i)),
			Rating:  4.5,
		})
	}
	return res
}

func testTrip() TripContext {
	trip, err := NewTripContext("Delhi", "Goa",
		time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		panic(err)
	}
	return trip
}

func healthyProviders() Providers {
	return Providers{
		Weather: &fakeWeather{readings: map[string]WeatherReading{
			"Delhi": {TemperatureC: 30, HumidityPct: 40, WindSpeedMS: 3.5, Condition: ConditionClear},
			"Goa":   {TemperatureC: 28.4, HumidityPct: 80, WindSpeedMS: 5, Condition: ConditionRain},
		}},
		Route: &fakeRoute{info: RouteInfo{DistanceMeters: 1_900_000, DurationSeconds: 30 * 3600}},
		Places: &fakePlaces{
			attractions: makePlaces(3),
			restaurants: makePlaces(2),
		},
		Events: &fakeEvents{events: []Event{{Name: "Sunburn", Venue: "Vagator", Category: "Music"}}},
	}
}
