package travel

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for trip dates on the wire.
const DateLayout = "2006-01-02"

// Domain names one travel-information category.
type Domain string

const (
	DomainWeather Domain = "weather"
	DomainRoute   Domain = "route"
	DomainExplore Domain = "explore"
	DomainFood    Domain = "food"
	DomainEvents  Domain = "events"
	DomainFlights Domain = "flights"
)

// Domains lists every domain in summary order.
var Domains = []Domain{DomainWeather, DomainRoute, DomainExplore, DomainFood, DomainEvents, DomainFlights}

// ParseDomain maps a (case-insensitive) name to a Domain.
func ParseDomain(s string) (Domain, bool) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Domains {
		if d == known {
			return d, true
		}
	}
	return "", false
}

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// TripContext holds the parameters of one planning session.
// It is created once by NewTripContext and never modified afterwards.
type TripContext struct {
	ID          string    `json:"id"`
	Source      string    `json:"source" validate:"required"`
	Destination string    `json:"destination" validate:"required"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
}

// RouteKey returns a canonical key for indexing plans of this route in stores.
func (t TripContext) RouteKey() string {
	return RouteKey(t.Source, t.Destination)
}

// RouteKey builds the store key for a source/destination pair.
func RouteKey(source, destination string) string {
	return strings.ToLower(strings.TrimSpace(source)) + ">" + strings.ToLower(strings.TrimSpace(destination))
}

// WeatherReading is a single provider's normalized reading for one city.
type WeatherReading struct {
	ProviderName string
	Timestamp    time.Time

	TemperatureC float64
	HumidityPct  float64
	WindSpeedMS  float64
	Condition    Condition
}

// CityWeather is the display form of a WeatherReading.
type CityWeather struct {
	City        string    `json:"city"`
	Date        string    `json:"date"`
	Temperature string    `json:"temperature"`
	Condition   Condition `json:"condition"`
	WindSpeed   string    `json:"wind_speed"`
	Humidity    string    `json:"humidity"`
}

// WeatherReport pairs the conditions at both ends of a trip.
type WeatherReport struct {
	Source      CityWeather `json:"source_weather"`
	Destination CityWeather `json:"destination_weather"`
}

// RouteInfo is the provider-level description of a route.
type RouteInfo struct {
	Source          string   `json:"source"`
	Destination     string   `json:"destination"`
	Profile         string   `json:"profile,omitempty"`
	DistanceMeters  float64  `json:"distance_m"`
	DurationSeconds float64  `json:"duration_s"`
	Steps           []string `json:"steps,omitempty"`
}

// RouteSummary is what the route advisor makes of a RouteInfo.
type RouteSummary struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Distance    string   `json:"distance"`
	Duration    string   `json:"duration"`
	Advice      []string `json:"advice"`
	Highlights  []string `json:"highlights,omitempty"`
}

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is an attraction or a restaurant.
type Place struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Rating       float64  `json:"rating"`
	TotalRatings int      `json:"total_ratings"`
	Types        []string `json:"types"`
	PhotoURL     string   `json:"photo_url,omitempty"`
	Location     LatLng   `json:"location"`
}

// PlaceResults is the result container returned by a places provider.
type PlaceResults struct {
	Location string  `json:"location"`
	Places   []Place `json:"places"`
}

// Event is a ticketed event at the destination.
type Event struct {
	Name     string `json:"name"`
	Venue    string `json:"venue"`
	Category string `json:"category"`
	Date     string `json:"date,omitempty"`
	URL      string `json:"url,omitempty"`
}

// FlightOption is one segment of a flight offer. Entries sharing Option
// belong to the same offer.
type FlightOption struct {
	Option    int    `json:"option"`
	Price     string `json:"price"`
	From      string `json:"from"`
	To        string `json:"to"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Airline   string `json:"airline"`
	Duration  string `json:"duration"`
}

// FlightQuery is the live flight search request.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
	Adults        int
}

// Results bundles the outcome of every domain operation for one trip.
type Results struct {
	Weather Result[WeatherReport]  `json:"weather"`
	Route   Result[RouteSummary]   `json:"route"`
	Explore Result[[]Place]        `json:"explore"`
	Food    Result[[]Place]        `json:"food"`
	Events  Result[[]Event]        `json:"events"`
	Flights Result[[]FlightOption] `json:"flights"`
}

// Plan is one stored planning run.
type Plan struct {
	TripID    string      `json:"trip_id"`
	Trip      TripContext `json:"trip"`
	Results   Results     `json:"results"`
	Summary   Summary     `json:"summary"`
	CreatedAt time.Time   `json:"created_at"` // always UTC
}
