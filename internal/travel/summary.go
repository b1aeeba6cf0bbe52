package travel

import (
	"errors"
	"fmt"
	"strings"
)

// MaxFlightOptions caps the flight offers kept in a Summary.
const MaxFlightOptions = 5

var (
	errNoValidSegments = errors.New("no well-formed flight segment")
	errMalformedRecord = errors.New("malformed record")
)

// FlightSummary is one flight offer reduced to its price and segment lines.
type FlightSummary struct {
	Price    string   `json:"price"`
	Segments []string `json:"segments"`
}

// Summary is the compact per-domain view handed to downstream narration.
// A nil field means the domain failed, was empty or could not be reduced;
// such domains are also left out of the JSON form.
type Summary struct {
	Weather *WeatherReport  `json:"weather,omitempty"`
	Route   *RouteSummary   `json:"route,omitempty"`
	Explore []string        `json:"explore,omitempty"`
	Food    []string        `json:"food,omitempty"`
	Events  []string        `json:"events,omitempty"`
	Flights []FlightSummary `json:"flights,omitempty"`
}

// Has reports whether the summary holds domain d.
func (s Summary) Has(d Domain) bool {
	switch d {
	case DomainWeather:
		return s.Weather != nil
	case DomainRoute:
		return s.Route != nil
	case DomainExplore:
		return s.Explore != nil
	case DomainFood:
		return s.Food != nil
	case DomainEvents:
		return s.Events != nil
	case DomainFlights:
		return s.Flights != nil
	}
	return false
}

// Domains lists the domains present in the summary.
func (s Summary) Domains() []Domain {
	out := make([]Domain, 0, len(Domains))
	for _, d := range Domains {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Merge folds the domain results into a Summary. Each domain is reduced on
// its own; a failed, empty or unreducible domain is left out without
// affecting the others.
func Merge(r Results) Summary {
	var s Summary

	if v, ok := reduce(r.Weather, passThrough[WeatherReport]); ok {
		s.Weather = &v
	}
	if v, ok := reduce(r.Route, passThrough[RouteSummary]); ok {
		s.Route = &v
	}
	if v, ok := reduce(r.Explore, summarizePlaces); ok && len(v) > 0 {
		s.Explore = v
	}
	if v, ok := reduce(r.Food, summarizePlaces); ok && len(v) > 0 {
		s.Food = v
	}
	if v, ok := reduce(r.Events, summarizeEvents); ok && len(v) > 0 {
		s.Events = v
	}
	if v, ok := reduce(r.Flights, summarizeFlights); ok && len(v) > 0 {
		s.Flights = v
	}
	return s
}

func reduce[T, V any](r Result[T], f func(T) (V, error)) (V, bool) {
	var zero V
	if !r.IsOK() {
		return zero, false
	}
	v, err := f(r.Value)
	if err != nil {
		return zero, false
	}
	return v, true
}

func passThrough[T any](v T) (T, error) {
	return v, nil
}

func summarizePlaces(places []Place) ([]string, error) {
	out := make([]string, 0, len(places))
	for i, p := range places {
		if p.Name == "" || p.Address == "" {
			return nil, fmt.Errorf("place %d: %w", i, errMalformedRecord)
		}
		out = append(out, fmt.Sprintf("%s (%s): %s", p.Name, formatRating(p.Rating), p.Address))
	}
	return out, nil
}

func summarizeEvents(events []Event) ([]string, error) {
	out := make([]string, 0, len(events))
	for i, e := range events {
		if e.Name == "" || e.Venue == "" || e.Category == "" {
			return nil, fmt.Errorf("event %d: %w", i, errMalformedRecord)
		}
		out = append(out, fmt.Sprintf("%s (%s): %s", e.Name, e.Venue, e.Category))
	}
	return out, nil
}

// summarizeFlights groups segments by option in order of first appearance.
// The first well-formed segment of an option sets its price. Malformed
// segments are skipped one by one; if none is left the reduction fails.
func summarizeFlights(flights []FlightOption) ([]FlightSummary, error) {
	var (
		order []int
		byOpt = make(map[int]*FlightSummary)
	)
	for _, f := range flights {
		if !wellFormedSegment(f) {
			continue
		}
		fs, ok := byOpt[f.Option]
		if !ok {
			fs = &FlightSummary{Price: f.Price}
			byOpt[f.Option] = fs
			order = append(order, f.Option)
		}
		fs.Segments = append(fs.Segments, fmt.Sprintf("%s → %s | %s → %s | %s (%s)",
			f.From, f.To, f.Departure, f.Arrival, f.Airline, f.Duration))
	}
	if len(order) == 0 && len(flights) > 0 {
		return nil, errNoValidSegments
	}

	if len(order) > MaxFlightOptions {
		order = order[:MaxFlightOptions]
	}
	out := make([]FlightSummary, 0, len(order))
	for _, opt := range order {
		out = append(out, *byOpt[opt])
	}
	return out, nil
}

func wellFormedSegment(f FlightOption) bool {
	if f.Option <= 0 {
		return false
	}
	for _, v := range []string{f.Price, f.From, f.To, f.Departure, f.Arrival, f.Airline} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// formatRating renders ratings with at least one decimal ("4.0", "4.55").
func formatRating(v float64) string {
	s := formatNumber(v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
