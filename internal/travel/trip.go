package travel

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewTripContext validates the trip parameters and assigns a trip ID.
// Dates are truncated to UTC midnight.
func NewTripContext(source, destination string, start, end time.Time) (TripContext, error) {
	trip := TripContext{
		ID:          uuid.NewString(),
		Source:      strings.TrimSpace(source),
		Destination: strings.TrimSpace(destination),
		StartDate:   day(start),
		EndDate:     day(end),
	}
	if err := validate.Struct(trip); err != nil {
		return TripContext{}, fmt.Errorf("invalid trip: %w", err)
	}
	return trip, nil
}

// ParseTrip is NewTripContext for YYYY-MM-DD date strings.
func ParseTrip(source, destination, start, end string) (TripContext, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return TripContext{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return TripContext{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return NewTripContext(source, destination, s, e)
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
