package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/travel-genie/internal/travel"
)

type factory func(t *testing.T, maxHistory int, maxAge time.Duration) travel.PlanStore

func stores() map[string]factory {
	return map[string]factory{
		"memory": func(t *testing.T, maxHistory int, maxAge time.Duration) travel.PlanStore {
			return NewMemoryStore(maxHistory, maxAge)
		},
		"sqlite": func(t *testing.T, maxHistory int, maxAge time.Duration) travel.PlanStore {
			s, err := NewSQLite(filepath.Join(t.TempDir(), "plans.db"), maxHistory, maxAge)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func plan(id, source, destination string, createdAt time.Time) travel.Plan {
	results := travel.Results{
		Weather: travel.Fail[travel.WeatherReport](travel.ErrWeatherFailed),
		Route:   travel.Ok(travel.RouteSummary{Distance: "10.0 km"}),
		Explore: travel.Fail[[]travel.Place](travel.ErrNoAttractions),
		Food:    travel.Fail[[]travel.Place](travel.ErrNoRestaurants),
		Events:  travel.Ok([]travel.Event{}),
		Flights: travel.Ok(travel.MockFlights()),
	}
	return travel.Plan{
		TripID:    id,
		Trip:      travel.TripContext{ID: id, Source: source, Destination: destination},
		Results:   results,
		Summary:   travel.Merge(results),
		CreatedAt: createdAt,
	}
}

func TestStoreLatestAndRange(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t, 0, 0)
			now := time.Now().UTC()

			_, err := s.GetLatest("Delhi", "Goa")
			assert.True(t, errors.Is(err, ErrNotFound))

			require.NoError(t, s.SavePlan(plan("p1", "Delhi", "Goa", now.Add(-2*time.Hour))))
			require.NoError(t, s.SavePlan(plan("p2", "Delhi", "Goa", now.Add(-time.Hour))))
			require.NoError(t, s.SavePlan(plan("p3", "Delhi", "Goa", now)))
			require.NoError(t, s.SavePlan(plan("other", "Pune", "Goa", now)))

			latest, err := s.GetLatest("delhi", " GOA ")
			require.NoError(t, err)
			assert.Equal(t, "p3", latest.TripID)
			assert.Equal(t, "10.0 km", latest.Results.Route.Value.Distance)
			assert.Equal(t, travel.MsgWeatherFailed, latest.Results.Weather.Message())
			assert.Equal(t, []travel.Domain{travel.DomainRoute, travel.DomainFlights}, latest.Summary.Domains())

			plans, err := s.GetRange("Delhi", "Goa", now.Add(-90*time.Minute), now)
			require.NoError(t, err)
			require.Len(t, plans, 2)
			assert.Equal(t, "p2", plans[0].TripID)
			assert.Equal(t, "p3", plans[1].TripID)

			_, err = s.GetRange("Delhi", "Goa", now.Add(time.Hour), now.Add(2*time.Hour))
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestStoreMaxHistory(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t, 2, 0)
			now := time.Now().UTC()

			for i, id := range []string{"p1", "p2", "p3"} {
				require.NoError(t, s.SavePlan(plan(id, "Delhi", "Goa", now.Add(time.Duration(i)*time.Minute))))
			}

			plans, err := s.GetRange("Delhi", "Goa", now.Add(-time.Hour), now.Add(time.Hour))
			require.NoError(t, err)
			require.Len(t, plans, 2)
			assert.Equal(t, "p2", plans[0].TripID)
			assert.Equal(t, "p3", plans[1].TripID)
		})
	}
}

func TestStoreMaxAge(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t, 0, time.Hour)
			now := time.Now().UTC()

			require.NoError(t, s.SavePlan(plan("old", "Delhi", "Goa", now.Add(-3*time.Hour))))
			// The newest plan survives even when it is stale.
			latest, err := s.GetLatest("Delhi", "Goa")
			require.NoError(t, err)
			assert.Equal(t, "old", latest.TripID)

			require.NoError(t, s.SavePlan(plan("fresh", "Delhi", "Goa", now)))
			plans, err := s.GetRange("Delhi", "Goa", now.Add(-24*time.Hour), now.Add(time.Hour))
			require.NoError(t, err)
			require.Len(t, plans, 1)
			assert.Equal(t, "fresh", plans[0].TripID)
		})
	}
}
