package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/travel-genie/internal/travel"
)

type stubGeocoder struct {
	coords map[string]travel.LatLng
	err    error
}

func (g stubGeocoder) Geocode(_ context.Context, city string) (travel.LatLng, error) {
	if g.err != nil {
		return travel.LatLng{}, g.err
	}
	return g.coords[city], nil
}

func TestWeatherAPICurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "2025-04-15", r.URL.Query().Get("dt"))
		_, _ = w.Write([]byte(`{"location":{"localtime_epoch":1744700000},"current":{"temp_c":12,"humidity":55,"wind_kph":36,"condition":{"text":"Patchy light drizzle"}}}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "secret")
	p.baseURL = srv.URL

	r, err := p.CurrentWeather(context.Background(), "Paris", time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 12.0, r.TemperatureC)
	assert.InDelta(t, 10.0, r.WindSpeedMS, 1e-9)
	assert.Equal(t, travel.ConditionRain, r.Condition)
}

func TestMapWeatherAPICondition(t *testing.T) {
	assert.Equal(t, travel.ConditionStorm, mapWeatherAPICondition("Thundery outbreaks possible"))
	assert.Equal(t, travel.ConditionSnow, mapWeatherAPICondition("Light sleet"))
	assert.Equal(t, travel.ConditionCloudy, mapWeatherAPICondition("Overcast"))
	assert.Equal(t, travel.ConditionClear, mapWeatherAPICondition("Sunny"))
	assert.Equal(t, travel.ConditionUnknown, mapWeatherAPICondition(""))
}

func TestOpenMeteoCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "48.856600", r.URL.Query().Get("latitude"))
		assert.Equal(t, "ms", r.URL.Query().Get("wind_speed_unit"))
		_, _ = w.Write([]byte(`{"current":{"time":"2025-04-15T12:00","temperature_2m":18.2,"relative_humidity_2m":60,"wind_speed_10m":3,"weather_code":45}}`))
	}))
	defer srv.Close()

	geo := stubGeocoder{coords: map[string]travel.LatLng{"Paris": {Lat: 48.8566, Lng: 2.3522}}}
	p := NewOpenMeteoProvider(srv.Client(), geo)
	p.baseURL = srv.URL

	r, err := p.CurrentWeather(context.Background(), "Paris", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 18.2, r.TemperatureC)
	assert.Equal(t, travel.ConditionMist, r.Condition)
	assert.Equal(t, time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC), r.Timestamp)
}

func TestOpenMeteoGeocodeFailure(t *testing.T) {
	cfgErr := travel.NewConfigurationError("google-geocoding", "Google Maps", "GOOGLE_MAPS_API_KEY")
	p := NewOpenMeteoProvider(http.DefaultClient, stubGeocoder{err: cfgErr})

	_, err := p.CurrentWeather(context.Background(), "Paris", time.Time{})
	assert.Same(t, cfgErr, err)
}

func TestMapOpenMeteoCondition(t *testing.T) {
	assert.Equal(t, travel.ConditionClear, mapOpenMeteoCondition(0))
	assert.Equal(t, travel.ConditionCloudy, mapOpenMeteoCondition(2))
	assert.Equal(t, travel.ConditionRain, mapOpenMeteoCondition(81))
	assert.Equal(t, travel.ConditionSnow, mapOpenMeteoCondition(73))
	assert.Equal(t, travel.ConditionStorm, mapOpenMeteoCondition(99))
	assert.Equal(t, travel.ConditionUnknown, mapOpenMeteoCondition(30))
}

func TestGoogleGeocoderMissingKey(t *testing.T) {
	_, err := NewGoogleGeocoder("").Geocode(context.Background(), "Paris")
	var cfgErr *travel.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
