package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/travel-genie/internal/travel"
)

func TestOpenWeatherCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Goa", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"dt":1744700000,"main":{"temp":29.5,"humidity":70},"wind":{"speed":4.1},"weather":[{"main":"Rain"}]}`))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "secret")
	p.baseURL = srv.URL

	r, err := p.CurrentWeather(context.Background(), "Goa", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "openweathermap", r.ProviderName)
	assert.Equal(t, 29.5, r.TemperatureC)
	assert.Equal(t, 70.0, r.HumidityPct)
	assert.Equal(t, 4.1, r.WindSpeedMS)
	assert.Equal(t, travel.ConditionRain, r.Condition)
	assert.Equal(t, time.Unix(1744700000, 0).UTC(), r.Timestamp)
}

func TestOpenWeatherMissingKey(t *testing.T) {
	for _, key := range []string{"", "your_openweather_api_key_here"} {
		p := NewOpenWeatherProvider(http.DefaultClient, key)
		_, err := p.CurrentWeather(context.Background(), "Goa", time.Time{})

		var cfgErr *travel.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "OpenWeather API key is missing or invalid. Set OPENWEATHER_API_KEY environment variable.", cfgErr.Error())
	}
}

func TestOpenWeatherStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusTooManyRequests, want: errRateLimited},
		{status: http.StatusBadGateway, want: errServerError},
		{status: http.StatusNotFound, want: errUnexpected},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			}))
			defer srv.Close()

			p := NewOpenWeatherProvider(srv.Client(), "secret")
			p.baseURL = srv.URL

			_, err := p.CurrentWeather(context.Background(), "Goa", time.Time{})
			var perr *travel.ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.status, perr.StatusCode)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestOpenWeatherMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"weather":[]}`))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "secret")
	p.baseURL = srv.URL

	_, err := p.CurrentWeather(context.Background(), "Goa", time.Time{})
	assert.ErrorIs(t, err, errMalformed)
}

func TestMapOpenWeatherCondition(t *testing.T) {
	assert.Equal(t, travel.ConditionClear, mapOpenWeatherCondition("Clear"))
	assert.Equal(t, travel.ConditionCloudy, mapOpenWeatherCondition("Clouds"))
	assert.Equal(t, travel.ConditionStorm, mapOpenWeatherCondition("Thunderstorm"))
	assert.Equal(t, travel.ConditionMist, mapOpenWeatherCondition("Haze"))
	assert.Equal(t, travel.ConditionUnknown, mapOpenWeatherCondition("Tornado"))
}
