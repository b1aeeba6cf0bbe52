package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-genie/internal/travel"
)

// OpenMeteoProvider implements travel.WeatherProvider for Open-Meteo.
// Open-Meteo needs no API key but works on coordinates, so cities are
// geocoded first.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	geocoder Geocoder
}

func NewOpenMeteoProvider(client *http.Client, geo Geocoder) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:     "openmeteo",
		baseURL:  "https://api.open-meteo.com/v1/forecast",
		httpCfg:  HTTPClientConfig{Client: client},
		circuit:  newBreaker("openmeteo"),
		geocoder: geo,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) CurrentWeather(ctx context.Context, city string, _ time.Time) (travel.WeatherReading, error) {
	if p.geocoder == nil {
		return travel.WeatherReading{}, fmt.Errorf("openmeteo requires a geocoder")
	}
	pos, err := p.geocoder.Geocode(ctx, city)
	if err != nil {
		return travel.WeatherReading{}, err
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", pos.Lat))
		values.Set("longitude", fmt.Sprintf("%f", pos.Lng))
		values.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code")
		values.Set("wind_speed_unit", "ms")
		values.Set("timezone", "UTC")
		return getRequest(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
	}

	var payload struct {
		Current *struct {
			Time        string  `json:"time"`
			Temperature float64 `json:"temperature_2m"`
			Humidity    float64 `json:"relative_humidity_2m"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := getJSON(ctx, p.name, p.httpCfg, p.circuit, buildRequest, &payload); err != nil {
		return travel.WeatherReading{}, err
	}
	if payload.Current == nil {
		return travel.WeatherReading{}, &travel.ProviderError{Provider: p.name, Err: fmt.Errorf("%w: no current block", errMalformed)}
	}

	ts, err := time.Parse("2006-01-02T15:04", payload.Current.Time)
	if err != nil {
		ts = time.Now().UTC()
	}

	return travel.WeatherReading{
		ProviderName: p.name,
		Timestamp:    ts.UTC(),
		TemperatureC: payload.Current.Temperature,
		HumidityPct:  payload.Current.Humidity,
		WindSpeedMS:  payload.Current.WindSpeed,
		Condition:    mapOpenMeteoCondition(payload.Current.WeatherCode),
	}, nil
}

func mapOpenMeteoCondition(code int) travel.Condition {
	// WMO weather codes, simplified.
	switch {
	case code == 0:
		return travel.ConditionClear
	case code >= 1 && code <= 3:
		return travel.ConditionCloudy
	case code == 45 || code == 48:
		return travel.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return travel.ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return travel.ConditionSnow
	case code >= 95:
		return travel.ConditionStorm
	default:
		return travel.ConditionUnknown
	}
}
