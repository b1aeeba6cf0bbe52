package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-genie/internal/common"
	"github.com/i474232898/travel-genie/internal/travel"
)

// OpenWeatherProvider implements travel.WeatherProvider for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: HTTPClientConfig{Client: client},
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// CurrentWeather returns current conditions for city. The free tier has no
// per-date lookup, so date is not sent.
func (p *OpenWeatherProvider) CurrentWeather(ctx context.Context, city string, _ time.Time) (travel.WeatherReading, error) {
	if common.MissingKey(p.apiKey, "your_openweather_api_key_here") {
		return travel.WeatherReading{}, travel.NewConfigurationError(p.name, "OpenWeather", "OPENWEATHER_API_KEY")
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("q", city)

		return getRequest(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
	}

	var payload struct {
		Dt   int64 `json:"dt"`
		Main *struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	}
	if err := getJSON(ctx, p.name, p.httpCfg, p.circuit, buildRequest, &payload); err != nil {
		return travel.WeatherReading{}, err
	}
	if payload.Main == nil {
		return travel.WeatherReading{}, &travel.ProviderError{Provider: p.name, Err: fmt.Errorf("%w: no main block", errMalformed)}
	}

	ts := time.Unix(payload.Dt, 0).UTC()
	if payload.Dt == 0 {
		ts = time.Now().UTC()
	}

	cond := travel.ConditionUnknown
	if len(payload.Weather) > 0 {
		cond = mapOpenWeatherCondition(payload.Weather[0].Main)
	}

	return travel.WeatherReading{
		ProviderName: p.name,
		Timestamp:    ts,
		TemperatureC: payload.Main.Temp,
		HumidityPct:  payload.Main.Humidity,
		WindSpeedMS:  payload.Wind.Speed,
		Condition:    cond,
	}, nil
}

func mapOpenWeatherCondition(main string) travel.Condition {
	switch main {
	case "Clear":
		return travel.ConditionClear
	case "Clouds":
		return travel.ConditionCloudy
	case "Rain", "Drizzle":
		return travel.ConditionRain
	case "Snow":
		return travel.ConditionSnow
	case "Thunderstorm":
		return travel.ConditionStorm
	case "Mist", "Fog", "Haze", "Smoke":
		return travel.ConditionMist
	default:
		return travel.ConditionUnknown
	}
}
