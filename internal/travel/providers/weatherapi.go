package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-genie/internal/common"
	"github.com/i474232898/travel-genie/internal/travel"
)

// WeatherAPIProvider implements travel.WeatherProvider for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		httpCfg: HTTPClientConfig{Client: client},
		circuit: newBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// CurrentWeather asks the forecast endpoint for date; WeatherAPI answers
// with current conditions plus the day's forecast.
func (p *WeatherAPIProvider) CurrentWeather(ctx context.Context, city string, date time.Time) (travel.WeatherReading, error) {
	if common.MissingKey(p.apiKey, "your_weatherapi_api_key_here") {
		return travel.WeatherReading{}, travel.NewConfigurationError(p.name, "WeatherAPI", "WEATHERAPI_API_KEY")
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", city)
		values.Set("days", "1")
		if !date.IsZero() {
			values.Set("dt", date.Format(travel.DateLayout))
		}
		return getRequest(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
	}

	var payload struct {
		Location struct {
			LocaltimeEpoch int64 `json:"localtime_epoch"`
		} `json:"location"`
		Current *struct {
			TempC     float64 `json:"temp_c"`
			Humidity  float64 `json:"humidity"`
			WindKph   float64 `json:"wind_kph"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := getJSON(ctx, p.name, p.httpCfg, p.circuit, buildRequest, &payload); err != nil {
		return travel.WeatherReading{}, err
	}
	if payload.Current == nil {
		return travel.WeatherReading{}, &travel.ProviderError{Provider: p.name, Err: fmt.Errorf("%w: no current block", errMalformed)}
	}

	ts := time.Unix(payload.Location.LocaltimeEpoch, 0).UTC()
	if payload.Location.LocaltimeEpoch == 0 {
		ts = time.Now().UTC()
	}

	return travel.WeatherReading{
		ProviderName: p.name,
		Timestamp:    ts,
		TemperatureC: payload.Current.TempC,
		HumidityPct:  payload.Current.Humidity,
		// kph to m/s
		WindSpeedMS: payload.Current.WindKph / 3.6,
		Condition:   mapWeatherAPICondition(payload.Current.Condition.Text),
	}, nil
}

func mapWeatherAPICondition(text string) travel.Condition {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return travel.ConditionUnknown
	case common.HasAny(t, "thunder", "storm"):
		return travel.ConditionStorm
	case common.HasAny(t, "rain", "shower", "drizzle"):
		return travel.ConditionRain
	case common.HasAny(t, "snow", "sleet", "blizzard"):
		return travel.ConditionSnow
	case common.HasAny(t, "mist", "fog", "haze"):
		return travel.ConditionMist
	case common.HasAny(t, "cloud", "overcast"):
		return travel.ConditionCloudy
	case common.HasAny(t, "sunny", "clear"):
		return travel.ConditionClear
	default:
		return travel.ConditionUnknown
	}
}
