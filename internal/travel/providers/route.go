package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-genie/internal/common"
	"github.com/i474232898/travel-genie/internal/travel"
)

const maxRouteSteps = 20

// OpenRouteServiceProvider implements travel.RouteProvider with the
// OpenRouteService directions API.
type OpenRouteServiceProvider struct {
	name     string
	apiKey   string
	profile  string
	baseURL  string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	geocoder Geocoder
}

func NewOpenRouteServiceProvider(client *http.Client, apiKey string, geo Geocoder) *OpenRouteServiceProvider {
	return &OpenRouteServiceProvider{
		name:     "openrouteservice",
		apiKey:   apiKey,
		profile:  "driving-car",
		baseURL:  "https://api.openrouteservice.org/v2/directions",
		httpCfg:  HTTPClientConfig{Client: client},
		circuit:  newBreaker("openrouteservice"),
		geocoder: geo,
	}
}

func (p *OpenRouteServiceProvider) Route(ctx context.Context, source, destination string) (travel.RouteInfo, error) {
	if common.MissingKey(p.apiKey, "your_openrouteservice_api_key_here") {
		return travel.RouteInfo{}, travel.NewConfigurationError(p.name, "OpenRouteService", "ORS_API_KEY")
	}
	if p.geocoder == nil {
		return travel.RouteInfo{}, fmt.Errorf("%s requires a geocoder", p.name)
	}

	from, err := p.geocoder.Geocode(ctx, source)
	if err != nil {
		return travel.RouteInfo{}, err
	}
	to, err := p.geocoder.Geocode(ctx, destination)
	if err != nil {
		return travel.RouteInfo{}, err
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("api_key", p.apiKey)
		// ORS expects lng,lat.
		values.Set("start", fmt.Sprintf("%f,%f", from.Lng, from.Lat))
		values.Set("end", fmt.Sprintf("%f,%f", to.Lng, to.Lat))
		return getRequest(ctx, fmt.Sprintf("%s/%s?%s", p.baseURL, p.profile, values.Encode()))
	}

	var payload struct {
		Features []struct {
			Properties struct {
				Summary struct {
					Distance float64 `json:"distance"`
					Duration float64 `json:"duration"`
				} `json:"summary"`
				Segments []struct {
					Steps []struct {
						Instruction string `json:"instruction"`
					} `json:"steps"`
				} `json:"segments"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := getJSON(ctx, p.name, p.httpCfg, p.circuit, buildRequest, &payload); err != nil {
		return travel.RouteInfo{}, err
	}
	if len(payload.Features) == 0 {
		return travel.RouteInfo{}, &travel.ProviderError{
			Provider: p.name,
			Err:      fmt.Errorf("no route found between %s and %s", source, destination),
		}
	}

	props := payload.Features[0].Properties
	var steps []string
	for _, seg := range props.Segments {
		for _, st := range seg.Steps {
			if len(steps) == maxRouteSteps {
				break
			}
			if st.Instruction != "" {
				steps = append(steps, st.Instruction)
			}
		}
	}

	return travel.RouteInfo{
		Source:          source,
		Destination:     destination,
		Profile:         p.profile,
		DistanceMeters:  props.Summary.Distance,
		DurationSeconds: props.Summary.Duration,
		Steps:           steps,
	}, nil
}
