package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-genie/internal/common"
	"github.com/i474232898/travel-genie/internal/travel"
)

const photoURLTemplate = "https://maps.googleapis.com/maps/api/place/photo?maxwidth=400&photoreference=%s&key=%s"

// GooglePlacesProvider implements travel.PlacesProvider with the Google
// Places text search API.
type GooglePlacesProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

func NewGooglePlacesProvider(client *http.Client, apiKey string, logger *slog.Logger) *GooglePlacesProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &GooglePlacesProvider{
		name:    "google-places",
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/place/textsearch/json",
		httpCfg: HTTPClientConfig{Client: client},
		circuit: newBreaker("google-places"),
		logger:  logger.With("provider", "google-places"),
	}
}

// Attractions searches the top attractions in city.
func (p *GooglePlacesProvider) Attractions(ctx context.Context, city string) (*travel.PlaceResults, error) {
	return p.search(ctx, city, "top attractions in "+city, "")
}

// Restaurants searches the best restaurants in city.
func (p *GooglePlacesProvider) Restaurants(ctx context.Context, city string) (*travel.PlaceResults, error) {
	return p.search(ctx, city, "best restaurants in "+city, "restaurant")
}

type placeRaw struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Geometry         struct {
		Location travel.LatLng `json:"location"`
	} `json:"geometry"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
}

func (p *GooglePlacesProvider) search(ctx context.Context, city, query, placeType string) (*travel.PlaceResults, error) {
	if common.MissingKey(p.apiKey, "your_google_maps_api_key_here") {
		err := travel.NewConfigurationError(p.name, "Google Maps", "GOOGLE_MAPS_API_KEY")
		p.logger.Error(err.Error())
		return nil, err
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("query", query)
		values.Set("key", p.apiKey)
		if placeType != "" {
			values.Set("type", placeType)
		}
		return getRequest(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
	}

	p.logger.Info("requesting places", "query", query)
	var payload struct {
		Status       string     `json:"status"`
		ErrorMessage string     `json:"error_message"`
		Results      []placeRaw `json:"results"`
	}
	if err := getJSON(ctx, p.name, p.httpCfg, p.circuit, buildRequest, &payload); err != nil {
		return nil, err
	}
	// Places reports key and quota problems with a 200 and a status field.
	switch payload.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		msg := payload.Status
		if payload.ErrorMessage != "" {
			msg += ": " + payload.ErrorMessage
		}
		return nil, &travel.ProviderError{Provider: p.name, Err: fmt.Errorf("%s", msg)}
	}

	raw := payload.Results
	if len(raw) > travel.MaxPlaces {
		raw = raw[:travel.MaxPlaces]
	}
	places := make([]travel.Place, 0, len(raw))
	for _, r := range raw {
		places = append(places, p.toPlace(r))
	}

	p.logger.Info("retrieved places", "query", query, "count", len(places))
	return &travel.PlaceResults{Location: city, Places: places}, nil
}

func (p *GooglePlacesProvider) toPlace(r placeRaw) travel.Place {
	types := r.Types
	if types == nil {
		types = []string{}
	}
	var photo string
	if len(r.Photos) > 0 && r.Photos[0].PhotoReference != "" {
		photo = fmt.Sprintf(photoURLTemplate, r.Photos[0].PhotoReference, p.apiKey)
	}
	return travel.Place{
		Name:         r.Name,
		Address:      r.FormattedAddress,
		Rating:       r.Rating,
		TotalRatings: r.UserRatingsTotal,
		Types:        types,
		PhotoURL:     photo,
		Location:     r.Geometry.Location,
	}
}
