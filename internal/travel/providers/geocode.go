package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/travel-genie/internal/common"
	"github.com/i474232898/travel-genie/internal/travel"
)

// Geocoder resolves a city name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (travel.LatLng, error)
}

// geocoder keeps its API key in a package variable.
var geocoderMu sync.Mutex

// GoogleGeocoder resolves cities through the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey string
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey}
}

// Geocode looks up city. The underlying client does not take a context, so
// ctx is only checked before the call.
func (g *GoogleGeocoder) Geocode(ctx context.Context, city string) (travel.LatLng, error) {
	if common.MissingKey(g.apiKey, "your_google_maps_api_key_here") {
		return travel.LatLng{}, travel.NewConfigurationError("google-geocoding", "Google Maps", "GOOGLE_MAPS_API_KEY")
	}
	if err := ctx.Err(); err != nil {
		return travel.LatLng{}, err
	}

	geocoderMu.Lock()
	defer geocoderMu.Unlock()

	geocoder.ApiKey = g.apiKey
	loc, err := geocoder.Geocoding(geocoder.Address{City: strings.TrimSpace(city)})
	if err != nil {
		return travel.LatLng{}, &travel.ProviderError{
			Provider: "google-geocoding",
			Err:      fmt.Errorf("geocoding %q: %w", city, err),
		}
	}
	return travel.LatLng{Lat: loc.Latitude, Lng: loc.Longitude}, nil
}
