package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-genie/internal/common"
	"github.com/i474232898/travel-genie/internal/travel"
)

const (
	amadeusTestURL       = "https://test.api.amadeus.com"
	amadeusProductionURL = "https://api.amadeus.com"
	amadeusMaxOffers     = 5
	// Tokens are refreshed this long before Amadeus expires them.
	tokenExpiryMargin = 5 * time.Minute
)

// AmadeusProvider implements travel.FlightProvider with the Amadeus Flight
// Offers Search API.
type AmadeusProvider struct {
	name      string
	apiKey    string
	apiSecret string
	baseURL   string
	currency  string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
	logger    *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewAmadeusProvider creates the flight adapter. env selects the "test"
// (default) or "production" API host.
func NewAmadeusProvider(client *http.Client, apiKey, apiSecret, env string, logger *slog.Logger) *AmadeusProvider {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := amadeusTestURL
	if env == "production" {
		baseURL = amadeusProductionURL
	}
	return &AmadeusProvider{
		name:      "amadeus",
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   baseURL,
		currency:  "INR",
		httpCfg:   HTTPClientConfig{Client: client},
		circuit:   newBreaker("amadeus"),
		logger:    logger.With("provider", "amadeus"),
	}
}

// Configured reports whether real API credentials are set.
func (p *AmadeusProvider) Configured() bool {
	return !common.MissingKey(p.apiKey, "your_amadeus_api_key_here") &&
		!common.MissingKey(p.apiSecret, "your_amadeus_api_secret_here")
}

// token returns a cached access token or obtains a new one.
func (p *AmadeusProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		form := url.Values{}
		form.Set("grant_type", "client_credentials")
		form.Set("client_id", p.apiKey)
		form.Set("client_secret", p.apiSecret)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := getJSON(ctx, p.name, p.httpCfg, p.circuit, buildRequest, &tok); err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", &travel.ProviderError{Provider: p.name, Err: fmt.Errorf("%w: empty access token", errMalformed)}
	}

	p.accessToken = tok.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryMargin)
	p.logger.Info("access token obtained", "expires_in", tok.ExpiresIn)
	return p.accessToken, nil
}

type amadeusOffer struct {
	Price struct {
		GrandTotal string `json:"grandTotal"`
		Currency   string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string `json:"duration"`
		Segments []struct {
			Departure struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"departure"`
			Arrival struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"arrival"`
			CarrierCode string `json:"carrierCode"`
			Duration    string `json:"duration"`
		} `json:"segments"`
	} `json:"itineraries"`
}

// SearchFlights returns the segments of up to five offers, numbered by offer.
func (p *AmadeusProvider) SearchFlights(ctx context.Context, q travel.FlightQuery) ([]travel.FlightOption, error) {
	if !p.Configured() {
		return nil, travel.NewConfigurationError(p.name, "Amadeus", "AMADEUS_API_KEY")
	}

	token, err := p.token(ctx)
	if err != nil {
		return nil, err
	}

	adults := q.Adults
	if adults <= 0 {
		adults = 1
	}
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("originLocationCode", CityToIATA(q.Origin))
		values.Set("destinationLocationCode", CityToIATA(q.Destination))
		values.Set("departureDate", q.DepartureDate.Format(travel.DateLayout))
		if !q.ReturnDate.IsZero() {
			values.Set("returnDate", q.ReturnDate.Format(travel.DateLayout))
		}
		values.Set("adults", strconv.Itoa(adults))
		values.Set("max", strconv.Itoa(amadeusMaxOffers))
		values.Set("currencyCode", p.currency)

		req, err := getRequest(ctx, fmt.Sprintf("%s/v2/shopping/flight-offers?%s", p.baseURL, values.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return req, nil
	}

	var payload struct {
		Data []amadeusOffer `json:"data"`
	}
	if err := getJSON(ctx, p.name, p.httpCfg, p.circuit, buildRequest, &payload); err != nil {
		return nil, err
	}

	flights := flattenOffers(payload.Data)
	p.logger.Info("flight search successful", "offers", len(payload.Data), "segments", len(flights))
	return flights, nil
}

func flattenOffers(offers []amadeusOffer) []travel.FlightOption {
	var out []travel.FlightOption
	for i, offer := range offers {
		price := strings.TrimSpace(offer.Price.GrandTotal + " " + offer.Price.Currency)
		for _, it := range offer.Itineraries {
			for _, seg := range it.Segments {
				out = append(out, travel.FlightOption{
					Option:    i + 1,
					Price:     price,
					From:      seg.Departure.IataCode,
					To:        seg.Arrival.IataCode,
					Departure: seg.Departure.At,
					Arrival:   seg.Arrival.At,
					Airline:   seg.CarrierCode,
					Duration:  seg.Duration,
				})
			}
		}
	}
	return out
}

var iataCodes = map[string]string{
	// India
	"delhi":     "DEL",
	"new delhi": "DEL",
	"mumbai":    "BOM",
	"bombay":    "BOM",
	"bangalore": "BLR",
	"bengaluru": "BLR",
	"hyderabad": "HYD",
	"chennai":   "MAA",
	"kolkata":   "CCU",
	"goa":       "GOI",
	"pune":      "PNQ",
	"jaipur":    "JAI",
	"ahmedabad": "AMD",
	"kochi":     "COK",
	"lucknow":   "LKO",

	// Europe
	"paris":     "PAR",
	"london":    "LON",
	"amsterdam": "AMS",
	"barcelona": "BCN",
	"rome":      "ROM",
	"berlin":    "BER",
	"madrid":    "MAD",
	"lisbon":    "LIS",

	// Asia
	"tokyo":     "TYO",
	"singapore": "SIN",
	"bangkok":   "BKK",
	"hong kong": "HKG",
	"seoul":     "SEL",
	"dubai":     "DXB",

	// Americas
	"new york":      "NYC",
	"los angeles":   "LAX",
	"san francisco": "SFO",
	"chicago":       "CHI",
	"miami":         "MIA",
	"toronto":       "YTO",

	// Oceania
	"sydney":    "SYD",
	"melbourne": "MEL",
	"auckland":  "AKL",
}

// CityToIATA maps a city name to an IATA city or airport code. Three-letter
// codes pass through; unknown names fall back to their first three letters.
func CityToIATA(city string) string {
	c := strings.TrimSpace(city)
	if code, ok := iataCodes[strings.ToLower(c)]; ok {
		return code
	}

	letters := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, c)
	if len(letters) < 3 {
		return strings.ToUpper(letters)
	}
	return strings.ToUpper(letters[:3])
}
