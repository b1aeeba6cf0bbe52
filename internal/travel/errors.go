package travel

import (
	"errors"
	"fmt"
)

// Fixed messages surfaced by the domain operations.
const (
	MsgWeatherFailed   = "Failed to fetch weather data."
	MsgNoAttractions   = "No attractions data returned"
	MsgNoRestaurants   = "No restaurant data returned"
	placeholderMessage = "%s API key is missing or invalid. Set %s environment variable."
)

var (
	// ErrWeatherFailed is returned when either side of the weather pair fails.
	ErrWeatherFailed = errors.New(MsgWeatherFailed)
	// ErrNoAttractions is returned when the places provider yields no attractions.
	ErrNoAttractions = errors.New(MsgNoAttractions)
	// ErrNoRestaurants is returned when the places provider yields no restaurants.
	ErrNoRestaurants = errors.New(MsgNoRestaurants)
)

// ConfigurationError reports a provider whose credentials are missing or a
// known placeholder. It is raised before any network call.
type ConfigurationError struct {
	Provider string
	Message  string
}

// NewConfigurationError builds the standard message for a missing key.
func NewConfigurationError(provider, service, envVar string) *ConfigurationError {
	return &ConfigurationError{
		Provider: provider,
		Message:  fmt.Sprintf(placeholderMessage, service, envVar),
	}
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ProviderError wraps a failed call to an external provider: transport
// failure, non-2xx status or a body that could not be decoded.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
