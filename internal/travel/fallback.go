package travel

// Reasons for serving built-in flight data.
const (
	FallbackUnconfigured = "unconfigured"
	FallbackError        = "error"
	FallbackEmpty        = "empty"
)

// MockFlights returns the built-in domestic flight options served when the
// live flight search is unavailable. Each call returns a fresh slice.
func MockFlights() []FlightOption {
	return []FlightOption{
		{
			Option:    1,
			Price:     "₹12,999 INR",
			From:      "DEL",
			To:        "BOM",
			Departure: "2025-04-15T08:00:00",
			Arrival:   "2025-04-15T10:30:00",
			Airline:   "AI",
			Duration:  "PT2H30M",
		},
		{
			Option:    2,
			Price:     "₹15,499 INR",
			From:      "DEL",
			To:        "HYD",
			Departure: "2025-04-15T14:00:00",
			Arrival:   "2025-04-15T16:45:00",
			Airline:   "6E",
			Duration:  "PT2H45M",
		},
		{
			Option:    3,
			Price:     "₹10,999 INR",
			From:      "DEL",
			To:        "BLR",
			Departure: "2025-04-15T18:30:00",
			Arrival:   "2025-04-15T21:15:00",
			Airline:   "SG",
			Duration:  "PT2H45M",
		},
	}
}
