package serpapi

import "encoding/json"

// Response is the subset of the provider's search payload the pipelines
// consume. Everything is optional; absent fields stay at their zero value
// and the normalizer substitutes unknown sentinels.
type Response struct {
	Error          string                     `json:"error,omitempty"`
	SearchMetadata map[string]json.RawMessage `json:"search_metadata,omitempty"`
	PriceInsights  map[string]json.RawMessage `json:"price_insights,omitempty"`

	// google_flights
	BestFlights  []FlightItem `json:"best_flights,omitempty"`
	OtherFlights []FlightItem `json:"other_flights,omitempty"`

	// google_hotels
	Properties []PropertyItem `json:"properties,omitempty"`

	// airport probe used by the code resolver
	Airports []airportGroup `json:"airports,omitempty"`
}

// FlightItem is one round-trip candidate as the provider returns it.
type FlightItem struct {
	Price          *float64    `json:"price,omitempty"`
	TotalDuration  *int        `json:"total_duration,omitempty"`
	Flights        []FlightLeg `json:"flights,omitempty"`
	DepartureToken string      `json:"departure_token,omitempty"`
	BookingToken   string      `json:"booking_token,omitempty"`
}

type FlightLeg struct {
	Airline          string      `json:"airline,omitempty"`
	FlightNumber     string      `json:"flight_number,omitempty"`
	TravelClass      string      `json:"travel_class,omitempty"`
	DepartureAirport AirportStop `json:"departure_airport,omitempty"`
	ArrivalAirport   AirportStop `json:"arrival_airport,omitempty"`
	Duration         *int        `json:"duration,omitempty"`
}

type AirportStop struct {
	ID   string `json:"id,omitempty"`
	Time string `json:"time,omitempty"`
}

// PropertyItem is one lodging candidate from the hotels engine.
type PropertyItem struct {
	Name          string   `json:"name,omitempty"`
	Type          string   `json:"type,omitempty"`
	RatePerNight  *Rate    `json:"rate_per_night,omitempty"`
	TotalRate     *Rate    `json:"total_rate,omitempty"`
	OverallRating *float64 `json:"overall_rating,omitempty"`
	Reviews       *int     `json:"reviews,omitempty"`
	CheckInTime   string   `json:"check_in_time,omitempty"`
	CheckOutTime  string   `json:"check_out_time,omitempty"`
	PropertyToken string   `json:"property_token,omitempty"`
}

type Rate struct {
	Lowest          string   `json:"lowest,omitempty"`
	ExtractedLowest *float64 `json:"extracted_lowest,omitempty"`
}

type airportGroup struct {
	Departure []airportEntry `json:"departure,omitempty"`
	Arrival   []airportEntry `json:"arrival,omitempty"`
}

type airportEntry struct {
	Airport struct {
		ID string `json:"id,omitempty"`
	} `json:"airport,omitempty"`
}
