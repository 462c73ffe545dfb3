package pipeline

// Leg is one segment of an offer. For flights it is a flight segment;
// for lodging the single leg carries the property and booking reference.
type Leg struct {
	Carrier   string   `json:"carrier,omitempty"`
	Number    string   `json:"number,omitempty"`
	Cabin     string   `json:"cabin,omitempty"`
	Departure Endpoint `json:"departure"`
	Arrival   Endpoint `json:"arrival"`
	// DurationMin is nil when the provider did not report it.
	DurationMin *int `json:"duration_min"`
}

type Endpoint struct {
	Location string `json:"location,omitempty"`
	Time     string `json:"time,omitempty"`
}

// NormalizedOffer is the canonical projection of a provider offer. It is
// derived per request and never cached. Nil pointer fields are the
// "unknown" sentinel: the provider payload did not carry the value.
type NormalizedOffer struct {
	Price            *float64 `json:"price"`
	Currency         string   `json:"currency"`
	TotalDurationMin *int     `json:"total_duration_min"`
	StopsCount       int      `json:"stops_count"`
	Legs             []Leg    `json:"legs"`

	// Lodging extras.
	Name         string   `json:"name,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	NightlyPrice *float64 `json:"nightly_price,omitempty"`

	// Provider continuation tokens, opaque to this system.
	DepartureToken string `json:"departure_token,omitempty"`
	BookingToken   string `json:"booking_token,omitempty"`
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
