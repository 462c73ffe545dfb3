package pipeline

import (
	"github.com/tripscout/scout/internal/serpapi"
)

// NormalizeFlight reshapes one provider flight candidate into the
// canonical offer record. Total function: absent sub-fields become nil
// sentinels, never an error, and stops_count is always leg count minus
// one, floored at zero.
func NormalizeFlight(item serpapi.FlightItem, currency string) NormalizedOffer {
	legs := make([]Leg, 0, len(item.Flights))
	for _, f := range item.Flights {
		legs = append(legs, Leg{
			Carrier: f.Airline,
			Number:  f.FlightNumber,
			Cabin:   f.TravelClass,
			Departure: Endpoint{
				Location: f.DepartureAirport.ID,
				Time:     f.DepartureAirport.Time,
			},
			Arrival: Endpoint{
				Location: f.ArrivalAirport.ID,
				Time:     f.ArrivalAirport.Time,
			},
			DurationMin: f.Duration,
		})
	}

	stops := len(legs) - 1
	if stops < 0 {
		stops = 0
	}

	return NormalizedOffer{
		Price:            item.Price,
		Currency:         currency,
		TotalDurationMin: item.TotalDuration,
		StopsCount:       stops,
		Legs:             legs,
		DepartureToken:   item.DepartureToken,
		BookingToken:     item.BookingToken,
	}
}

// NormalizeProperty reshapes one lodging candidate. The total price is
// taken from the provider's total rate when present, otherwise derived
// from the nightly rate; when neither is known the price stays unknown.
func NormalizeProperty(item serpapi.PropertyItem, currency string, nights int) NormalizedOffer {
	if nights < 1 {
		nights = 1
	}

	var nightly, total *float64
	if item.RatePerNight != nil && item.RatePerNight.ExtractedLowest != nil {
		nightly = item.RatePerNight.ExtractedLowest
	}
	if item.TotalRate != nil && item.TotalRate.ExtractedLowest != nil {
		total = item.TotalRate.ExtractedLowest
	} else if nightly != nil {
		total = floatPtr(*nightly * float64(nights))
	}

	var legs []Leg
	if item.Name != "" || item.PropertyToken != "" {
		legs = append(legs, Leg{
			Carrier: item.Name,
			Number:  item.PropertyToken,
			Departure: Endpoint{
				Time: item.CheckInTime,
			},
			Arrival: Endpoint{
				Time: item.CheckOutTime,
			},
		})
	}

	stops := len(legs) - 1
	if stops < 0 {
		stops = 0
	}

	return NormalizedOffer{
		Price:        total,
		Currency:     currency,
		StopsCount:   stops,
		Legs:         legs,
		Name:         item.Name,
		Rating:       item.OverallRating,
		NightlyPrice: nightly,
		BookingToken: item.PropertyToken,
	}
}
