package pipeline

import (
	"fmt"

	"github.com/tripscout/scout/internal/query"
)

// Defaults used for synthetic offers when the hint carried no price cap.
const (
	fallbackFlightPrice   = 800
	fallbackFlightMinutes = 480
	fallbackNightlyPrice  = 150
)

// SynthesizeFlight builds a placeholder offer from the parsed query so a
// caller always receives a well-formed result when the provider is
// unreachable. The price is the parsed cap, not a quote; consumers must
// check the fallback tag on the surrounding result before treating any
// of these numbers as real.
func SynthesizeFlight(p *query.Parsed, currency string) NormalizedOffer {
	price := float64(fallbackFlightPrice)
	if p.MaxPrice > 0 {
		price = float64(p.MaxPrice)
	}

	return NormalizedOffer{
		Price:            floatPtr(price),
		Currency:         currency,
		TotalDurationMin: intPtr(fallbackFlightMinutes),
		StopsCount:       1,
		Legs: []Leg{
			{
				Carrier: "Multiple Airlines",
				Number:  "N/A",
				Cabin:   p.Cabin.String(),
				Departure: Endpoint{
					Location: p.Origin,
					Time:     fmt.Sprintf("%s 10:00", p.OutboundDate),
				},
				Arrival: Endpoint{
					Location: p.Destination,
					Time:     fmt.Sprintf("%s 18:00", p.OutboundDate),
				},
				DurationMin: intPtr(fallbackFlightMinutes),
			},
		},
	}
}

// SynthesizeLodging builds a placeholder lodging offer priced at the
// parsed cap, or a flat nightly default times the stay length.
func SynthesizeLodging(p *query.Parsed, currency string) NormalizedOffer {
	nights := p.Nights()
	price := float64(fallbackNightlyPrice * nights)
	if p.MaxPrice > 0 {
		price = float64(p.MaxPrice)
	}
	nightly := price / float64(nights)

	return NormalizedOffer{
		Price:        floatPtr(price),
		Currency:     currency,
		Name:         "Unverified stay",
		NightlyPrice: floatPtr(nightly),
		Legs: []Leg{
			{
				Carrier:   "Unverified stay",
				Departure: Endpoint{Location: p.Destination, Time: p.OutboundDate},
				Arrival:   Endpoint{Location: p.Destination, Time: p.ReturnDate},
			},
		},
	}
}
