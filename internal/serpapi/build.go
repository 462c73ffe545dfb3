package serpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tripscout/scout/internal/geo"
	"github.com/tripscout/scout/internal/query"
)

// MissingFieldError reports a query record that reached the request
// builder without its required fields. The parser and the pipeline
// validation are supposed to make this impossible, so seeing one is a
// bug, not a recoverable user error.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("query is missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Locale carries the currency and region parameters every provider
// request needs.
type Locale struct {
	Currency string
	GL       string
	HL       string
}

// BuildFlightsQuery maps a parsed flight query onto google_flights wire
// parameters. Pure mapping, no I/O: round-trip search, "top flights"
// ordering and deep search are fixed defaults, max_price is passed
// through only when the hint carried a cap.
func BuildFlightsQuery(p *query.Parsed, loc Locale) (url.Values, error) {
	if missing := p.MissingRequired(); len(missing) > 0 {
		return nil, &MissingFieldError{Fields: missing}
	}
	if !geo.IsCode(p.Origin) {
		return nil, &geo.UnresolvedLocationError{Place: p.Origin}
	}
	if !geo.IsCode(p.Destination) {
		return nil, &geo.UnresolvedLocationError{Place: p.Destination}
	}

	q := url.Values{}
	q.Set("engine", "google_flights")
	q.Set("departure_id", p.Origin)
	q.Set("arrival_id", p.Destination)
	q.Set("outbound_date", p.OutboundDate)
	q.Set("return_date", p.ReturnDate)
	q.Set("adults", strconv.Itoa(p.PartySize))
	q.Set("travel_class", strconv.Itoa(int(p.Cabin)))
	q.Set("stops", strconv.Itoa(int(p.Stops)))
	q.Set("type", "1") // round trip
	q.Set("currency", loc.Currency)
	q.Set("gl", loc.GL)
	q.Set("hl", loc.HL)
	q.Set("sort_by", "1") // top flights
	q.Set("deep_search", "true")
	q.Set("output", "json")
	if p.MaxPrice > 0 {
		q.Set("max_price", strconv.Itoa(p.MaxPrice))
	}
	return q, nil
}

// BuildHotelsQuery maps a parsed lodging query onto google_hotels wire
// parameters.
func BuildHotelsQuery(p *query.Parsed, loc Locale) (url.Values, error) {
	if missing := p.MissingRequired(); len(missing) > 0 {
		return nil, &MissingFieldError{Fields: missing}
	}
	if !geo.IsCode(p.Destination) {
		return nil, &geo.UnresolvedLocationError{Place: p.Destination}
	}

	q := url.Values{}
	q.Set("engine", "google_hotels")
	q.Set("q", p.Destination)
	q.Set("check_in_date", p.OutboundDate)
	q.Set("check_out_date", p.ReturnDate)
	q.Set("adults", strconv.Itoa(p.PartySize))
	q.Set("currency", loc.Currency)
	q.Set("gl", loc.GL)
	q.Set("hl", loc.HL)
	q.Set("sort_by", "3") // lowest price
	q.Set("output", "json")
	if p.MaxPrice > 0 {
		q.Set("max_price", strconv.Itoa(p.MaxPrice))
	}
	return q, nil
}
