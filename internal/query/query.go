package query

import (
	"fmt"
	"time"
)

// Kind distinguishes the two search pipelines that share a Parsed record.
type Kind string

const (
	KindFlight  Kind = "flight"
	KindLodging Kind = "lodging"
)

// CabinClass follows the provider's numeric travel_class encoding.
type CabinClass int

const (
	CabinEconomy CabinClass = iota + 1
	CabinPremiumEconomy
	CabinBusiness
	CabinFirst
)

func (c CabinClass) String() string {
	switch c {
	case CabinPremiumEconomy:
		return "premium economy"
	case CabinBusiness:
		return "business"
	case CabinFirst:
		return "first"
	default:
		return "economy"
	}
}

// StopsPreference follows the provider's numeric stops encoding:
// 0 = any, 1 = nonstop, 2 = at most one stop, 3 = at most two stops.
type StopsPreference int

const (
	StopsAny StopsPreference = iota
	StopsNonstop
	StopsAtMostOne
	StopsAtMostTwo
)

func (s StopsPreference) String() string {
	switch s {
	case StopsNonstop:
		return "nonstop"
	case StopsAtMostOne:
		return "at_most_one"
	case StopsAtMostTwo:
		return "at_most_two"
	default:
		return "any"
	}
}

// Parsed is the structured form of a hint. It is built once by the parser
// and read-only afterward; every stage past parsing operates on it instead
// of the raw hint text. Origin/Destination hold a 3-letter location code
// when resolution succeeded, or the raw city string when it did not.
type Parsed struct {
	Kind         Kind            `json:"kind"`
	Origin       string          `json:"origin,omitempty"`
	Destination  string          `json:"destination"`
	OutboundDate string          `json:"outbound_date"`
	ReturnDate   string          `json:"return_date"`
	PartySize    int             `json:"party_size"`
	Cabin        CabinClass      `json:"travel_class"`
	Stops        StopsPreference `json:"stops"`
	MaxPrice     int             `json:"max_price,omitempty"` // 0 = no cap
}

const dateLayout = "2006-01-02"

// Nights returns the number of nights between the outbound and return
// dates, never less than one. Zero dates yield one.
func (p *Parsed) Nights() int {
	in, err1 := time.Parse(dateLayout, p.OutboundDate)
	out, err2 := time.Parse(dateLayout, p.ReturnDate)
	if err1 != nil || err2 != nil {
		return 1
	}
	n := int(out.Sub(in).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// MissingRequired lists the fields that must be present before any
// provider request can be built.
func (p *Parsed) MissingRequired() []string {
	var missing []string
	if p.Kind == KindFlight && p.Origin == "" {
		missing = append(missing, "origin")
	}
	if p.Destination == "" {
		missing = append(missing, "destination")
	}
	if p.OutboundDate == "" {
		missing = append(missing, "outbound_date")
	}
	if p.ReturnDate == "" {
		missing = append(missing, "return_date")
	}
	return missing
}

func (p *Parsed) String() string {
	if p.Kind == KindLodging {
		return fmt.Sprintf("%s hotels %s to %s (%d guests)", p.Destination, p.OutboundDate, p.ReturnDate, p.PartySize)
	}
	return fmt.Sprintf("%s->%s %s to %s (%d pax, %s, %s)", p.Origin, p.Destination, p.OutboundDate, p.ReturnDate, p.PartySize, p.Cabin, p.Stops)
}
