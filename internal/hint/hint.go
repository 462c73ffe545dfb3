// Package hint parses compact machine-generated travel hints such as
//
//	"YYZ->ATH 2025-08-26 to 2025-09-01 2 pax economy nonstop <= $1250"
//	"MAD hotels 2025-10-01 to 2025-10-08 2 guests 1250 total"
//
// into structured query records. The grammar is a fixed set of pattern
// matchers, not general natural language: each field is extracted
// independently and missing optional fields fall back to defaults. Only
// the date range is mandatory.
package hint

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tripscout/scout/internal/geo"
	"github.com/tripscout/scout/internal/query"
)

// ParseError reports a hint that is missing mandatory fields. It rejects
// the request outright; nothing downstream retries a parse failure.
type ParseError struct {
	Hint   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse hint %q: %s", e.Hint, e.Reason)
}

var (
	codeRE      = regexp.MustCompile(`\b([A-Z]{3})\b`)
	arrowRE     = regexp.MustCompile(`\b([A-Z]{3})\s*(?:->|to|—|–)\s*([A-Z]{3})\b`)
	dateRangeRE = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s*(?:to|-|–|—)\s*(\d{4}-\d{2}-\d{2})`)
	paxRE       = regexp.MustCompile(`(?i)(\d+)\s*(?:pax|guests?|travelers?|people)\b`)
	classRE     = regexp.MustCompile(`(?i)\b(economy|premium economy|business|first)\b`)
	nonstopRE   = regexp.MustCompile(`(?i)\b(?:non[-\s]?stop|direct only)\b`)
	stopsRE     = regexp.MustCompile(`(?i)\b(\d)\s*stops?\b`)
	priceRE     = regexp.MustCompile(`(?i)(?:<=|\bmax\b|\$)\s*\$?\s*([0-9][0-9,]*)`)
	totalRE     = regexp.MustCompile(`(?i)\b([0-9][0-9,]*)\s*(?:total|budget)\b`)
	trailNumRE  = regexp.MustCompile(`\d.*$`)
	hotelsRE    = regexp.MustCompile(`(?i)^(.*?)\s+hotels?\b`)
)

var cabinByName = map[string]query.CabinClass{
	"economy":         query.CabinEconomy,
	"premium economy": query.CabinPremiumEconomy,
	"business":        query.CabinBusiness,
	"first":           query.CabinFirst,
}

// ParseFlight parses a flight hint. Origin and destination resolution is
// best-effort: when neither explicit codes nor the city tables (nor the
// remote resolver) produce a code, the raw city text is kept and the
// request fails later, at the fetch stage.
func ParseFlight(ctx context.Context, raw string, r geo.Resolver) (*query.Parsed, error) {
	h := strings.TrimSpace(raw)
	if h == "" {
		return nil, &ParseError{Hint: raw, Reason: "empty hint"}
	}

	origin, dest := locations(ctx, h, r)

	out, ret, err := dateRange(raw, h)
	if err != nil {
		return nil, err
	}

	p := &query.Parsed{
		Kind:         query.KindFlight,
		Origin:       origin,
		Destination:  dest,
		OutboundDate: out,
		ReturnDate:   ret,
		PartySize:    partySize(h, 1),
		Cabin:        cabin(h),
		Stops:        stops(h),
		MaxPrice:     price(h),
	}
	return p, nil
}

// ParseLodging parses a lodging hint of the form
// "<city> hotels <date> to <date> <N> guests <price clause>".
func ParseLodging(ctx context.Context, raw string, r geo.Resolver) (*query.Parsed, error) {
	h := strings.TrimSpace(raw)
	if h == "" {
		return nil, &ParseError{Hint: raw, Reason: "empty hint"}
	}

	out, ret, err := dateRange(raw, h)
	if err != nil {
		return nil, err
	}

	var city string
	if m := hotelsRE.FindStringSubmatch(h); m != nil {
		city = strings.TrimSpace(m[1])
	} else if i := strings.Index(h, out); i > 0 {
		city = strings.TrimSpace(h[:i])
	}
	if city == "" {
		return nil, &ParseError{Hint: raw, Reason: "no destination found"}
	}

	dest := geo.Resolve(ctx, city, r)
	if dest == "" {
		if stripped := geo.StripRegion(city); stripped != city {
			dest = geo.Resolve(ctx, stripped, r)
		}
	}
	if dest == "" {
		dest = city // unresolved, rejected at the fetch stage
	}

	maxPrice := price(h)
	if maxPrice == 0 {
		if m := totalRE.FindStringSubmatch(h); m != nil {
			maxPrice = parseAmount(m[1])
		}
	}

	p := &query.Parsed{
		Kind:         query.KindLodging,
		Destination:  dest,
		OutboundDate: out,
		ReturnDate:   ret,
		PartySize:    partySize(h, 2),
		Cabin:        query.CabinEconomy,
		MaxPrice:     maxPrice,
	}
	return p, nil
}

// locations extracts origin and destination. Explicit "A->B" code pairs
// win; then the first two free-standing codes anywhere in the hint; then
// the text around the arrow is treated as city names and resolved.
func locations(ctx context.Context, h string, r geo.Resolver) (origin, dest string) {
	if m := arrowRE.FindStringSubmatch(h); m != nil {
		return m[1], m[2]
	}

	if codes := codeRE.FindAllString(h, 2); len(codes) >= 2 {
		return codes[0], codes[1]
	}

	parts := strings.SplitN(h, "->", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return resolveSide(ctx, parts[0], r), resolveSide(ctx, parts[1], r)
}

// resolveSide strips trailing dates and numbers from one side of the
// arrow and resolves what remains as a city name, retrying with region
// abbreviations stripped. Returns the raw city text when unresolved.
func resolveSide(ctx context.Context, side string, r geo.Resolver) string {
	city := strings.TrimSpace(trailNumRE.ReplaceAllString(strings.TrimSpace(side), ""))
	if city == "" {
		return ""
	}
	if code := geo.Resolve(ctx, city, r); code != "" {
		return code
	}
	if stripped := geo.StripRegion(city); stripped != city {
		if code := geo.Resolve(ctx, stripped, r); code != "" {
			return code
		}
	}
	return city
}

func dateRange(raw, h string) (out, ret string, err error) {
	m := dateRangeRE.FindStringSubmatch(h)
	if m == nil {
		return "", "", &ParseError{Hint: raw, Reason: "no ISO date range found"}
	}
	out, ret = m[1], m[2]
	d1, err1 := time.Parse("2006-01-02", out)
	d2, err2 := time.Parse("2006-01-02", ret)
	if err1 != nil || err2 != nil {
		return "", "", &ParseError{Hint: raw, Reason: "invalid calendar date in range"}
	}
	if d2.Before(d1) {
		return "", "", &ParseError{Hint: raw, Reason: "return date before outbound date"}
	}
	return out, ret, nil
}

func partySize(h string, def int) int {
	if m := paxRE.FindStringSubmatch(h); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			return n
		}
		return 1
	}
	return def
}

func cabin(h string) query.CabinClass {
	if m := classRE.FindStringSubmatch(h); m != nil {
		if c, ok := cabinByName[strings.ToLower(m[1])]; ok {
			return c
		}
	}
	return query.CabinEconomy
}

func stops(h string) query.StopsPreference {
	if nonstopRE.MatchString(h) {
		return query.StopsNonstop
	}
	if m := stopsRE.FindStringSubmatch(h); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return query.StopsAny
		}
		if n == 0 {
			return query.StopsNonstop
		}
		if n+1 > int(query.StopsAtMostTwo) {
			return query.StopsAtMostTwo
		}
		return query.StopsPreference(n + 1)
	}
	return query.StopsAny
}

func price(h string) int {
	if m := priceRE.FindStringSubmatch(h); m != nil {
		return parseAmount(m[1])
	}
	return 0
}

func parseAmount(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
