package pipeline

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/tripscout/scout/internal/config"
	"github.com/tripscout/scout/internal/geo"
	"github.com/tripscout/scout/internal/hint"
	"github.com/tripscout/scout/internal/query"
	"github.com/tripscout/scout/internal/serpapi"
)

type fakeSearcher struct {
	resp       *serpapi.Response
	err        error
	lastParams url.Values
	code       string
}

func (f *fakeSearcher) Search(ctx context.Context, params url.Values) (*serpapi.Response, error) {
	f.lastParams = params
	return f.resp, f.err
}

func (f *fakeSearcher) ResolveCode(ctx context.Context, text string) (string, error) {
	if f.code == "" {
		return "", errors.New("resolver unavailable")
	}
	return f.code, nil
}

func testPipeline(s Searcher) *Pipeline {
	return New(config.DefaultConfig(), s, nil)
}

func flightResponse() *serpapi.Response {
	return &serpapi.Response{
		BestFlights: []serpapi.FlightItem{
			{Price: floatPtr(1400), TotalDuration: intPtr(600), BookingToken: "dear"},
		},
		OtherFlights: []serpapi.FlightItem{
			{Price: floatPtr(1100), TotalDuration: intPtr(700), BookingToken: "cheap"},
		},
	}
}

const flightHint = "YYZ->ATH 2025-08-26 to 2025-09-01 2 pax economy nonstop <= $1250"

func TestSearchFlights_SelectsAcrossBothLists(t *testing.T) {
	fs := &fakeSearcher{resp: flightResponse()}
	res, err := testPipeline(fs).SearchFlights(context.Background(), flightHint, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Fallback {
		t.Error("result should not be fallback-tagged")
	}
	if res.BestOffer == nil || res.BestOffer.BookingToken != "cheap" {
		t.Fatalf("best = %+v, want the in-budget 1100 offer", res.BestOffer)
	}
	if res.QueryUsed.Origin != "YYZ" || res.QueryUsed.Destination != "ATH" {
		t.Errorf("query used = %+v", res.QueryUsed)
	}
	if fs.lastParams.Get("max_price") != "1250" {
		t.Errorf("max_price param = %q, want 1250", fs.lastParams.Get("max_price"))
	}
	if res.SearchID == "" {
		t.Error("search id missing")
	}
}

func TestSearchFlights_FetchFailureYieldsFallback(t *testing.T) {
	fs := &fakeSearcher{err: &serpapi.RetriesExhaustedError{Attempts: 3, Last: errors.New("timeout")}}
	res, err := testPipeline(fs).SearchFlights(context.Background(), flightHint, Options{})
	if err != nil {
		t.Fatalf("top-level search must not fail on provider errors, got %v", err)
	}
	if !res.Fallback {
		t.Fatal("result should be fallback-tagged")
	}
	if res.Raw.Status != "fallback" {
		t.Errorf("raw status = %q, want fallback", res.Raw.Status)
	}
	if res.QueryUsed == nil || res.QueryUsed.Origin != "YYZ" || res.QueryUsed.MaxPrice != 1250 {
		t.Errorf("query used = %+v, want the successfully parsed query", res.QueryUsed)
	}
	if res.BestOffer == nil || res.BestOffer.Price == nil || *res.BestOffer.Price != 1250 {
		t.Errorf("fallback offer = %+v, want price 1250 from the parsed cap", res.BestOffer)
	}
	if res.BestOffer.Legs[0].Departure.Location != "YYZ" || res.BestOffer.Legs[0].Arrival.Location != "ATH" {
		t.Errorf("fallback leg = %+v", res.BestOffer.Legs[0])
	}
}

func TestSearchFlights_PermanentProviderErrorAlsoFallsBack(t *testing.T) {
	fs := &fakeSearcher{err: &serpapi.ProviderError{Message: "quota exceeded"}}
	res, err := testPipeline(fs).SearchFlights(context.Background(), flightHint, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Fallback {
		t.Error("result should be fallback-tagged")
	}
}

func TestSearchFlights_ParseErrorSurfaces(t *testing.T) {
	fs := &fakeSearcher{resp: flightResponse()}
	_, err := testPipeline(fs).SearchFlights(context.Background(), "YYZ->ATH no dates here", Options{})
	var pe *hint.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestSearchFlights_UnresolvedLocationSurfaces(t *testing.T) {
	fs := &fakeSearcher{} // resolver always fails
	_, err := testPipeline(fs).SearchFlights(context.Background(), "Springfield -> Shelbyville 2025-08-26 to 2025-09-01", Options{})
	var ule *geo.UnresolvedLocationError
	if !errors.As(err, &ule) {
		t.Fatalf("expected UnresolvedLocationError, got %v", err)
	}
}

func TestSearchFlights_RemoteResolverUsed(t *testing.T) {
	fs := &fakeSearcher{resp: flightResponse(), code: "KEF"}
	res, err := testPipeline(fs).SearchFlights(context.Background(), "Reykjavik -> Hofn 2025-08-26 to 2025-09-01", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.QueryUsed.Origin != "KEF" || res.QueryUsed.Destination != "KEF" {
		t.Errorf("query used = %+v, want remote-resolved codes", res.QueryUsed)
	}
}

func TestSearchFlights_TripBudgetQuarterRule(t *testing.T) {
	fs := &fakeSearcher{resp: flightResponse()}
	res, err := testPipeline(fs).SearchFlights(context.Background(),
		"YYZ->ATH 2025-08-26 to 2025-09-01 2 pax", Options{TotalBudget: 4800})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.QueryUsed.MaxPrice != 1200 {
		t.Errorf("derived cap = %d, want 1200", res.QueryUsed.MaxPrice)
	}
	if fs.lastParams.Get("max_price") != "1200" {
		t.Errorf("max_price param = %q, want 1200", fs.lastParams.Get("max_price"))
	}
}

func TestSearchFlights_HintCapWinsOverTripBudget(t *testing.T) {
	fs := &fakeSearcher{resp: flightResponse()}
	res, err := testPipeline(fs).SearchFlights(context.Background(), flightHint, Options{TotalBudget: 9999})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.QueryUsed.MaxPrice != 1250 {
		t.Errorf("cap = %d, want the hint's 1250", res.QueryUsed.MaxPrice)
	}
}

func TestSearchFlights_NoCandidates(t *testing.T) {
	fs := &fakeSearcher{resp: &serpapi.Response{}}
	res, err := testPipeline(fs).SearchFlights(context.Background(), flightHint, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BestOffer != nil {
		t.Errorf("best = %+v, want nil for empty candidate set", res.BestOffer)
	}
	if res.Fallback {
		t.Error("an empty result set is not a fallback")
	}
}

func TestSearchLodging_RanksProperties(t *testing.T) {
	fs := &fakeSearcher{resp: &serpapi.Response{
		Properties: []serpapi.PropertyItem{
			{Name: "Dear", TotalRate: &serpapi.Rate{ExtractedLowest: floatPtr(1400)}},
			{Name: "Cheap", TotalRate: &serpapi.Rate{ExtractedLowest: floatPtr(900)}, RatePerNight: &serpapi.Rate{ExtractedLowest: floatPtr(129)}},
		},
	}}
	res, err := testPipeline(fs).SearchLodging(context.Background(),
		"MAD hotels 2025-10-01 to 2025-10-08 2 guests 1250 total", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BestOffer == nil || res.BestOffer.Name != "Cheap" {
		t.Fatalf("best = %+v, want Cheap", res.BestOffer)
	}
	if res.QueryUsed.Kind != query.KindLodging || res.QueryUsed.Destination != "MAD" {
		t.Errorf("query used = %+v", res.QueryUsed)
	}
	if fs.lastParams.Get("engine") != "google_hotels" {
		t.Errorf("engine = %q", fs.lastParams.Get("engine"))
	}
}

func TestSearchLodging_NightlyCapFilters(t *testing.T) {
	fs := &fakeSearcher{resp: &serpapi.Response{
		Properties: []serpapi.PropertyItem{
			{Name: "Pricey", RatePerNight: &serpapi.Rate{ExtractedLowest: floatPtr(400)}},
			{Name: "Fair", RatePerNight: &serpapi.Rate{ExtractedLowest: floatPtr(150)}},
		},
	}}
	res, err := testPipeline(fs).SearchLodging(context.Background(),
		"MAD hotels 2025-10-01 to 2025-10-08", Options{MaxNightly: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Name != "Fair" {
		t.Errorf("candidates = %+v, want only Fair", res.Candidates)
	}
}

func TestSearchLodging_FetchFailureYieldsFallback(t *testing.T) {
	fs := &fakeSearcher{err: &serpapi.RetriesExhaustedError{Attempts: 3, Last: errors.New("down")}}
	res, err := testPipeline(fs).SearchLodging(context.Background(),
		"MAD hotels 2025-10-01 to 2025-10-08 2 guests 1250 total", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Fallback {
		t.Fatal("result should be fallback-tagged")
	}
	if res.BestOffer == nil || res.BestOffer.Price == nil || *res.BestOffer.Price != 1250 {
		t.Errorf("fallback price = %+v, want 1250", res.BestOffer)
	}
}

func TestBudgetCap_ToleranceWidens(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TotalTolerance = 0.1
	p := New(cfg, &fakeSearcher{}, nil)
	got := p.budgetCap(&query.Parsed{MaxPrice: 1000})
	if got == nil || *got != 1100 {
		t.Errorf("cap = %v, want 1100", got)
	}
	if p.budgetCap(&query.Parsed{}) != nil {
		t.Error("no cap expected when hint has none")
	}
}
