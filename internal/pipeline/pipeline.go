// Package pipeline turns a free-text travel hint into a single ranked
// offer: parse, build the provider query, fetch with retries, normalize
// the candidates and select the best one under budget and preference
// constraints. Parse and location failures reject the request; any
// failure past that point degrades to a synthesized fallback offer so
// the caller always gets a well-formed result.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"github.com/tripscout/scout/internal/config"
	"github.com/tripscout/scout/internal/hint"
	"github.com/tripscout/scout/internal/query"
	"github.com/tripscout/scout/internal/serpapi"
)

// Searcher is the provider surface the pipeline needs: the retrying
// search call and the best-effort location resolver. *serpapi.Client
// implements it.
type Searcher interface {
	Search(ctx context.Context, params url.Values) (*serpapi.Response, error)
	ResolveCode(ctx context.Context, text string) (string, error)
}

// Options tune a single search invocation.
type Options struct {
	// TotalBudget is the whole-trip budget. When the hint itself carries
	// no price cap, a quarter of it is applied as the flight cap.
	TotalBudget float64
	// MaxNightly filters lodging candidates above this nightly rate.
	MaxNightly float64
}

// RawMetadata passes through provider search metadata untouched, plus a
// status marker for synthesized results.
type RawMetadata struct {
	Status         string                     `json:"status,omitempty"`
	SearchMetadata map[string]json.RawMessage `json:"search_metadata,omitempty"`
	PriceInsights  map[string]json.RawMessage `json:"price_insights,omitempty"`
}

// Result is what a search call hands back. Fallback marks BestOffer as a
// synthesized placeholder rather than a provider quote.
type Result struct {
	SearchID   string            `json:"search_id"`
	QueryUsed  *query.Parsed     `json:"query_used"`
	BestOffer  *NormalizedOffer  `json:"best_offer"`
	Candidates []NormalizedOffer `json:"candidates,omitempty"`
	Fallback   bool              `json:"fallback"`
	Raw        RawMetadata       `json:"raw_metadata"`
}

// Pipeline is stateless across calls: reference tables are read-only and
// nothing is cached, so independent searches may run concurrently.
type Pipeline struct {
	cfg      *config.Config
	searcher Searcher
	log      *slog.Logger
}

func New(cfg *config.Config, searcher Searcher, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, searcher: searcher, log: logger}
}

func (p *Pipeline) locale() serpapi.Locale {
	return serpapi.Locale{Currency: p.cfg.Currency, GL: p.cfg.GL, HL: p.cfg.HL}
}

// SearchFlights runs the flight pipeline for one hint. It returns an
// error only for parse rejections, unresolved locations and incomplete
// queries; provider failures produce a fallback-tagged result instead.
func (p *Pipeline) SearchFlights(ctx context.Context, rawHint string, opts Options) (*Result, error) {
	parsed, err := hint.ParseFlight(ctx, rawHint, p.searcher)
	if err != nil {
		return nil, err
	}

	if opts.TotalBudget > 0 && parsed.MaxPrice == 0 {
		parsed.MaxPrice = int(opts.TotalBudget / 4)
		p.log.Debug("derived flight cap from trip budget", "max_price", parsed.MaxPrice)
	}

	params, err := serpapi.BuildFlightsQuery(parsed, p.locale())
	if err != nil {
		return nil, err
	}

	resp, err := p.searcher.Search(ctx, params)
	if err != nil {
		p.log.Warn("flight search degraded to fallback", "query", parsed.String(), "error", err)
		return p.fallbackResult(parsed, SynthesizeFlight(parsed, p.cfg.Currency)), nil
	}

	candidates := make([]NormalizedOffer, 0, len(resp.BestFlights)+len(resp.OtherFlights))
	for _, item := range resp.BestFlights {
		candidates = append(candidates, NormalizeFlight(item, p.cfg.Currency))
	}
	for _, item := range resp.OtherFlights {
		candidates = append(candidates, NormalizeFlight(item, p.cfg.Currency))
	}

	ranked := Rank(candidates, p.budgetCap(parsed), parsed.Stops == query.StopsNonstop)
	return p.providerResult(parsed, ranked, resp), nil
}

// SearchLodging runs the lodging pipeline for one hint.
func (p *Pipeline) SearchLodging(ctx context.Context, rawHint string, opts Options) (*Result, error) {
	parsed, err := hint.ParseLodging(ctx, rawHint, p.searcher)
	if err != nil {
		return nil, err
	}

	if opts.TotalBudget > 0 && parsed.MaxPrice == 0 {
		parsed.MaxPrice = int(opts.TotalBudget)
	}

	params, err := serpapi.BuildHotelsQuery(parsed, p.locale())
	if err != nil {
		return nil, err
	}

	resp, err := p.searcher.Search(ctx, params)
	if err != nil {
		p.log.Warn("lodging search degraded to fallback", "query", parsed.String(), "error", err)
		return p.fallbackResult(parsed, SynthesizeLodging(parsed, p.cfg.Currency)), nil
	}

	nights := parsed.Nights()
	candidates := make([]NormalizedOffer, 0, len(resp.Properties))
	for _, item := range resp.Properties {
		offer := NormalizeProperty(item, p.cfg.Currency, nights)
		if !p.withinNightly(offer, opts.MaxNightly) {
			continue
		}
		candidates = append(candidates, offer)
	}

	ranked := Rank(candidates, p.budgetCap(parsed), false)
	return p.providerResult(parsed, ranked, resp), nil
}

// budgetCap widens the parsed price cap by the configured tolerance
// ratio; nil when the hint carried no cap.
func (p *Pipeline) budgetCap(parsed *query.Parsed) *float64 {
	if parsed.MaxPrice <= 0 {
		return nil
	}
	return floatPtr(float64(parsed.MaxPrice) * (1 + p.cfg.TotalTolerance))
}

// withinNightly applies the nightly cap with its tolerance ratio. Offers
// without a known nightly rate are dropped when a cap is active.
func (p *Pipeline) withinNightly(offer NormalizedOffer, maxNightly float64) bool {
	if maxNightly <= 0 {
		return true
	}
	if offer.NightlyPrice == nil {
		return false
	}
	return *offer.NightlyPrice <= maxNightly*(1+p.cfg.NightlyTolerance)
}

func (p *Pipeline) providerResult(parsed *query.Parsed, ranked []NormalizedOffer, resp *serpapi.Response) *Result {
	res := &Result{
		SearchID:  uuid.NewString(),
		QueryUsed: parsed,
		Raw: RawMetadata{
			SearchMetadata: resp.SearchMetadata,
			PriceInsights:  resp.PriceInsights,
		},
	}
	if len(ranked) > 0 {
		best := ranked[0]
		res.BestOffer = &best
		if len(ranked) > 5 {
			ranked = ranked[:5]
		}
		res.Candidates = ranked
	}
	return res
}

func (p *Pipeline) fallbackResult(parsed *query.Parsed, offer NormalizedOffer) *Result {
	return &Result{
		SearchID:  uuid.NewString(),
		QueryUsed: parsed,
		BestOffer: &offer,
		Fallback:  true,
		Raw:       RawMetadata{Status: "fallback"},
	}
}
