// Package planner turns a structured trip request into the compact
// search hints the pipeline consumes, plus a day-by-day itinerary. The
// LLM is treated as an upstream hint generator; everything downstream
// operates only on the parsed hints.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Trip mirrors the fields a caller supplies when requesting a plan.
type Trip struct {
	Destination   string `json:"destination"`
	Departure     string `json:"departure"`
	Budget        string `json:"budget"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Travelers     string `json:"travelers"`
	Accessibility string `json:"accessibility,omitempty"`
	Interests     string `json:"interests,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Breakdown is the first-pass decomposition of a trip.
type Breakdown struct {
	Lodging        string `json:"lodging"`
	Transportation string `json:"transportation"`
	Activities     string `json:"activities"`
	Food           string `json:"food"`
}

/// Plan is the planner output: search hints in the pipeline's hint
// grammar plus a human-readable itinerary.
type Plan struct {
	Breakdown    Breakdown `json:"breakdown"`
	FlightHints  []string  `json:"flight_hints"`
	LodgingHints []string  `json:"lodging_hints"`
	Itinerary    string    `json:"itinerary"`
}

// completer is the slice of the OpenAI client the planner uses;
// *openai.Client satisfies it.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Planner struct {
	client completer
	model  string
	log    *slog.Logger
}

func New(apiKey, model string, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{client: openai.NewClient(apiKey), model: model, log: logger}
}

const breakdownPrompt = `You are a travel planning assistant. Given the trip details below, break the trip down into four components and respond strictly as JSON:
{"lodging": "...", "transportation": "...", "activities": "...", "food": "..."}

Trip details:
Destination: %s
Departing from: %s
Budget: %s
Dates: %s to %s
Travelers: %s
Accessibility: %s
Interests: %s
Notes: %s`

const hintsPrompt = `Produce machine-readable search hints for this trip. Respond strictly as JSON:
{"flights": ["<ORIGIN>-><DEST> <YYYY-MM-DD> to <YYYY-MM-DD> <N> pax <class> [nonstop] [<= $<max>]"],
 "lodging": ["<CITY> hotels <YYYY-MM-DD> to <YYYY-MM-DD> <N> guests [<max> total]"]}
Use 3-letter airport codes when you know them, otherwise city names.

Trip: from %s to %s, %s to %s, travelers: %s, budget: %s.`

const itineraryPrompt = `You are a travel planner. Based on this trip breakdown, write a friendly, structured day-by-day itinerary that stays within budget and respects the traveler's accessibility needs and interests.

Lodging: %s
Transportation: %s
Activities: %s
Food: %s
Budget: %s
Dates: %s to %s
Travelers: %s`

// Plan runs the three prompt stages. Each stage depends on the previous
// one, so any LLM failure aborts the whole plan.
func (p *Planner) Plan(ctx context.Context, trip Trip) (*Plan, error) {
	raw, err := p.complete(ctx, fmt.Sprintf(breakdownPrompt,
		trip.Destination, trip.Departure, trip.Budget, trip.StartDate, trip.EndDate,
		trip.Travelers, trip.Accessibility, trip.Interests, trip.Notes))
	if err != nil {
		return nil, fmt.Errorf("trip breakdown: %w", err)
	}
	var breakdown Breakdown
	if err := json.Unmarshal([]byte(extractJSON(raw)), &breakdown); err != nil {
		return nil, fmt.Errorf("trip breakdown: invalid JSON from model: %w", err)
	}

	raw, err = p.complete(ctx, fmt.Sprintf(hintsPrompt,
		trip.Departure, trip.Destination, trip.StartDate, trip.EndDate, trip.Travelers, trip.Budget))
	if err != nil {
		return nil, fmt.Errorf("hint generation: %w", err)
	}
	var hints struct {
		Flights []string `json:"flights"`
		Lodging []string `json:"lodging"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &hints); err != nil {
		return nil, fmt.Errorf("hint generation: invalid JSON from model: %w", err)
	}
	if len(hints.Flights) == 0 {
		return nil, fmt.Errorf("hint generation: model returned no flight hints")
	}

	itinerary, err := p.complete(ctx, fmt.Sprintf(itineraryPrompt,
		breakdown.Lodging, breakdown.Transportation, breakdown.Activities, breakdown.Food,
		trip.Budget, trip.StartDate, trip.EndDate, trip.Travelers))
	if err != nil {
		return nil, fmt.Errorf("itinerary: %w", err)
	}

	return &Plan{
		Breakdown:    breakdown,
		FlightHints:  hints.Flights,
		LodgingHints: hints.Lodging,
		Itinerary:    strings.TrimSpace(itinerary),
	}, nil
}

func (p *Planner) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.2,
		MaxTokens:   1024,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// extractJSON tolerates models that wrap their JSON in a code fence or
// prose by cutting to the outermost braces.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
