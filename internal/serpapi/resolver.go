package serpapi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tripscout/scout/internal/geo"
)

// resolveTimeout keeps the best-effort probe from holding up a search.
const resolveTimeout = 30 * time.Second

// ResolveCode probes the flights engine with the free text as both ends
// of a route and reads the airport code the provider echoes back. Single
// attempt, no retries: this is a best-effort lookup and the caller
// treats any failure as "unresolved".
func (c *Client) ResolveCode(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("engine", "google_flights")
	q.Set("departure_id", text)
	q.Set("arrival_id", text)
	q.Set("output", "json")
	q.Set("json_restrictor", "airports[].{departure[].airport.id,arrival[].airport.id}")

	resp, err := c.do(ctx, q)
	if err != nil {
		return "", err
	}

	for _, group := range resp.Airports {
		for _, side := range [][]airportEntry{group.Departure, group.Arrival} {
			if len(side) == 0 {
				continue
			}
			if id := side[0].Airport.ID; geo.IsCode(id) {
				c.log.Debug("resolved location via provider probe", "text", text, "code", id)
				return id, nil
			}
		}
	}
	return "", fmt.Errorf("no airport code found for %q", text)
}
