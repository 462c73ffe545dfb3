package pipeline

import (
	"math"
	"sort"
)

// scoreKey orders offers lexicographically, ascending on every
// component. Offers with unknown price or duration compare as +Inf on
// that component, which also makes an unknown price count as
// out-of-budget whenever a cap is set.
type scoreKey struct {
	outOfBudget int
	price       float64
	duration    float64
	stopsBonus  int
}

func (k scoreKey) less(o scoreKey) bool {
	if k.outOfBudget != o.outOfBudget {
		return k.outOfBudget < o.outOfBudget
	}
	if k.price != o.price {
		return k.price < o.price
	}
	if k.duration != o.duration {
		return k.duration < o.duration
	}
	return k.stopsBonus < o.stopsBonus
}

func score(offer NormalizedOffer, budgetCap *float64, nonstopPreferred bool) scoreKey {
	price := math.Inf(1)
	if offer.Price != nil {
		price = *offer.Price
	}
	duration := math.Inf(1)
	if offer.TotalDurationMin != nil {
		duration = float64(*offer.TotalDurationMin)
	}

	outOfBudget := 0
	if budgetCap != nil && !(offer.Price != nil && price <= *budgetCap) {
		outOfBudget = 1
	}

	bonus := 0
	if nonstopPreferred && offer.StopsCount == 0 {
		bonus = -1
	}

	return scoreKey{outOfBudget: outOfBudget, price: price, duration: duration, stopsBonus: bonus}
}

// Select ranks offers and returns the best one, or nil for an empty
// input. In-budget offers always precede out-of-budget ones, then price,
// then total duration, then a nonstop bonus; offers tied on all four
// keys keep their input order.
func Select(offers []NormalizedOffer, budgetCap *float64, nonstopPreferred bool) *NormalizedOffer {
	if len(offers) == 0 {
		return nil
	}
	best := Rank(offers, budgetCap, nonstopPreferred)[0]
	return &best
}

// Rank returns all offers in selection order, best first. Used to expose
// alternative candidates alongside the selected offer.
func Rank(offers []NormalizedOffer, budgetCap *float64, nonstopPreferred bool) []NormalizedOffer {
	ranked := make([]NormalizedOffer, len(offers))
	copy(ranked, offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i], budgetCap, nonstopPreferred).less(score(ranked[j], budgetCap, nonstopPreferred))
	})
	return ranked
}
