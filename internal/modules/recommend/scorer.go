package recommend

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Weights of the scoring blend. Price dominates, reputation close behind,
// review volume damped so a flood of mediocre reviews cannot outrank a
// strong newcomer, and a small freshness nudge breaks ties.
const (
	priceWeight   = 0.45
	ratingWeight  = 0.35
	volumeWeight  = 0.15
	recencyWeight = 0.05

	// review counts above this saturate the volume score
	volumeSaturation = 50
)

// Candidate is one bid enriched with its provider's reputation snapshot.
type Candidate struct {
	BidID       int64
	ProviderID  int64
	Price       int64
	Rating      float64
	ReviewCount int64
	CreatedAt   time.Time
}

type Recommendation struct {
	BidID      int64   `json:"bid_id"`
	ProviderID int64   `json:"provider_id"`
	Price      int64   `json:"price"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason"`
}

// Best scores every candidate against the field and returns the winner,
// or nil when there is nothing to rank. The scorer is pure: same input,
// same answer, no stored state.
func Best(candidates []Candidate) *Recommendation {
	if len(candidates) == 0 {
		return nil
	}

	median := medianPrice(candidates)
	now := time.Now()

	var best *Recommendation
	for _, c := range candidates {
		score := priceWeight*priceScore(c.Price, median) +
			ratingWeight*clamp01(c.Rating/5) +
			volumeWeight*volumeScore(c.ReviewCount) +
			recencyWeight*recencyScore(now, c.CreatedAt)

		if best == nil || score > best.Score {
			best = &Recommendation{
				BidID:      c.BidID,
				ProviderID: c.ProviderID,
				Price:      c.Price,
				Score:      score,
				Reason:     reasonFor(c, median),
			}
		}
	}
	return best
}

func medianPrice(candidates []Candidate) float64 {
	prices := make([]int64, len(candidates))
	for i, c := range candidates {
		prices[i] = c.Price
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })

	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		return float64(prices[mid])
	}
	return float64(prices[mid-1]+prices[mid]) / 2
}

// priceScore rewards bids below the field's median. A bid at the median
// lands at 0.5, one at half the median at 1.0, one at double at 0.
func priceScore(price int64, median float64) float64 {
	if median <= 0 {
		return 0.5
	}
	return clamp01(1 - float64(price)/(2*median))
}

func volumeScore(count int64) float64 {
	if count <= 0 {
		return 0
	}
	return clamp01(math.Log1p(float64(count)) / math.Log1p(volumeSaturation))
}

func recencyScore(now, created time.Time) float64 {
	age := now.Sub(created)
	if age <= 0 {
		return 1
	}
	return clamp01(1 / (1 + age.Hours()/24))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func reasonFor(c Candidate, median float64) string {
	var price string
	switch {
	case median > 0 && float64(c.Price) < median:
		price = "priced below the going rate"
	case median > 0 && float64(c.Price) > median:
		price = "priced above the going rate"
	default:
		price = "priced at the going rate"
	}

	if c.ReviewCount == 0 {
		return fmt.Sprintf("%s, no track record yet", price)
	}
	return fmt.Sprintf("%s, rated %.1f across %d reviews", price, c.Rating, c.ReviewCount)
}
