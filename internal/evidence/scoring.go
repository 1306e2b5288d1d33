package evidence

import "math"

// Scoring weights. Verification status weighs more heavily than raw
// self-reported confidence: verification is externally checkable, the
// weight an item claims for itself is not.
const (
	verifiedWeight   = 0.6
	confidenceWeight = 0.4
)

// Tier thresholds: minimum score and verified-item count per tier.
const (
	tier3MinScore    = 85
	tier3MinVerified = 3
	tier2MinScore    = 60
	tier2MinVerified = 2
)

// Score aggregates item-level trust into a single confidence score in
// [0,100]. An empty item set scores 0.
func Score(items []Item) int {
	if len(items) == 0 {
		return 0
	}

	var weightSum float64
	for _, item := range items {
		weightSum += item.ConfidenceWeight
	}

	verifiedRatio := float64(verifiedCount(items)) / float64(len(items))
	avgWeight := weightSum / float64(len(items))

	score := int(math.Round(100 * (verifiedWeight*verifiedRatio + confidenceWeight*avgWeight)))
	return clampScore(score)
}

// TierFor derives the evidence tier from the item set and its score.
// tier_3 demands both a high score and at least three verified items, so a
// single heavily-weighted item can never reach it alone.
func TierFor(items []Item, score int) Tier {
	verified := verifiedCount(items)
	switch {
	case score >= tier3MinScore && verified >= tier3MinVerified:
		return Tier3
	case score >= tier2MinScore && verified >= tier2MinVerified:
		return Tier2
	default:
		return Tier1
	}
}

func verifiedCount(items []Item) int {
	n := 0
	for _, item := range items {
		if item.Verified {
			n++
		}
	}
	return n
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
