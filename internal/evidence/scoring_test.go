package evidence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, weight float64, verified bool) Item {
	t.Helper()
	item, err := NewItem(ItemSpec{
		Type:             ItemTypeDocument,
		Source:           Source{Kind: "doc", Reference: "ref-1"},
		Excerpt:          "excerpt",
		ConfidenceWeight: weight,
		Verified:         verified,
	}, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return item
}

// TestScore_Invariants validates the scoring contract: an empty set is 0
// and every score lands in [0,100].
func TestScore_Invariants(t *testing.T) {
	t.Run("empty item set scores zero", func(t *testing.T) {
		assert.Equal(t, 0, Score(nil))
		assert.Equal(t, 0, Score([]Item{}))
	})

	t.Run("score is always in range", func(t *testing.T) {
		sets := [][]Item{
			{mustItem(t, 0, false)},
			{mustItem(t, 1, true)},
			{mustItem(t, 1, true), mustItem(t, 1, true), mustItem(t, 1, true)},
			{mustItem(t, 0.2, false), mustItem(t, 0.9, true)},
			{mustItem(t, 0.5, false), mustItem(t, 0.5, false), mustItem(t, 0.5, true)},
		}
		for _, items := range sets {
			score := Score(items)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	})

	t.Run("fully verified full-weight set scores 100", func(t *testing.T) {
		items := []Item{mustItem(t, 1, true), mustItem(t, 1, true)}
		assert.Equal(t, 100, Score(items))
	})
}

// TestScore_VerificationDominatesWeight pins the 0.6/0.4 split: two verified
// items with weights 0.9 and 0.85 plus one unverified at 0.8 give
// verified_ratio 2/3 and avg_weight 0.85, so the score rounds to 74.
func TestScore_VerificationDominatesWeight(t *testing.T) {
	items := []Item{
		mustItem(t, 0.9, true),
		mustItem(t, 0.85, true),
		mustItem(t, 0.8, false),
	}
	assert.Equal(t, 74, Score(items))
}

func TestTierFor(t *testing.T) {
	verifiedItems := func(n int) []Item {
		items := make([]Item, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, mustItem(t, 0.9, true))
		}
		return items
	}

	tests := []struct {
		name     string
		items    []Item
		score    int
		expected Tier
	}{
		{"high score with three verified reaches tier_3", verifiedItems(3), 85, Tier3},
		{"high score with two verified stays tier_2", verifiedItems(2), 85, Tier2},
		{"score below 85 never reaches tier_3", verifiedItems(5), 84, Tier2},
		{"score 60 with two verified is tier_2", verifiedItems(2), 60, Tier2},
		{"score 60 with one verified is tier_1", verifiedItems(1), 60, Tier1},
		{"score below 60 is tier_1 regardless of verification", verifiedItems(4), 59, Tier1},
		{"two of three verified at high weight stays tier_2", []Item{
			mustItem(t, 0.9, true),
			mustItem(t, 0.85, true),
			mustItem(t, 0.8, false),
		}, 74, Tier2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TierFor(tt.items, tt.score))
		})
	}
}

func TestTier_AtLeast(t *testing.T) {
	t.Run("tiers form a total order", func(t *testing.T) {
		assert.True(t, Tier3.AtLeast(Tier2))
		assert.True(t, Tier3.AtLeast(Tier1))
		assert.True(t, Tier2.AtLeast(Tier1))
		assert.True(t, Tier2.AtLeast(Tier2))
		assert.False(t, Tier1.AtLeast(Tier2))
		assert.False(t, Tier2.AtLeast(Tier3))
	})

	t.Run("invalid tier ranks below every valid tier", func(t *testing.T) {
		assert.False(t, Tier("tier_9").AtLeast(Tier1))
		assert.True(t, Tier1.AtLeast(Tier("tier_9")))
	})
}
