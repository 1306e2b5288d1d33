package evidence

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation reports shape problems as a result object, never as an error,
// so these tests assert on the accumulated error list.

func TestValidateItem(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("well-formed item passes", func(t *testing.T) {
		item, err := NewItem(ItemSpec{
			Type:             ItemTypeDocument,
			Source:           Source{Kind: "doc", Reference: "d1"},
			Excerpt:          "excerpt",
			ConfidenceWeight: 0.5,
		}, now)
		require.NoError(t, err)

		result := ValidateItem(item)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("zero value accumulates every failure", func(t *testing.T) {
		result := ValidateItem(Item{})
		assert.False(t, result.Valid)
		assert.GreaterOrEqual(t, len(result.Errors), 5)
	})

	t.Run("out-of-range weight is reported", func(t *testing.T) {
		for _, weight := range []float64{1.5, -0.5, math.NaN()} {
			item, err := NewItem(ItemSpec{
				Type:             ItemTypeDocument,
				Source:           Source{Kind: "doc", Reference: "d1"},
				Excerpt:          "excerpt",
				ConfidenceWeight: 0.5,
			}, now)
			require.NoError(t, err)
			item.ConfidenceWeight = weight

			result := ValidateItem(item)
			assert.False(t, result.Valid, "weight %v", weight)
			assert.Contains(t, result.Errors[0], "confidence_weight")
		}
	})
}

func TestValidateReport(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	buildReport := func(t *testing.T) Report {
		t.Helper()
		item, err := NewItem(ItemSpec{
			Type:             ItemTypeDocument,
			Source:           Source{Kind: "doc", Reference: "d1"},
			Excerpt:          "excerpt",
			ConfidenceWeight: 0.9,
			Verified:         true,
		}, now)
		require.NoError(t, err)

		report, err := NewReport(ReportSpec{
			Items:           []Item{item},
			CoverageSummary: "summary",
		}, now)
		require.NoError(t, err)
		return report
	}

	t.Run("well-formed report passes", func(t *testing.T) {
		result := ValidateReport(buildReport(t))
		assert.True(t, result.Valid)
	})

	t.Run("item failures carry index annotations", func(t *testing.T) {
		report := buildReport(t)
		report.Items[0].Excerpt = ""

		result := ValidateReport(report)
		require.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "items[0]:")
	})

	t.Run("score edited after construction is reported", func(t *testing.T) {
		report := buildReport(t)
		report.ConfidenceScore = 12

		result := ValidateReport(report)
		require.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "does not match the score")
	})

	t.Run("out-of-range score and bad tier are both reported", func(t *testing.T) {
		report := buildReport(t)
		report.ConfidenceScore = 140
		report.Tier = "tier_9"

		result := ValidateReport(report)
		require.False(t, result.Valid)
		assert.Len(t, result.Errors, 2)
	})
}
