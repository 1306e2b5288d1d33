package evidence

import (
	"fmt"
	"strings"
)

// Result is the outcome of a structural validation pass. Shape and range
// problems are reported here, never as a returned Go error, so callers can
// always inspect why a value is invalid.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateItem runs the structural checks for a single evidence item.
func ValidateItem(item Item) Result {
	var errs []string

	if item.ID.IsNil() {
		errs = append(errs, "id is required")
	}
	if !item.Type.IsValid() {
		errs = append(errs, fmt.Sprintf("type must be one of document, user_input, external_source, system_observation; got %q", item.Type))
	}
	if strings.TrimSpace(item.Source.Kind) == "" {
		errs = append(errs, "source kind is required")
	}
	if strings.TrimSpace(item.Source.Reference) == "" {
		errs = append(errs, "source reference is required")
	}
	if strings.TrimSpace(item.Excerpt) == "" {
		errs = append(errs, "excerpt is required")
	}
	// Positive-form range check so NaN is rejected too.
	if !(item.ConfidenceWeight >= 0 && item.ConfidenceWeight <= 1) {
		errs = append(errs, fmt.Sprintf("confidence_weight must be in [0,1], got %v", item.ConfidenceWeight))
	}
	if item.Timestamp.IsZero() {
		errs = append(errs, "timestamp is required")
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateReport runs the structural checks for a report, cascading
// per-item validation into the error list with index annotations.
func ValidateReport(report Report) Result {
	var errs []string

	if report.ID.IsNil() {
		errs = append(errs, "id is required")
	}
	if len(report.Items) == 0 {
		errs = append(errs, "items must be non-empty")
	}
	if strings.TrimSpace(report.CoverageSummary) == "" {
		errs = append(errs, "coverage_summary is required")
	}
	if report.ConfidenceScore < 0 || report.ConfidenceScore > 100 {
		errs = append(errs, fmt.Sprintf("confidence_score must be in [0,100], got %d", report.ConfidenceScore))
	} else if len(report.Items) > 0 {
		// Score and tier are derived values; a report that disagrees with
		// its own items has been modified after construction.
		if derived := Score(report.Items); report.ConfidenceScore != derived {
			errs = append(errs, fmt.Sprintf("confidence_score %d does not match the score %d derived from items", report.ConfidenceScore, derived))
		}
		if report.Tier.IsValid() {
			if derived := TierFor(report.Items, report.ConfidenceScore); report.Tier != derived {
				errs = append(errs, fmt.Sprintf("evidence_tier %s does not match the tier %s derived from items", report.Tier, derived))
			}
		}
	}
	if !report.Tier.IsValid() {
		errs = append(errs, fmt.Sprintf("evidence_tier must be one of tier_1, tier_2, tier_3; got %q", report.Tier))
	}
	if report.CreatedAt.IsZero() {
		errs = append(errs, "created_at is required")
	}

	for i, item := range report.Items {
		itemResult := ValidateItem(item)
		for _, itemErr := range itemResult.Errors {
			errs = append(errs, fmt.Sprintf("items[%d]: %s", i, itemErr))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
