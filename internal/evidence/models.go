// Package evidence implements the evidence model: immutable evidence items,
// the aggregated evidence report, and the scoring/tiering functions that
// turn item-level trust into a single confidence score.
package evidence

import (
	"strings"
	"time"

	"custos/pkg/domain"
	dErrors "custos/pkg/domain-errors"
	pstrings "custos/pkg/platform/strings"
)

// ItemType classifies where a piece of evidence came from.
type ItemType string

const (
	ItemTypeDocument          ItemType = "document"
	ItemTypeUserInput         ItemType = "user_input"
	ItemTypeExternalSource    ItemType = "external_source"
	ItemTypeSystemObservation ItemType = "system_observation"
)

// validItemTypes is the single source of truth for valid item types.
var validItemTypes = map[ItemType]bool{
	ItemTypeDocument:          true,
	ItemTypeUserInput:         true,
	ItemTypeExternalSource:    true,
	ItemTypeSystemObservation: true,
}

// ParseItemType constructs an ItemType from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseItemType(s string) (ItemType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "item type cannot be empty")
	}
	t := ItemType(s)
	if !t.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid item type %q", s)
	}
	return t, nil
}

// IsValid checks if the item type is one of the supported enum values.
func (t ItemType) IsValid() bool {
	return validItemTypes[t]
}

// String returns the string representation.
func (t ItemType) String() string {
	return string(t)
}

// Tier is the coarse evidence quality band derived from a report's score
// and verified-item count. Tiers form a total order: tier_1 < tier_2 < tier_3.
type Tier string

const (
	Tier1 Tier = "tier_1"
	Tier2 Tier = "tier_2"
	Tier3 Tier = "tier_3"
)

// tierRank backs the total order over tiers.
var tierRank = map[Tier]int{
	Tier1: 1,
	Tier2: 2,
	Tier3: 3,
}

// IsValid checks if the tier is one of the supported enum values.
func (t Tier) IsValid() bool {
	_, ok := tierRank[t]
	return ok
}

// AtLeast reports whether t ranks at or above other in the tier order.
// An invalid tier ranks below every valid one.
func (t Tier) AtLeast(other Tier) bool {
	return tierRank[t] >= tierRank[other]
}

// String returns the string representation.
func (t Tier) String() string {
	return string(t)
}

// Source records where an evidence item's content was obtained.
type Source struct {
	Kind      string `json:"kind"`
	Reference string `json:"reference"`
}

// Item is a single piece of evidence. Immutable once created: there is no
// mutation API, and every aggregate that holds items treats them as values.
type Item struct {
	ID               domain.EvidenceItemID `json:"id"`
	Type             ItemType              `json:"type"`
	Source           Source                `json:"source"`
	Excerpt          string                `json:"excerpt"`
	ConfidenceWeight float64               `json:"confidence_weight"`
	Verified         bool                  `json:"verified"`
	Timestamp        time.Time             `json:"timestamp"`
}

// ItemSpec carries the caller-supplied fields for a new item.
type ItemSpec struct {
	Type             ItemType
	Source           Source
	Excerpt          string
	ConfidenceWeight float64
	Verified         bool
}

// NewItem validates the spec and constructs an immutable evidence item
// stamped with the given creation instant.
//
// Errors: CodeValidation when a field fails its shape or range check.
func NewItem(spec ItemSpec, now time.Time) (Item, error) {
	if !spec.Type.IsValid() {
		return Item{}, dErrors.Newf(dErrors.CodeValidation, "invalid item type %q", spec.Type)
	}
	if strings.TrimSpace(spec.Source.Kind) == "" {
		return Item{}, dErrors.New(dErrors.CodeValidation, "source kind is required")
	}
	if strings.TrimSpace(spec.Source.Reference) == "" {
		return Item{}, dErrors.New(dErrors.CodeValidation, "source reference is required")
	}
	if strings.TrimSpace(spec.Excerpt) == "" {
		return Item{}, dErrors.New(dErrors.CodeValidation, "excerpt is required")
	}
	// Positive-form range check so NaN is rejected too.
	if !(spec.ConfidenceWeight >= 0 && spec.ConfidenceWeight <= 1) {
		return Item{}, dErrors.Newf(dErrors.CodeValidation,
			"confidence_weight must be in [0,1], got %v", spec.ConfidenceWeight)
	}

	return Item{
		ID:               domain.NewEvidenceItemID(),
		Type:             spec.Type,
		Source:           spec.Source,
		Excerpt:          spec.Excerpt,
		ConfidenceWeight: spec.ConfidenceWeight,
		Verified:         spec.Verified,
		Timestamp:        now,
	}, nil
}

// Report aggregates evidence items into a scored, tiered summary.
//
// Invariants:
//   - Items is non-empty
//   - ConfidenceScore and Tier are derived from Items at creation time and
//     stay internally consistent with them
//   - the report is immutable after construction; no mutation API exists
type Report struct {
	ID              domain.EvidenceReportID `json:"id"`
	Items           []Item                  `json:"items"`
	CoverageSummary string                  `json:"coverage_summary"`
	ConfidenceScore int                     `json:"confidence_score"`
	Tier            Tier                    `json:"evidence_tier"`
	Limitations     []string                `json:"limitations"`
	Assumptions     []string                `json:"assumptions"`
	CreatedAt       time.Time               `json:"created_at"`
}

// ReportSpec carries the caller-supplied fields for a new report.
type ReportSpec struct {
	Items           []Item
	CoverageSummary string
	Limitations     []string
	Assumptions     []string
}

// NewReport validates the spec, derives the confidence score and tier from
// the item set, and constructs an immutable report. Limitation and
// assumption lists are deduplicated and trimmed; the item slice is copied
// so later caller mutations cannot reach into the report.
//
// Errors: CodeValidation when the spec fails a shape check or any item is
// itself invalid.
func NewReport(spec ReportSpec, now time.Time) (Report, error) {
	if len(spec.Items) == 0 {
		return Report{}, dErrors.New(dErrors.CodeValidation, "report requires at least one evidence item")
	}
	if strings.TrimSpace(spec.CoverageSummary) == "" {
		return Report{}, dErrors.New(dErrors.CodeValidation, "coverage_summary is required")
	}
	for i, item := range spec.Items {
		if result := ValidateItem(item); !result.Valid {
			return Report{}, dErrors.Newf(dErrors.CodeValidation,
				"items[%d]: %s", i, strings.Join(result.Errors, "; "))
		}
	}

	items := append([]Item(nil), spec.Items...)
	score := Score(items)

	return Report{
		ID:              domain.NewEvidenceReportID(),
		Items:           items,
		CoverageSummary: spec.CoverageSummary,
		ConfidenceScore: score,
		Tier:            TierFor(items, score),
		Limitations:     pstrings.DedupeAndTrim(spec.Limitations),
		Assumptions:     pstrings.DedupeAndTrim(spec.Assumptions),
		CreatedAt:       now,
	}, nil
}
