// Package domain holds value types shared across kernel modules: typed
// entity identifiers and their trust-boundary constructors.
//
// IDs wrap uuid.UUID as distinct named types so the compiler rejects
// cross-type assignment (an EvidenceReportID can never be passed where a
// FrameID is expected). Construct via New* for fresh entities or Parse*
// when crossing a trust boundary; direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "custos/pkg/domain-errors"
)

// EvidenceItemID identifies a single evidence item.
type EvidenceItemID uuid.UUID

// EvidenceReportID identifies an aggregated evidence report.
type EvidenceReportID uuid.UUID

// FrameID identifies a decision frame.
type FrameID uuid.UUID

// NewEvidenceItemID returns a fresh random item ID.
func NewEvidenceItemID() EvidenceItemID { return EvidenceItemID(uuid.New()) }

// NewEvidenceReportID returns a fresh random report ID.
func NewEvidenceReportID() EvidenceReportID { return EvidenceReportID(uuid.New()) }

// NewFrameID returns a fresh random frame ID.
func NewFrameID() FrameID { return FrameID(uuid.New()) }

// ParseEvidenceItemID parses external input into an item ID.
func ParseEvidenceItemID(s string) (EvidenceItemID, error) {
	u, err := parseUUID(s, "evidence_item_id")
	return EvidenceItemID(u), err
}

// ParseEvidenceReportID parses external input into a report ID.
func ParseEvidenceReportID(s string) (EvidenceReportID, error) {
	u, err := parseUUID(s, "evidence_report_id")
	return EvidenceReportID(u), err
}

// ParseFrameID parses external input into a frame ID.
func ParseFrameID(s string) (FrameID, error) {
	u, err := parseUUID(s, "frame_id")
	return FrameID(u), err
}

func (id EvidenceItemID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id EvidenceReportID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id FrameID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }

func (id EvidenceItemID) String() string   { return uuid.UUID(id).String() }
func (id EvidenceReportID) String() string { return uuid.UUID(id).String() }
func (id FrameID) String() string          { return uuid.UUID(id).String() }

// MarshalText/UnmarshalText keep the JSON form a plain UUID string rather
// than the uuid.UUID byte-array encoding.
func (id EvidenceItemID) MarshalText() ([]byte, error) { return marshalID(uuid.UUID(id)) }
func (id EvidenceReportID) MarshalText() ([]byte, error) {
	return marshalID(uuid.UUID(id))
}
func (id FrameID) MarshalText() ([]byte, error) { return marshalID(uuid.UUID(id)) }

func (id *EvidenceItemID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "evidence_item_id")
	if err != nil {
		return err
	}
	*id = EvidenceItemID(u)
	return nil
}

func (id *EvidenceReportID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "evidence_report_id")
	if err != nil {
		return err
	}
	*id = EvidenceReportID(u)
	return nil
}

func (id *FrameID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "frame_id")
	if err != nil {
		return err
	}
	*id = FrameID(u)
	return nil
}

func marshalID(u uuid.UUID) ([]byte, error) {
	return []byte(u.String()), nil
}

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs.
func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be empty", field)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is not a valid UUID", field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be the nil UUID", field)
	}
	return u, nil
}
