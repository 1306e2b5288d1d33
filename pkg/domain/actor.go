package domain

import (
	"strings"

	dErrors "custos/pkg/domain-errors"
)

// ActorID identifies the human (or system principal) that performed a
// governance action. Unlike entity IDs this is an opaque string: approver
// identifiers come from external identity systems and are not required to
// be UUIDs.
type ActorID string

// ParseActorID constructs an ActorID from external input, rejecting
// empty or whitespace-only values.
func ParseActorID(s string) (ActorID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "actor_id cannot be empty")
	}
	return ActorID(trimmed), nil
}

// IsEmpty reports whether the ID carries no identifier.
func (a ActorID) IsEmpty() bool {
	return strings.TrimSpace(string(a)) == ""
}

// String returns the string representation.
func (a ActorID) String() string {
	return string(a)
}
