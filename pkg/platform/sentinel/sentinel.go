package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The audit log and other
// infrastructure layers return these (optionally wrapped) so services can
// translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrChainBroken: audit hash chain failed verification
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrChainBroken  = errors.New("audit chain broken")
)
