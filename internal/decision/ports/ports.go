// Package ports declares the interfaces the governance service depends on,
// keeping the service mockable without importing concrete infrastructure.
package ports

import (
	"custos/pkg/platform/audit"
)

// AuditRecorder is the slice of the audit log the governance service needs:
// committing events and verifying chain continuity. *audit.Log satisfies it.
type AuditRecorder interface {
	Append(params audit.AppendParams) (audit.Event, error)
	VerifyChain() bool
}
