package engine

import (
	"fmt"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
)

// Status maps are defined per flow family and the types below keep them
// apart: a PaymentStatusMap cannot be handed to refund normalization and vice
// versa. Sharing one table between families is a correctness bug, so the
// compiler is made to reject it.

// PaymentStatusMap maps provider literals onto the payment attempt
// enumeration.
type PaymentStatusMap map[string]connector.PaymentStatus

// Normalize maps a provider literal conservatively: unknown literals are
// treated as still pending, never guessed as success or rejected.
func (m PaymentStatusMap) Normalize(literal string) connector.PaymentStatus {
	if s, ok := m[literal]; ok {
		return s
	}
	return connector.PaymentStatusPending
}

// NormalizeStrict is for providers whose status enumeration is documented as
// exhaustive: an unknown literal is a hard error.
func (m PaymentStatusMap) NormalizeStrict(literal string) (connector.PaymentStatus, error) {
	if s, ok := m[literal]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: payment status %q", domainErrors.ErrUnmappedStatus, literal)
}

// RefundStatusMap maps provider literals onto the refund enumeration.
type RefundStatusMap map[string]connector.RefundStatus

// Normalize maps a provider literal conservatively: unknown literals stay
// pending.
func (m RefundStatusMap) Normalize(literal string) connector.RefundStatus {
	if s, ok := m[literal]; ok {
		return s
	}
	return connector.RefundStatusPending
}

// NormalizeStrict rejects literals outside a documented-exhaustive
// enumeration.
func (m RefundStatusMap) NormalizeStrict(literal string) (connector.RefundStatus, error) {
	if s, ok := m[literal]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: refund status %q", domainErrors.ErrUnmappedStatus, literal)
}

// DisputeStatusMap maps provider literals onto the dispute enumeration.
type DisputeStatusMap map[string]connector.DisputeStatus

// Normalize maps a provider literal; unknown literals stay at opened, the
// non-terminal dispute state.
func (m DisputeStatusMap) Normalize(literal string) connector.DisputeStatus {
	if s, ok := m[literal]; ok {
		return s
	}
	return connector.DisputeStatusOpened
}
