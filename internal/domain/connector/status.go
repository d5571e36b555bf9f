package connector

// The status enumerations below are deliberately separate types per flow
// family. A provider literal is only ever normalized into the enumeration of
// the family that issued the call; reusing one family's values for another is
// rejected by the compiler.

// PaymentStatus is the canonical payment attempt lifecycle.
type PaymentStatus string

const (
	PaymentStatusAuthorizing PaymentStatus = "authorizing"
	PaymentStatusAuthorized  PaymentStatus = "authorized"
	PaymentStatusCharged     PaymentStatus = "charged"
	PaymentStatusCaptured    PaymentStatus = "captured"
	PaymentStatusPending     PaymentStatus = "pending"
	PaymentStatusVoided      PaymentStatus = "voided"
	PaymentStatusFailed      PaymentStatus = "failed"
)

// Terminal reports whether the attempt can no longer change state.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusCaptured, PaymentStatusCharged, PaymentStatusVoided, PaymentStatusFailed:
		return true
	}
	return false
}

// RefundStatus is the canonical refund lifecycle. Pending is the only
// non-absorbing state.
type RefundStatus string

const (
	RefundStatusPending RefundStatus = "pending"
	RefundStatusSuccess RefundStatus = "success"
	RefundStatusFailure RefundStatus = "failure"
)

// Terminal reports whether the refund can no longer change state.
func (s RefundStatus) Terminal() bool {
	return s == RefundStatusSuccess || s == RefundStatusFailure
}

// DisputeStatus is the canonical dispute lifecycle.
type DisputeStatus string

const (
	DisputeStatusOpened     DisputeStatus = "opened"
	DisputeStatusChallenged DisputeStatus = "challenged"
	DisputeStatusWon        DisputeStatus = "won"
	DisputeStatusLost       DisputeStatus = "lost"
)

// MandateStatus is the canonical mandate lifecycle.
type MandateStatus string

const (
	MandateStatusPending MandateStatus = "pending"
	MandateStatusActive  MandateStatus = "active"
	MandateStatusRevoked MandateStatus = "revoked"
)
