package worldpay

import (
	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/cassiomorais/paybridge/internal/engine"
)

// Worldpay does not document its event enumerations as exhaustive, so both
// tables normalize conservatively: unknown literals stay pending.

var paymentStatuses = engine.PaymentStatusMap{
	"sentForAuthorization": connector.PaymentStatusAuthorizing,
	"authorized":           connector.PaymentStatusAuthorized,
	"charged":              connector.PaymentStatusCharged,
	"sentForSettlement":    connector.PaymentStatusPending,
	"settled":              connector.PaymentStatusCaptured,
	"settlementFailed":     connector.PaymentStatusFailed,
	"refused":              connector.PaymentStatusFailed,
	"error":                connector.PaymentStatusFailed,
	"expired":              connector.PaymentStatusFailed,
	"cancelled":            connector.PaymentStatusVoided,
}

var refundStatuses = engine.RefundStatusMap{
	"sentForRefund": connector.RefundStatusPending,
	"refunded":      connector.RefundStatusSuccess,
	"refundFailed":  connector.RefundStatusFailure,
	"refused":       connector.RefundStatusFailure,
	"failed":        connector.RefundStatusFailure,
}

// webhookEvents maps Worldpay notification types onto the canonical event
// vocabulary. Literals missing here fall through to EventUnrecognized in
// ParseEvent; deliveries are never dropped for being unmapped.
var webhookEvents = map[string]connector.EventType{
	"authorized":    connector.EventPaymentAuthorized,
	"settled":       connector.EventPaymentCaptured,
	"charged":       connector.EventPaymentCaptured,
	"refused":       connector.EventPaymentFailed,
	"error":         connector.EventPaymentFailed,
	"expired":       connector.EventPaymentFailed,
	"cancelled":     connector.EventPaymentVoided,
	"refunded":      connector.EventRefundSucceeded,
	"refundFailed":  connector.EventRefundFailed,
	"disputed":      connector.EventDisputeOpened,
	"disputeWon":    connector.EventDisputeWon,
	"disputeLost":   connector.EventDisputeLost,
	"tokenDeleted":  connector.EventMandateRevoked,
}
