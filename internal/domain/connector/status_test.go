package connector_test

import (
	"testing"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_Terminal(t *testing.T) {
	assert.True(t, connector.PaymentStatusCaptured.Terminal())
	assert.True(t, connector.PaymentStatusCharged.Terminal())
	assert.True(t, connector.PaymentStatusVoided.Terminal())
	assert.True(t, connector.PaymentStatusFailed.Terminal())

	assert.False(t, connector.PaymentStatusAuthorizing.Terminal())
	assert.False(t, connector.PaymentStatusAuthorized.Terminal())
	assert.False(t, connector.PaymentStatusPending.Terminal())
}

func TestRefundStatus_Terminal(t *testing.T) {
	assert.True(t, connector.RefundStatusSuccess.Terminal())
	assert.True(t, connector.RefundStatusFailure.Terminal())
	assert.False(t, connector.RefundStatusPending.Terminal())
}
