package engine_test

import (
	"testing"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refundMap = engine.RefundStatusMap{
	"sentForRefund": connector.RefundStatusPending,
	"refunded":      connector.RefundStatusSuccess,
	"refused":       connector.RefundStatusFailure,
}

func TestRefundStatusMap_Normalize(t *testing.T) {
	assert.Equal(t, connector.RefundStatusPending, refundMap.Normalize("sentForRefund"))
	assert.Equal(t, connector.RefundStatusSuccess, refundMap.Normalize("refunded"))
	assert.Equal(t, connector.RefundStatusFailure, refundMap.Normalize("refused"))
}

func TestRefundStatusMap_UnknownLiteralStaysPending(t *testing.T) {
	// Conservative default: an unseen literal is never guessed as terminal.
	assert.Equal(t, connector.RefundStatusPending, refundMap.Normalize("xyz"))
	assert.Equal(t, connector.RefundStatusPending, refundMap.Normalize(""))
}

func TestRefundStatusMap_Strict(t *testing.T) {
	s, err := refundMap.NormalizeStrict("refunded")
	require.NoError(t, err)
	assert.Equal(t, connector.RefundStatusSuccess, s)

	_, err = refundMap.NormalizeStrict("xyz")
	assert.ErrorIs(t, err, domainErrors.ErrUnmappedStatus)
}

func TestPaymentStatusMap_Normalize(t *testing.T) {
	m := engine.PaymentStatusMap{
		"authorized": connector.PaymentStatusAuthorized,
		"settled":    connector.PaymentStatusCaptured,
	}

	assert.Equal(t, connector.PaymentStatusAuthorized, m.Normalize("authorized"))
	assert.Equal(t, connector.PaymentStatusCaptured, m.Normalize("settled"))
	assert.Equal(t, connector.PaymentStatusPending, m.Normalize("somethingNew"))

	_, err := m.NormalizeStrict("somethingNew")
	assert.ErrorIs(t, err, domainErrors.ErrUnmappedStatus)
}

func TestDisputeStatusMap_Normalize(t *testing.T) {
	m := engine.DisputeStatusMap{"won": connector.DisputeStatusWon}

	assert.Equal(t, connector.DisputeStatusWon, m.Normalize("won"))
	assert.Equal(t, connector.DisputeStatusOpened, m.Normalize("unknown"))
}
