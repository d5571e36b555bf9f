package testutil

import (
	"github.com/cassiomorais/paybridge/internal/domain/connector"
)

// TestAuth returns a signature credential bundle usable with any stub.
func TestAuth() connector.AuthType {
	auth, err := connector.NewSignatureAuth("test-key", "test-secret")
	if err != nil {
		panic(err)
	}
	return auth
}

// TestCard is a syntactically valid card for request fixtures.
func TestCard() connector.Card {
	return connector.Card{
		Number:     "4444333322221111",
		ExpMonth:   "12",
		ExpYear:    "2030",
		CVC:        "737",
		HolderName: "J Doe",
	}
}

// NewAuthorizeEnvelope builds a card authorization envelope for the given
// provider.
func NewAuthorizeEnvelope(provider string, amountMinor int64, currency string) *connector.Envelope {
	env, err := connector.NewEnvelope(
		connector.FlowAuthorize,
		provider,
		TestAuth(),
		connector.Amount{MinorUnits: amountMinor, Currency: currency},
		connector.PaymentData(connector.PaymentRequest{
			Method:    connector.CardMethod(TestCard()),
			Reference: "order-1",
		}),
	)
	if err != nil {
		panic(err)
	}
	return env
}

// NewRefundEnvelope builds a partial refund envelope. Pass 0 for a full
// refund.
func NewRefundEnvelope(provider, transactionID string, amountMinor int64, currency string) *connector.Envelope {
	req := connector.RefundRequest{TransactionID: transactionID}
	var amount connector.Amount
	if amountMinor > 0 {
		amount = connector.Amount{MinorUnits: amountMinor, Currency: currency}
		req.Amount = &amount
	}
	env, err := connector.NewEnvelope(connector.FlowRefund, provider, TestAuth(), amount, connector.RefundData(req))
	if err != nil {
		panic(err)
	}
	return env
}

// NewSyncEnvelope builds a payment or refund sync envelope depending on
// whether refundID is set.
func NewSyncEnvelope(provider, transactionID, refundID string) *connector.Envelope {
	flow := connector.FlowPaymentSync
	if refundID != "" {
		flow = connector.FlowRefundSync
	}
	env, err := connector.NewEnvelope(flow, provider, TestAuth(), connector.Amount{}, connector.SyncData(connector.SyncRequest{
		TransactionID: transactionID,
		RefundID:      refundID,
	}))
	if err != nil {
		panic(err)
	}
	return env
}
