package connector_test

import (
	"testing"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardMethod(t *testing.T) {
	m := connector.CardMethod(connector.Card{Number: "4444333322221111", ExpMonth: "03", ExpYear: "2030", CVC: "737"})

	assert.Equal(t, connector.MethodCard, m.Kind())
	require.NoError(t, m.Validate())

	card, ok := m.Card()
	require.True(t, ok)
	assert.Equal(t, "4444333322221111", card.Number)

	// The other variants stay empty.
	_, ok = m.Wallet()
	assert.False(t, ok)
	_, ok = m.BankTransfer()
	assert.False(t, ok)
	_, ok = m.BuyNowPayLater()
	assert.False(t, ok)
}

func TestWalletMethod(t *testing.T) {
	m := connector.WalletMethod(connector.Wallet{Variant: connector.WalletApplePay, Token: "opaque-token"})

	assert.Equal(t, connector.MethodWallet, m.Kind())
	require.NoError(t, m.Validate())

	w, ok := m.Wallet()
	require.True(t, ok)
	assert.Equal(t, connector.WalletApplePay, w.Variant)
}

func TestMethodValidate_MissingDetails(t *testing.T) {
	assert.Error(t, connector.CardMethod(connector.Card{}).Validate())
	assert.Error(t, connector.WalletMethod(connector.Wallet{Variant: connector.WalletGooglePay}).Validate())
	assert.Error(t, connector.BuyNowPayLaterMethod(connector.BuyNowPayLater{Variant: connector.BNPLKlarna}).Validate())
	assert.Error(t, connector.PaymentMethodData{}.Validate())
}

func TestCard_Masked(t *testing.T) {
	card := connector.Card{Number: "4444333322221111"}
	assert.Equal(t, "************1111", card.Masked())

	short := connector.Card{Number: "123"}
	assert.Equal(t, "***", short.Masked())
}
