package connector

import (
	"strings"

	"github.com/cassiomorais/paybridge/internal/domain/errors"
)

// MethodKind tags the populated variant of a PaymentMethodData value.
type MethodKind string

const (
	MethodCard           MethodKind = "card"
	MethodWallet         MethodKind = "wallet"
	MethodBankTransfer   MethodKind = "bank_transfer"
	MethodBuyNowPayLater MethodKind = "buy_now_pay_later"
)

// WalletVariant identifies the wallet scheme behind a wallet payment.
type WalletVariant string

const (
	WalletApplePay  WalletVariant = "apple_pay"
	WalletGooglePay WalletVariant = "google_pay"
	WalletPayPal    WalletVariant = "paypal"
)

// BankTransferVariant identifies the bank transfer scheme.
type BankTransferVariant string

const (
	BankTransferSEPA BankTransferVariant = "sepa"
	BankTransferACH  BankTransferVariant = "ach"
	BankTransferBACS BankTransferVariant = "bacs"
)

// BNPLVariant identifies the buy-now-pay-later issuer.
type BNPLVariant string

const (
	BNPLKlarna    BNPLVariant = "klarna"
	BNPLAfterpay  BNPLVariant = "afterpay"
	BNPLAffirm    BNPLVariant = "affirm"
)

// Card carries raw card details. Never log the Number or CVC.
type Card struct {
	Number     string
	ExpMonth   string
	ExpYear    string
	CVC        string
	HolderName string
}

// Masked returns the card number with all but the last four digits hidden.
func (c Card) Masked() string {
	if len(c.Number) <= 4 {
		return strings.Repeat("*", len(c.Number))
	}
	return strings.Repeat("*", len(c.Number)-4) + c.Number[len(c.Number)-4:]
}

// Wallet carries an opaque wallet token for the given variant.
type Wallet struct {
	Variant WalletVariant
	Token   string
}

// BankTransfer carries account details for a bank transfer variant.
type BankTransfer struct {
	Variant       BankTransferVariant
	IBAN          string
	AccountNumber string
	RoutingNumber string
	HolderName    string
}

// BuyNowPayLater carries the issuer variant and checkout token.
type BuyNowPayLater struct {
	Variant BNPLVariant
	Token   string
}

// PaymentMethodData is a tagged union over payment method families. Exactly
// one variant is populated; construct values through the *Method functions so
// the tag and the variant cannot drift apart.
type PaymentMethodData struct {
	kind         MethodKind
	card         *Card
	wallet       *Wallet
	bankTransfer *BankTransfer
	bnpl         *BuyNowPayLater
}

func CardMethod(c Card) PaymentMethodData {
	return PaymentMethodData{kind: MethodCard, card: &c}
}

func WalletMethod(w Wallet) PaymentMethodData {
	return PaymentMethodData{kind: MethodWallet, wallet: &w}
}

func BankTransferMethod(b BankTransfer) PaymentMethodData {
	return PaymentMethodData{kind: MethodBankTransfer, bankTransfer: &b}
}

func BuyNowPayLaterMethod(b BuyNowPayLater) PaymentMethodData {
	return PaymentMethodData{kind: MethodBuyNowPayLater, bnpl: &b}
}

// Kind returns the populated variant tag.
func (m PaymentMethodData) Kind() MethodKind { return m.kind }

// Card returns the card variant, if populated.
func (m PaymentMethodData) Card() (Card, bool) {
	if m.card == nil {
		return Card{}, false
	}
	return *m.card, true
}

// Wallet returns the wallet variant, if populated.
func (m PaymentMethodData) Wallet() (Wallet, bool) {
	if m.wallet == nil {
		return Wallet{}, false
	}
	return *m.wallet, true
}

// BankTransfer returns the bank transfer variant, if populated.
func (m PaymentMethodData) BankTransfer() (BankTransfer, bool) {
	if m.bankTransfer == nil {
		return BankTransfer{}, false
	}
	return *m.bankTransfer, true
}

// BuyNowPayLater returns the BNPL variant, if populated.
func (m PaymentMethodData) BuyNowPayLater() (BuyNowPayLater, bool) {
	if m.bnpl == nil {
		return BuyNowPayLater{}, false
	}
	return *m.bnpl, true
}

// Validate checks that exactly one variant is populated and matches the tag.
func (m PaymentMethodData) Validate() error {
	switch m.kind {
	case MethodCard:
		if m.card == nil || m.card.Number == "" {
			return errors.NewValidationError("payment_method", "card details missing")
		}
	case MethodWallet:
		if m.wallet == nil || m.wallet.Token == "" {
			return errors.NewValidationError("payment_method", "wallet token missing")
		}
	case MethodBankTransfer:
		if m.bankTransfer == nil {
			return errors.NewValidationError("payment_method", "bank transfer details missing")
		}
	case MethodBuyNowPayLater:
		if m.bnpl == nil || m.bnpl.Token == "" {
			return errors.NewValidationError("payment_method", "bnpl token missing")
		}
	default:
		return errors.NewValidationError("payment_method", "unknown payment method kind")
	}
	return nil
}
