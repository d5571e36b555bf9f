package worldpay

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/internal/engine"
	"github.com/cassiomorais/paybridge/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvironment = engine.Environment{BaseURL: "https://try.access.worldpay.com", MerchantID: "default"}

func testAuth(t *testing.T) connector.AuthType {
	t.Helper()
	auth, err := connector.NewSignatureAuth("merchant-key", "merchant-secret")
	require.NoError(t, err)
	return auth
}

func newEnvelope(t *testing.T, flow connector.Flow, amount connector.Amount, data connector.RequestData) *connector.Envelope {
	t.Helper()
	env, err := connector.NewEnvelope(flow, Name, testAuth(t), amount, data)
	require.NoError(t, err)
	return env
}

func authorizeEnvelope(t *testing.T) *connector.Envelope {
	t.Helper()
	return newEnvelope(t, connector.FlowAuthorize,
		connector.Amount{MinorUnits: 2500, Currency: "GBP"},
		connector.PaymentData(connector.PaymentRequest{
			Method: connector.CardMethod(connector.Card{
				Number: "4444333322221111", ExpMonth: "05", ExpYear: "2030", CVC: "737", HolderName: "J Doe",
			}),
			Reference:            "order-abc",
			CaptureAutomatically: true,
		}))
}

func TestHeaders_BasicAuth(t *testing.T) {
	a := NewAdapter()
	env := authorizeEnvelope(t)

	headers, err := a.Headers(env)
	require.NoError(t, err)
	require.Len(t, headers, 3)

	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("merchant-key:merchant-secret"))
	assert.Equal(t, "Authorization", headers[0].Name)
	assert.Equal(t, expected, headers[0].Value)
	assert.True(t, headers[0].Sensitive)
	assert.Equal(t, apiVersion, headers[2].Value)
}

func TestHeaders_WrongCredentialShape(t *testing.T) {
	a := NewAdapter()
	auth, err := connector.NewAPIKeyAuth("lonely-key")
	require.NoError(t, err)

	env, err := connector.NewEnvelope(connector.FlowPaymentSync, Name, auth, connector.Amount{},
		connector.SyncData(connector.SyncRequest{TransactionID: "txn_1"}))
	require.NoError(t, err)

	_, err = a.Headers(env)
	assert.ErrorIs(t, err, domainErrors.ErrAuth)
}

func TestURL_PerFlowPaths(t *testing.T) {
	a := NewAdapter()

	tests := []struct {
		name string
		env  *connector.Envelope
		want string
	}{
		{
			"authorize",
			authorizeEnvelope(t),
			"https://try.access.worldpay.com/payments/authorizations",
		},
		{
			"capture",
			newEnvelope(t, connector.FlowCapture, connector.Amount{},
				connector.CaptureData(connector.CaptureRequest{TransactionID: "txn_1"})),
			"https://try.access.worldpay.com/payments/settlements/txn_1",
		},
		{
			"void",
			newEnvelope(t, connector.FlowVoid, connector.Amount{},
				connector.VoidData(connector.VoidRequest{TransactionID: "txn_1"})),
			"https://try.access.worldpay.com/payments/cancellations/txn_1",
		},
		{
			"refund",
			newEnvelope(t, connector.FlowRefund, connector.Amount{},
				connector.RefundData(connector.RefundRequest{TransactionID: "txn_1"})),
			"https://try.access.worldpay.com/payments/refunds/txn_1",
		},
		{
			"payment sync",
			newEnvelope(t, connector.FlowPaymentSync, connector.Amount{},
				connector.SyncData(connector.SyncRequest{TransactionID: "txn_1"})),
			"https://try.access.worldpay.com/payments/events/txn_1",
		},
		{
			"refund sync",
			newEnvelope(t, connector.FlowRefundSync, connector.Amount{},
				connector.SyncData(connector.SyncRequest{TransactionID: "txn_1", RefundID: "ref_9"})),
			"https://try.access.worldpay.com/payments/refunds/events/ref_9",
		},
		{
			"order",
			newEnvelope(t, connector.FlowCreateOrder, connector.Amount{MinorUnits: 100, Currency: "GBP"},
				connector.OrderData(connector.OrderRequest{Reference: "ord-1"})),
			"https://try.access.worldpay.com/orders",
		},
		{
			"session",
			newEnvelope(t, connector.FlowCreateSessionToken, connector.Amount{MinorUnits: 100, Currency: "GBP"},
				connector.SessionData(connector.SessionRequest{})),
			"https://try.access.worldpay.com/sessions",
		},
		{
			"mandate",
			newEnvelope(t, connector.FlowSetupMandate, connector.Amount{},
				connector.MandateData(connector.MandateRequest{
					Method:    connector.CardMethod(connector.Card{Number: "4444333322221111", ExpMonth: "05", ExpYear: "2030"}),
					Reference: "tok-1",
				})),
			"https://try.access.worldpay.com/tokens",
		},
	}

	seen := make(map[string]string)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.URL(tt.env, testEnvironment)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			seen[tt.name] = got
		})
	}

	// Sibling flows of the same resource never share a path.
	assert.NotEqual(t, seen["capture"], seen["void"])
	assert.NotEqual(t, seen["refund"], seen["refund sync"])
}

func TestURL_MissingTransactionID(t *testing.T) {
	a := NewAdapter()
	env := newEnvelope(t, connector.FlowCapture, connector.Amount{},
		connector.CaptureData(connector.CaptureRequest{}))

	_, err := a.URL(env, testEnvironment)
	require.Error(t, err)
	var ve *domainErrors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestURL_DisputesNotImplemented(t *testing.T) {
	a := NewAdapter()
	env := newEnvelope(t, connector.FlowDefendDispute, connector.Amount{},
		connector.DisputeData(connector.DisputeRequest{DisputeID: "dsp_1"}))

	_, err := a.URL(env, testEnvironment)
	assert.ErrorIs(t, err, domainErrors.ErrNotImplemented)
}

func TestRequestBody_AuthorizeCard(t *testing.T) {
	a := NewAdapter()
	body, err := a.RequestBody(authorizeEnvelope(t))
	require.NoError(t, err)

	var req wpAuthorizeRequest
	require.NoError(t, json.Unmarshal(body.Payload, &req))
	assert.Equal(t, "order-abc", req.TransactionReference)
	assert.Equal(t, int64(2500), req.Instruction.Value.Amount)
	assert.Equal(t, "GBP", req.Instruction.Value.Currency)
	require.NotNil(t, req.Instruction.SettlementAuto)
	assert.True(t, req.Instruction.SettlementAuto.Auto)

	var instrument wpCardInstrument
	require.NoError(t, json.Unmarshal(req.Instruction.PaymentInstrument, &instrument))
	assert.Equal(t, "card/plain", instrument.Type)
	assert.Equal(t, "4444333322221111", instrument.CardNumber)
}

func TestRequestBody_FullRefundIsEmptyObject(t *testing.T) {
	a := NewAdapter()
	env := newEnvelope(t, connector.FlowRefund, connector.Amount{},
		connector.RefundData(connector.RefundRequest{TransactionID: "txn_1"}))

	body, err := a.RequestBody(env)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body.Payload))
	assert.Equal(t, "application/json", body.ContentType)
}

func TestRequestBody_PartialRefundCarriesValue(t *testing.T) {
	a := NewAdapter()
	partial := connector.Amount{MinorUnits: 700, Currency: "GBP"}
	env := newEnvelope(t, connector.FlowRefund, partial,
		connector.RefundData(connector.RefundRequest{TransactionID: "txn_1", Amount: &partial}))

	body, err := a.RequestBody(env)
	require.NoError(t, err)

	var req wpPartialValueRequest
	require.NoError(t, json.Unmarshal(body.Payload, &req))
	assert.Equal(t, int64(700), req.Value.Amount)
}

func TestRequestBody_VoidIsEmptyObject(t *testing.T) {
	a := NewAdapter()
	env := newEnvelope(t, connector.FlowVoid, connector.Amount{},
		connector.VoidData(connector.VoidRequest{TransactionID: "txn_1"}))

	body, err := a.RequestBody(env)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body.Payload))
}

func TestRequestBody_UnsupportedMethodFamily(t *testing.T) {
	a := NewAdapter()
	env := newEnvelope(t, connector.FlowAuthorize,
		connector.Amount{MinorUnits: 100, Currency: "GBP"},
		connector.PaymentData(connector.PaymentRequest{
			Method:    connector.BankTransferMethod(connector.BankTransfer{Variant: connector.BankTransferSEPA, IBAN: "DE89370400440532013000"}),
			Reference: "order-1",
		}))

	_, err := a.RequestBody(env)
	assert.ErrorIs(t, err, domainErrors.ErrNotImplemented)
}

func TestHandleResponse_Authorize(t *testing.T) {
	a := NewAdapter()
	env := authorizeEnvelope(t)

	raw := &transport.Response{
		StatusCode: http.StatusCreated,
		Body: []byte(`{
			"outcome": "authorized",
			"_links": {"self": {"href": "https://try.access.worldpay.com/payments/authorizations/txn_777"}}
		}`),
	}
	require.NoError(t, a.HandleResponse(env, raw))

	rd, ok := env.Response()
	require.True(t, ok)
	payload, ok := rd.Payment()
	require.True(t, ok)
	assert.Equal(t, connector.PaymentStatusAuthorized, payload.Status)
	assert.Equal(t, "authorized", payload.RawStatus)

	id, ok := payload.ID.Value()
	require.True(t, ok)
	assert.Equal(t, "txn_777", id)
}

func TestHandleResponse_MissingOutcomeIsSchemaMismatch(t *testing.T) {
	a := NewAdapter()
	env := authorizeEnvelope(t)

	raw := &transport.Response{StatusCode: http.StatusCreated, Body: []byte(`{"id": "txn_1"}`)}
	err := a.HandleResponse(env, raw)
	assert.ErrorIs(t, err, domainErrors.ErrSchemaMismatch)

	_, ok := env.Response()
	assert.False(t, ok)
}

func TestHandleResponse_RefundPending(t *testing.T) {
	a := NewAdapter()
	env := newEnvelope(t, connector.FlowRefund, connector.Amount{},
		connector.RefundData(connector.RefundRequest{TransactionID: "txn_1"}))

	raw := &transport.Response{
		StatusCode: http.StatusAccepted,
		Body: []byte(`{
			"outcome": "sentForRefund",
			"_links": {"self": {"href": "https://try.access.worldpay.com/payments/refunds/ref_55"}}
		}`),
	}
	require.NoError(t, a.HandleResponse(env, raw))

	rd, ok := env.Response()
	require.True(t, ok)
	payload, ok := rd.Refund()
	require.True(t, ok)
	assert.Equal(t, connector.RefundStatusPending, payload.Status)
	assert.Equal(t, "sentForRefund", payload.RawStatus)

	id, _ := payload.ID.Value()
	assert.Equal(t, "ref_55", id)
}

func TestHandleResponse_RefundSyncTerminal(t *testing.T) {
	a := NewAdapter()
	env := newEnvelope(t, connector.FlowRefundSync, connector.Amount{},
		connector.SyncData(connector.SyncRequest{TransactionID: "txn_1", RefundID: "ref_55"}))

	raw := &transport.Response{StatusCode: http.StatusOK, Body: []byte(`{"lastEvent": "refunded"}`)}
	require.NoError(t, a.HandleResponse(env, raw))

	rd, _ := env.Response()
	payload, ok := rd.Refund()
	require.True(t, ok)
	assert.Equal(t, connector.RefundStatusSuccess, payload.Status)
	assert.True(t, payload.Status.Terminal())
}

func TestHandleResponse_PaymentSyncUnknownEventStaysPending(t *testing.T) {
	a := NewAdapter()
	env := newEnvelope(t, connector.FlowPaymentSync, connector.Amount{},
		connector.SyncData(connector.SyncRequest{TransactionID: "txn_1"}))

	raw := &transport.Response{StatusCode: http.StatusOK, Body: []byte(`{"lastEvent": "somethingNovel"}`)}
	require.NoError(t, a.HandleResponse(env, raw))

	rd, _ := env.Response()
	payload, _ := rd.Payment()
	assert.Equal(t, connector.PaymentStatusPending, payload.Status)
	assert.Equal(t, "somethingNovel", payload.RawStatus)
}

func TestHandleResponse_SessionToken(t *testing.T) {
	a := NewAdapter()
	env := newEnvelope(t, connector.FlowCreateSessionToken,
		connector.Amount{MinorUnits: 100, Currency: "GBP"},
		connector.SessionData(connector.SessionRequest{}))

	raw := &transport.Response{StatusCode: http.StatusCreated, Body: []byte(`{"token": "sess_abc"}`)}
	require.NoError(t, a.HandleResponse(env, raw))

	rd, _ := env.Response()
	payload, _ := rd.Payment()
	assert.Equal(t, "sess_abc", payload.SessionToken)
}

func TestHandleResponse_Mandate(t *testing.T) {
	a := NewAdapter()
	env := newEnvelope(t, connector.FlowSetupMandate, connector.Amount{},
		connector.MandateData(connector.MandateRequest{
			Method:    connector.CardMethod(connector.Card{Number: "4444333322221111", ExpMonth: "05", ExpYear: "2030"}),
			Reference: "tok-1",
		}))

	raw := &transport.Response{StatusCode: http.StatusCreated, Body: []byte(`{"tokenId": "tok_999"}`)}
	require.NoError(t, a.HandleResponse(env, raw))

	rd, _ := env.Response()
	payload, _ := rd.Payment()
	assert.Equal(t, "tok_999", payload.MandateRef)
}

func TestErrorResponse_RefusalShape(t *testing.T) {
	a := NewAdapter()
	raw := &transport.Response{
		StatusCode: http.StatusUnprocessableEntity,
		Body:       []byte(`{"refusalCode": "5", "refusalDescription": "card declined"}`),
	}

	er := a.ErrorResponse(raw)
	assert.Equal(t, "5", er.Code)
	assert.Equal(t, "card declined", er.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, er.HTTPStatus)
}

func TestErrorResponse_ErrorNameShape(t *testing.T) {
	a := NewAdapter()
	raw := &transport.Response{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"errorName": "bodyDoesNotMatchSchema", "message": "field missing"}`),
	}

	er := a.ErrorResponse(raw)
	assert.Equal(t, "bodyDoesNotMatchSchema", er.Code)
	assert.Equal(t, "field missing", er.Message)
}

func TestErrorResponse_UnparseableBody(t *testing.T) {
	a := NewAdapter()
	raw := &transport.Response{StatusCode: http.StatusBadGateway, Body: []byte(`<html>bad gateway</html>`)}

	er := a.ErrorResponse(raw)
	assert.Empty(t, er.Code)
	assert.NotEmpty(t, er.Message)
	assert.Equal(t, raw.Body, er.Raw)
}
