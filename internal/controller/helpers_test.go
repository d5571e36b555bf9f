package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteError_ValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, domainErrors.NewValidationError("amount", "must be positive"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "validation_error", resp.Code)
	assert.Contains(t, resp.Error, "amount")
}

func TestWriteError_SentinelMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domainErrors.ErrUnknownProvider, http.StatusNotFound, "unknown_provider"},
		{domainErrors.ErrProviderDeclined, http.StatusUnprocessableEntity, "provider_declined"},
		{domainErrors.ErrNotImplemented, http.StatusNotImplemented, "not_implemented"},
		{domainErrors.ErrSignatureInvalid, http.StatusUnauthorized, "invalid_signature"},
		{domainErrors.ErrAuth, http.StatusBadGateway, "provider_auth_rejected"},
		{domainErrors.ErrNetwork, http.StatusBadGateway, "provider_unreachable"},
		{domainErrors.ErrSchemaMismatch, http.StatusBadGateway, "schema_mismatch"},
		{domainErrors.ErrUnmappedStatus, http.StatusBadGateway, "unmapped_status"},
		{domainErrors.ErrProviderDisabled, http.StatusServiceUnavailable, "provider_disabled"},
		{domainErrors.ErrInvalidFlow, http.StatusBadRequest, "invalid_flow"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeErrorResponse(t, rec).Code)
		})
	}
}

func TestWriteError_ConnectorErrorCarriesProviderCode(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, domainErrors.NewConnectorError("worldpay", "authorize", domainErrors.ErrProviderDeclined, "refused:5", "card declined"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "provider_declined", resp.Code)
	assert.Equal(t, "refused:5", resp.ProviderCode)
	assert.False(t, resp.Retryable)
}

func TestWriteError_NetworkErrorIsRetryable(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, domainErrors.NewConnectorError("worldpay", "capture", domainErrors.ErrNetwork, "", "connection reset"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "provider_unreachable", resp.Code)
	assert.True(t, resp.Retryable)
}

func TestWriteError_UnknownErrorIsSanitized(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pgx: connection refused on 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "internal_error", resp.Code)
	assert.NotContains(t, resp.Error, "10.0.0.5")
}

func TestDecodeAndValidate_InvalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))

	var dst VoidRequest
	err := decodeAndValidate(r, &dst)

	var validationErr *domainErrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestDecodeAndValidate_MissingRequiredField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"currency":"GBP"}`))

	var dst AmountRequest
	err := decodeAndValidate(r, &dst)

	var validationErr *domainErrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "MinorUnits")
}

func TestDecodeAndValidate_Valid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"minor_units":1050,"currency":"GBP"}`))

	var dst AmountRequest
	require.NoError(t, decodeAndValidate(r, &dst))
	assert.Equal(t, int64(1050), dst.MinorUnits)
}

func TestDecodeAndValidate_EmptyBodyIsEmptyObject(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

	var dst VoidRequest
	require.NoError(t, decodeAndValidate(r, &dst))
	assert.Empty(t, dst.Reason)
}

func TestDecodeAndValidate_EmptyBodyStillValidatesRequired(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

	var dst AmountRequest
	var validationErr *domainErrors.ValidationError
	assert.ErrorAs(t, decodeAndValidate(r, &dst), &validationErr)
}
