package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		resp.Code = "validation_error"
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	// Provider codes and retryability ride on the wrapper; the HTTP status
	// comes from the canonical kind underneath.
	var connectorErr *domainErrors.ConnectorError
	if errors.As(err, &connectorErr) {
		resp.ProviderCode = connectorErr.Code
		resp.Retryable = connectorErr.Retryable()
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp.Code = m.code
			writeJSON(w, m.status, resp)
			return
		}
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	resp.Code = "internal_error"
	resp.Error = "internal server error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

func decodeAndValidate(r *http.Request, dst any) error {
	// An absent body reads as {}: flows whose fields are all optional (void,
	// full capture, full refund) accept a bare POST. Required fields still
	// fail below on the zero value.
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return domainErrors.NewValidationError(ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}
