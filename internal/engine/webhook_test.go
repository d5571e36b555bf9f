package engine_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/internal/engine"
	"github.com/stretchr/testify/assert"
)

func signHex(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func signBase64(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyHMACHex(t *testing.T) {
	body := []byte(`{"event":"refund.ok"}`)

	assert.NoError(t, engine.VerifyHMACHex("whsec", body, signHex("whsec", body)))
	assert.ErrorIs(t, engine.VerifyHMACHex("whsec", body, signHex("wrong", body)), domainErrors.ErrSignatureInvalid)
	assert.ErrorIs(t, engine.VerifyHMACHex("whsec", body, ""), domainErrors.ErrSignatureInvalid)
}

func TestVerifyHMACBase64(t *testing.T) {
	body := []byte(`{"event":"refund.ok"}`)

	assert.NoError(t, engine.VerifyHMACBase64("whsec", body, signBase64("whsec", body)))
	assert.ErrorIs(t, engine.VerifyHMACBase64("whsec", body, signBase64("wrong", body)), domainErrors.ErrSignatureInvalid)
}

func TestVerifyHMAC_FailsClosedWithoutSecret(t *testing.T) {
	body := []byte(`{}`)

	assert.ErrorIs(t, engine.VerifyHMACHex("", body, signHex("", body)), domainErrors.ErrSignatureInvalid)
	assert.ErrorIs(t, engine.VerifyHMACBase64("", body, signBase64("", body)), domainErrors.ErrSignatureInvalid)
}

func TestVerifyHMAC_TamperedBody(t *testing.T) {
	body := []byte(`{"amount":100}`)
	sig := signBase64("whsec", body)

	tampered := []byte(`{"amount":999}`)
	assert.ErrorIs(t, engine.VerifyHMACBase64("whsec", tampered, sig), domainErrors.ErrSignatureInvalid)
}
