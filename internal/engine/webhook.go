package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
)

// Shared HMAC verification helpers that webhook handlers opt into. Both
// compare in constant time and fail closed when no secret is configured.

// VerifyHMACHex checks a hex-encoded HMAC-SHA256 signature over body.
func VerifyHMACHex(secret string, body []byte, signature string) error {
	if secret == "" {
		return fmt.Errorf("%w: webhook secret not configured", domainErrors.ErrSignatureInvalid)
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return domainErrors.ErrSignatureInvalid
	}
	return nil
}

// VerifyHMACBase64 checks a base64-encoded HMAC-SHA256 signature over body.
func VerifyHMACBase64(secret string, body []byte, signature string) error {
	if secret == "" {
		return fmt.Errorf("%w: webhook secret not configured", domainErrors.ErrSignatureInvalid)
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return domainErrors.ErrSignatureInvalid
	}
	return nil
}
