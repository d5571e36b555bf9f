package connector

import (
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
)

// AuthKind tags the credential shape a provider expects.
type AuthKind string

const (
	AuthAPIKey      AuthKind = "api_key"
	AuthSignature   AuthKind = "signature"
	AuthCertificate AuthKind = "certificate"
)

// AuthType is an opaque credential bundle. Fields are unexported and the type
// implements Stringer and json.Marshaler so credentials cannot leak through
// logs or serialization. Construct through the New*Auth functions, which
// validate shape up front.
type AuthType struct {
	kind    AuthKind
	apiKey  string
	secret  string
	certRef string
}

// NewAPIKeyAuth builds a single-key credential bundle.
func NewAPIKeyAuth(apiKey string) (AuthType, error) {
	if apiKey == "" {
		return AuthType{}, domainErrors.NewConnectorError("", "", domainErrors.ErrAuth, "", "api key is empty")
	}
	return AuthType{kind: AuthAPIKey, apiKey: apiKey}, nil
}

// NewSignatureAuth builds a key+secret credential bundle for providers that
// sign requests.
func NewSignatureAuth(apiKey, secret string) (AuthType, error) {
	if apiKey == "" || secret == "" {
		return AuthType{}, domainErrors.NewConnectorError("", "", domainErrors.ErrAuth, "", "api key or secret is empty")
	}
	return AuthType{kind: AuthSignature, apiKey: apiKey, secret: secret}, nil
}

// NewCertificateAuth builds a credential bundle referencing a client
// certificate held by the transport collaborator.
func NewCertificateAuth(certRef string) (AuthType, error) {
	if certRef == "" {
		return AuthType{}, domainErrors.NewConnectorError("", "", domainErrors.ErrAuth, "", "certificate reference is empty")
	}
	return AuthType{kind: AuthCertificate, certRef: certRef}, nil
}

// Kind returns the credential shape.
func (a AuthType) Kind() AuthKind { return a.kind }

// APIKey returns the API key for api_key and signature bundles.
func (a AuthType) APIKey() string { return a.apiKey }

// Secret returns the signing secret for signature bundles.
func (a AuthType) Secret() string { return a.secret }

// CertificateRef returns the certificate reference for certificate bundles.
func (a AuthType) CertificateRef() string { return a.certRef }

// Empty reports whether the bundle was never constructed.
func (a AuthType) Empty() bool { return a.kind == "" }

func (a AuthType) String() string {
	return "AuthType(" + string(a.kind) + ", redacted)"
}

// MarshalJSON redacts the bundle; only the kind survives serialization.
func (a AuthType) MarshalJSON() ([]byte, error) {
	return []byte(`{"kind":"` + string(a.kind) + `","credentials":"[redacted]"}`), nil
}
