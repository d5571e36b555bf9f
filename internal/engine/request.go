package engine

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/cassiomorais/paybridge/internal/transport"
)

// defaultMethod returns the static method for a flow: creation flows write,
// sync flows read. Adapters override per flow when a provider deviates.
func defaultMethod(flow connector.Flow) string {
	if flow.IsSync() {
		return http.MethodGet
	}
	return http.MethodPost
}

// BuildRequest composes the adapter's outputs into one transport-ready
// descriptor. It never mutates the canonical request; adapter failures
// surface unchanged.
func BuildRequest(a Adapter, env *connector.Envelope, environment Environment, timeout time.Duration) (transport.Request, error) {
	headers, err := a.Headers(env)
	if err != nil {
		return transport.Request{}, err
	}

	url, err := a.URL(env, environment)
	if err != nil {
		return transport.Request{}, err
	}

	method, ok := a.Method(env.Flow)
	if !ok {
		method = defaultMethod(env.Flow)
	}

	var body transport.Body
	if method != http.MethodGet {
		body, err = a.RequestBody(env)
		if err != nil {
			return transport.Request{}, err
		}
	}

	return transport.Request{
		Method:  method,
		URL:     url,
		Headers: headers,
		Body:    body,
		Timeout: timeout,
	}, nil
}

// JoinURL joins a base URL with path segments, normalizing slashes.
func JoinURL(base string, segments ...string) string {
	b := strings.TrimRight(base, "/")
	for _, s := range segments {
		b += "/" + strings.Trim(s, "/")
	}
	return b
}

// JSONBody serializes v as a JSON request body.
func JSONBody(v any) (transport.Body, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return transport.Body{}, fmt.Errorf("marshal request body: %w", err)
	}
	return transport.Body{ContentType: "application/json", Payload: payload}, nil
}

// EmptyJSONBody returns an explicit empty-object body. Full refunds and other
// field-less write flows must serialize to `{}`, not to an omitted or null
// body.
func EmptyJSONBody() transport.Body {
	return transport.Body{ContentType: "application/json", Payload: []byte("{}")}
}
