package transport

import (
	"net/http"
	"time"
)

// Header is one outbound header. Sensitive headers carry real values on the
// wire but are masked wherever they are logged.
type Header struct {
	Name      string
	Value     string
	Sensitive bool
}

// LogValue returns the value safe for logging.
func (h Header) LogValue() string {
	if h.Sensitive {
		return "***"
	}
	return h.Value
}

// Body is the serialized request content. A zero Body means no body at all;
// an empty-object body is an explicit `{}` payload, not an absent one.
type Body struct {
	ContentType string
	Payload     []byte
}

// Empty reports whether the request carries no body.
func (b Body) Empty() bool { return len(b.Payload) == 0 }

// Request is the transport-ready descriptor produced by the request builder.
type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    Body
	Timeout time.Duration
}

// Response is the raw provider response handed back to the engine. It is
// opaque bytes until the provider's response transformer runs.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Success reports whether the provider answered with a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
