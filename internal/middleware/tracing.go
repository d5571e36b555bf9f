package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Tracing instruments every request with an otelhttp server span. The span
// operation is named from chi's matched route pattern, so all calls to
// "POST /api/v1/providers/{provider}/payments" share one operation instead of
// one per provider and transaction id.
func Tracing() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operation := r.Method + " " + r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				operation = r.Method + " " + rctx.RoutePattern()
			}
			otelhttp.NewHandler(next, operation).ServeHTTP(w, r)
		})
	}
}
