package engine

import (
	"fmt"
	"time"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/internal/transport"
	"github.com/sony/gobreaker/v2"
)

// ProviderSettings is the immutable per-provider runtime configuration:
// environment, credentials, webhook secret and call timeout. Assembled once
// at startup from the configuration collaborator.
type ProviderSettings struct {
	Environment   Environment
	Auth          connector.AuthType
	WebhookSecret string
	Timeout       time.Duration
}

// Registry holds the registered adapters with their settings and a circuit
// breaker per provider. Registration happens at startup; lookups afterwards
// are read-only and safe for concurrent use.
type Registry struct {
	adapters map[string]Adapter
	webhooks map[string]WebhookHandler
	breakers map[string]*gobreaker.CircuitBreaker[*transport.Response]
	settings map[string]ProviderSettings
}

func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
		webhooks: make(map[string]WebhookHandler),
		breakers: make(map[string]*gobreaker.CircuitBreaker[*transport.Response]),
		settings: make(map[string]ProviderSettings),
	}
}

// Register adds an adapter with its settings. Adapters that also implement
// WebhookHandler are registered for webhook handling in the same step.
func (r *Registry) Register(a Adapter, s ProviderSettings) {
	name := a.Name()
	r.adapters[name] = a
	r.settings[name] = s
	r.breakers[name] = gobreaker.NewCircuitBreaker[*transport.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
	})
	if wh, ok := a.(WebhookHandler); ok {
		r.webhooks[name] = wh
	}
}

// Get returns the adapter, settings and breaker for a provider.
func (r *Registry) Get(name string) (Adapter, ProviderSettings, *gobreaker.CircuitBreaker[*transport.Response], error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, ProviderSettings{}, nil, fmt.Errorf("%w: %q", domainErrors.ErrUnknownProvider, name)
	}
	return a, r.settings[name], r.breakers[name], nil
}

// Webhook returns the webhook handler and settings for a provider.
func (r *Registry) Webhook(name string) (WebhookHandler, ProviderSettings, error) {
	wh, ok := r.webhooks[name]
	if !ok {
		return nil, ProviderSettings{}, fmt.Errorf("%w: %q has no webhook handler", domainErrors.ErrUnknownProvider, name)
	}
	return wh, r.settings[name], nil
}

// Providers returns the registered provider names.
func (r *Registry) Providers() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	return names
}
