package engine_test

import (
	"testing"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/cassiomorais/paybridge/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractID_DirectFieldWins(t *testing.T) {
	id := engine.ExtractID("txn_direct", []engine.Link{
		{Rel: "self", Href: "https://api.example.com/payments/txn_linked"},
	})

	v, ok := id.Value()
	require.True(t, ok)
	assert.Equal(t, "txn_direct", v)
}

func TestExtractID_LastPathSegmentOfLink(t *testing.T) {
	id := engine.ExtractID("", []engine.Link{
		{Rel: "self", Href: "https://api.example.com/payments/txn_123/refunds/456"},
	})

	v, ok := id.Value()
	require.True(t, ok)
	assert.Equal(t, "456", v)
}

func TestExtractID_PriorityOrderStable(t *testing.T) {
	links := []engine.Link{
		{Rel: "order", Href: "https://api.example.com/orders/ord_1"},
		{Rel: "payment", Href: "https://api.example.com/payments/pay_1"},
		{Rel: "self", Href: "https://api.example.com/payments/self_1"},
	}

	// self outranks the resource-specific relations regardless of slice order.
	id := engine.ExtractID("", links)
	v, _ := id.Value()
	assert.Equal(t, "self_1", v)

	// Same inputs, same answer.
	again := engine.ExtractID("", links)
	w, _ := again.Value()
	assert.Equal(t, v, w)
}

func TestExtractID_FallsThroughPriority(t *testing.T) {
	id := engine.ExtractID("", []engine.Link{
		{Rel: "order", Href: "https://api.example.com/orders/ord_9"},
		{Rel: "events", Href: "https://api.example.com/events/ev_1"},
	})

	v, ok := id.Value()
	require.True(t, ok)
	assert.Equal(t, "ord_9", v)
}

func TestExtractID_IgnoresQueryAndTrailingSlash(t *testing.T) {
	id := engine.ExtractID("", []engine.Link{
		{Rel: "self", Href: "https://api.example.com/payments/txn_5/?expand=events#frag"},
	})

	v, ok := id.Value()
	require.True(t, ok)
	assert.Equal(t, "txn_5", v)
}

func TestExtractID_NothingFound(t *testing.T) {
	id := engine.ExtractID("", []engine.Link{
		{Rel: "documentation", Href: "https://docs.example.com/errors"},
	})
	// documentation is not a known relation, so nothing is extracted even
	// though the href has segments.
	assert.Equal(t, connector.IDNone, engine.ExtractID("", nil).Kind())
	assert.Equal(t, connector.IDNone, id.Kind())
}
