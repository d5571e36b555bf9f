package connector_test

import (
	"testing"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	"github.com/stretchr/testify/assert"
)

func TestConnectorTransactionID(t *testing.T) {
	id := connector.ConnectorTransactionID("txn_123")

	assert.Equal(t, connector.IDConnectorTransaction, id.Kind())
	assert.False(t, id.Empty())

	v, ok := id.Value()
	assert.True(t, ok)
	assert.Equal(t, "txn_123", v)
}

func TestEncodedDataID(t *testing.T) {
	id := connector.EncodedDataID("eyJrIjoidiJ9")

	assert.Equal(t, connector.IDEncodedData, id.Kind())
	v, ok := id.Value()
	assert.True(t, ok)
	assert.Equal(t, "eyJrIjoidiJ9", v)
}

func TestNoResponseID(t *testing.T) {
	id := connector.NoResponseID()

	assert.True(t, id.Empty())
	_, ok := id.Value()
	assert.False(t, ok)
}

func TestEmptyStringCollapsesToNoID(t *testing.T) {
	assert.True(t, connector.ConnectorTransactionID("").Empty())
	assert.True(t, connector.EncodedDataID("").Empty())
}
