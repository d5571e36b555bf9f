package bootstrap

import (
	"testing"
	"time"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderSettings_ExplicitTimeout(t *testing.T) {
	settings, err := providerSettings(config.ProviderConfig{
		BaseURL:    "https://try.access.worldpay.com",
		MerchantID: "merchant-1",
		APIKey:     "key",
		APISecret:  "secret",
		Timeout:    10 * time.Second,
	}, 30*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, settings.Timeout)
	assert.Equal(t, "https://try.access.worldpay.com", settings.Environment.BaseURL)
	assert.Equal(t, connector.AuthSignature, settings.Auth.Kind())
}

func TestProviderSettings_TimeoutFallsBackToTransportDefault(t *testing.T) {
	// Provider blocks are map entries, so viper defaults never reach them; a
	// block without a timeout inherits the transport default instead of
	// running unbounded.
	settings, err := providerSettings(config.ProviderConfig{
		BaseURL:   "https://try.access.worldpay.com",
		APIKey:    "key",
		APISecret: "secret",
	}, 30*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, settings.Timeout)
}

func TestProviderSettings_MissingCredentials(t *testing.T) {
	_, err := providerSettings(config.ProviderConfig{
		BaseURL: "https://try.access.worldpay.com",
		APIKey:  "key",
	}, 30*time.Second)
	assert.ErrorIs(t, err, domainErrors.ErrAuth)
}
