package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "test",
			Password: "test",
			Database: "test_db",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Relay: RelayConfig{
			BatchSize: 10,
		},
		Providers: map[string]ProviderConfig{
			"worldpay": {
				BaseURL:       "https://try.access.worldpay.com",
				MerchantID:    "merchant-1",
				APIKey:        "key",
				APISecret:     "secret",
				WebhookSecret: "whsec",
				Enabled:       true,
			},
		},
	}
}

func TestConfig_Validate_Success(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_InvalidServerPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"port too low", 0},
		{"port negative", -1},
		{"port too high", 99999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = tt.port

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "server.port")
		})
	}
}

func TestConfig_Validate_InvalidTimeouts(t *testing.T) {
	cfg := validConfig()
	cfg.Server.ReadTimeout = 0
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read_timeout")

	cfg = validConfig()
	cfg.Server.WriteTimeout = 0
	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "write_timeout")
}

func TestConfig_Validate_MissingDatabaseHost(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
}

func TestConfig_Validate_InvalidRelayBatchSize(t *testing.T) {
	cfg := validConfig()
	cfg.Relay.BatchSize = 0

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "relay.batch_size")
}

func TestConfig_Validate_EnabledProviderRequiresBaseURL(t *testing.T) {
	cfg := validConfig()
	p := cfg.Providers["worldpay"]
	p.BaseURL = ""
	cfg.Providers["worldpay"] = p

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "providers.worldpay.base_url")
}

func TestConfig_Validate_EnabledProviderRequiresAPIKey(t *testing.T) {
	cfg := validConfig()
	p := cfg.Providers["worldpay"]
	p.APIKey = ""
	cfg.Providers["worldpay"] = p

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "providers.worldpay.api_key")
}

func TestConfig_Validate_DisabledProviderSkipsChecks(t *testing.T) {
	cfg := validConfig()
	cfg.Providers["sandbox"] = ProviderConfig{Enabled: false}

	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_ProductionRequiresWebhookSecret(t *testing.T) {
	t.Setenv("ENV", "production")

	cfg := validConfig()
	p := cfg.Providers["worldpay"]
	p.WebhookSecret = ""
	cfg.Providers["worldpay"] = p

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "providers.worldpay.webhook_secret")
}

func TestConfig_Validate_ProductionRequiresDatabasePassword(t *testing.T) {
	t.Setenv("ENV", "prod")

	cfg := validConfig()
	cfg.Database.Password = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database.password")
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Database.Host = ""
	cfg.Redis.Port = 0
	cfg.Relay.BatchSize = 0

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "server.port")
	assert.Contains(t, errStr, "database.host")
	assert.Contains(t, errStr, "redis.port")
	assert.Contains(t, errStr, "relay.batch_size")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5432,
		User:     "app_user",
		Password: "secret",
		Database: "paybridge_db",
		SSLMode:  "require",
	}

	dsn := cfg.DatabaseDSN()
	assert.Contains(t, dsn, "host=db.example.com")
	assert.Contains(t, dsn, "dbname=paybridge_db")
	assert.Contains(t, dsn, "sslmode=require")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.example.com", Port: 6379}
	assert.Equal(t, "redis.example.com:6379", cfg.RedisAddr())
}
