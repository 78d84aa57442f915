package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecretString(_ context.Context, arnEnv, fallbackEnv string) (string, error) {
	if value, ok := f[fallbackEnv]; ok {
		return value, nil
	}
	return "", errors.New("not found")
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STAGE", "test")
	t.Setenv("TRANSACTIONS_STATUSINDEXINGGRACEPERIODMS", "60000")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BLOCKCHAIN_BLOCKLIST", "0x1111111111111111111111111111111111111111, 0x2222222222222222222222222222222222222222")
	t.Setenv("TXSERVICE_URLS", "1=http://localhost:8000/,31337=http://anvil:8000")
	t.Setenv("RATELIMIT_RPS", "5")

	cfg, err := Load(context.Background(), NewViper(), fakeSecrets{
		"DATABASE_URL":       "postgres://localhost/safe",
		"TX_SERVICE_API_KEY": "key",
	})
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Stage)
	assert.Equal(t, time.Minute, cfg.GracePeriod)
	assert.Equal(t, []common.Address{
		common.HexToAddress("0x1111111111111111111111111111111111111111"),
		common.HexToAddress("0x2222222222222222222222222222222222222222"),
	}, cfg.Blocklist)
	assert.Equal(t, "http://localhost:8000", cfg.TxServiceURLs["1"])
	assert.Equal(t, "http://anvil:8000", cfg.TxServiceURLs["31337"])
	assert.Equal(t, defaultTxServiceURLs["137"], cfg.TxServiceURLs["137"])
	assert.Equal(t, 5, cfg.RateLimitRPS)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.Equal(t, "postgres://localhost/safe", cfg.DatabaseURL)
	assert.Equal(t, "key", cfg.TxServiceAPIKey)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		secrets fakeSecrets
	}{
		{
			name:    "missing grace period",
			env:     map[string]string{"TRANSACTIONS_STATUSINDEXINGGRACEPERIODMS": ""},
			secrets: fakeSecrets{"DATABASE_URL": "postgres://"},
		},
		{
			name:    "negative grace period",
			env:     map[string]string{"TRANSACTIONS_STATUSINDEXINGGRACEPERIODMS": "-5"},
			secrets: fakeSecrets{"DATABASE_URL": "postgres://"},
		},
		{
			name:    "invalid stage",
			env:     map[string]string{"STAGE": "staging"},
			secrets: fakeSecrets{"DATABASE_URL": "postgres://"},
		},
		{
			name:    "invalid blocklist address",
			env:     map[string]string{"BLOCKCHAIN_BLOCKLIST": "0x1234"},
			secrets: fakeSecrets{"DATABASE_URL": "postgres://"},
		},
		{
			name:    "invalid tx service entry",
			env:     map[string]string{"TXSERVICE_URLS": "mainnet"},
			secrets: fakeSecrets{"DATABASE_URL": "postgres://"},
		},
		{
			name:    "missing database url",
			secrets: fakeSecrets{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load(context.Background(), NewViper(), tt.secrets)
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvSecretsFallback(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env/safe")
	t.Setenv("TX_SERVICE_API_KEY", "")

	cfg, err := Load(context.Background(), NewViper(), nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/safe", cfg.DatabaseURL)
	assert.Empty(t, cfg.TxServiceAPIKey)
}

func TestParseBlocklist_Empty(t *testing.T) {
	blocklist, err := ParseBlocklist(" , ")
	require.NoError(t, err)
	assert.Empty(t, blocklist)
}
