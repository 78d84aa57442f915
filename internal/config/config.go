package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cyphera/safe-gateway/internal/constants"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyStage                = "stage"
	KeyServerPort           = "server.port"
	KeyBlocklist            = "blockchain.blocklist"
	KeyGracePeriodMs        = "transactions.statusIndexingGracePeriodMs"
	KeyTxServiceURLs        = "txservice.urls"
	KeyTxServiceTimeoutMs   = "txservice.timeoutMs"
	KeyRateLimitRPS         = "ratelimit.rps"
	KeyRateLimitBurst       = "ratelimit.burst"
	KeyCORSAllowedOrigins   = "cors.allowedOrigins"
	KeyDatabaseMaxConns     = "database.maxConns"
	KeyShutdownTimeoutMs    = "server.shutdownTimeoutMs"
	databaseURLSecretArnEnv = "DATABASE_URL_ARN"
	databaseURLEnv          = "DATABASE_URL"
	txServiceKeySecretArn   = "TX_SERVICE_API_KEY_ARN"
	txServiceKeyEnv         = "TX_SERVICE_API_KEY"
)

// defaultTxServiceURLs are the public Safe Transaction Service deployments
var defaultTxServiceURLs = map[string]string{
	"1":        "https://safe-transaction-mainnet.safe.global",
	"10":       "https://safe-transaction-optimism.safe.global",
	"100":      "https://safe-transaction-gnosis-chain.safe.global",
	"137":      "https://safe-transaction-polygon.safe.global",
	"8453":     "https://safe-transaction-base.safe.global",
	"42161":    "https://safe-transaction-arbitrum.safe.global",
	"11155111": "https://safe-transaction-sepolia.safe.global",
}

// SecretProvider resolves a secret from an ARN env var, falling back to a plain env var
type SecretProvider interface {
	GetSecretString(ctx context.Context, secretArnEnvVar string, fallbackEnvVar string) (string, error)
}

// Config is the resolved gateway configuration
type Config struct {
	Stage              string
	Port               string
	Blocklist          []common.Address
	GracePeriod        time.Duration
	TxServiceURLs      map[string]string
	TxServiceTimeout   time.Duration
	TxServiceAPIKey    string
	DatabaseURL        string
	DatabaseMaxConns   int32
	RateLimitRPS       int
	RateLimitBurst     int
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// IsDevelopment reports whether the gateway runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Stage != constants.StageProd
}

// NewViper returns a viper instance reading dotted keys from the environment,
// e.g. transactions.statusIndexingGracePeriodMs from TRANSACTIONS_STATUSINDEXINGGRACEPERIODMS
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyStage, constants.StageLocal)
	v.SetDefault(KeyServerPort, "8080")
	v.SetDefault(KeyTxServiceTimeoutMs, 10000)
	v.SetDefault(KeyRateLimitRPS, 100)
	v.SetDefault(KeyRateLimitBurst, 200)
	v.SetDefault(KeyCORSAllowedOrigins, "*")
	v.SetDefault(KeyDatabaseMaxConns, 10)
	v.SetDefault(KeyShutdownTimeoutMs, 15000)
	return v
}

// LoadDotEnv loads .env outside production. A missing file is not an error.
func LoadDotEnv(stage string) {
	if stage != constants.StageProd {
		_ = godotenv.Load()
	}
}

// Load resolves and validates the configuration. secrets may be nil, in
// which case secrets are read from plain environment variables only.
func Load(ctx context.Context, v *viper.Viper, secrets SecretProvider) (*Config, error) {
	cfg := &Config{
		Stage:            v.GetString(KeyStage),
		Port:             v.GetString(KeyServerPort),
		TxServiceTimeout: time.Duration(v.GetInt64(KeyTxServiceTimeoutMs)) * time.Millisecond,
		DatabaseMaxConns: v.GetInt32(KeyDatabaseMaxConns),
		RateLimitRPS:     v.GetInt(KeyRateLimitRPS),
		RateLimitBurst:   v.GetInt(KeyRateLimitBurst),
		ShutdownTimeout:  time.Duration(v.GetInt64(KeyShutdownTimeoutMs)) * time.Millisecond,
	}

	if !constants.IsValidStage(cfg.Stage) {
		return nil, fmt.Errorf("invalid STAGE %q", cfg.Stage)
	}

	gracePeriod, err := parseGracePeriod(v)
	if err != nil {
		return nil, err
	}
	cfg.GracePeriod = gracePeriod

	if cfg.Blocklist, err = ParseBlocklist(v.GetString(KeyBlocklist)); err != nil {
		return nil, err
	}

	if cfg.TxServiceURLs, err = ParseTxServiceURLs(v.GetString(KeyTxServiceURLs)); err != nil {
		return nil, err
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString(KeyCORSAllowedOrigins))

	if cfg.DatabaseURL, err = LoadDatabaseURL(ctx, secrets); err != nil {
		return nil, err
	}
	// The API key is optional, public deployments accept anonymous requests
	cfg.TxServiceAPIKey, _ = getSecret(ctx, secrets, txServiceKeySecretArn, txServiceKeyEnv)

	return cfg, nil
}

// LoadDatabaseURL resolves the database URL alone, for commands that do not serve traffic
func LoadDatabaseURL(ctx context.Context, secrets SecretProvider) (string, error) {
	databaseURL, err := getSecret(ctx, secrets, databaseURLSecretArnEnv, databaseURLEnv)
	if err != nil {
		return "", fmt.Errorf("database URL is required: %w", err)
	}
	return databaseURL, nil
}

func parseGracePeriod(v *viper.Viper) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(KeyGracePeriodMs))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", KeyGracePeriodMs)
	}
	ms, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", KeyGracePeriodMs, raw, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// ParseBlocklist parses a comma separated list of addresses
func ParseBlocklist(raw string) ([]common.Address, error) {
	var blocklist []common.Address
	for _, item := range splitList(raw) {
		if !common.IsHexAddress(item) {
			return nil, fmt.Errorf("invalid address in %s: %q", KeyBlocklist, item)
		}
		blocklist = append(blocklist, common.HexToAddress(item))
	}
	return blocklist, nil
}

// ParseTxServiceURLs parses "chainId=url" pairs separated by commas on top of
// the public deployments
func ParseTxServiceURLs(raw string) (map[string]string, error) {
	urls := make(map[string]string, len(defaultTxServiceURLs))
	for chainID, url := range defaultTxServiceURLs {
		urls[chainID] = url
	}

	for _, item := range splitList(raw) {
		chainID, url, ok := strings.Cut(item, "=")
		chainID, url = strings.TrimSpace(chainID), strings.TrimSpace(url)
		if !ok || chainID == "" || url == "" {
			return nil, fmt.Errorf("invalid entry in %s: %q, expected chainId=url", KeyTxServiceURLs, item)
		}
		if _, err := strconv.ParseUint(chainID, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid chain id in %s: %q", KeyTxServiceURLs, chainID)
		}
		urls[chainID] = strings.TrimSuffix(url, "/")
	}
	return urls, nil
}

func getSecret(ctx context.Context, secrets SecretProvider, arnEnv, fallbackEnv string) (string, error) {
	if secrets == nil {
		secrets = envSecrets{}
	}
	return secrets.GetSecretString(ctx, arnEnv, fallbackEnv)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
