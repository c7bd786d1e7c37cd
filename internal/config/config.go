package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	defaultAppMode    = "dev"
	defaultAppPort    = "8080"
	defaultAppPath    = "/"
	defaultAppTimeout = 60 * time.Second

	defaultBinTimeout = 5 * time.Second
	defaultCorsOrigin = "*"
)

type (
	Configs struct {
		APP        AppConfig
		MONGO      MongoConfig
		CALLBACK   CallbackConfig
		BIN        BinConfig
		CRYPTO     CryptoConfig
		CORS       CorsConfig
		EVENTS     EventsConfig
		CLICKHOUSE ClickHouseConfig
	}

	AppConfig struct {
		Mode    string `required:"true"`
		Port    string
		Path    string
		Timeout time.Duration
	}

	// MongoConfig holds the connection string for the terminal and
	// transaction stores.
	MongoConfig struct {
		URI      string `envconfig:"URI" required:"true"`
		Database string `envconfig:"DATABASE"`
	}

	// CallbackConfig carries the public base URL the 3-D Secure callback
	// forms are built against, since every acquirer needs an absolute
	// return URL reachable from the cardholder's browser.
	CallbackConfig struct {
		BaseURL string `envconfig:"BASE_URL" required:"true"`
	}

	// BinConfig points at the BIN lookup service used when a request
	// doesn't name a terminal explicitly, plus an optional Redis URL that
	// shares the resolver's TTL cache across instances. An empty RedisURL
	// falls back to the in-process cache only.
	BinConfig struct {
		APIURL   string        `envconfig:"API_URL"`
		Timeout  time.Duration `envconfig:"TIMEOUT"`
		RedisURL string        `envconfig:"REDIS_URL"`
	}

	// CryptoConfig carries the master secret the field cipher derives its
	// AES key from. Required: a zero-value secret would silently encrypt
	// every card field under an all-zero key.
	CryptoConfig struct {
		MasterSecret string `envconfig:"MASTER_SECRET" required:"true"`
	}

	CorsConfig struct {
		Origin string `envconfig:"ORIGIN"`
	}

	// EventsConfig points at the NATS server the finalized-payment event is
	// published to. URL is left empty by default: an empty URL means the
	// application runs without a domain event publisher.
	EventsConfig struct {
		URL string `envconfig:"URL"`
	}

	// ClickHouseConfig points at the audit-log sink. Addr is left empty by
	// default: an empty Addr means the application runs without an audit
	// trail mirror.
	ClickHouseConfig struct {
		Addr     string `envconfig:"ADDR"`
		Database string `envconfig:"DATABASE"`
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	}
)

// New populates Configs struct with values from the .env file in the
// working directory (if present) and environment variables.
func New() (cfg Configs, err error) {
	root, err := os.Getwd()
	if err != nil {
		return
	}
	godotenv.Load(filepath.Join(root, ".env"))

	cfg.APP = AppConfig{
		Mode:    defaultAppMode,
		Port:    defaultAppPort,
		Path:    defaultAppPath,
		Timeout: defaultAppTimeout,
	}

	cfg.BIN = BinConfig{
		Timeout: defaultBinTimeout,
	}

	cfg.CORS = CorsConfig{
		Origin: defaultCorsOrigin,
	}

	if err = envconfig.Process("APP", &cfg.APP); err != nil {
		return
	}

	if err = envconfig.Process("MONGODB", &cfg.MONGO); err != nil {
		return
	}

	if err = envconfig.Process("CALLBACK", &cfg.CALLBACK); err != nil {
		return
	}

	if err = envconfig.Process("BIN", &cfg.BIN); err != nil {
		return
	}

	if err = envconfig.Process("CRYPTO", &cfg.CRYPTO); err != nil {
		return
	}

	if err = envconfig.Process("CORS", &cfg.CORS); err != nil {
		return
	}

	if err = envconfig.Process("EVENTS", &cfg.EVENTS); err != nil {
		return
	}

	if err = envconfig.Process("CLICKHOUSE", &cfg.CLICKHOUSE); err != nil {
		return
	}

	return
}
