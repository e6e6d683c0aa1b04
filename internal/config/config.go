package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config enumerates every recognized option in one place. Adapters and the
// sink never read the environment themselves; they get their settings here
// at construction so tests can substitute values directly.
type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	CORSOrigin  string        `env:"CORS_ORIGIN" envDefault:"*"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	// Credentials. Absence degrades the feature to an inline error,
	// never a crash.
	AlphaVantageKey    string `env:"ALPHAVANTAGE_API_KEY"`
	TwitterBearerToken string `env:"TWITTER_BEARER_TOKEN"`

	// Default destination for the HTTP sink pusher.
	SinkPushURL string `env:"SINK_PUSH_URL"`

	// Optional Postgres-backed order store; in-memory when empty.
	DatabaseURL string `env:"DATABASE_URL"`

	// Optional Kafka snapshot publishing; disabled when no brokers set.
	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"kpi-snapshots"`

	RefreshInterval  time.Duration `env:"REFRESH_INTERVAL" envDefault:"10s"`
	OrdersPerRefresh int           `env:"ORDERS_PER_REFRESH" envDefault:"2"`
	Retention        time.Duration `env:"RETENTION" envDefault:"24h"`

	// Upstream base URLs, overridable in tests.
	AlphaVantageURL string `env:"ALPHAVANTAGE_URL" envDefault:"https://www.alphavantage.co"`
	ChartBaseURL    string `env:"CHART_BASE_URL" envDefault:"https://query1.finance.yahoo.com"`
	CoinGeckoURL    string `env:"COINGECKO_URL" envDefault:"https://api.coingecko.com"`
	TwitterBaseURL  string `env:"TWITTER_BASE_URL" envDefault:"https://api.twitter.com"`
}

func Load() (Config, error) {
	var cfg Config
	return cfg, env.Parse(&cfg)
}
