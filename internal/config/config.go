package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/currency"
)

// EnvPrefix is empty: every field tag carries the full variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	Shop    ShopConfig
}

// MigrateConfig is the subset read by the migration command.
type MigrateConfig struct {
	App AppConfig
	DB  DBConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Shop.Currency(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadMigrate() (*MigrateConfig, error) {
	var cfg MigrateConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CATALOG_APP_ENV" default:"dev"`
	Port         string `envconfig:"CATALOG_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CATALOG_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"CATALOG_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"CATALOG_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"CATALOG_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN             string        `envconfig:"CATALOG_DB_DSN" required:"true"`
	MaxConns        int32         `envconfig:"CATALOG_DB_MAX_CONNS" default:"10"`
	MinConns        int32         `envconfig:"CATALOG_DB_MIN_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type RedisConfig struct {
	// URL is optional; without it product listings are not cached.
	URL      string        `envconfig:"CATALOG_REDIS_URL"`
	CacheTTL time.Duration `envconfig:"CATALOG_REDIS_CACHE_TTL" default:"1m"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

type SessionConfig struct {
	IdleTTL       time.Duration `envconfig:"CATALOG_SESSION_IDLE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"CATALOG_SESSION_SWEEP_INTERVAL" default:"1m"`
}

type ShopConfig struct {
	CurrencyCode     string `envconfig:"CATALOG_SHOP_CURRENCY" default:"ARS"`
	CurrencySymbol   string `envconfig:"CATALOG_SHOP_CURRENCY_SYMBOL" default:"$"`
	WhatsAppPhone    string `envconfig:"CATALOG_SHOP_WHATSAPP_PHONE" required:"true"`
	Greeting         string `envconfig:"CATALOG_SHOP_GREETING" default:"Hola! Pedido: "`
	WithSubtotals    bool   `envconfig:"CATALOG_SHOP_MESSAGE_SUBTOTALS" default:"false"`
	PlaceholderImage string `envconfig:"CATALOG_SHOP_PLACEHOLDER_IMAGE" default:"https://placehold.co/600x400?text=Cerveza"`
}

// Currency parses CurrencyCode as an ISO 4217 code.
func (s ShopConfig) Currency() (currency.Unit, error) {
	unit, err := currency.ParseISO(s.CurrencyCode)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", s.CurrencyCode, err)
	}
	return unit, nil
}
