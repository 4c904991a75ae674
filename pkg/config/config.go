package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "maitte"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	StorageBackendRedis    = "redis"
	StorageBackendDatabase = "database"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	DB       DBConfig
	Session  SessionConfig
	CMS      CMSConfig
	VentiPay VentiPayConfig
	Site     SiteConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MAITTE_APP_ENV" default:"development"`
	Port         string `envconfig:"MAITTE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MAITTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MAITTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where cart/favorites snapshots are persisted.
type StorageConfig struct {
	Backend string `envconfig:"MAITTE_STORAGE_BACKEND" default:"redis"`
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case StorageBackendRedis, StorageBackendDatabase:
		return nil
	}
	return fmt.Errorf("storage backend must be %q or %q", StorageBackendRedis, StorageBackendDatabase)
}

// Normalized returns the lowercased backend name.
func (s StorageConfig) Normalized() string {
	return strings.ToLower(strings.TrimSpace(s.Backend))
}

type RedisConfig struct {
	URL          string        `envconfig:"MAITTE_REDIS_URL"`
	Address      string        `envconfig:"MAITTE_REDIS_ADDR"`
	Password     string        `envconfig:"MAITTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MAITTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MAITTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MAITTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MAITTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MAITTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MAITTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type DBConfig struct {
	DSN    string `envconfig:"MAITTE_DB_DSN" default:"file:storefront.db"`
	Driver string `envconfig:"MAITTE_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"MAITTE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MAITTE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"MAITTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MAITTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type SessionConfig struct {
	Secret     string        `envconfig:"MAITTE_SESSION_SECRET" default:"storefront-dev-secret"`
	Issuer     string        `envconfig:"MAITTE_SESSION_ISSUER" default:"maitte-storefront"`
	TTL        time.Duration `envconfig:"MAITTE_SESSION_TTL" default:"720h"`
	CookieName string        `envconfig:"MAITTE_SESSION_COOKIE" default:"maitte_session"`
}

// CMSConfig points at the headless CMS that owns the product catalog.
type CMSConfig struct {
	BaseURL string        `envconfig:"MAITTE_BACKEND_URL" default:"https://bautizosmaitte-backend.onrender.com"`
	Timeout time.Duration `envconfig:"MAITTE_BACKEND_TIMEOUT" default:"10s"`
}

// APIBaseURL returns the CMS REST root without a trailing slash.
func (c CMSConfig) APIBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/api"
}

type VentiPayConfig struct {
	BaseURL   string        `envconfig:"MAITTE_VENTIPAY_API_URL" default:"https://api.ventipay.com/v1"`
	APIKey    string        `envconfig:"MAITTE_VENTIPAY_API_KEY"`
	APISecret string        `envconfig:"MAITTE_VENTIPAY_API_SECRET"`
	Timeout   time.Duration `envconfig:"MAITTE_VENTIPAY_TIMEOUT" default:"15s"`
}

// SiteConfig carries public values handed to the browser as-is.
type SiteConfig struct {
	RecaptchaSiteKey  string   `envconfig:"MAITTE_RECAPTCHA_SITE_KEY"`
	FormspreeEndpoint string   `envconfig:"MAITTE_FORMSPREE_ENDPOINT"`
	AllowedOrigins    []string `envconfig:"MAITTE_ALLOWED_ORIGINS" default:"http://localhost:4321,https://bautizosmaitte.cl"`
	PublicBaseURL     string   `envconfig:"MAITTE_PUBLIC_BASE_URL" default:"https://bautizosmaitte.cl"`
}
