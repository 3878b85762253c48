package config

import (
	"fmt"
	"time"

	"bluesphere-studio/internal/wallart"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	HTTPAddr           string        `env:"HTTP_ADDR" envDefault:":8080"`
	BaseURL            string        `env:"SITE_BASE_URL" envDefault:"https://bluespherephoto.com"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	TrustedProxies     []string      `env:"HTTP_TRUSTED_PROXIES" envSeparator:","`

	Log        LogConfig        `envPrefix:"LOG_"`
	Database   DatabaseConfig   `envPrefix:"DB_"`
	Redis      RedisConfig      `envPrefix:"REDIS_"`
	Contentful ContentfulConfig `envPrefix:"CONTENTFUL_"`
	EmailJS    EmailJSConfig    `envPrefix:"EMAILJS_"`
	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	Admin      AdminConfig      `envPrefix:"ADMIN_"`
	WallArt    WallArtConfig    `envPrefix:"WALLART_"`
	Contact    ContactConfig    `envPrefix:"CONTACT_"`
}

type LogConfig struct {
	Level       string `env:"LEVEL" envDefault:"info"`
	Development bool   `env:"DEVELOPMENT" envDefault:"false"`
}

type DatabaseConfig struct {
	Host            string        `env:"HOST,required,notEmpty"`
	Port            int           `env:"PORT" envDefault:"5432"`
	User            string        `env:"USER,required,notEmpty"`
	Password        string        `env:"PASSWORD,required,notEmpty"`
	Name            string        `env:"NAME,required,notEmpty"`
	SSLMode         string        `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

// DSN renders the lib/pq keyword/value connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string `env:"ADDR,required,notEmpty"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type ContentfulConfig struct {
	SpaceID     string        `env:"SPACE_ID"`
	AccessToken string        `env:"ACCESS_TOKEN"`
	Environment string        `env:"ENVIRONMENT" envDefault:"master"`
	BaseURL     string        `env:"BASE_URL" envDefault:"https://cdn.contentful.com"`
	ContentType string        `env:"CONTENT_TYPE" envDefault:"portfolioItem"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

type EmailJSConfig struct {
	BaseURL    string `env:"BASE_URL" envDefault:"https://api.emailjs.com"`
	ServiceID  string `env:"SERVICE_ID"`
	TemplateID string `env:"TEMPLATE_ID"`
	PublicKey  string `env:"PUBLIC_KEY"`
	PrivateKey string `env:"PRIVATE_KEY"`
}

// Enabled reports whether every identifier EmailJS needs to accept a send is present.
func (e EmailJSConfig) Enabled() bool {
	return e.ServiceID != "" && e.TemplateID != "" && e.PublicKey != ""
}

type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-2.5-flash"`
}

type AdminConfig struct {
	TelegramToken string  `env:"TELEGRAM_TOKEN"`
	ChatIDs       []int64 `env:"CHAT_IDS" envSeparator:","`
}

type WallArtConfig struct {
	DiscountPercent float64 `env:"DISCOUNT_PERCENT" envDefault:"0"`
}

type ContactConfig struct {
	RateLimit       int64         `env:"RATE_LIMIT" envDefault:"5"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadLog reads the LOG_ variables so the logger exists before the rest of
// the config is validated.
func LoadLog() (*LogConfig, error) {
	var l LogConfig
	if err := env.ParseWithOptions(&l, env.Options{Prefix: "LOG_"}); err != nil {
		return nil, fmt.Errorf("failed to parse log config: %w", err)
	}
	return &l, nil
}

// LoadDatabase reads only the DB_ variables, for commands that never touch
// the rest of the site.
func LoadDatabase() (*DatabaseConfig, error) {
	var db DatabaseConfig
	if err := env.ParseWithOptions(&db, env.Options{Prefix: "DB_"}); err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	return &db, nil
}

func (c *Config) Validate() error {
	if err := wallart.ValidateDiscount(c.WallArt.DiscountPercent); err != nil {
		return fmt.Errorf("WALLART_DISCOUNT_PERCENT: %w", err)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.Contact.RateLimit < 1 {
		return fmt.Errorf("CONTACT_RATE_LIMIT must be positive, got %d", c.Contact.RateLimit)
	}
	if c.Admin.TelegramToken != "" && len(c.Admin.ChatIDs) == 0 {
		return fmt.Errorf("at least one ADMIN_CHAT_IDS entry is required when ADMIN_TELEGRAM_TOKEN is set")
	}
	return nil
}
