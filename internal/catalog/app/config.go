package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/codestore"
	cataloghttp "github.com/aussiebroadwan/aicatalog/internal/catalog/http"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/pkg/httpx"
	"github.com/spf13/viper"
)

// ConfigFileEnv names an optional config file. Environment variables still
// win over anything in it.
const ConfigFileEnv = "CATALOG_CONFIG"

type Config struct {
	Port                 int           // HTTP server port (default: 8080)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	DatabaseFile string // Path to SQLite database file (default: ./catalog.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)
	Issuer       string // Session issuer and authenticator app label

	SessionSecret string // Empty means generate one at startup
	SessionTTL    time.Duration
	CookieSecure  bool

	CodeStore string // memory or redis
	Redis     codestore.RedisConfig

	EmailProvider       string // log or resend
	ResendAPIKey        string
	EmailFrom           string
	TelegramBotToken    string // Empty disables telegram delivery
	TelegramAPIEndpoint string
	DeliveryTimeout     time.Duration

	NotifyQueueSize int
	ViewQueueSize   int

	BootstrapOwner service.BootstrapOwnerInput

	RateLimits cataloghttp.RateLimits
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second)
	v.SetDefault("HOUSEKEEPING_INTERVAL", time.Hour)

	v.SetDefault("CATALOG_DATABASE_FILE", "catalog.db")
	v.SetDefault("CATALOG_PEPPER_FILE", "pepper")
	v.SetDefault("CATALOG_ISSUER", "AI Catalog")
	v.SetDefault("CATALOG_SESSION_SECRET", "")
	v.SetDefault("CATALOG_SESSION_TTL", 24*time.Hour)
	v.SetDefault("CATALOG_COOKIE_SECURE", false)

	v.SetDefault("CATALOG_CODE_STORE", "memory")
	v.SetDefault("CATALOG_REDIS_ADDR", "localhost:6379")
	v.SetDefault("CATALOG_REDIS_PASSWORD", "")
	v.SetDefault("CATALOG_REDIS_DB", 0)

	v.SetDefault("CATALOG_EMAIL_PROVIDER", "log")
	v.SetDefault("CATALOG_RESEND_API_KEY", "")
	v.SetDefault("CATALOG_EMAIL_FROM", "")
	v.SetDefault("CATALOG_TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("CATALOG_TELEGRAM_API_ENDPOINT", "")
	v.SetDefault("CATALOG_DELIVERY_TIMEOUT", 10*time.Second)
	v.SetDefault("CATALOG_NOTIFY_QUEUE_SIZE", 64)
	v.SetDefault("CATALOG_VIEW_QUEUE_SIZE", 256)

	v.SetDefault("CATALOG_BOOTSTRAP_OWNER_EMAIL", "")
	v.SetDefault("CATALOG_BOOTSTRAP_OWNER_PASSWORD", "")
	v.SetDefault("CATALOG_BOOTSTRAP_OWNER_NAME", "Owner")
}

// LoadConfig reads defaults, then the file named by CATALOG_CONFIG if any,
// then the environment.
func LoadConfig() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:                 v.GetInt("PORT"),
		Env:                  v.GetString("ENV"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		ShutdownGracePeriod:  v.GetDuration("SHUTDOWN_GRACE_PERIOD"),
		HousekeepingInterval: v.GetDuration("HOUSEKEEPING_INTERVAL"),

		DatabaseFile: v.GetString("CATALOG_DATABASE_FILE"),
		PepperFile:   v.GetString("CATALOG_PEPPER_FILE"),
		Issuer:       v.GetString("CATALOG_ISSUER"),

		SessionSecret: v.GetString("CATALOG_SESSION_SECRET"),
		SessionTTL:    v.GetDuration("CATALOG_SESSION_TTL"),
		CookieSecure:  v.GetBool("CATALOG_COOKIE_SECURE"),

		CodeStore: strings.ToLower(v.GetString("CATALOG_CODE_STORE")),
		Redis: codestore.RedisConfig{
			Addr:     v.GetString("CATALOG_REDIS_ADDR"),
			Password: v.GetString("CATALOG_REDIS_PASSWORD"),
			DB:       v.GetInt("CATALOG_REDIS_DB"),
			Prefix:   "aicatalog:",
		},

		EmailProvider:       strings.ToLower(v.GetString("CATALOG_EMAIL_PROVIDER")),
		ResendAPIKey:        v.GetString("CATALOG_RESEND_API_KEY"),
		EmailFrom:           v.GetString("CATALOG_EMAIL_FROM"),
		TelegramBotToken:    v.GetString("CATALOG_TELEGRAM_BOT_TOKEN"),
		TelegramAPIEndpoint: v.GetString("CATALOG_TELEGRAM_API_ENDPOINT"),
		DeliveryTimeout:     v.GetDuration("CATALOG_DELIVERY_TIMEOUT"),

		NotifyQueueSize: v.GetInt("CATALOG_NOTIFY_QUEUE_SIZE"),
		ViewQueueSize:   v.GetInt("CATALOG_VIEW_QUEUE_SIZE"),

		BootstrapOwner: service.BootstrapOwnerInput{
			Name:     v.GetString("CATALOG_BOOTSTRAP_OWNER_NAME"),
			Email:    v.GetString("CATALOG_BOOTSTRAP_OWNER_EMAIL"),
			Password: v.GetString("CATALOG_BOOTSTRAP_OWNER_PASSWORD"),
		},

		RateLimits: cataloghttp.RateLimits{
			Strict:   httpx.RateLimitFromEnv("STRICT", httpx.StrictLimit, v.GetString),
			Moderate: httpx.RateLimitFromEnv("MODERATE", httpx.ModerateLimit, v.GetString),
			Lenient:  httpx.RateLimitFromEnv("LENIENT", httpx.LenientLimit, v.GetString),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.CodeStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("CATALOG_CODE_STORE must be memory or redis, got %q", c.CodeStore)
	}

	switch c.EmailProvider {
	case "log":
	case "resend":
		if c.ResendAPIKey == "" || c.EmailFrom == "" {
			return fmt.Errorf("CATALOG_EMAIL_PROVIDER=resend needs CATALOG_RESEND_API_KEY and CATALOG_EMAIL_FROM")
		}
	default:
		return fmt.Errorf("CATALOG_EMAIL_PROVIDER must be log or resend, got %q", c.EmailProvider)
	}

	if c.SessionSecret != "" && len(c.SessionSecret) < 32 {
		return fmt.Errorf("CATALOG_SESSION_SECRET must be at least 32 bytes")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}
