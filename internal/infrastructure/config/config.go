package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=168h"`
	BaseURL   string        `env:"BASE_URL,  default=http://localhost:8080"`
	UploadDir string        `env:"UPLOAD_DIR, default=uploads"`

	// PolicyPath optionally replaces the embedded role policy.
	PolicyPath string `env:"AUTHZ_POLICY_PATH"`
	// PublicRateLimit is requests per second per client on login and
	// pre-registration.
	PublicRateLimit float64 `env:"PUBLIC_RATE_LIMIT, default=5"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Pass   PassConfig
	Notify NotifyConfig
	SMTP   SMTPConfig
	Twilio TwilioConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=visitor_pass"`
}

// RedisConfig locates the scan dedup store. An empty REDIS_ADDR disables
// duplicate scan suppression.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type PassConfig struct {
	DefaultExpiryHours int           `env:"PASS_DEFAULT_EXPIRY_HOURS, default=24"`
	MaxExpiryHours     int           `env:"PASS_MAX_EXPIRY_HOURS,     default=720"`
	SigningKey         string        `env:"PASS_SIGNING_KEY"`
	ScanDedupWindow    time.Duration `env:"SCAN_DEDUP_WINDOW,         default=30s"`
}

type NotifyConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
	Buffer  int `env:"NOTIFY_BUFFER,  default=256"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
	UseTLS   bool   `env:"SMTP_TLS,  default=true"`
}

type TwilioConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	From       string `env:"TWILIO_PHONE_NUMBER"`
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings that have no safe default.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.Pass.DefaultExpiryHours < 0 {
		errs = append(errs, errors.New("PASS_DEFAULT_EXPIRY_HOURS must not be negative"))
	}
	if c.Pass.MaxExpiryHours > 0 && c.Pass.DefaultExpiryHours > c.Pass.MaxExpiryHours {
		errs = append(errs, errors.New("PASS_DEFAULT_EXPIRY_HOURS exceeds PASS_MAX_EXPIRY_HOURS"))
	}
	if c.PublicRateLimit < 0 {
		errs = append(errs, errors.New("PUBLIC_RATE_LIMIT must not be negative"))
	}
	return errors.Join(errs...)
}
