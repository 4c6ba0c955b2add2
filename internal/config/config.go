package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Addr       string `env:"SNAPGRAM_ADDR" envDefault:":8080"`
	DBPath     string `env:"SNAPGRAM_DB"`
	ContentDir string `env:"SNAPGRAM_CONTENT_DIR" envDefault:"content"`
	// PublicURL prefixes content links. Empty means links are site relative.
	PublicURL string `env:"SNAPGRAM_PUBLIC_URL"`

	LogLevel  string `env:"SNAPGRAM_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SNAPGRAM_LOG_FORMAT" envDefault:"json"`

	Token TokenConfig
	SMTP  SMTPConfig

	ConfirmationTTL time.Duration `env:"SNAPGRAM_CONFIRMATION_TTL" envDefault:"24h"`
	RecoveryTTL     time.Duration `env:"SNAPGRAM_RECOVERY_TTL" envDefault:"1h"`

	// MockMail logs emails instead of sending them.
	MockMail       bool   `env:"SNAPGRAM_MOCK_MAIL" envDefault:"false"`
	TestingRoutes  bool   `env:"SNAPGRAM_TESTING_ROUTES" envDefault:"false"`
	JanitorSpec    string `env:"SNAPGRAM_JANITOR_SCHEDULE" envDefault:"@every 10m"`
	LoginRate      int    `env:"SNAPGRAM_LOGIN_RATE" envDefault:"5"` // requests per 10 seconds
	LoginBurst     int    `env:"SNAPGRAM_LOGIN_BURST" envDefault:"5"`
	DefaultOrigin  string `env:"SNAPGRAM_DEFAULT_ORIGIN" envDefault:"http://localhost:3000"`
	// TrustedProxies are addresses or CIDRs whose X-Forwarded-For is believed.
	TrustedProxies []string `env:"SNAPGRAM_TRUSTED_PROXIES" envSeparator:","`
	TracingEnabled bool   `env:"SNAPGRAM_TRACING" envDefault:"false"`

	Tracing TracingConfig
}

// TracingConfig labels and samples exported spans.
type TracingConfig struct {
	ServiceName string  `env:"SNAPGRAM_SERVICE_NAME" envDefault:"snapgram"`
	Environment string  `env:"SNAPGRAM_ENVIRONMENT" envDefault:"development"`
	SampleRatio float64 `env:"SNAPGRAM_TRACE_SAMPLE_RATIO" envDefault:"1"`
}

// TokenConfig configures JWT issuing.
type TokenConfig struct {
	AccessSecret  string        `env:"SNAPGRAM_JWT_ACCESS_SECRET"`
	RefreshSecret string        `env:"SNAPGRAM_JWT_REFRESH_SECRET"`
	AccessTTL     time.Duration `env:"SNAPGRAM_ACCESS_TTL" envDefault:"10m"`
	RefreshTTL    time.Duration `env:"SNAPGRAM_REFRESH_TTL" envDefault:"20m"`
}

// SMTPConfig configures the outgoing mail server.
type SMTPConfig struct {
	Host     string        `env:"SNAPGRAM_SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int           `env:"SNAPGRAM_SMTP_PORT" envDefault:"587"`
	Username string        `env:"SNAPGRAM_SMTP_USERNAME"`
	Password string        `env:"SNAPGRAM_SMTP_PASSWORD"`
	From     string        `env:"SNAPGRAM_SMTP_FROM"`
	FromName string        `env:"SNAPGRAM_SMTP_FROM_NAME" envDefault:"Snapgram"`
	UseSSL   bool          `env:"SNAPGRAM_SMTP_SSL" envDefault:"false"`
	Timeout  time.Duration `env:"SNAPGRAM_SMTP_TIMEOUT" envDefault:"30s"`
}

// Addr returns host:port.
func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load parses environment variables and command line flags to populate Config.
// Flags take precedence over environment variables.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}

	fs := flag.NewFlagSet("snapgram", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	fs.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "Directory for uploaded content")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.MockMail, "mock-mail", cfg.MockMail, "Log emails instead of sending them")
	fs.BoolVar(&cfg.TestingRoutes, "testing-routes", cfg.TestingRoutes, "Expose DELETE /testing/all-data")
	fs.BoolVar(&cfg.TracingEnabled, "trace", cfg.TracingEnabled, "Export traces to stdout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	var errs []error
	if c.Token.AccessSecret == "" {
		errs = append(errs, errors.New("SNAPGRAM_JWT_ACCESS_SECRET is required"))
	}
	if c.Token.RefreshSecret == "" {
		errs = append(errs, errors.New("SNAPGRAM_JWT_REFRESH_SECRET is required"))
	}
	if c.Token.AccessSecret != "" && c.Token.AccessSecret == c.Token.RefreshSecret {
		errs = append(errs, errors.New("access and refresh secrets must differ"))
	}
	if c.Token.AccessTTL <= 0 || c.Token.RefreshTTL <= 0 {
		errs = append(errs, errors.New("token TTLs must be positive"))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, errors.New("SNAPGRAM_TRACE_SAMPLE_RATIO must be between 0 and 1"))
	}
	if !c.MockMail && c.SMTP.From == "" {
		errs = append(errs, errors.New("SNAPGRAM_SMTP_FROM is required unless mock mail is enabled"))
	}
	return errors.Join(errs...)
}

// defaultDBPath returns the default database path in the user's home directory.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "snapgram.db"
	}
	return filepath.Join(home, ".snapgram", "snapgram.db")
}
