// Package config loads service settings from the environment, after
// merging an optional .env file.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"defaultsecret"`
	Issuer      string `env:"ISSUER" envDefault:"moderation-platform"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// StorageTimeout bounds every database call made for one request.
	StorageTimeout time.Duration `env:"STORAGE_TIMEOUT" envDefault:"5s"`

	Database Database
	Minio    Minio    `envPrefix:"MINIO_"`
	SMTP     SMTP     `envPrefix:"SMTP_"`
	Workflow Workflow
}

type Database struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"password"`
	Name     string `env:"DB_NAME" envDefault:"moderation"`
	DebugSQL bool   `env:"DEBUG_SQL" envDefault:"false"`
}

type Minio struct {
	Endpoint      string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey     string `env:"ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey     string `env:"SECRET_KEY" envDefault:"minioadmin"`
	Bucket        string `env:"BUCKET" envDefault:"submissions"`
	UseSSL        bool   `env:"USE_SSL" envDefault:"false"`
	SkipTLSVerify bool   `env:"SKIP_TLS_VERIFY" envDefault:"false"`
}

type SMTP struct {
	Host          string `env:"HOST"`
	Port          int    `env:"PORT" envDefault:"587"`
	User          string `env:"USER"`
	Pass          string `env:"PASS"`
	From          string `env:"FROM"`
	SkipTLSVerify bool   `env:"SKIP_TLS_VERIFY" envDefault:"false"`
}

// Configured reports whether enough is set to actually send mail.
func (s SMTP) Configured() bool {
	return s.Host != "" && s.From != ""
}

type Workflow struct {
	ReviewTimeoutDays  int           `env:"REVIEW_TIMEOUT_DAYS" envDefault:"14"`
	EscalationEmail    string        `env:"ESCALATION_EMAIL"`
	EscalationInterval time.Duration `env:"ESCALATION_INTERVAL" envDefault:"24h"`
	FileRetentionYears int           `env:"FILE_RETENTION_YEARS" envDefault:"7"`
	// PipelineFile overrides the built-in review pipeline when set.
	PipelineFile string `env:"PIPELINE_FILE"`
}

func (w Workflow) ReviewTimeout() time.Duration {
	return time.Duration(w.ReviewTimeoutDays) * 24 * time.Hour
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or mysql, got %q", c.Database.Driver)
	}
	if c.StorageTimeout <= 0 {
		return fmt.Errorf("STORAGE_TIMEOUT must be positive")
	}
	if c.Workflow.ReviewTimeoutDays <= 0 {
		return fmt.Errorf("REVIEW_TIMEOUT_DAYS must be positive")
	}
	if c.Workflow.EscalationInterval <= 0 {
		return fmt.Errorf("ESCALATION_INTERVAL must be positive")
	}
	if c.Workflow.FileRetentionYears <= 0 {
		return fmt.Errorf("FILE_RETENTION_YEARS must be positive")
	}
	if c.IsProduction() && c.JWTSecret == "defaultsecret" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}
