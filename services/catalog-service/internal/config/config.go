package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/course-catalog-api/shared/database"
	"github.com/vasapolrittideah/course-catalog-api/shared/mailer"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// CatalogServiceConfig holds the configuration of the catalog service.
type CatalogServiceConfig struct {
	Env             string        `env:"APP_ENV"          envDefault:"production"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	Port            int           `env:"PORT"             envDefault:"5000"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	StoreDriver     string        `env:"STORE_DRIVER"     envDefault:"mongo"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:5174"`

	// EnforceCourseOwnership restricts course update/delete to the creator.
	EnforceCourseOwnership bool `env:"ENFORCE_COURSE_OWNERSHIP" envDefault:"false"`

	Mongo   database.MongoConfig `envPrefix:"MONGO_"`
	Token   TokenConfig          `envPrefix:"JWT_"`
	SMTP    mailer.Config        `envPrefix:"SMTP_"`
	Contact ContactConfig        `envPrefix:"CONTACT_"`
}

// TokenConfig holds the access token settings.
type TokenConfig struct {
	Secret    string        `env:"SECRET"`
	Issuer    string        `env:"ISSUER"     envDefault:"catalog-service"`
	Audience  string        `env:"AUDIENCE"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" envDefault:"168h"`
}

// ContactConfig holds where contact-form messages are delivered.
type ContactConfig struct {
	Recipient string `env:"RECIPIENT"`
}

// Load parses the configuration from environment variables and validates it.
func Load() (*CatalogServiceConfig, error) {
	cfg, err := env.ParseAs[CatalogServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for missing or inconsistent values.
func (c *CatalogServiceConfig) Validate() error {
	var errs []error

	if c.Token.Secret == "" {
		errs = append(errs, errors.New("missing JWT_SECRET environment variable"))
	}
	if c.Token.ExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}

	switch c.StoreDriver {
	case StoreDriverMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("missing MONGO_URI environment variable"))
		}
	case StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the service runs in development mode.
func (c *CatalogServiceConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// ContactEnabled reports whether contact-form mail can be delivered.
func (c *CatalogServiceConfig) ContactEnabled() bool {
	return c.SMTP.Enabled() && c.Contact.Recipient != ""
}
