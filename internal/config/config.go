package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	apperrors "github.com/tarotlabs/go-tarot-server/internal/errors"
)

// Config holds the full server configuration, loaded from environment
// variables. It is constructed once at startup and injected explicitly;
// there is no ambient configuration state.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"Tarot Server"`
	Env     string `env:"ENV" envDefault:"development"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	PublicDir     string `env:"PUBLIC_DIR" envDefault:"./public"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`

	// Identity provider (OIDC)
	OIDCIssuer       string `env:"OIDC_ISSUER"`
	OIDCClientID     string `env:"OIDC_CLIENT_ID"`
	OIDCClientSecret string `env:"OIDC_CLIENT_SECRET"`
	OIDCRedirectURL  string `env:"OIDC_REDIRECT_URL"`

	// First-party session tokens
	JWTSecret       string        `env:"JWT_SECRET"`
	SessionTokenTTL time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"24h"`

	// Server-side browser session (login attempt) lifetime
	LoginSessionTTL time.Duration `env:"LOGIN_SESSION_TTL" envDefault:"30m"`

	// Demo mode mints session tokens without contacting the identity
	// provider. Must never be enabled in production deployments.
	DemoMode bool `env:"DEMO_MODE" envDefault:"false"`

	// Reading generation
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// Rate limiting for /api routes
	RateLimitPerMinute float64 `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
}

// Load parses configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every credential the server cannot run without is
// present. Missing provider credentials are fatal at startup rather than
// surfacing as per-request failures.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return apperrors.Wrapf(apperrors.ErrMissingConfiguration, "JWT_SECRET")
	}
	if c.DemoMode {
		// Demo mode never contacts the identity provider, so its
		// credentials may be absent.
		return nil
	}
	missing := ""
	switch {
	case c.OIDCIssuer == "":
		missing = "OIDC_ISSUER"
	case c.OIDCClientID == "":
		missing = "OIDC_CLIENT_ID"
	case c.OIDCClientSecret == "":
		missing = "OIDC_CLIENT_SECRET"
	case c.OIDCRedirectURL == "":
		missing = "OIDC_REDIRECT_URL"
	}
	if missing != "" {
		return apperrors.Wrapf(apperrors.ErrMissingConfiguration, "%s", missing)
	}
	return nil
}

// IsProduction reports whether the server runs in a production deployment.
// The Secure cookie attribute and log format depend on it.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "PROD"
}

// ListenAddr returns the address for http.Server, normalising a bare port.
func (c *Config) ListenAddr() string {
	if len(c.Port) > 0 && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}
