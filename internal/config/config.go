package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	OIDC      OIDCConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Render    RenderConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type OIDCConfig struct {
	IssuerURL string
	ClientID  string
}

type SessionConfig struct {
	// Secret signs the session-cookie JWT.
	Secret string
	// AllowedEmails is the fixed operator allow-list (comma-separated env).
	AllowedEmails []string
	// TTL is the cookie/session lifetime. Default 5 days.
	TTL time.Duration
	// CookieSecure marks the cookie Secure (forced on in production).
	CookieSecure bool
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type RenderConfig struct {
	// Revalidate is how long a built public view is served before the
	// aggregate is re-read from the store.
	Revalidate time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SessionCookieName is the cookie carrying the admin session credential.
const SessionCookieName = "__session"

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5002")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("MONGODB_DATABASE", "folio")
	viper.SetDefault("SESSION_TTL_HOURS", 120) // 5 days
	viper.SetDefault("RENDER_REVALIDATE_SECONDS", 60)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		OIDC: OIDCConfig{
			IssuerURL: viper.GetString("OIDC_ISSUER_URL"),
			ClientID:  viper.GetString("OIDC_CLIENT_ID"),
		},
		Session: SessionConfig{
			Secret:        os.Getenv("SESSION_SECRET"),
			AllowedEmails: splitList(viper.GetString("ALLOWED_EMAILS")),
			TTL:           time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			CookieSecure:  viper.GetString("SERVER_ENVIRONMENT") == "production",
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Render: RenderConfig{
			Revalidate: time.Duration(viper.GetInt("RENDER_REVALIDATE_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	// Basic validation
	if cfg.Session.Secret == "" {
		log.Println("WARNING: SESSION_SECRET is not set; set a secure value in production")
	}
	if len(cfg.Session.AllowedEmails) == 0 {
		log.Println("WARNING: ALLOWED_EMAILS is empty; no identity can obtain an admin session")
	}

	return cfg, nil
}

// IsAllowed reports whether the given identity email is on the operator allow-list.
func (c *Config) IsAllowed(email string) bool {
	for _, e := range c.Session.AllowedEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
