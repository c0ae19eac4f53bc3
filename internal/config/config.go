package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Session SessionConfig `mapstructure:"session"`
	AI      AIConfig      `mapstructure:"ai"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	Google  GoogleConfig  `mapstructure:"google"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RedisConfig holds Redis configuration for the session store
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig holds server-side session configuration
type SessionConfig struct {
	// Secret signs the session cookie. Mandatory; the process refuses to
	// start without it.
	Secret string `mapstructure:"secret"`
	// TTL is how long an idle session document lives in the store
	TTL time.Duration `mapstructure:"ttl"`
	// CookieName is the name of the opaque session cookie
	CookieName string `mapstructure:"cookie_name"`
	// Secure sets the Secure flag on the session cookie (true behind HTTPS)
	Secure bool `mapstructure:"secure"`
}

// AIConfig holds the text-generation backend configuration
type AIConfig struct {
	// APIKey for the Gemini API. When empty the draft generator runs in
	// fallback-only mode instead of failing startup.
	APIKey string `mapstructure:"api_key"`
	// Model is the Gemini model name used for drafting
	Model string `mapstructure:"model"`
}

// SMTPConfig holds the fixed-credential relay configuration
type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// Username is the operator account; it doubles as the "From" address.
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// Insecure downgrades TLS to opportunistic for local relays
	Insecure bool `mapstructure:"insecure"`
}

// Configured reports whether operator credentials are present. Without
// them the fixed-credential send endpoint is disabled.
func (c SMTPConfig) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// GoogleConfig holds OAuth client configuration for the identity provider
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	// RedirectURL must match an authorized redirect URI in the Google
	// Cloud console (loopback for local runs, public base URL in prod).
	RedirectURL string `mapstructure:"redirect_url"`
}

// CORSConfig holds cross-origin configuration
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/draftmerge")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("DRAFTMERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks settings that are fatal at process start
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return errors.New("session.secret is not set (DRAFTMERGE_SESSION_SECRET); generate one with: openssl rand -hex 32")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Session defaults
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "draftmerge_session")
	v.SetDefault("session.secure", false)

	// AI defaults
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")

	// SMTP defaults
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.timeout", "30s")
	v.SetDefault("smtp.insecure", false)

	// Google OAuth defaults
	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("google.redirect_url", "http://127.0.0.1:8080/auth-callback")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
}
