package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingSecret is returned by Load when no token signing secret is configured.
// The service must not start without it.
var ErrMissingSecret = errors.New("JWT_SECRET is not set")

type Config struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`
	DBMaxConns  int32  `yaml:"db_max_conns"`

	JWTSecret      string        `yaml:"jwt_secret"`
	JWTIssuer      string        `yaml:"jwt_issuer"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
	BcryptCost     int           `yaml:"bcrypt_cost"`

	AllowAdminRegistration bool `yaml:"allow_admin_registration"`

	Google GoogleConfig `yaml:"google"`

	RedisURL         string        `yaml:"redis_url"`
	LoginMaxAttempts int           `yaml:"login_max_attempts"`
	LoginWindow      time.Duration `yaml:"login_window"`

	CORSOrigins []string `yaml:"cors_origins"`
	LogLevel    string   `yaml:"log_level"`
	LogFile     string   `yaml:"log_file"`
}

// GoogleConfig configures verification of Google ID tokens.
type GoogleConfig struct {
	ClientID             string        `yaml:"client_id"`
	Verifier             string        `yaml:"verifier"` // "tokeninfo" or "oidc"
	TokenInfoURL         string        `yaml:"tokeninfo_url"`
	IssuerURL            string        `yaml:"issuer_url"`
	Timeout              time.Duration `yaml:"timeout"`
	RequireVerifiedEmail bool          `yaml:"require_verified_email"`
}

func defaults() Config {
	return Config{
		Port:                   "8080",
		DBMaxConns:             10,
		AccessTokenTTL:         30 * time.Minute,
		BcryptCost:             10,
		AllowAdminRegistration: true,
		Google: GoogleConfig{
			Verifier:     "tokeninfo",
			TokenInfoURL: "https://oauth2.googleapis.com/tokeninfo",
			IssuerURL:    "https://accounts.google.com",
			Timeout:      5 * time.Second,
		},
		LoginMaxAttempts: 10,
		LoginWindow:      15 * time.Minute,
		CORSOrigins:      []string{"http://localhost:5173"},
		LogLevel:         "info",
	}
}

// Load reads configuration from defaults, an optional YAML file (CONFIG_FILE)
// and environment variables, optionally from a .env file if present.
// Environment variables take precedence over the YAML file.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBMaxConns = int32(getEnvInt("DB_MAX_CONNS", int(cfg.DBMaxConns)))
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.AccessTokenTTL = getEnvDuration("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL)
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", cfg.BcryptCost)
	cfg.AllowAdminRegistration = getEnvBool("ALLOW_ADMIN_REGISTRATION", cfg.AllowAdminRegistration)

	cfg.Google.ClientID = getEnv("GOOGLE_CLIENT_ID", cfg.Google.ClientID)
	cfg.Google.Verifier = getEnv("GOOGLE_VERIFIER", cfg.Google.Verifier)
	cfg.Google.TokenInfoURL = getEnv("GOOGLE_TOKENINFO_URL", cfg.Google.TokenInfoURL)
	cfg.Google.IssuerURL = getEnv("GOOGLE_ISSUER_URL", cfg.Google.IssuerURL)
	cfg.Google.Timeout = getEnvDuration("GOOGLE_TIMEOUT", cfg.Google.Timeout)
	cfg.Google.RequireVerifiedEmail = getEnvBool("GOOGLE_REQUIRE_VERIFIED_EMAIL", cfg.Google.RequireVerifiedEmail)

	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.LoginMaxAttempts = getEnvInt("LOGIN_MAX_ATTEMPTS", cfg.LoginMaxAttempts)
	cfg.LoginWindow = getEnvDuration("LOGIN_WINDOW", cfg.LoginWindow)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, ErrMissingSecret
	}
	if cfg.Google.Timeout <= 0 {
		cfg.Google.Timeout = 5 * time.Second
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
