package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port               string
	MongoURI           string
	MongoDBName        string
	JWTSecret          string        // Secret key for JWT token signing
	JWTTTL             time.Duration // Token and session cookie lifetime
	BcryptCost         int
	CookieSecure       bool
	FrontendURL        string // Frontend base URL (for merchant QR codes)
	RedisURL           string // Optional; empty keeps rate limiting in process
	RateLimitAuthRPS   float64
	RateLimitAuthBurst int
	LogLevel           string
	CORSOrigins        []string
	TrustedProxies     []string // Proxies allowed to set X-Forwarded-For; empty trusts none
}

// Load reads .env (if present) and the environment into a Config.
// The returned value is not mutated after startup.
func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables or defaults", "err", err)
	}

	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DB_NAME", "merchantdb")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 30*24*time.Hour) // 30 days, same as the session cookie
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT_AUTH_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_AUTH_BURST", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("TRUSTED_PROXIES", "")

	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:               v.GetString("PORT"),
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDBName:        v.GetString("MONGO_DB_NAME"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTL:             v.GetDuration("JWT_TTL"),
		BcryptCost:         v.GetInt("BCRYPT_COST"),
		CookieSecure:       v.GetBool("COOKIE_SECURE"),
		FrontendURL:        strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		RedisURL:           v.GetString("REDIS_URL"),
		RateLimitAuthRPS:   v.GetFloat64("RATE_LIMIT_AUTH_RPS"),
		RateLimitAuthBurst: v.GetInt("RATE_LIMIT_AUTH_BURST"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		CORSOrigins:        splitList(v.GetString("CORS_ORIGINS")),
		TrustedProxies:     splitList(v.GetString("TRUSTED_PROXIES")),
	}
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGO_URI is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost))
	}
	for _, p := range c.TrustedProxies {
		if !validProxy(p) {
			errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p))
		}
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func validProxy(p string) bool {
	if strings.Contains(p, "/") {
		_, err := netip.ParsePrefix(p)
		return err == nil
	}
	_, err := netip.ParseAddr(p)
	return err == nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
