package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key Load reads; viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "MONGO_URI", "MONGO_DB_NAME", "JWT_SECRET", "JWT_TTL", "BCRYPT_COST",
		"COOKIE_SECURE", "FRONTEND_URL", "REDIS_URL", "RATE_LIMIT_AUTH_RPS",
		"RATE_LIMIT_AUTH_BURST", "LOG_LEVEL", "CORS_ORIGINS", "TRUSTED_PROXIES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "merchantdb", cfg.MongoDBName)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "", cfg.RedisURL)
	assert.Equal(t, 5.0, cfg.RateLimitAuthRPS)
	assert.Equal(t, 10, cfg.RateLimitAuthBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.TrustedProxies)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("FRONTEND_URL", "https://app.example.com/")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.7")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "https://app.example.com", cfg.FrontendURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.7"}, cfg.TrustedProxies)
	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := &Config{JWTTTL: time.Hour, BcryptCost: 10}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_BadCost(t *testing.T) {
	cfg := &Config{MongoURI: "x", JWTSecret: "y", JWTTTL: time.Hour, BcryptCost: 99}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestValidate_TrustedProxies(t *testing.T) {
	cfg := &Config{
		MongoURI:       "x",
		JWTSecret:      "y",
		JWTTTL:         time.Hour,
		BcryptCost:     10,
		TrustedProxies: []string{"10.0.0.0/8", "::1", "proxy.internal"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"proxy.internal"`)
	assert.NotContains(t, err.Error(), "10.0.0.0/8")
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":5000", (&Config{Port: "5000"}).Addr())
	assert.Equal(t, ":5000", (&Config{Port: ":5000"}).Addr())
}
