package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/domain"
)

type Config struct {
	HTTPAddr string
	GatedEnv string

	DashboardPassword string
	SessionSecret     string
	SessionTTLDays    int

	RateLimitAttempts      int
	RateLimitWindowSeconds int
	RateLimitMaxKeys       int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:               addr,
		GatedEnv:               os.Getenv("GATED_ENV"),
		DashboardPassword:      os.Getenv("DASHBOARD_PASSWORD"),
		SessionSecret:          os.Getenv("SESSION_SECRET"),
		SessionTTLDays:         envIntDefault("SESSION_TTL_DAYS", 7),
		RateLimitAttempts:      envIntDefault("RATE_LIMIT_ATTEMPTS", 5),
		RateLimitWindowSeconds: envIntDefault("RATE_LIMIT_WINDOW_SECONDS", 900),
		RateLimitMaxKeys:       envIntDefault("RATE_LIMIT_MAX_KEYS", 10000),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                envIntDefault("REDIS_DB", 0),
	}
}

// Validate catches configuration that must abort startup. A gate with no
// password would otherwise reject every request at runtime.
func (c Config) Validate() error {
	if c.DashboardPassword == "" {
		return fmt.Errorf("%w: DASHBOARD_PASSWORD is required", domain.ErrConfigMissing)
	}
	if c.SessionTTLDays <= 0 {
		return fmt.Errorf("%w: SESSION_TTL_DAYS must be positive", domain.ErrConfigMissing)
	}
	if c.RateLimitAttempts <= 0 || c.RateLimitWindowSeconds <= 0 {
		return fmt.Errorf("%w: rate limit attempts and window must be positive", domain.ErrConfigMissing)
	}
	return nil
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLDays) * 24 * time.Hour
}

func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func (c Config) Production() bool {
	return c.GatedEnv == "production"
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}
