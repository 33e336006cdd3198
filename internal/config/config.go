package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	DBHost           string
	DBPort           uint
	DBName           string
	DBUsername       string
	DBPassword       string
	DBSecretID       string
	DBSSLModeDisable bool

	JWTSecret    string
	JWTTTL       time.Duration
	RefreshTTL   time.Duration
	CookieSecure bool

	CORSAllowedOrigins []string

	RedisAddr string
	CacheTTL  time.Duration

	S3Bucket string
	S3Region string
	S3Prefix string

	RateLimit       int
	RateLimitWindow time.Duration

	TokenCleanupCron string

	LogLevel  string
	LogFormat string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:               v.GetString("PORT"),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetUint("DB_PORT"),
		DBName:             v.GetString("DB_NAME"),
		DBUsername:         v.GetString("DB_USERNAME"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBSecretID:         v.GetString("DB_SECRET_ID"),
		DBSSLModeDisable:   v.GetBool("DB_SSL_MODE_DISABLE"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTL:             v.GetDuration("JWT_TTL"),
		RefreshTTL:         v.GetDuration("REFRESH_TTL"),
		CookieSecure:       v.GetBool("COOKIE_SECURE"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		CacheTTL:           v.GetDuration("CACHE_TTL"),
		S3Bucket:           v.GetString("S3_BUCKET"),
		S3Region:           v.GetString("S3_REGION"),
		S3Prefix:           v.GetString("S3_PREFIX"),
		RateLimit:          v.GetInt("RATE_LIMIT"),
		RateLimitWindow:    v.GetDuration("RATE_LIMIT_WINDOW"),
		TokenCleanupCron:   v.GetString("TOKEN_CLEANUP_CRON"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "autolux")
	v.SetDefault("DB_SSL_MODE_DISABLE", false)
	v.SetDefault("JWT_TTL", "240h")
	v.SetDefault("REFRESH_TTL", "720h")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PREFIX", "autolux")
	v.SetDefault("RATE_LIMIT", 10)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("TOKEN_CLEANUP_CRON", "@hourly")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
