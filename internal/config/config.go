package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL          string
	JWTSecret            string
	JWTIssuer            string
	AccessTTLSeconds     int64
	ResetTTLSeconds      int64
	UploadStoragePath    string
	RedisAddr            string
	RedisPassword        string
	SMTPHost             string
	SMTPPort             int
	EmailUser            string
	EmailPassword        string
	ResetURLBase         string
	MetricsDiskPath      string
	MetricsSampleSeconds int
	CorsOrigins          []string
}

func Load() Config {
	return Config{
		DatabaseURL:          mustEnv("DATABASE_URL"),
		JWTSecret:            mustEnv("JWT_SECRET"),
		JWTIssuer:            envOr("JWT_ISSUER", "buildtrack"),
		AccessTTLSeconds:     int64(envOrInt("ACCESS_TTL_SECONDS", 604800)),
		ResetTTLSeconds:      int64(envOrInt("RESET_TTL_SECONDS", 3600)),
		UploadStoragePath:    envOr("UPLOAD_STORAGE_PATH", "storage/uploads"),
		RedisAddr:            envOr("REDIS_ADDR", ""),
		RedisPassword:        envOr("REDIS_PASSWORD", ""),
		SMTPHost:             envOr("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:             envOrInt("SMTP_PORT", 587),
		EmailUser:            envOr("EMAIL_USER", ""),
		EmailPassword:        envOr("EMAIL_PASSWORD", ""),
		ResetURLBase:         envOr("RESET_URL_BASE", "http://localhost:3000/reset-password"),
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", "storage/uploads"),
		MetricsSampleSeconds: envOrInt("METRICS_SAMPLE_INTERVAL", 30),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
