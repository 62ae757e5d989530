package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/buildtrack")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()
	if cfg.DatabaseURL != "postgres://localhost/buildtrack" {
		t.Fatalf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.JWTIssuer != "buildtrack" {
		t.Fatalf("JWTIssuer = %q", cfg.JWTIssuer)
	}
	if cfg.AccessTTLSeconds != 604800 {
		t.Fatalf("AccessTTLSeconds = %d", cfg.AccessTTLSeconds)
	}
	if cfg.ResetTTLSeconds != 3600 {
		t.Fatalf("ResetTTLSeconds = %d", cfg.ResetTTLSeconds)
	}
	if cfg.UploadStoragePath != "storage/uploads" {
		t.Fatalf("UploadStoragePath = %q", cfg.UploadStoragePath)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("SMTPPort = %d", cfg.SMTPPort)
	}
	if cfg.MetricsSampleSeconds != 30 {
		t.Fatalf("MetricsSampleSeconds = %d", cfg.MetricsSampleSeconds)
	}
	if cfg.RedisAddr != "" || cfg.EmailUser != "" {
		t.Fatal("optional services should default to unconfigured")
	}
	if cfg.CorsOrigins != nil {
		t.Fatalf("CorsOrigins = %v", cfg.CorsOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/buildtrack")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TTL_SECONDS", "3600")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg := Load()
	if cfg.AccessTTLSeconds != 3600 {
		t.Fatalf("AccessTTLSeconds = %d", cfg.AccessTTLSeconds)
	}
	want := []string{"https://app.example.com", "https://admin.example.com"}
	if !reflect.DeepEqual(cfg.CorsOrigins, want) {
		t.Fatalf("CorsOrigins = %v", cfg.CorsOrigins)
	}
}

func TestEnvOrIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	if got := envOrInt("SOME_INT", 42); got != 42 {
		t.Fatalf("envOrInt = %d", got)
	}
}
