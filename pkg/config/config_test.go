package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.ServiceName != "store-api" {
		t.Errorf("ServiceName = %s, want store-api", cfg.ServiceName)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %s, want 8080", cfg.ServerPort)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("AccessTokenTTL = %v, want 15m", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 720*time.Hour {
		t.Errorf("RefreshTokenTTL = %v, want 720h", cfg.RefreshTokenTTL)
	}
	if cfg.BlocklistBackend != "memory" {
		t.Errorf("BlocklistBackend = %s, want memory", cfg.BlocklistBackend)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %s, want 9090", cfg.ServerPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
}

func TestLoad_GeneratesSecretWhenUnset(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	if cfg.JWTSecret == "" {
		t.Fatal("未配置时应生成随机密钥")
	}
	if !cfg.JWTSecretGenerated {
		t.Error("JWTSecretGenerated 应为 true")
	}

	// 每个进程各自随机
	other := Load()
	if other.JWTSecret == cfg.JWTSecret {
		t.Error("两次生成的随机密钥不应相同")
	}
}

func TestLoad_KeepsConfiguredSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "configured-secret")

	cfg := Load()
	if cfg.JWTSecret != "configured-secret" {
		t.Errorf("JWTSecret = %s, want configured-secret", cfg.JWTSecret)
	}
	if cfg.JWTSecretGenerated {
		t.Error("显式配置的密钥不应标记为随机生成")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5432", DBUser: "postgres",
		DBPassword: "pw", DBName: "stores", DBSSLMode: "disable",
	}
	want := "host=db user=postgres password=pw dbname=stores port=5432 sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
