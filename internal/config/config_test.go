package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APITimeout != 3000*time.Millisecond {
		t.Fatalf("APITimeout = %s", cfg.APITimeout)
	}
	if cfg.APIBasePath != "/api" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.BaseURL() != "http://localhost:8080/api" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL())
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("SessionTTL = %s", cfg.SessionTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_ORIGIN", "https://portal.example.com/")
	t.Setenv("API_BASE_PATH", "v2/")
	t.Setenv("API_TIMEOUT_MS", "1500")
	t.Setenv("UI_LANGUAGE", "zh-CN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL() != "https://portal.example.com/v2" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL())
	}
	if cfg.APITimeout != 1500*time.Millisecond || cfg.UILanguage != "zh-CN" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("API_TIMEOUT_MS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}

	t.Setenv("API_TIMEOUT_MS", "3000")
	t.Setenv("API_ORIGIN", "localhost")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for origin without scheme")
	}
}
