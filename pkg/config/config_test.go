package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.App.IsDev() {
		t.Fatalf("expected development default, got %q", cfg.App.Env)
	}
	if cfg.Storage.Normalized() != StorageBackendRedis {
		t.Fatalf("expected redis storage default, got %q", cfg.Storage.Backend)
	}
	if cfg.CMS.APIBaseURL() != "https://bautizosmaitte-backend.onrender.com/api" {
		t.Fatalf("unexpected cms api base %q", cfg.CMS.APIBaseURL())
	}
	if cfg.VentiPay.BaseURL != "https://api.ventipay.com/v1" {
		t.Fatalf("unexpected ventipay base %q", cfg.VentiPay.BaseURL)
	}
	if cfg.Session.TTL != 720*time.Hour {
		t.Fatalf("unexpected session ttl %s", cfg.Session.TTL)
	}
}

func TestLoadRejectsUnknownStorageBackend(t *testing.T) {
	t.Setenv("MAITTE_STORAGE_BACKEND", "filesystem")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}

func TestCMSBaseURLTrimsTrailingSlash(t *testing.T) {
	t.Setenv("MAITTE_BACKEND_URL", "http://localhost:1337/")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CMS.APIBaseURL() != "http://localhost:1337/api" {
		t.Fatalf("unexpected api base %q", cfg.CMS.APIBaseURL())
	}
}
