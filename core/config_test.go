package core

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServiceName != "assets" {
		t.Fatalf("service name = %q", cfg.ServiceName)
	}
	if !cfg.Save.PromptBeforeSaving {
		t.Fatal("prompt before saving should default on")
	}
	if cfg.Save.OverwriteFailedCheckout {
		t.Fatal("overwrite failed checkout should default off")
	}
	if cfg.Status.CacheTTLSeconds != 30 {
		t.Fatalf("cache ttl = %d", cfg.Status.CacheTTLSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServiceName = "  "
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "service_name") {
		t.Fatalf("expected service_name error, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Status.CacheTTLSeconds = -1
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "cache_ttl_seconds") {
		t.Fatalf("expected ttl error, got %v", err)
	}
}
