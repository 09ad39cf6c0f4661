package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEAL_BATCH_SIZE", "")
	t.Setenv("OLLAMA_RPS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != "8080" || cfg.DealBatchSize != 100 || cfg.OllamaRPS != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MetricsNamespace != "skypulse" {
		t.Fatalf("MetricsNamespace = %q", cfg.MetricsNamespace)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OLLAMA_TIMEOUT", "5")
	t.Setenv("OLLAMA_RPS", "0.5")
	t.Setenv("DEAL_POLL_INTERVAL", "15")
	t.Setenv("DEAL_BATCH_SIZE", "not-a-number")

	cfg, _ := LoadConfig()
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.OllamaTimeout != 5*time.Second || cfg.OllamaRPS != 0.5 {
		t.Fatalf("ollama settings = %v, %v", cfg.OllamaTimeout, cfg.OllamaRPS)
	}
	if cfg.DealPollInterval != 15*time.Second {
		t.Fatalf("DealPollInterval = %v", cfg.DealPollInterval)
	}
	if cfg.DealBatchSize != 100 {
		t.Fatalf("invalid DEAL_BATCH_SIZE should fall back to default, got %d", cfg.DealBatchSize)
	}
}

func TestLoadConfigRejectsNonPositiveDurations(t *testing.T) {
	t.Setenv("DEAL_POLL_INTERVAL", "0")
	t.Setenv("OLLAMA_TIMEOUT", "-5")
	t.Setenv("READ_TIMEOUT", "0")
	t.Setenv("DEAL_BATCH_SIZE", "-1")

	cfg, _ := LoadConfig()
	if cfg.DealPollInterval != 60*time.Second {
		t.Fatalf("DealPollInterval = %v, want default", cfg.DealPollInterval)
	}
	if cfg.OllamaTimeout != 30*time.Second || cfg.ReadTimeout != 30*time.Second {
		t.Fatalf("timeouts = %v, %v, want defaults", cfg.OllamaTimeout, cfg.ReadTimeout)
	}
	if cfg.DealBatchSize != 100 {
		t.Fatalf("DealBatchSize = %d, want default", cfg.DealBatchSize)
	}
}
