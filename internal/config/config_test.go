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
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Engine.RequestTimeout != 60*time.Second {
		t.Errorf("request timeout = %v, want 60s", cfg.Engine.RequestTimeout)
	}
	if cfg.Engine.IdentityCutoff != 80 || cfg.Engine.IdentityUniqueCutoff != 95 {
		t.Errorf("identity cutoffs = %v/%v, want 80/95",
			cfg.Engine.IdentityCutoff, cfg.Engine.IdentityUniqueCutoff)
	}
	if cfg.Engine.EligibilityThreshold != 40 || cfg.Engine.CandidateThreshold != 60 {
		t.Errorf("match thresholds = %v/%v, want 40/60",
			cfg.Engine.EligibilityThreshold, cfg.Engine.CandidateThreshold)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SPARK_SERVER_PORT", "9090")
	t.Setenv("SPARK_GEMINI_API_KEY", "test-key")
	t.Setenv("SPARK_ENGINE_IDENTITY_CUTOFF", "70")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Gemini.APIKey != "test-key" {
		t.Errorf("api key = %q, want test-key", cfg.Gemini.APIKey)
	}
	if cfg.Engine.IdentityCutoff != 70 {
		t.Errorf("identity cutoff = %v, want 70", cfg.Engine.IdentityCutoff)
	}
	if err := cfg.RequireGeminiKey(); err != nil {
		t.Errorf("RequireGeminiKey with key set: %v", err)
	}
}

func TestRequireGeminiKeyMissing(t *testing.T) {
	var cfg Config
	if err := cfg.RequireGeminiKey(); err == nil {
		t.Error("missing key must be an error")
	}
}
