package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DefaultSampleSize != 10 {
		t.Fatalf("unexpected DefaultSampleSize: %d", cfg.DefaultSampleSize)
	}
	if cfg.MaxSampleSize != 50 {
		t.Fatalf("unexpected MaxSampleSize: %d", cfg.MaxSampleSize)
	}
	if cfg.ResolverTableTTL != 24*time.Hour {
		t.Fatalf("unexpected ResolverTableTTL: %s", cfg.ResolverTableTTL)
	}
	if cfg.BatchWorkers != 8 {
		t.Fatalf("unexpected BatchWorkers: %d", cfg.BatchWorkers)
	}
	if !cfg.AuditEnabled || cfg.AuditPath != "analysis_audit.jsonl" {
		t.Fatalf("unexpected audit defaults: enabled=%v path=%q", cfg.AuditEnabled, cfg.AuditPath)
	}
}

func TestLoad_SampleSizeBounds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ANALYSIS_DEFAULT_SAMPLE_SIZE", "20")
	t.Setenv("ANALYSIS_MAX_SAMPLE_SIZE", "10")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when max sample size < default")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_ResolverTableTTLMustBePositive(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RESOLVER_TABLE_TTL", "-1h")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive RESOLVER_TABLE_TTL")
	}
}
