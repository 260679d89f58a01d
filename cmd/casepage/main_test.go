package main

import (
	"testing"
	"time"
)

var configEnv = []string{
	"SITE_NAME", "SITE_URL", "SITE_DESCRIPTION", "ADDR", "DATABASE_PATH", "LOG_LEVEL",
	"COOKIE_SECURE", "STATS_CACHE_TTL", "VIEW_WINDOW", "VIEW_RETENTION_DAYS",
}

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
	t.Setenv("SESSION_SECRET", "secret")
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	setEnv(t, nil)
	cfg, err := configFromEnv()
	if err != nil {
		t.Fatalf("configFromEnv failed: %v", err)
	}
	if cfg.SessionSecret != "secret" {
		t.Errorf("SessionSecret = %q", cfg.SessionSecret)
	}
	if cfg.CookieSecure || cfg.StatsCacheTTL != 0 || cfg.ViewWindow != 0 || cfg.ViewRetentionDays != 0 {
		t.Errorf("unset variables should leave zero values for SiteConfig defaults: %+v", cfg)
	}
}

func TestConfigFromEnvParsesValues(t *testing.T) {
	setEnv(t, map[string]string{
		"SITE_NAME":           "Docket",
		"ADDR":                ":8080",
		"COOKIE_SECURE":       "true",
		"STATS_CACHE_TTL":     "30s",
		"VIEW_WINDOW":         "5m",
		"VIEW_RETENTION_DAYS": "30",
	})
	cfg, err := configFromEnv()
	if err != nil {
		t.Fatalf("configFromEnv failed: %v", err)
	}
	if cfg.Name != "Docket" || cfg.Addr != ":8080" || !cfg.CookieSecure {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.StatsCacheTTL != 30*time.Second || cfg.ViewWindow != 5*time.Minute || cfg.ViewRetentionDays != 30 {
		t.Errorf("unexpected durations: %+v", cfg)
	}
}

func TestConfigFromEnvRejectsBadValues(t *testing.T) {
	tests := []map[string]string{
		{"COOKIE_SECURE": "maybe"},
		{"STATS_CACHE_TTL": "soon"},
		{"VIEW_WINDOW": "-1s"},
		{"VIEW_WINDOW": "0s"},
		{"VIEW_WINDOW": "later"},
		{"VIEW_RETENTION_DAYS": "forever"},
	}
	for _, kv := range tests {
		setEnv(t, kv)
		if _, err := configFromEnv(); err == nil {
			t.Errorf("configFromEnv(%v) should fail", kv)
		}
	}
}
