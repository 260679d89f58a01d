package casepage

import (
	"testing"
	"time"

	glog "github.com/labstack/gommon/log"
)

func TestSiteConfigDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()

	if cfg.Name != "Cases" || cfg.Addr != ":3000" || cfg.DatabasePath != "data/cases.db" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.StatsCacheTTL != time.Minute || cfg.ViewWindow != 10*time.Minute {
		t.Errorf("unexpected durations: %+v", cfg)
	}
	if cfg.TopCasesLimit != 5 || cfg.ViewRetentionDays != 365 || cfg.LogLevel != "info" {
		t.Errorf("unexpected limits: %+v", cfg)
	}
}

func TestSiteConfigKeepsValues(t *testing.T) {
	cfg := SiteConfig{Name: "Docket", Addr: ":8080", ViewWindow: time.Second}
	cfg.setDefaults()
	if cfg.Name != "Docket" || cfg.Addr != ":8080" || cfg.ViewWindow != time.Second {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]glog.Lvl{
		"debug": glog.DEBUG,
		"INFO":  glog.INFO,
		"":      glog.INFO,
		"warn":  glog.WARN,
		"error": glog.ERROR,
		"off":   glog.OFF,
	}
	for in, want := range tests {
		got, err := parseLogLevel(in)
		if err != nil {
			t.Errorf("parseLogLevel(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := parseLogLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSiteConfigClampsNonPositive(t *testing.T) {
	cfg := SiteConfig{
		StatsCacheTTL:     -time.Second,
		TopCasesLimit:     -3,
		ViewWindow:        -time.Minute,
		ViewRetentionDays: -1,
	}
	cfg.setDefaults()
	if cfg.StatsCacheTTL != time.Minute || cfg.TopCasesLimit != 5 || cfg.ViewWindow != 10*time.Minute || cfg.ViewRetentionDays != 365 {
		t.Errorf("non-positive values should fall back to defaults: %+v", cfg)
	}
}
