package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"START_PAGE", "PAGES_TO_SCRAPE", "SETTLE_DELAY_MS", "PACING_DELAY_MS",
		"RAW_CSV_PATH", "FINAL_CSV_PATH", "HEADLESS", "POSTGRES_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.StartPage != 0 || cfg.PagesToScrape != 1 {
		t.Errorf("page range: got start=%d pages=%d, want 0/1", cfg.StartPage, cfg.PagesToScrape)
	}
	if cfg.SettleDelay != 2*time.Second {
		t.Errorf("SettleDelay: got %v, want 2s", cfg.SettleDelay)
	}
	if cfg.PacingDelay != time.Second {
		t.Errorf("PacingDelay: got %v, want 1s", cfg.PacingDelay)
	}
	if cfg.RawCSVPath != "rental_info.csv" || cfg.FinalCSVPath != "rental_data.csv" {
		t.Errorf("paths: got %q / %q", cfg.RawCSVPath, cfg.FinalCSVPath)
	}
	if !cfg.Headless {
		t.Error("Headless should default to true")
	}
	if cfg.PostgresEnabled {
		t.Error("PostgresEnabled should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("START_PAGE", "2")
	t.Setenv("PAGES_TO_SCRAPE", "3")
	t.Setenv("SETTLE_DELAY_MS", "0")
	t.Setenv("HEADLESS", "false")
	t.Setenv("PACING_DELAY_MS", "not-a-number")

	cfg := Load()
	if cfg.SettleDelay != 0 {
		t.Errorf("SettleDelay: got %v, want 0", cfg.SettleDelay)
	}
	if cfg.PacingDelay != time.Second {
		t.Errorf("PacingDelay should fall back on bad input, got %v", cfg.PacingDelay)
	}
	if cfg.Headless {
		t.Error("Headless should be false")
	}

	got := cfg.PageRange()
	want := []int{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("PageRange: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PageRange[%d]: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			PagesToScrape: 1,
			PageTimeout:   time.Second,
			RawCSVPath:    "a.csv",
			FinalCSVPath:  "b.csv",
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative start", func(c *Config) { c.StartPage = -1 }},
		{"zero pages", func(c *Config) { c.PagesToScrape = 0 }},
		{"negative pacing", func(c *Config) { c.PacingDelay = -time.Millisecond }},
		{"zero timeout", func(c *Config) { c.PageTimeout = 0 }},
		{"blank raw path", func(c *Config) { c.RawCSVPath = "  " }},
		{"blank final path", func(c *Config) { c.FinalCSVPath = "" }},
	}

	for _, tt := range tests {
		c := valid()
		tt.mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidatePathsIgnoresCrawlSettings(t *testing.T) {
	c := &Config{RawCSVPath: "a.csv", FinalCSVPath: "b.csv"}
	if err := c.ValidatePaths(); err != nil {
		t.Errorf("ValidatePaths rejected a config with valid paths: %v", err)
	}
	if err := c.Validate(); err == nil {
		t.Error("Validate should still reject a zero page count")
	}

	c.FinalCSVPath = " "
	if err := c.ValidatePaths(); err == nil {
		t.Error("ValidatePaths should reject a blank final path")
	}
}
