package config

import "testing"

func TestFromLookup_Defaults(t *testing.T) {
	cfg := fromLookup(func(string) string { return "" })
	if cfg.Addr != ":8080" || cfg.VisibleLimit != 6 || cfg.ViewportWidth != 390 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DataPath != "" {
		t.Fatalf("data path should default to the built-in sample: %q", cfg.DataPath)
	}
}

func TestFromLookup_Overrides(t *testing.T) {
	env := map[string]string{
		"BARCHART_ADDR":           "127.0.0.1:9000",
		"BARCHART_DATA":           " data.jsonc ",
		"BARCHART_VISIBLE_LIMIT":  "12",
		"BARCHART_VIEWPORT_WIDTH": "640",
		"BARCHART_LOG_LEVEL":      "debug",
		"BARCHART_X_TITLE":        "Month",
	}
	cfg := fromLookup(func(k string) string { return env[k] })
	if cfg.Addr != "127.0.0.1:9000" || cfg.DataPath != "data.jsonc" || cfg.VisibleLimit != 12 ||
		cfg.ViewportWidth != 640 || cfg.LogLevel != "debug" || cfg.XTitle != "Month" || cfg.YTitle != "Value" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestFromLookup_InvalidNumbersIgnored(t *testing.T) {
	env := map[string]string{"BARCHART_VISIBLE_LIMIT": "-3", "BARCHART_VIEWPORT_WIDTH": "wide"}
	cfg := fromLookup(func(k string) string { return env[k] })
	if cfg.VisibleLimit != 6 || cfg.ViewportWidth != 390 {
		t.Fatalf("invalid values applied: %+v", cfg)
	}
}
