package config

import (
	"os"
	"strconv"
	"strings"
)

// Server captures the preview server configuration.
type Server struct {
	Addr          string
	DataPath      string
	VisibleLimit  int
	ViewportWidth float64
	LogLevel      string
	XTitle        string
	YTitle        string
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Flags parsed in main override these values.
func FromEnv() Server {
	return fromLookup(os.Getenv)
}

func fromLookup(get func(string) string) Server {
	cfg := Server{
		Addr:          ":8080",
		VisibleLimit:  6,
		ViewportWidth: 390,
		LogLevel:      "info",
		XTitle:        "Date",
		YTitle:        "Value",
	}
	if v := strings.TrimSpace(get("BARCHART_ADDR")); v != "" {
		cfg.Addr = v
	}
	cfg.DataPath = strings.TrimSpace(get("BARCHART_DATA"))
	if n, err := strconv.Atoi(strings.TrimSpace(get("BARCHART_VISIBLE_LIMIT"))); err == nil && n >= 0 {
		cfg.VisibleLimit = n
	}
	if w, err := strconv.ParseFloat(strings.TrimSpace(get("BARCHART_VIEWPORT_WIDTH")), 64); err == nil && w > 0 {
		cfg.ViewportWidth = w
	}
	if v := strings.TrimSpace(get("BARCHART_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookupSet(get, "BARCHART_X_TITLE"); ok {
		cfg.XTitle = v
	}
	if v, ok := lookupSet(get, "BARCHART_Y_TITLE"); ok {
		cfg.YTitle = v
	}
	return cfg
}

func lookupSet(get func(string) string, key string) (string, bool) {
	v := get(key)
	return v, v != ""
}
