package config

import (
	"os"
	"strconv"
)

// App captures process-level configuration for the demo binary.
type App struct {
	LogLevel  string
	LogFormat string
	DemoFlows int
}

// FromEnv builds an App config from environment variables so main stays lean.
func FromEnv() App {
	level := os.Getenv("CUSTOS_LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	format := os.Getenv("CUSTOS_LOG_FORMAT")
	if format == "" {
		format = "text"
	}

	flows := 3
	if raw := os.Getenv("CUSTOS_DEMO_FLOWS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			flows = n
		}
	}

	return App{
		LogLevel:  level,
		LogFormat: format,
		DemoFlows: flows,
	}
}
