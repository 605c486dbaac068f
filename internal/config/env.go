package config

import (
	"os"

	"github.com/nibzard/todo-go/internal/utils"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODO_FILE"); v != "" {
		cfg.TodoFile = v
	}
	if v := os.Getenv("TODO_TIME_FORMAT"); v != "" {
		cfg.TimeFormat = v
	}
	if v := os.Getenv("TODO_COLOR"); v != "" {
		cfg.Color = utils.BoolFromString(v)
	}
	// https://no-color.org: any non-empty value disables color.
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.Color = false
	}

	// Logging configuration
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TODO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = utils.BoolFromString(v)
	}
	if v := os.Getenv("TODO_LOG_CALLER"); v != "" {
		cfg.LogCaller = utils.BoolFromString(v)
	}
}
