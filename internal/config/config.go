// Package config holds the editor configuration consumed by the input
// core: auto-info and auto-complete policy, idle timing, and history
// capacity. Files are TOML; KAK_* environment variables override file
// values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is a plain snapshot. Decision functions receive it (or values
// derived from it) explicitly; nothing reads ambient global state.
type Config struct {
	// AutoInfo lists the trigger sources for which contextual info
	// boxes are shown: "command", "onkey", "normal".
	AutoInfo []string `toml:"autoinfo"`

	// AutoComplete lists the contexts with automatic completion:
	// "insert", "prompt".
	AutoComplete []string `toml:"autocomplete"`

	// IdleTimeoutMS is the idle interval before on-key info and idle
	// callbacks fire, in milliseconds.
	IdleTimeoutMS int `toml:"idle_timeout_ms"`

	// HistoryMaxEntries caps each prompt history partition.
	HistoryMaxEntries int `toml:"history_max_entries"`

	// LogLevel is the minimum level written to the log.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AutoInfo:          []string{"command", "onkey"},
		AutoComplete:      []string{"insert", "prompt"},
		IdleTimeoutMS:     50,
		HistoryMaxEntries: 100,
		LogLevel:          "info",
	}
}

// IdleTimeout returns the idle interval as a duration.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMS) * time.Millisecond
}

// Load reads the configuration file at path, layered over Default and
// under the environment. A missing file is not an error; the defaults
// apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides fields from KAK_* environment variables.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("KAK_AUTOINFO"); ok {
		cfg.AutoInfo = splitList(v)
	}
	if v, ok := os.LookupEnv("KAK_AUTOCOMPLETE"); ok {
		cfg.AutoComplete = splitList(v)
	}
	if v, ok := os.LookupEnv("KAK_IDLE_TIMEOUT_MS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.IdleTimeoutMS = n
		}
	}
	if v, ok := os.LookupEnv("KAK_HISTORY_MAX_ENTRIES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryMaxEntries = n
		}
	}
	if v, ok := os.LookupEnv("KAK_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
