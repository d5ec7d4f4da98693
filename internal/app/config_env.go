package app

import (
	"os"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = os.Getenv("OUTPUT_DIR")
	}
	if cfg.TopicsFile == "" {
		cfg.TopicsFile = os.Getenv("TOPICS_FILE")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("USER_AGENT")
	}

	if cfg.DelayMin == 0 {
		if d, ok := envDuration("DELAY_MIN"); ok {
			cfg.DelayMin = d
		}
	}
	if cfg.DelayMax == 0 {
		if d, ok := envDuration("DELAY_MAX"); ok {
			cfg.DelayMax = d
		}
	}
	if cfg.Timeout == 0 {
		if d, ok := envDuration("FETCH_TIMEOUT"); ok {
			cfg.Timeout = d
		}
	}

	// Booleans only switch on here. WriteReport defaults to true, so its
	// env handling lives in ApplyEnvOverrides where both directions work.
	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.EnablePDF, "PDF")
	setBool(&cfg.Verbose, "VERBOSE")
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when the corresponding env vars are set. This is used to let env take
// precedence over values coming from a config file while still allowing flags
// to remain highest precedence.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("TOPICS_FILE"); v != "" {
		cfg.TopicsFile = v
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}

	if d, ok := envDuration("DELAY_MIN"); ok {
		cfg.DelayMin = d
	}
	if d, ok := envDuration("DELAY_MAX"); ok {
		cfg.DelayMax = d
	}
	if d, ok := envDuration("FETCH_TIMEOUT"); ok {
		cfg.Timeout = d
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}
	setBool(&cfg.EnablePDF, "PDF")
	setBool(&cfg.WriteReport, "REPORT")
	setBool(&cfg.Verbose, "VERBOSE")
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return d, true
}
