package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to the dotted flag names. Durations are plain
// integers in nanoseconds, matching the encoding both codecs apply to
// time.Duration.
type FileConfig struct {
	Output string `yaml:"output" json:"output"`
	Topics string `yaml:"topics" json:"topics"`

	Delay struct {
		Min time.Duration `yaml:"min" json:"min"`
		Max time.Duration `yaml:"max" json:"max"`
	} `yaml:"delay" json:"delay"`

	Fetch struct {
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
		UserAgent string        `yaml:"userAgent" json:"userAgent"`
	} `yaml:"fetch" json:"fetch"`

	EnablePDF bool `yaml:"enablePDF" json:"enablePDF"`
	// Report is a pointer so a config file can switch the default-on run
	// report off.
	Report  *bool `yaml:"report" json:"report"`
	Verbose bool  `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset or still carry their flag default. Flags should
// already have been parsed; this lets file config supply defaults while
// preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}

	if (cfg.OutputDir == "" || cfg.OutputDir == DefaultOutputDir) && fc.Output != "" {
		cfg.OutputDir = fc.Output
	}
	if cfg.TopicsFile == "" && fc.Topics != "" {
		cfg.TopicsFile = fc.Topics
	}

	if (cfg.DelayMin == 0 || cfg.DelayMin == DefaultDelayMin) && fc.Delay.Min > 0 {
		cfg.DelayMin = fc.Delay.Min
	}
	if (cfg.DelayMax == 0 || cfg.DelayMax == DefaultDelayMax) && fc.Delay.Max > 0 {
		cfg.DelayMax = fc.Delay.Max
	}
	if (cfg.Timeout == 0 || cfg.Timeout == DefaultTimeout) && fc.Fetch.Timeout > 0 {
		cfg.Timeout = fc.Fetch.Timeout
	}
	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}

	if !cfg.EnablePDF && fc.EnablePDF {
		cfg.EnablePDF = true
	}
	if fc.Report != nil {
		cfg.WriteReport = *fc.Report
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if trim(cfg.OutputDir) == "" {
		return errors.New("config: output directory is required")
	}
	if cfg.DelayMin < 0 || cfg.DelayMax < 0 {
		return errors.New("config: negative delays are not allowed")
	}
	if cfg.DelayMax < cfg.DelayMin {
		return errors.New("config: delay.max must not be below delay.min")
	}
	if cfg.Timeout <= 0 {
		return errors.New("config: fetch timeout must be positive")
	}
	return nil
}

func trim(s string) string {
	i := 0
	j := len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n' || s[j-1] == '\r') {
		j--
	}
	return s[i:j]
}
