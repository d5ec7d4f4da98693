package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
	t.Setenv("GEEKMD_TEST_FOO", "")
	t.Setenv("GEEKMD_TEST_BAR", "")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "\n# sample dotenv file\nGEEKMD_TEST_FOO=alpha\nGEEKMD_TEST_BAR=\"quoted beta\"\nmalformed line\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := LoadEnvFiles(envPath); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("GEEKMD_TEST_FOO"); got != "alpha" {
		t.Fatalf("GEEKMD_TEST_FOO=%q, want alpha", got)
	}
	if got := os.Getenv("GEEKMD_TEST_BAR"); got != "quoted beta" {
		t.Fatalf("GEEKMD_TEST_BAR=%q, want quoted beta", got)
	}
}

// Later files override earlier ones when loading multiple dotenv files.
func TestLoadEnvFiles_OverrideOrder(t *testing.T) {
	t.Setenv("GEEKMD_TEST_K", "")
	dir := t.TempDir()
	a := filepath.Join(dir, ".env.a")
	b := filepath.Join(dir, ".env.b")
	if err := os.WriteFile(a, []byte("GEEKMD_TEST_K=first\n"), 0o600); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("GEEKMD_TEST_K=second\n"), 0o600); err != nil {
		t.Fatalf("write b: %v", err)
	}

	if err := LoadEnvFiles(a, b); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("GEEKMD_TEST_K"); got != "second" {
		t.Fatalf("override order failed: got %q, want second", got)
	}
}

func TestLoadEnvFiles_MissingFileIgnored(t *testing.T) {
	if err := LoadEnvFiles(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing dotenv should not error, got %v", err)
	}
}

// Verify ApplyEnvToConfig reads settings from environment and leaves explicit
// values alone.
func TestApplyEnvToConfig_FromEnv(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/tmp/geekmd-out")
	t.Setenv("TOPICS_FILE", "topics.yaml")
	t.Setenv("DELAY_MIN", "1500ms")
	t.Setenv("DELAY_MAX", "2500ms")
	t.Setenv("FETCH_TIMEOUT", "7s")
	t.Setenv("USER_AGENT", "env-agent")
	t.Setenv("PDF", "yes")
	t.Setenv("VERBOSE", "")

	var cfg Config
	ApplyEnvToConfig(&cfg)
	if cfg.OutputDir != "/tmp/geekmd-out" {
		t.Fatalf("OutputDir=%q", cfg.OutputDir)
	}
	if cfg.TopicsFile != "topics.yaml" {
		t.Fatalf("TopicsFile=%q", cfg.TopicsFile)
	}
	if cfg.DelayMin != 1500*time.Millisecond || cfg.DelayMax != 2500*time.Millisecond {
		t.Fatalf("delay window = %v..%v", cfg.DelayMin, cfg.DelayMax)
	}
	if cfg.Timeout != 7*time.Second {
		t.Fatalf("Timeout=%v", cfg.Timeout)
	}
	if cfg.UserAgent != "env-agent" {
		t.Fatalf("UserAgent=%q", cfg.UserAgent)
	}
	if !cfg.EnablePDF {
		t.Fatal("PDF=yes should enable the pdf rendition")
	}
	if cfg.Verbose {
		t.Fatal("empty VERBOSE must not enable verbose")
	}

	// Explicit values take precedence over env.
	cfg = Config{OutputDir: "explicit", DelayMin: time.Second}
	ApplyEnvToConfig(&cfg)
	if cfg.OutputDir != "explicit" {
		t.Fatalf("explicit OutputDir overridden to %q", cfg.OutputDir)
	}
	if cfg.DelayMin != time.Second {
		t.Fatalf("explicit DelayMin overridden to %v", cfg.DelayMin)
	}
}

// ApplyEnvOverrides forces env values over whatever the config file set,
// including switching default-on booleans off.
func TestApplyEnvOverrides_Booleans(t *testing.T) {
	t.Setenv("REPORT", "false")
	t.Setenv("VERBOSE", "1")
	t.Setenv("DELAY_MAX", "4s")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("DELAY_MIN", "")
	t.Setenv("FETCH_TIMEOUT", "")
	t.Setenv("TOPICS_FILE", "")
	t.Setenv("USER_AGENT", "")
	t.Setenv("PDF", "")

	cfg := Config{OutputDir: "keep", WriteReport: true, DelayMax: time.Second}
	ApplyEnvOverrides(&cfg)
	if cfg.WriteReport {
		t.Fatal("REPORT=false should switch the run report off")
	}
	if !cfg.Verbose {
		t.Fatal("VERBOSE=1 should switch verbose on")
	}
	if cfg.DelayMax != 4*time.Second {
		t.Fatalf("DelayMax=%v, want 4s", cfg.DelayMax)
	}
	if cfg.OutputDir != "keep" {
		t.Fatalf("unset OUTPUT_DIR must not clear OutputDir, got %q", cfg.OutputDir)
	}
}

func TestEnvDuration_Invalid(t *testing.T) {
	t.Setenv("DELAY_MIN", "soon")
	var cfg Config
	ApplyEnvToConfig(&cfg)
	if cfg.DelayMin != 0 {
		t.Fatalf("invalid duration should be ignored, got %v", cfg.DelayMin)
	}
}
