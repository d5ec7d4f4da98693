package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/geekmd-io/geekmd/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load .env before flags are declared so the env-backed defaults below
	// see values from the file.
	if err := app.LoadEnvFiles(".env"); err != nil {
		log.Warn().Err(err).Msg("dotenv load failed")
	}

	var (
		outputDir   string
		topicsFile  string
		delayMin    time.Duration
		delayMax    time.Duration
		timeout     time.Duration
		userAgent   string
		enablePDF   bool
		writeReport bool
		configPath  string
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&outputDir, "out", envOr("OUTPUT_DIR", app.DefaultOutputDir), "Directory receiving one markdown file per topic")
	flag.StringVar(&topicsFile, "topics", os.Getenv("TOPICS_FILE"), "YAML topics file replacing the built-in topic list")
	flag.DurationVar(&delayMin, "delay.min", envDurationOr("DELAY_MIN", app.DefaultDelayMin), "Lower bound of the random pause before each request")
	flag.DurationVar(&delayMax, "delay.max", envDurationOr("DELAY_MAX", app.DefaultDelayMax), "Upper bound of the random pause before each request")
	flag.DurationVar(&timeout, "timeout", envDurationOr("FETCH_TIMEOUT", app.DefaultTimeout), "Per-request fetch timeout")
	flag.StringVar(&userAgent, "ua", os.Getenv("USER_AGENT"), "User-Agent header sent with requests (default: a desktop browser string)")
	flag.BoolVar(&enablePDF, "pdf", envBoolOr("PDF", false), "Also write a PDF rendition next to each markdown file")
	flag.BoolVar(&writeReport, "report", envBoolOr("REPORT", true), "Write run-report.json into the output directory")
	flag.StringVar(&configPath, "config", os.Getenv("GEEKMD_CONFIG"), "Optional YAML or JSON config file")
	flag.BoolVar(&verbose, "v", envBoolOr("VERBOSE", false), "Enable verbose debug logging")
	flag.BoolVar(&showVersion, "version", false, "Print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("geekmd %s (commit %s, built %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}

	cfg := app.Config{
		OutputDir:   outputDir,
		TopicsFile:  topicsFile,
		DelayMin:    delayMin,
		DelayMax:    delayMax,
		Timeout:     timeout,
		UserAgent:   userAgent,
		EnablePDF:   enablePDF,
		WriteReport: writeReport,
		Verbose:     verbose,
	}

	// Config file fills fields still at their defaults; env keeps precedence
	// over the file, and explicitly passed flags are re-asserted on top.
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("cannot load config file")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
		app.ApplyEnvOverrides(&cfg)
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "out":
				cfg.OutputDir = outputDir
			case "topics":
				cfg.TopicsFile = topicsFile
			case "delay.min":
				cfg.DelayMin = delayMin
			case "delay.max":
				cfg.DelayMax = delayMax
			case "timeout":
				cfg.Timeout = timeout
			case "ua":
				cfg.UserAgent = userAgent
			case "pdf":
				cfg.EnablePDF = enablePDF
			case "report":
				cfg.WriteReport = writeReport
			case "v":
				cfg.Verbose = verbose
			}
		})
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Per-topic failures are absorbed inside Run; an error at this level
		// means an invalid config, an empty plan, or an unusable output dir.
		os.Exit(2)
	}
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()
	return a.Run(context.Background())
}

// envOr returns the named environment variable when set, otherwise def.
func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
