package app

import "time"

// Defaults shared by flag declarations and the config-file overlay.
const (
	DefaultOutputDir = "scraped_content"
	DefaultDelayMin  = 1 * time.Second
	DefaultDelayMax  = 3 * time.Second
	DefaultTimeout   = 10 * time.Second
)

// Config holds runtime configuration for a scrape run.
type Config struct {
	// OutputDir receives one markdown file per topic, created if absent.
	OutputDir string
	// TopicsFile optionally replaces the built-in topic list.
	TopicsFile string

	// Politeness window: a pause drawn uniformly from [DelayMin, DelayMax]
	// precedes every request.
	DelayMin time.Duration
	DelayMax time.Duration

	// Fetching
	Timeout   time.Duration
	UserAgent string

	// Behavior
	EnablePDF   bool
	WriteReport bool
	Verbose     bool
}
