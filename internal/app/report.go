package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"
)

// Per-topic outcome recorded in the run report.
const (
	statusWritten       = "written"
	statusFetchFailed   = "fetch-failed"
	statusExtractFailed = "extract-failed"
	statusWriteFailed   = "write-failed"
)

// reportEntry is a compact record of a single topic's outcome.
type reportEntry struct {
	Label      string `json:"label"`
	URL        string `json:"url"`
	File       string `json:"file,omitempty"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	Bytes      int    `json:"bytes,omitempty"`
	SHA256     string `json:"sha256,omitempty"`
	Sections   int    `json:"sections,omitempty"`
	Articles   int    `json:"articles,omitempty"`
	CodeBlocks int    `json:"code_blocks,omitempty"`
}

// reportMeta captures high-level run details that aid reproducibility.
type reportMeta struct {
	Version     string    `json:"version"`
	OutputDir   string    `json:"output_dir"`
	TopicCount  int       `json:"topic_count"`
	Written     int       `json:"written"`
	Failed      int       `json:"failed"`
	GeneratedAt time.Time `json:"generated_at"`
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of the given text.
func computeSHA256Hex(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// marshalReportJSON encodes the machine-readable run report.
func marshalReportJSON(meta reportMeta, entries []reportEntry) ([]byte, error) {
	payload := struct {
		Meta   reportMeta    `json:"meta"`
		Topics []reportEntry `json:"topics"`
	}{Meta: meta, Topics: entries}
	return json.MarshalIndent(payload, "", "  ")
}

func writeRunReport(path string, meta reportMeta, entries []reportEntry) error {
	data, err := marshalReportJSON(meta, entries)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
