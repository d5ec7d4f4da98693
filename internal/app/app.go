package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geekmd-io/geekmd/internal/extract"
	"github.com/geekmd-io/geekmd/internal/fetch"
	"github.com/geekmd-io/geekmd/internal/topics"
	"github.com/geekmd-io/geekmd/internal/validate"
)

// App wires the fetcher and the extractor into the sequential per-topic
// loop: fetch, format, render, write.
type App struct {
	cfg       Config
	getter    pageGetter
	extractor extract.Extractor
}

// ErrNoTopics is returned when the run plan is empty after loading and
// deduplication. Per the exit code policy, this condition should result in a
// non-zero process exit.
var ErrNoTopics = errors.New("no topics to scrape")

// pageGetter abstracts the minimal fetch method the run loop uses, so tests
// can substitute canned responses.
type pageGetter interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	client := &fetch.Client{
		HTTPClient: newSessionHTTPClient(),
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout,
		DelayMin:   cfg.DelayMin,
		DelayMax:   cfg.DelayMax,
	}
	return &App{
		cfg:       cfg,
		getter:    client,
		extractor: extract.Extractor{Selectors: extract.DefaultSelectors()},
	}, nil
}

func (a *App) Close() {
	// nothing yet
}

// Run processes every topic in plan order. A fetch or extract failure skips
// the topic with a warning; a file-write failure is logged and recorded but
// does not stop the batch. Only an empty plan or an unusable output
// directory aborts the run.
func (a *App) Run(ctx context.Context) error {
	plan, err := a.planTopics()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	used := make(map[string]bool, len(plan))
	entries := make([]reportEntry, 0, len(plan))
	written := 0

	for _, t := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := reportEntry{Label: t.Label, URL: t.URL}

		body, _, err := a.getter.Get(ctx, t.URL)
		if err != nil {
			log.Warn().Err(err).Str("url", t.URL).Msg("fetch failed; skipping topic")
			entry.Status = statusFetchFailed
			entry.Reason = err.Error()
			entries = append(entries, entry)
			continue
		}

		doc, err := a.extractor.Format(body, t.Label)
		if err != nil {
			log.Warn().Err(err).Str("url", t.URL).Msg("extract failed; skipping topic")
			entry.Status = statusExtractFailed
			entry.Reason = err.Error()
			entries = append(entries, entry)
			continue
		}

		md := doc.Render()
		if err := validate.ValidateDocument(md); err != nil {
			log.Warn().Err(err).Str("url", t.URL).Msg("document structure issues")
		}

		outPath := outputFilename(a.cfg.OutputDir, t.Slug(), used)
		entry.File = filepath.Base(outPath)
		if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
			log.Error().Err(err).Str("path", outPath).Msg("write failed")
			entry.Status = statusWriteFailed
			entry.Reason = err.Error()
			entries = append(entries, entry)
			continue
		}
		written++

		stats := doc.Stats()
		entry.Status = statusWritten
		entry.Bytes = len(md)
		entry.SHA256 = computeSHA256Hex(md)
		entry.Sections = stats.Sections
		entry.Articles = stats.Articles
		entry.CodeBlocks = stats.CodeBlocks
		entries = append(entries, entry)
		log.Info().Str("out", outPath).Int("sections", stats.Sections).Int("articles", stats.Articles).Msg("wrote topic")

		if a.cfg.EnablePDF {
			if err := writeSimplePDF(md, derivePDFPath(outPath)); err != nil {
				log.Warn().Err(err).Str("url", t.URL).Msg("pdf rendition failed")
			}
		}
	}

	if a.cfg.WriteReport {
		meta := reportMeta{
			Version:     BuildVersion,
			OutputDir:   a.cfg.OutputDir,
			TopicCount:  len(plan),
			Written:     written,
			Failed:      len(plan) - written,
			GeneratedAt: time.Now().UTC(),
		}
		if err := writeRunReport(deriveReportPath(a.cfg.OutputDir), meta, entries); err != nil {
			log.Warn().Err(err).Msg("run report write failed")
		}
	}

	log.Info().Int("topics", len(plan)).Int("written", written).Int("failed", len(plan)-written).Msg("run complete")
	return nil
}

// planTopics resolves the topic list from the configured file or the
// built-in default, then collapses duplicate URLs so each page is fetched
// once.
func (a *App) planTopics() ([]topics.Topic, error) {
	list := topics.Default()
	if a.cfg.TopicsFile != "" {
		loaded, err := topics.LoadFile(a.cfg.TopicsFile)
		if err != nil {
			return nil, fmt.Errorf("load topics: %w", err)
		}
		list = loaded
	}
	kept, dropped := topics.Dedupe(list)
	for _, d := range dropped {
		log.Warn().Str("url", d.URL).Msg("duplicate topic dropped")
	}
	if len(kept) == 0 {
		return nil, ErrNoTopics
	}
	return kept, nil
}
