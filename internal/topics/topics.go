package topics

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Topic is one unit of work: a source URL plus a human display label. The
// label is used as the document title when the page itself offers none.
type Topic struct {
	URL   string `yaml:"url"`
	Label string `yaml:"label"`
}

// Default returns the built-in topic list used when no topics file is
// configured.
func Default() []Topic {
	return []Topic{
		{URL: "https://www.geeksforgeeks.org/greedy-algorithms/", Label: "Greedy Algorithms"},
		{URL: "https://www.geeksforgeeks.org/dynamic-programming/", Label: "Dynamic Programming"},
		{URL: "https://www.geeksforgeeks.org/graph-data-structure-and-algorithms/", Label: "Graph Data Structure And Algorithms"},
		{URL: "https://www.geeksforgeeks.org/pattern-searching/", Label: "Pattern Searching"},
		{URL: "https://www.geeksforgeeks.org/branch-and-bound-algorithm/", Label: "Branch And Bound"},
		{URL: "https://www.geeksforgeeks.org/geometric-algorithms/", Label: "Geometric Algorithms"},
		{URL: "https://www.geeksforgeeks.org/randomized-algorithms/", Label: "Randomized Algorithms"},
	}
}

// topicsFile mirrors the YAML topics file:
//
//	topics:
//	  - url: https://example.com/page/
//	    label: Example Page
type topicsFile struct {
	Topics []Topic `yaml:"topics"`
}

// LoadFile reads a YAML topics file. Every entry must carry an http(s) URL;
// a missing label is derived from the URL slug. An empty list is not an
// error here; the caller decides whether an empty plan is fatal.
func LoadFile(path string) ([]Topic, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topics file: %w", err)
	}
	var f topicsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse topics file %s: %w", path, err)
	}
	for i := range f.Topics {
		t := &f.Topics[i]
		t.URL = strings.TrimSpace(t.URL)
		t.Label = strings.TrimSpace(t.Label)
		if t.URL == "" {
			return nil, fmt.Errorf("topics file %s: entry %d has no url", path, i+1)
		}
		u, err := url.Parse(t.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return nil, fmt.Errorf("topics file %s: entry %d has unsupported url %q", path, i+1, t.URL)
		}
		if t.Label == "" {
			t.Label = humanize(t.Slug())
		}
	}
	return f.Topics, nil
}

// Dedupe drops topics whose URL repeats an earlier entry, keeping the first
// occurrence. Comparison ignores scheme/host case and a trailing slash. The
// dropped entries are returned so the caller can log them.
func Dedupe(list []Topic) (kept, dropped []Topic) {
	seen := make(map[string]struct{}, len(list))
	for _, t := range list {
		key := normalizeURL(t.URL)
		if _, ok := seen[key]; ok {
			dropped = append(dropped, t)
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, t)
	}
	return kept, dropped
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.Fragment = ""
	return u.String()
}

// Slug derives the deterministic filesystem-safe name for the topic's output
// file: the last non-empty URL path segment, else the label, else "topic".
func (t Topic) Slug() string {
	if s := Slugify(lastPathSegment(t.URL)); s != "" {
		return s
	}
	if s := Slugify(t.Label); s != "" {
		return s
	}
	return "topic"
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify folds a string to a lowercase ASCII slug: combining marks are
// stripped via Unicode NFD and runs of non-alphanumerics collapse to single
// hyphens.
func Slugify(s string) string {
	out := nonAlnum.ReplaceAllString(strings.ToLower(foldDiacritics(s)), "-")
	return strings.Trim(out, "-")
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func lastPathSegment(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return u.Hostname()
	}
	segs := strings.Split(path, "/")
	return segs[len(segs)-1]
}

// humanize turns a slug into a display label, e.g. "binary-search" into
// "Binary Search".
func humanize(slug string) string {
	s := strings.ReplaceAll(slug, "-", " ")
	return cases.Title(language.English).String(s)
}
