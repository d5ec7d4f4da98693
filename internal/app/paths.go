package app

import (
	"path/filepath"
	"strconv"
	"strings"
)

// outputFilename returns the markdown output path for a slug under dir,
// appending a numeric suffix when an earlier topic in the same run already
// claimed the name. Suffixes are assigned in list order, so reruns over the
// same plan produce identical filenames.
func outputFilename(dir, slug string, used map[string]bool) string {
	name := slug
	for n := 2; used[name]; n++ {
		name = slug + "-" + strconv.Itoa(n)
	}
	used[name] = true
	return filepath.Join(dir, name+".md")
}

// derivePDFPath returns the PDF rendition path next to the markdown output.
func derivePDFPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, ".md") + ".pdf"
}

// deriveReportPath returns the run report location inside the output dir.
func deriveReportPath(outputDir string) string {
	return filepath.Join(outputDir, "run-report.json")
}
