package validate

import "fmt"

// ValidateDocument checks the structural contract of a rendered topic
// document:
//   - the first non-empty line is the H1 title, and it is the only H1
//   - no heading is deeper than H3
//   - an H3 article heading appears only after an H2 section heading
//   - every opened code fence is closed
//
// Lines inside fenced code blocks are ignored, so code comments that look
// like headings do not trip the checks. The first violated constraint is
// returned as an error; nil means the document is well formed.
func ValidateDocument(markdown string) error {
	lines := splitLines(markdown)

	inFence := false
	fenceLen := 0
	sawTitle := false
	sawSection := false

	for i, raw := range lines {
		line := trimSpace(raw)
		if inFence {
			if closesFence(line, fenceLen) {
				inFence = false
			}
			continue
		}
		if n := fenceRun(line); n >= 3 {
			inFence = true
			fenceLen = n
			continue
		}
		if line == "" {
			continue
		}
		if !isHeading(line) {
			if !sawTitle {
				return fmt.Errorf("line %d: body text before the H1 title", i+1)
			}
			continue
		}
		switch lvl := headingLevel(line); {
		case !sawTitle:
			if lvl != 1 {
				return fmt.Errorf("line %d: first heading must be the H1 title, got H%d", i+1, lvl)
			}
			sawTitle = true
		case lvl == 1:
			return fmt.Errorf("line %d: more than one H1 heading", i+1)
		case lvl == 2:
			sawSection = true
		case lvl == 3:
			if !sawSection {
				return fmt.Errorf("line %d: H3 article heading before any H2 section heading", i+1)
			}
		default:
			return fmt.Errorf("line %d: heading level H%d exceeds the H3 maximum", i+1, lvl)
		}
	}
	if inFence {
		return fmt.Errorf("unterminated code fence")
	}
	if !sawTitle {
		return fmt.Errorf("document is empty; missing title")
	}
	return nil
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func trimSpace(s string) string {
	i := 0
	j := len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t' || s[i] == '\r') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\r') {
		j--
	}
	return s[i:j]
}

func isHeading(s string) bool {
	// e.g., "# Sorting" .. "###### deep"
	if len(s) == 0 {
		return false
	}
	i := 0
	for i < len(s) && s[i] == '#' {
		i++
	}
	return i > 0 && i <= 6 && (i < len(s) && s[i] == ' ')
}

func headingLevel(s string) int {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	return n
}

// fenceRun returns the length of the leading backtick run, or 0 when the
// line does not begin with backticks. Text after the run (a language tag)
// is allowed on an opening fence.
func fenceRun(s string) int {
	n := 0
	for n < len(s) && s[n] == '`' {
		n++
	}
	return n
}

// closesFence reports whether the line terminates a fence opened with
// openLen backticks. A closing fence is backticks only, at least as long
// as the opening run.
func closesFence(s string, openLen int) bool {
	n := fenceRun(s)
	return n >= openLen && n == len(s)
}
