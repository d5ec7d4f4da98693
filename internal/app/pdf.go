package app

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// writeSimplePDF renders a minimal PDF from the rendered Markdown, giving
// headings larger bold type and fenced code a monospace face. This is
// intentionally simple and does not perform full Markdown layout.
func writeSimplePDF(markdown string, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		s := strings.TrimRight(line, " \t")
		trimmed := strings.TrimSpace(s)

		// Fence lines toggle code layout and are not printed themselves.
		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				inCode = false
				pdf.SetFont("Helvetica", "", 11)
				pdf.Ln(2)
			} else {
				inCode = true
				pdf.SetFont("Courier", "", 9)
			}
			continue
		}
		if inCode {
			// Keep leading indentation inside code.
			pdf.MultiCell(0, 4, s, "", "L", false)
			continue
		}
		if trimmed == "" {
			pdf.Ln(4)
			continue
		}
		if trimmed[0] == '#' {
			i := 0
			for i < len(trimmed) && trimmed[i] == '#' {
				i++
			}
			text := strings.TrimSpace(trimmed[i:])
			if text == "" {
				continue
			}
			size := 16.0
			switch {
			case i == 2:
				size = 13.0
			case i >= 3:
				size = 11.5
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		pdf.MultiCell(0, 5, trimmed, "", "L", false)
	}

	return pdf.OutputFileAndClose(outPath)
}
