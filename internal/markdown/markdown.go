package markdown

import "strings"

// Document is an ordered sequence of blocks produced for one topic. It is
// built incrementally during extraction, rendered once, and then discarded.
type Document struct {
	Blocks []Block
}

// Block is one renderable unit of a document. The set of implementations is
// closed: Heading, Paragraph, CodeBlock, and List.
type Block interface {
	render(b *strings.Builder)
}

// Heading is an ATX heading. Level is clamped to 1..6 at render time; the
// extractor only ever emits levels 1 through 3.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of body text with whitespace already normalized.
type Paragraph struct {
	Text string
}

// CodeBlock is a fenced code block. Code is reproduced verbatim; the renderer
// only guarantees a single newline before the closing fence. Language, when
// non-empty, becomes the fence info string.
type CodeBlock struct {
	Language string
	Code     string
}

// List is a flat bullet list, one line per item.
type List struct {
	Items []string
}

// Add appends a block to the document.
func (d *Document) Add(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// Render produces the document as markdown text. Blocks are separated by one
// blank line and the output ends with exactly one trailing newline. Rendering
// is deterministic: the same document always yields byte-identical text.
func (d Document) Render() string {
	var b strings.Builder
	for i, blk := range d.Blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		blk.render(&b)
	}
	return b.String()
}

func (h Heading) render(b *strings.Builder) {
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	b.WriteString(strings.Repeat("#", level))
	b.WriteString(" ")
	b.WriteString(h.Text)
	b.WriteString("\n")
}

func (p Paragraph) render(b *strings.Builder) {
	b.WriteString(p.Text)
	b.WriteString("\n")
}

func (c CodeBlock) render(b *strings.Builder) {
	fence := fenceFor(c.Code)
	b.WriteString(fence)
	b.WriteString(c.Language)
	b.WriteString("\n")
	b.WriteString(c.Code)
	if !strings.HasSuffix(c.Code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence)
	b.WriteString("\n")
}

func (l List) render(b *strings.Builder) {
	for _, item := range l.Items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
}

// fenceFor returns a backtick fence longer than any backtick run inside the
// code, so the block cannot be terminated early by its own content.
func fenceFor(code string) string {
	longest := 0
	run := 0
	for _, r := range code {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	n := longest + 1
	if n < 3 {
		n = 3
	}
	return strings.Repeat("`", n)
}

// Stats summarizes a document for the run report and debug output.
type Stats struct {
	Sections   int
	Articles   int
	Paragraphs int
	CodeBlocks int
	ListItems  int
}

// Stats counts the blocks of the document. Level-2 headings count as
// sections and level-3 headings as articles, mirroring how the extractor
// assigns levels.
func (d Document) Stats() Stats {
	var s Stats
	for _, blk := range d.Blocks {
		switch v := blk.(type) {
		case Heading:
			switch v.Level {
			case 2:
				s.Sections++
			case 3:
				s.Articles++
			}
		case Paragraph:
			s.Paragraphs++
		case CodeBlock:
			s.CodeBlocks++
		case List:
			s.ListItems += len(v.Items)
		}
	}
	return s
}
