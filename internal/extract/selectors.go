package extract

// Selectors maps the logical parts of a tutorial page to CSS lookup rules so
// the traversal in Format stays site-agnostic and testable against synthetic
// fixtures. Empty fields fall back to the defaults for the target site.
type Selectors struct {
	// Title locates the page's visible main heading. When it matches
	// nothing, Format falls back to the document <title> and then to the
	// caller-supplied topic label.
	Title string
	// Section locates the top-level grouping containers, each rendered as
	// one level-2 heading.
	Section string
	// SectionHeading is resolved within each Section container and supplies
	// the heading text. A container without heading text is skipped.
	SectionHeading string
	// Article locates one tutorial entry within a section, rendered as a
	// level-3 heading.
	Article string
	// ArticleHeading is resolved within each Article container.
	ArticleHeading string
	// BodyText locates text-bearing nodes within an article.
	BodyText string
	// CodeBlock locates nodes whose text is reproduced verbatim as fenced
	// code.
	CodeBlock string
	// List locates list containers; each direct item becomes one bullet.
	List string
}

// DefaultSelectors returns the lookup rules for the tutorial markup this
// tool targets.
func DefaultSelectors() Selectors {
	return Selectors{
		Title:          "h1",
		Section:        "div.section",
		SectionHeading: "h2",
		Article:        "div.article",
		ArticleHeading: "h3",
		BodyText:       "p",
		CodeBlock:      "pre",
		List:           "ul, ol",
	}
}

func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors()
	if s.Title == "" {
		s.Title = d.Title
	}
	if s.Section == "" {
		s.Section = d.Section
	}
	if s.SectionHeading == "" {
		s.SectionHeading = d.SectionHeading
	}
	if s.Article == "" {
		s.Article = d.Article
	}
	if s.ArticleHeading == "" {
		s.ArticleHeading = d.ArticleHeading
	}
	if s.BodyText == "" {
		s.BodyText = d.BodyText
	}
	if s.CodeBlock == "" {
		s.CodeBlock = d.CodeBlock
	}
	if s.List == "" {
		s.List = d.List
	}
	return s
}
