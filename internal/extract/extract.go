package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/geekmd-io/geekmd/internal/markdown"
)

// ErrMalformedHTML reports input that no HTML tree can be built from. The
// caller is expected to skip the topic and continue.
var ErrMalformedHTML = errors.New("malformed HTML input")

// Extractor converts tutorial pages into markdown documents. The zero value
// uses DefaultSelectors.
type Extractor struct {
	Selectors Selectors
}

// Format parses HTML and assembles the markdown document for one topic:
// the page title as the level-1 heading, each section container as a level-2
// heading, each article within it as a level-3 heading, and the article's
// paragraphs, code blocks, and lists in document order. Fragments whose
// selector matches nothing are simply absent from the output. topicTitle is
// the fallback when the page exposes no usable title.
func (e Extractor) Format(input []byte, topicTitle string) (markdown.Document, error) {
	var doc markdown.Document
	if err := checkParseable(input); err != nil {
		return doc, err
	}
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil {
		return doc, fmt.Errorf("%w: %v", ErrMalformedHTML, err)
	}
	root := goquery.NewDocumentFromNode(node)
	sel := e.Selectors.withDefaults()

	doc.Add(markdown.Heading{Level: 1, Text: pageTitle(root, topicTitle, sel)})

	root.Find(sel.Section).Each(func(_ int, section *goquery.Selection) {
		heading := normalizeText(section.Find(sel.SectionHeading).First().Text())
		if heading == "" {
			return
		}
		doc.Add(markdown.Heading{Level: 2, Text: heading})

		section.Find(sel.Article).Each(func(_ int, article *goquery.Selection) {
			articleHeading := normalizeText(article.Find(sel.ArticleHeading).First().Text())
			if articleHeading == "" {
				return
			}
			doc.Add(markdown.Heading{Level: 3, Text: articleHeading})
			appendArticleContent(&doc, article, sel)
		})
	})
	return doc, nil
}

// checkParseable rejects input that cannot form an HTML tree: empty bytes,
// NUL bytes, or invalid UTF-8.
func checkParseable(input []byte) error {
	if len(bytes.TrimSpace(input)) == 0 {
		return fmt.Errorf("%w: empty document", ErrMalformedHTML)
	}
	if bytes.IndexByte(input, 0x00) >= 0 || !utf8.Valid(input) {
		return fmt.Errorf("%w: not valid UTF-8 text", ErrMalformedHTML)
	}
	return nil
}

func pageTitle(root *goquery.Document, topicTitle string, sel Selectors) string {
	if t := normalizeText(root.Find(sel.Title).First().Text()); t != "" {
		return t
	}
	if t := normalizeText(root.Find("title").First().Text()); t != "" {
		return t
	}
	if t := normalizeText(topicTitle); t != "" {
		return t
	}
	return "Untitled"
}

// appendArticleContent walks the text, code, and list nodes of one article in
// document order. Nodes nested inside an already-matched code block or list
// are skipped so their content is not emitted twice.
func appendArticleContent(doc *markdown.Document, article *goquery.Selection, sel Selectors) {
	combined := sel.BodyText + ", " + sel.CodeBlock + ", " + sel.List
	article.Find(combined).Each(func(_ int, s *goquery.Selection) {
		switch {
		case s.Is(sel.CodeBlock):
			if nestedIn(s, sel.CodeBlock) || nestedIn(s, sel.List) {
				return
			}
			code := s.Text()
			if strings.TrimSpace(code) == "" {
				return
			}
			doc.Add(markdown.CodeBlock{Language: codeLanguage(s), Code: code})
		case s.Is(sel.List):
			if nestedIn(s, sel.List) || nestedIn(s, sel.CodeBlock) {
				return
			}
			if items := listItems(s); len(items) > 0 {
				doc.Add(markdown.List{Items: items})
			}
		default:
			if nestedIn(s, sel.CodeBlock) || nestedIn(s, sel.List) {
				return
			}
			if t := normalizeText(s.Text()); t != "" {
				doc.Add(markdown.Paragraph{Text: t})
			}
		}
	})
}

func nestedIn(s *goquery.Selection, selector string) bool {
	return s.ParentsFiltered(selector).Length() > 0
}

func listItems(list *goquery.Selection) []string {
	var items []string
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if t := normalizeText(li.Text()); t != "" {
			items = append(items, t)
		}
	})
	return items
}

// codeLanguage reads a "language-*" class from the code node itself or from
// a descendant <code> element, the common highlighter conventions.
func codeLanguage(s *goquery.Selection) string {
	if lang := languageFromClass(s.AttrOr("class", "")); lang != "" {
		return lang
	}
	var lang string
	s.Find("code").EachWithBreak(func(_ int, c *goquery.Selection) bool {
		lang = languageFromClass(c.AttrOr("class", ""))
		return lang == ""
	})
	return lang
}

func languageFromClass(class string) string {
	for _, field := range strings.Fields(class) {
		if rest, ok := strings.CutPrefix(field, "language-"); ok && rest != "" {
			return rest
		}
	}
	return ""
}

// normalizeText trims the ends and collapses internal whitespace runs to
// single spaces.
func normalizeText(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range strings.TrimSpace(s) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
