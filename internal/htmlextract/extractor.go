// Package htmlextract turns raw search-result HTML into readable plain text
// for chunking and retrieval. Pages arrive as saved full documents, so the
// extractor strips chrome (navigation, scripts, social widgets) before
// running readability, and degrades to tag stripping when readability finds
// nothing usable.
package htmlextract

import (
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Readability output shorter than this is usually just a title or cookie
// banner; fall back to raw paragraph extraction instead.
const minReadableLength = 200

// Text extracts the readable body of an HTML page as plain text. It never
// fails: malformed or empty input yields "".
func Text(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, "<") {
		return normalizeWhitespace(trimmed)
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed)); err == nil {
		doc.Find("head, script, style, noscript, title, aside, nav, header, footer").Remove()
		doc.Find("iframe, embed, object, video, audio, canvas").Remove()
		doc.Find("[class*='social'], [class*='share'], [id*='social'], [id*='share']").Remove()
		doc.Find("[class*='comment'], [id*='comment']").Remove()
		doc.Find("meta, link").Remove()
		if cleaned, err := doc.Html(); err == nil && cleaned != "" {
			trimmed = cleaned
		}
	}

	if article, err := readability.FromReader(strings.NewReader(trimmed), nil); err == nil {
		var textBuf strings.Builder
		if err := article.RenderText(&textBuf); err == nil {
			text := strings.TrimSpace(textBuf.String())
			if len(text) >= minReadableLength {
				var htmlBuf strings.Builder
				if err := article.RenderHTML(&htmlBuf); err == nil {
					if html := strings.TrimSpace(htmlBuf.String()); html != "" {
						return paragraphs(html)
					}
				}
				return normalizeWhitespace(text)
			}
		}
	}

	return paragraphs(trimmed)
}

// paragraphs pulls text out of block-level elements, double-newline
// separated, falling back to stripping every tag.
func paragraphs(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return normalizeWhitespace(stripTags(html))
	}

	var blocks []string
	collect := func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	}
	doc.Find("h1, h2, h3, h4, h5, h6").Each(collect)
	doc.Find("p").Each(collect)
	doc.Find("pre code, pre").Each(collect)
	doc.Find("li").Each(collect)
	doc.Find("td, th").Each(collect)

	if len(blocks) == 0 {
		doc.Find("div, article, section").Each(func(i int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); len(text) > 10 {
				blocks = append(blocks, text)
			}
		})
	}
	if len(blocks) == 0 {
		return normalizeWhitespace(stripTags(html))
	}
	return strings.Join(blocks, "\n\n")
}

func stripTags(raw string) string {
	return bluemonday.StrictPolicy().Sanitize(raw)
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
