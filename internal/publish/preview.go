package publish

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultPreviewLength is the preview text length used when the caller
// supplies none.
const DefaultPreviewLength = 150

// PreviewText returns the first n runes of the visible text of html, with
// whitespace collapsed. The first paragraph is used when there is one.
func PreviewText(html string, n int) string {
	if n <= 0 {
		n = DefaultPreviewLength
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()

	text := collapse(doc.Find("p").First().Text())
	if text == "" {
		text = collapse(doc.Text())
	}
	if r := []rune(text); len(r) > n {
		return strings.TrimSpace(string(r[:n-1])) + "…"
	}
	return text
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
