package ingestion

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

const blockSelectors = "p, div, li, br, tr, h1, h2, h3, h4, h5, h6, section, article, header, footer"

// htmlToText returns the visible body text of an HTML document, one block
// element per line.
func htmlToText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template, head").Remove()
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(doc.Find("body").Text()), nil
}
