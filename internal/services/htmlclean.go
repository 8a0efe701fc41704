package services

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanJobHTML strips boilerplate from a scraped posting page before it goes
// into the extraction prompt: scripts, styles, navigation, footers. Falls
// back to the raw input when the HTML does not parse.
func CleanJobHTML(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	doc.Find("script, style, noscript, nav, footer, header, iframe, svg").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	// Collapse whitespace runs so the prompt spends tokens on content.
	fields := strings.Fields(text)
	return strings.Join(fields, " ")
}
