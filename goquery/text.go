package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// textNodes returns the data of every text node under s in document order.
func textNodes(s *goquery.Selection) []string {
	var texts []string
	for _, n := range s.Nodes {
		texts = appendTextNodes(texts, n)
	}
	return texts
}

func appendTextNodes(texts []string, n *html.Node) []string {
	if n.Type == html.TextNode {
		return append(texts, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		texts = appendTextNodes(texts, c)
	}
	return texts
}

// trimmedText concatenates the text nodes under s, trimming each one.
// Whitespace inside a node survives, whitespace between nodes does not.
func trimmedText(s *goquery.Selection) string {
	var b strings.Builder
	for _, t := range textNodes(s) {
		b.WriteString(strings.TrimSpace(t))
	}
	return b.String()
}

// joinedText joins the non-blank trimmed text nodes under s with sep.
func joinedText(s *goquery.Selection, sep string) string {
	var parts []string
	for _, t := range textNodes(s) {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, sep)
}
