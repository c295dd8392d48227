// Package sources turns raw documents from the transport capabilities into
// unified job candidates. Each parser owns the markup heuristics of one
// source kind so they can be swapped and tested independently.
package sources

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"hiretrack-backend/internal/jobs"
)

// Document is one raw payload handed to a parser: the body (HTML or XML)
// plus the timestamp the transport observed it at.
type Document struct {
	Body     string
	Observed time.Time
}

// Parser extracts job candidates from raw documents. Implementations drop
// records with titles shorter than jobs.MinTitleLen and dedup by
// post-normalization URL within a single invocation.
type Parser interface {
	Source() jobs.Source
	Parse(doc Document) ([]jobs.Candidate, error)
}

func usableTitle(title string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) >= jobs.MinTitleLen
}

// joinedText mimics the "join every text node with sep" flattening the
// digest heuristics rely on: each text node is trimmed, empties dropped,
// survivors joined in document order.
func joinedText(sel *goquery.Selection, sep string) string {
	return strings.Join(textNodes(sel), sep)
}

func textNodes(sel *goquery.Selection) []string {
	var out []string
	for _, node := range sel.Nodes {
		collectTextNodes(node, &out)
	}
	return out
}

func collectTextNodes(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
			*out = append(*out, trimmed)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectTextNodes(child, out)
	}
}

// stripMarkup flattens an HTML fragment to space-joined text. Input that
// fails to parse comes back trimmed but otherwise untouched.
func stripMarkup(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return joinedText(doc.Selection, " ")
}
