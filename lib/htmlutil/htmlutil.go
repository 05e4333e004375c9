package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText collapses inner whitespace and trims the edges,
// dropping non-printable characters picked up from markup.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	s = innerWhitespace.ReplaceAllString(s, " ")
	return s
}

// FirstText walks the selector chain and returns the cleaned text of
// the first selector that matches a node with non-empty text. Returns
// "" when nothing matches.
func FirstText(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := CleanText(GetText(sel.Nodes[0]))
		if text != "" {
			return text
		}
	}
	return ""
}

// FirstAttr walks the selector chain and returns the named attribute
// of the first matching node that carries it. Returns "" when nothing
// matches.
func FirstAttr(doc *goquery.Document, attr string, selectors ...string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		val := strings.TrimSpace(sel.AttrOr(attr, ""))
		if val != "" {
			return val
		}
	}
	return ""
}

// LabelValue finds the label node whose cleaned text equals `label`
// under labelSelector and returns the cleaned text of the first
// following sibling matching valueSelector, or of the immediate next
// sibling when valueSelector is empty. Game pages frequently lay out
// facts as label/value sibling pairs.
func LabelValue(doc *goquery.Document, labelSelector, label, valueSelector string) string {
	value := ""
	doc.Find(labelSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if CleanText(sel.Text()) != label {
			return true
		}
		if valueSelector == "" {
			value = CleanText(sel.Next().Text())
		} else {
			value = CleanText(sel.NextAllFiltered(valueSelector).First().Text())
		}
		return false
	})
	return value
}

// AbsoluteURL resolves href against base. Scheme-relative and
// path-relative links both show up on game pages.
func AbsoluteURL(base, href string) string {
	if href == "" {
		return ""
	}
	baseUrl, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseUrl.ResolveReference(ref).String()
}
