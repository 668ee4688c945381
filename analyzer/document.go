package analyzer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is the query capability the feature extractor needs from parsed
// markup. Selector arguments use CSS syntax; several selectors passed to one
// call are treated as a union and every element is counted once.
type Document interface {
	// Count returns the number of distinct elements matching any selector.
	Count(selectors ...string) int

	// Text returns the text content of each matching element, joined by spaces.
	Text(selectors ...string) string

	// FirstText returns the trimmed text of the first element matching selector
	// and whether such an element exists.
	FirstText(selector string) (string, bool)

	// Attr returns the named attribute of the first element matching selector.
	Attr(selector, name string) (string, bool)

	// AttrAll returns the named attribute for every element matching selector,
	// using "" for elements that do not carry it.
	AttrAll(selector, name string) []string

	// CountWithin returns, for every element matching scope, how many of its
	// descendants match any of the selectors.
	CountWithin(scope string, selectors ...string) []int
}

// queryDocument implements Document on top of goquery with selector unions
// compiled by cascadia.
type queryDocument struct {
	doc *goquery.Document
}

// ParseDocument parses markup into a Document.
func ParseDocument(markup string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return &queryDocument{doc: doc}, nil
}

// compileUnion compiles selectors into a single group matcher. Invalid input
// yields a matcher that never matches.
func compileUnion(selectors []string) goquery.Matcher {
	sel, err := cascadia.Compile(strings.Join(selectors, ", "))
	if err != nil {
		return cascadia.Selector(func(_ *html.Node) bool { return false })
	}
	return sel
}

func (d *queryDocument) matches(selectors []string) *goquery.Selection {
	if len(selectors) == 0 {
		return d.doc.FindNodes()
	}
	return d.doc.FindMatcher(compileUnion(selectors))
}

func (d *queryDocument) Count(selectors ...string) int {
	return d.matches(selectors).Length()
}

func (d *queryDocument) Text(selectors ...string) string {
	var parts []string
	d.matches(selectors).Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return strings.Join(parts, " ")
}

func (d *queryDocument) FirstText(selector string) (string, bool) {
	first := d.matches([]string{selector}).First()
	if first.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(first.Text()), true
}

func (d *queryDocument) Attr(selector, name string) (string, bool) {
	return d.matches([]string{selector}).First().Attr(name)
}

func (d *queryDocument) AttrAll(selector, name string) []string {
	sel := d.matches([]string{selector})
	values := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		values = append(values, s.AttrOr(name, ""))
	})
	return values
}

func (d *queryDocument) CountWithin(scope string, selectors ...string) []int {
	scopes := d.matches([]string{scope})
	m := compileUnion(selectors)
	counts := make([]int, 0, scopes.Length())
	scopes.Each(func(_ int, s *goquery.Selection) {
		counts = append(counts, s.FindMatcher(m).Length())
	})
	return counts
}
