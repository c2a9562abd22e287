package domhtml

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/domtree/fathom/dom"
)

// Document is a parsed HTML document satisfying dom.Document.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
}

var _ dom.Document = (*Document)(nil)

// Parse parses r as HTML and returns a Document rooted at the parsed tree.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root, elements: make(map[*html.Node]*Element)}, nil
}

// ParseString is a convenience wrapper around Parse for in-memory HTML.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// elementOf returns the canonical *Element for an *html.Node, creating it
// on first use so repeated lookups of the same node yield the same
// pointer (required for the fnode store's identity-keyed map).
func (d *Document) elementOf(n *html.Node) *Element {
	if e, ok := d.elements[n]; ok {
		return e
	}
	e := &Element{node: n, doc: d}
	d.elements[n] = e
	return e
}

// QuerySelectorAll returns every element matching selector, in document
// order. See selector.go for the supported subset.
func (d *Document) QuerySelectorAll(selector string) []dom.Element {
	sel, err := parseSelectorList(selector)
	if err != nil {
		return nil
	}
	var out []dom.Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			el := d.elementOf(n)
			if sel.matches(el) {
				out = append(out, el)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// Root returns the document's root *Element (the html.Parse root, usually
// the synthetic document node's first element child).
func (d *Document) Root() *Element {
	var find func(n *html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if f := find(c); f != nil {
				return f
			}
		}
		return nil
	}
	n := find(d.root)
	if n == nil {
		return nil
	}
	return d.elementOf(n)
}
