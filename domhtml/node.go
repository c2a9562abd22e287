// Package domhtml adapts golang.org/x/net/html parse trees to the
// fathom/dom contract, so rulesets can run against real parsed HTML
// instead of only a test fake.
package domhtml

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/domtree/fathom/dom"
)

// Element wraps an *html.Node so it satisfies dom.Element. Two Elements
// wrapping the same *html.Node compare equal only when they are the
// identical *Element value handed out by a Document; Document always
// returns the same *Element for the same underlying node (see elementOf).
type Element struct {
	node *html.Node
	doc  *Document
}

var _ dom.Element = (*Element)(nil)

// TagName returns the lower-cased tag name (html.Node.Data is already
// lower-cased by the parser for element nodes).
func (e *Element) TagName() string {
	return e.node.Data
}

// Parent returns the element's parent element, skipping non-element
// ancestors (there are none in a well-formed parse tree above the root).
func (e *Element) Parent() dom.Element {
	p := e.node.Parent
	for p != nil && p.Type != html.ElementNode {
		p = p.Parent
	}
	if p == nil {
		return nil
	}
	return e.doc.elementOf(p)
}

// Children returns the element's child elements (text/comment children
// are not elements and are skipped) in document order.
func (e *Element) Children() []dom.Element {
	var out []dom.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.elementOf(c))
		}
	}
	return out
}

// NextSibling returns the next sibling element, skipping text/comment
// nodes in between.
func (e *Element) NextSibling() dom.Element {
	n := e.node.NextSibling
	for n != nil && n.Type != html.ElementNode {
		n = n.NextSibling
	}
	if n == nil {
		return nil
	}
	return e.doc.elementOf(n)
}

// PrevSibling returns the previous sibling element, skipping text/comment
// nodes in between.
func (e *Element) PrevSibling() dom.Element {
	n := e.node.PrevSibling
	for n != nil && n.Type != html.ElementNode {
		n = n.PrevSibling
	}
	if n == nil {
		return nil
	}
	return e.doc.elementOf(n)
}

// Attr returns the named attribute's value, case-insensitively.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent concatenates the text of this element and all descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}
