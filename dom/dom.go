// Package dom defines the minimal tree contract the fathom engine needs
// from a rendered document. Nothing in this package parses HTML or owns
// any tree; it exists so the core engine in package fathom never imports
// a concrete DOM implementation. See package domhtml for a reference
// implementation backed by golang.org/x/net/html.
package dom

// Element is one node of a rendered document. Equality between two
// Elements from the same Document must be by identity (==), since the
// fnode store keys fnodes by element identity.
type Element interface {
	// TagName returns the element's tag name, lower-cased (e.g. "div").
	TagName() string

	// Parent returns the element's parent, or nil at the document root.
	Parent() Element

	// Children returns the element's children in document order.
	Children() []Element

	// NextSibling returns the next sibling in document order, or nil.
	NextSibling() Element

	// PrevSibling returns the previous sibling in document order, or nil.
	PrevSibling() Element

	// Attr returns the named attribute's value and whether it was present.
	Attr(name string) (string, bool)

	// TextContent returns the concatenated text of this element and its
	// descendants.
	TextContent() string
}

// Document is a rendered tree that can be queried by a CSS-selector-like
// expression. Implementations only need to support whatever selector
// subset their rulesets actually use; the engine never interprets
// selector syntax itself.
type Document interface {
	// QuerySelectorAll returns every element matching selector, in
	// document order.
	QuerySelectorAll(selector string) []Element
}
