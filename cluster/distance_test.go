package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domtree/fathom/dom"
)

// fakeElement is a minimal in-memory tree for exercising Distance without
// an HTML parser.
type fakeElement struct {
	tag      string
	parent   *fakeElement
	children []*fakeElement
}

func newTree() (root *fakeElement, byName map[string]*fakeElement) {
	byName = make(map[string]*fakeElement)
	mk := func(name, tag string, parent *fakeElement) *fakeElement {
		e := &fakeElement{tag: tag, parent: parent}
		if parent != nil {
			parent.children = append(parent.children, e)
		}
		byName[name] = e
		return e
	}
	root = mk("root", "html", nil)
	body := mk("body", "body", root)
	main := mk("main", "div", body)
	p1 := mk("p1", "p", main)
	_ = mk("a1", "a", p1)
	mk("p2", "p", main)
	side := mk("side", "div", body)
	mk("p3", "p", side)
	return root, byName
}

func (e *fakeElement) TagName() string        { return e.tag }
func (e *fakeElement) Parent() dom.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}
func (e *fakeElement) Children() []dom.Element {
	out := make([]dom.Element, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}
func (e *fakeElement) NextSibling() dom.Element { return nil }
func (e *fakeElement) PrevSibling() dom.Element { return nil }
func (e *fakeElement) Attr(string) (string, bool) { return "", false }
func (e *fakeElement) TextContent() string        { return "" }

func TestDistance_Identity(t *testing.T) {
	_, byName := newTree()
	opts := DefaultDistanceOptions()
	assert.Equal(t, 0.0, Distance(byName["p1"], byName["p1"], opts))
}

func TestDistance_AncestorIsMaximal(t *testing.T) {
	_, byName := newTree()
	opts := DefaultDistanceOptions()
	assert.Equal(t, MaxDistance, Distance(byName["main"], byName["p1"], opts))
	assert.Equal(t, MaxDistance, Distance(byName["p1"], byName["main"], opts))
}

func TestDistance_SiblingsCloserThanCousins(t *testing.T) {
	_, byName := newTree()
	opts := DefaultDistanceOptions()

	siblings := Distance(byName["p1"], byName["p2"], opts)
	cousins := Distance(byName["p1"], byName["p3"], opts)

	assert.Less(t, siblings, cousins, "same-parent siblings should be closer than elements under different ancestors")
}

func TestDistance_Symmetric(t *testing.T) {
	_, byName := newTree()
	opts := DefaultDistanceOptions()

	assert.Equal(t, Distance(byName["p1"], byName["p3"], opts), Distance(byName["p3"], byName["p1"], opts))
}

func TestDistance_StrideSeparatesNonAdjacentSiblings(t *testing.T) {
	root, _ := newTree()
	_ = root
	parent := &fakeElement{tag: "div"}
	a := &fakeElement{tag: "span", parent: parent}
	b := &fakeElement{tag: "span", parent: parent}
	c := &fakeElement{tag: "span", parent: parent}
	parent.children = []*fakeElement{a, b, c}

	opts := DefaultDistanceOptions()
	adjacent := Distance(a, b, opts)
	separated := Distance(a, c, opts)
	assert.Less(t, adjacent, separated, "a stride node between two elements should increase their distance")
}
