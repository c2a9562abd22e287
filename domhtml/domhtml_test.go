package domhtml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const fixture = `
<html><body>
  <div id="main" class="content">
    <p>First paragraph with <a href="#">a link</a>.</p>
    <p class="highlight">Second paragraph.</p>
  </div>
  <div class="sidebar">
    <p>Sidebar text.</p>
  </div>
</body></html>
`

func TestQuerySelectorAll_Tag(t *testing.T) {
	doc, err := ParseString(fixture)
	assert.NoError(t, err)

	paragraphs := doc.QuerySelectorAll("p")
	assert.Len(t, paragraphs, 3)
}

func TestQuerySelectorAll_ID(t *testing.T) {
	doc, err := ParseString(fixture)
	assert.NoError(t, err)

	main := doc.QuerySelectorAll("#main")
	assert.Len(t, main, 1)
	assert.Equal(t, "div", main[0].TagName())
}

func TestQuerySelectorAll_Class(t *testing.T) {
	doc, err := ParseString(fixture)
	assert.NoError(t, err)

	highlighted := doc.QuerySelectorAll(".highlight")
	assert.Len(t, highlighted, 1)
	assert.Equal(t, "Second paragraph.", highlighted[0].TextContent())
}

func TestQuerySelectorAll_Descendant(t *testing.T) {
	doc, err := ParseString(fixture)
	assert.NoError(t, err)

	inMain := doc.QuerySelectorAll("#main p")
	assert.Len(t, inMain, 2)

	inSidebar := doc.QuerySelectorAll(".sidebar p")
	assert.Len(t, inSidebar, 1)
}

func TestQuerySelectorAll_AttrEquals(t *testing.T) {
	doc, err := ParseString(fixture)
	assert.NoError(t, err)

	links := doc.QuerySelectorAll("a[href=\"#\"]")
	assert.Len(t, links, 1)
}

func TestQuerySelectorAll_CommaList(t *testing.T) {
	doc, err := ParseString(fixture)
	assert.NoError(t, err)

	matched := doc.QuerySelectorAll("p, div.sidebar")
	assert.Len(t, matched, 4, "3 <p>s plus the .sidebar <div> itself")
}

func TestElementIdentity(t *testing.T) {
	doc, err := ParseString(fixture)
	assert.NoError(t, err)

	a := doc.QuerySelectorAll("#main")
	b := doc.QuerySelectorAll("#main")
	assert.Same(t, a[0], b[0], "repeated lookups of the same node must return the same *Element")
}

func TestParentChildNavigation(t *testing.T) {
	doc, err := ParseString(fixture)
	assert.NoError(t, err)

	main := doc.QuerySelectorAll("#main")[0]
	children := main.Children()
	assert.Len(t, children, 2)
	assert.Same(t, main, children[0].Parent())
}
