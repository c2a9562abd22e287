package demoruleset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domtree/fathom/dom"
	"github.com/domtree/fathom/domhtml"
)

const pageFixture = `
<html><body>
  <nav>
    <a href="/a">A</a><a href="/b">B</a><a href="/c">C</a><a href="/d">D</a>
  </nav>
  <article>
    <p>This is the first paragraph of the real article content, long enough to dominate.</p>
    <p>And a second paragraph continuing the same story with plenty of prose.</p>
    <p>A third paragraph, still part of the same block of body text.</p>
  </article>
  <footer>
    <a href="/x">X</a><a href="/y">Y</a>
  </footer>
</body></html>
`

func TestBuild_PicksArticleOverLinkDenseBlocks(t *testing.T) {
	rs, err := Build(DefaultCoefficients())
	require.NoError(t, err)

	doc, err := domhtml.ParseString(pageFixture)
	require.NoError(t, err)

	bound := rs.Against(doc)
	result, err := bound.Get("content")
	require.NoError(t, err)

	elements, ok := result.([]dom.Element)
	require.True(t, ok)
	require.NotEmpty(t, elements)

	for _, el := range elements {
		assert.True(t, strings.Contains(el.TextContent(), "paragraph"),
			"expected the article's prose blocks to win over the link-dense nav/footer, got %q", el.TextContent())
	}
}

func TestBlockScore_PenalizesLinkDensity(t *testing.T) {
	doc, err := domhtml.ParseString(pageFixture)
	require.NoError(t, err)

	nav := doc.QuerySelectorAll("nav")[0]
	article := doc.QuerySelectorAll("article")[0]

	coeffs := DefaultCoefficients()
	navScore := blockScore(nav, coeffs)
	articleScore := blockScore(article, coeffs)

	assert.Greater(t, articleScore, navScore,
		"a prose-heavy block should outscore a link-dense one under default coefficients")
}

func TestNumCoefficientsMatchesArrayLength(t *testing.T) {
	var c Coefficients
	assert.Len(t, c[:], NumCoefficients)
}
