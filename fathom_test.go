package fathom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domtree/fathom/domhtml"
)

const titleFixture = `
<html><body>
  <h1>Short</h1>
  <h1>A much longer and more descriptive headline</h1>
  <p>Not a title candidate.</p>
</body></html>
`

func TestBestTitleWins(t *testing.T) {
	const titley Type = "titley"

	rs, err := NewBuilder().
		Inward(Dom("h1"), RHS{
			Func: func(in *Fnode, _ Type) (Fact, error) {
				return Fact{Type: titley, Score: float64(len(in.Element().TextContent())), HasScore: true}, nil
			},
			CouldChangeType: true,
			PossibleTypes:   map[Type]bool{titley: true},
		}).
		Build()
	require.NoError(t, err)

	doc, err := domhtml.ParseString(titleFixture)
	require.NoError(t, err)

	bound := rs.Against(doc)
	result, err := bound.Get(Max(titley))
	require.NoError(t, err)

	winners := result.([]*Fnode)
	require.Len(t, winners, 1)
	assert.Equal(t, "A much longer and more descriptive headline", winners[0].Element().TextContent())
}

// ogTitleFixture matches spec.md §8 scenario 1 verbatim: four independent
// emitters of the same type, ranked by Max.
const ogTitleFixture = `
<html><head>
  <meta name="hdl" content="HDL">
  <meta property="og:title" content="OpenGraph">
  <meta property="twitter:title" content="Twitter">
  <title>Title</title>
</head><body></body></html>
`

func TestBestTitleWins_FourIndependentEmitters(t *testing.T) {
	const titley Type = "titley"

	b := NewBuilder()
	b.Inward(Dom(`meta[name="hdl"]`), RHS{
		Func: func(in *Fnode, _ Type) (Fact, error) {
			v, _ := in.Element().Attr("content")
			return Fact{Type: titley, Score: 20, HasScore: true, Note: v}, nil
		},
		CouldChangeType: true,
		PossibleTypes:   map[Type]bool{titley: true},
	})
	b.Inward(Dom(`meta[property="og:title"]`), RHS{
		Func: func(in *Fnode, _ Type) (Fact, error) {
			v, _ := in.Element().Attr("content")
			return Fact{Type: titley, Score: 40, HasScore: true, Note: v}, nil
		},
		CouldChangeType: true,
		PossibleTypes:   map[Type]bool{titley: true},
	})
	b.Inward(Dom(`meta[property="twitter:title"]`), RHS{
		Func: func(in *Fnode, _ Type) (Fact, error) {
			v, _ := in.Element().Attr("content")
			return Fact{Type: titley, Score: 30, HasScore: true, Note: v}, nil
		},
		CouldChangeType: true,
		PossibleTypes:   map[Type]bool{titley: true},
	})
	b.Inward(Dom("title"), RHS{
		Func: func(in *Fnode, _ Type) (Fact, error) {
			return Fact{Type: titley, Score: 10, HasScore: true, Note: in.Element().TextContent()}, nil
		},
		CouldChangeType: true,
		PossibleTypes:   map[Type]bool{titley: true},
	})
	rs, err := b.Build()
	require.NoError(t, err)

	doc, err := domhtml.ParseString(ogTitleFixture)
	require.NoError(t, err)

	bound := rs.Against(doc)
	result, err := bound.Get(Max(titley))
	require.NoError(t, err)

	winners := result.([]*Fnode)
	require.Len(t, winners, 1)
	assert.Equal(t, "OpenGraph", winners[0].NoteFor(titley))
	assert.Equal(t, 40.0, winners[0].ScoreFor(titley))
}

// TestTwoNonFinalizedEmittersOfSameTypeDoNotCycle pins spec §4.1: two
// plain OfType(t) scorers of one shared, non-aggregate type must not
// become each other's prerequisite. A scorer that leaves its fact's
// type implicit (inferred from OfType's guaranteed type) neither
// changes type nor aggregates, so t is not finalized with respect to
// either scorer — only adders of t (the rule that first attaches it)
// belong in their prerequisite set, not every emitter of t.
func TestTwoNonFinalizedEmittersOfSameTypeDoNotCycle(t *testing.T) {
	const p Type = "p"

	rs, err := NewBuilder().
		Inward(Dom("p"), RHS{
			Func:            func(in *Fnode, _ Type) (Fact, error) { return Fact{Type: p}, nil },
			CouldChangeType: true,
			PossibleTypes:   map[Type]bool{p: true},
		}).
		Inward(OfType(p), RHS{
			Func: func(in *Fnode, _ Type) (Fact, error) {
				return Fact{Score: 2, HasScore: true}, nil
			},
		}).
		Inward(OfType(p), RHS{
			Func: func(in *Fnode, _ Type) (Fact, error) {
				return Fact{Score: 3, HasScore: true}, nil
			},
		}).
		Build()
	require.NoError(t, err)

	doc, err := domhtml.ParseString(`<html><body><p>x</p></body></html>`)
	require.NoError(t, err)

	bound := rs.Against(doc)
	result, err := bound.Get(OfType(p))
	require.NoError(t, err)

	fnodes := result.([]*Fnode)
	require.Len(t, fnodes, 1)
	assert.Equal(t, 6.0, fnodes[0].ScoreFor(p), "both scorers must run, in either order, without a reported cycle")
}

const navFixture = `
<html><body>
  <nav>
    <a href="/account">Account</a>
    <a href="/logout">Log out</a>
    <a href="/help">Help</a>
  </nav>
</body></html>
`

func TestLogoutLinkDetection(t *testing.T) {
	const logoutLink Type = "logoutLink"

	rs, err := NewBuilder().
		Inward(Dom("a").When(func(f *Fnode) bool {
			return strings.Contains(strings.ToLower(f.Element().TextContent()), "log out")
		}), RHS{
			Func: func(in *Fnode, _ Type) (Fact, error) {
				return Fact{Type: logoutLink}, nil
			},
			CouldChangeType: true,
			PossibleTypes:   map[Type]bool{logoutLink: true},
		}).
		Build()
	require.NoError(t, err)

	doc, err := domhtml.ParseString(navFixture)
	require.NoError(t, err)

	bound := rs.Against(doc)
	result, err := bound.Get(OfType(logoutLink))
	require.NoError(t, err)

	matches := result.([]*Fnode)
	require.Len(t, matches, 1)
	href, _ := matches[0].Element().Attr("href")
	assert.Equal(t, "/logout", href)
}

// linkGroupFixture matches spec.md's clustering scenario: three <a> tags
// inside each of two sibling <div>s, plus one <a> nested three levels deep
// in a distant <div> separated by empty sibling <div> stride nodes.
const linkGroupFixture = `
<html><body>
  <div id="d1"><a href="/p/1">1</a><a href="/p/2">2</a><a href="/p/3">3</a></div>
  <div id="d2"><a href="/p/4">4</a><a href="/p/5">5</a><a href="/p/6">6</a></div>
  <div id="stride1"></div>
  <div id="stride2"></div>
  <div id="far"><div><div><a href="/far">deep</a></div></div></div>
</body></html>
`

func TestBestClusterGroupsAdjacentLinksSeparatelyFromDeepLink(t *testing.T) {
	const link Type = "link"

	rs, err := NewBuilder().
		Inward(Dom("a"), RHS{
			Func: func(in *Fnode, _ Type) (Fact, error) {
				return Fact{Type: link}, nil
			},
			CouldChangeType: true,
			PossibleTypes:   map[Type]bool{link: true},
		}).
		Build()
	require.NoError(t, err)

	doc, err := domhtml.ParseString(linkGroupFixture)
	require.NoError(t, err)

	bound := rs.Against(doc)

	opts := DefaultClusterOptions()
	opts.SplittingDistance = 10

	result, err := bound.Get(BestCluster(link, opts))
	require.NoError(t, err)

	winners := result.([]*Fnode)
	assert.Len(t, winners, 6, "the six adjacent anchors should cluster together, separate from the deep anchor")
	for _, f := range winners {
		href, _ := f.Element().Attr("href")
		assert.True(t, strings.HasPrefix(href, "/p/"), "expected an adjacent anchor, got %s", href)
	}
}

func TestCycleIsRejected(t *testing.T) {
	const a, b Type = "a", "b"

	rs, err := NewBuilder().
		Inward(OfType(a), RHS{
			Func:            func(in *Fnode, _ Type) (Fact, error) { return Fact{Type: b}, nil },
			CouldChangeType: true,
			PossibleTypes:   map[Type]bool{b: true},
		}).
		Inward(OfType(b), RHS{
			Func:            func(in *Fnode, _ Type) (Fact, error) { return Fact{Type: a}, nil },
			CouldChangeType: true,
			PossibleTypes:   map[Type]bool{a: true},
		}).
		Build()
	require.NoError(t, err)

	doc, err := domhtml.ParseString(`<html><body><p>x</p></body></html>`)
	require.NoError(t, err)

	bound := rs.Against(doc)
	_, err = bound.Get(OfType(a))
	assert.ErrorIs(t, err, ErrCycle)
}

func TestRuleRunsOnceAcrossQueries(t *testing.T) {
	const tagged Type = "tagged"
	runs := 0

	rs, err := NewBuilder().
		Inward(Dom("p"), RHS{
			Func: func(in *Fnode, _ Type) (Fact, error) {
				runs++
				return Fact{Type: tagged}, nil
			},
			CouldChangeType: true,
			PossibleTypes:   map[Type]bool{tagged: true},
		}).
		Build()
	require.NoError(t, err)

	doc, err := domhtml.ParseString(`<html><body><p>one</p><p>two</p></body></html>`)
	require.NoError(t, err)

	bound := rs.Against(doc)
	_, err = bound.Get(OfType(tagged))
	require.NoError(t, err)
	firstRuns := runs

	_, err = bound.Get(OfType(tagged))
	require.NoError(t, err)

	assert.Equal(t, firstRuns, runs, "a second Get for the same type must not re-run the rule")
	assert.Equal(t, 2, runs)
}

func TestDirectElementLookupNeverPlans(t *testing.T) {
	rs, err := NewBuilder().Build()
	require.NoError(t, err)

	doc, err := domhtml.ParseString(`<html><body><p>hi</p></body></html>`)
	require.NoError(t, err)

	bound := rs.Against(doc)
	p := doc.QuerySelectorAll("p")[0]

	result, err := bound.Get(p)
	require.NoError(t, err)
	fnode := result.(*Fnode)
	assert.Same(t, p, fnode.Element())
}

func TestAndAcceptsTypesAndRejectsNestedLHS(t *testing.T) {
	const x, y Type = "x", "y"

	and, err := And(x, y)
	require.NoError(t, err)

	_, err = And(and)
	assert.ErrorIs(t, err, ErrUnsupportedAnd)
}
