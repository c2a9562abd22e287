// Package demoruleset is the reference ruleset the tuning CLI trains
// and scores against (spec §4.7): a small "main content block" detector
// that demonstrates Dom, BestCluster, and an outward sink together, with
// three tunable coefficients feeding its scoring RHS.
package demoruleset

import (
	"strings"

	"github.com/domtree/fathom"
	"github.com/domtree/fathom/dom"
)

// TypeBlock marks every candidate content-block element. TypeContent is
// the type declared on the outward "content" rule; outward rules do not
// write to fnodes, so no fnode ever bears it.
const (
	TypeBlock   fathom.Type = "block"
	TypeContent fathom.Type = "content"
)

// NumCoefficients is the length Coefficients must have.
const NumCoefficients = 3

// Coefficients weights: [0] rewards longer text, [1] penalizes link-
// dense elements (boilerplate nav/footer blocks tend to be link-dense),
// [2] rewards elements with many paragraph children. Link text and
// paragraphs are counted among direct children only, not deeper
// descendants.
type Coefficients [NumCoefficients]float64

// DefaultCoefficients is a reasonable untuned starting point.
func DefaultCoefficients() Coefficients {
	return Coefficients{1.0, 1.0, 0.5}
}

// Build constructs the ruleset for the given coefficient vector. The
// outward key "content" returns the []dom.Element of the winning
// cluster.
func Build(coeffs Coefficients) (*fathom.Ruleset, error) {
	b := fathom.NewBuilder()

	b.Inward(fathom.Dom("p, div, article, section"), fathom.RHS{
		CouldChangeType: true,
		PossibleTypes:   map[fathom.Type]bool{TypeBlock: true},
		Func: func(in *fathom.Fnode, _ fathom.Type) (fathom.Fact, error) {
			el := in.Element()
			return fathom.Fact{
				Type:     TypeBlock,
				Score:    blockScore(el, coeffs),
				HasScore: true,
			}, nil
		},
	})

	b.Outward(fathom.BestCluster(TypeBlock), fathom.OutwardRHS{
		Key: "content",
		RHS: fathom.RHS{PossibleTypes: map[fathom.Type]bool{TypeContent: true}},
		Through: func(f *fathom.Fnode) (any, error) {
			return f.Element(), nil
		},
		AllThrough: func(items []any) (any, error) {
			out := make([]dom.Element, 0, len(items))
			for _, it := range items {
				out = append(out, it.(dom.Element))
			}
			return out, nil
		},
	})

	return b.Build()
}

func blockScore(el dom.Element, c Coefficients) float64 {
	text := el.TextContent()
	textLen := float64(len(strings.TrimSpace(text)))

	linkChars, paragraphs := 0.0, 0.0
	for _, child := range el.Children() {
		if strings.EqualFold(child.TagName(), "a") {
			linkChars += float64(len(child.TextContent()))
		}
		if strings.EqualFold(child.TagName(), "p") {
			paragraphs++
		}
	}
	linkDensity := 0.0
	if textLen > 0 {
		linkDensity = linkChars / textLen
	}

	score := 1.0
	score += c[0] * (textLen / 500.0)
	score -= c[1] * linkDensity
	score += c[2] * paragraphs
	if score < 0.01 {
		score = 0.01
	}
	return score
}
