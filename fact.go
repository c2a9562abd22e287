package fathom

import "github.com/domtree/fathom/dom"

// Fact is the value an RHS emits for one input fnode (spec §3). Zero
// values for Element/Type/Note mean "absent"; Score is only considered
// present when HasScore is true (a zero-valued 0.0 multiplier would
// otherwise be indistinguishable from "no score given").
type Fact struct {
	// Element redirects the fact to another element's fnode in the same
	// bound ruleset. Nil means "the input fnode itself".
	Element dom.Element

	// Type adds this type to the target fnode if absent. Empty means
	// "no explicit type"; the effective type then falls back to the
	// LHS's guaranteed type, if any.
	Type Type

	// Score multiplies the target fnode's score for the effective type.
	Score    float64
	HasScore bool

	// Note sets the note for the effective type, subject to the
	// overwrite invariant in Fnode.setNote.
	Note any

	// ConserveScore, when true, additionally multiplies the LHS type's
	// score on the source fnode into the target's effective type before
	// the RHS's own score is applied.
	ConserveScore bool
}
