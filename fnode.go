package fathom

import "github.com/domtree/fathom/dom"

// ScoreAndNote is the per-type payload a Fnode carries: a multiplicative
// score (defaults to 1.0 the first time a type is added) and an
// arbitrary, at-most-once-settable note.
type ScoreAndNote struct {
	Score float64
	Note  any
}

// Fnode is the per-element annotation record described in spec §3: a
// mapping from type to ScoreAndNote plus the set of types borne. Fnodes
// are uniquely keyed by element within a bound ruleset — a second lookup
// for the same element always returns the same *Fnode (see
// BoundRuleset.fnodeFor) — which is why Fnode is never copied by value
// and every API that returns one returns a pointer.
type Fnode struct {
	element dom.Element
	byType  map[Type]*ScoreAndNote
	order   []Type // insertion order, for deterministic Types()
}

func newFnode(el dom.Element) *Fnode {
	return &Fnode{element: el, byType: make(map[Type]*ScoreAndNote)}
}

// Element returns the DOM element this fnode annotates.
func (f *Fnode) Element() dom.Element {
	return f.element
}

// HasType reports whether the fnode bears t.
func (f *Fnode) HasType(t Type) bool {
	_, ok := f.byType[t]
	return ok
}

// Types returns the types this fnode bears, in the order they were
// first added.
func (f *Fnode) Types() []Type {
	out := make([]Type, len(f.order))
	copy(out, f.order)
	return out
}

// ScoreFor returns the fnode's score for t, or 0 if the fnode does not
// bear t.
func (f *Fnode) ScoreFor(t Type) float64 {
	if sn, ok := f.byType[t]; ok {
		return sn.Score
	}
	return 0
}

// NoteFor returns the fnode's note for t, or nil if absent.
func (f *Fnode) NoteFor(t Type) any {
	if sn, ok := f.byType[t]; ok {
		return sn.Note
	}
	return nil
}

// ensureType adds t to the fnode (score defaulting to 1.0) if absent,
// and returns its ScoreAndNote slot.
func (f *Fnode) ensureType(t Type) *ScoreAndNote {
	sn, ok := f.byType[t]
	if !ok {
		sn = &ScoreAndNote{Score: 1.0}
		f.byType[t] = sn
		f.order = append(f.order, t)
	}
	return sn
}

// multiplyScore multiplies the fnode's score for t by factor, adding t
// (at its default score of 1.0) first if the fnode doesn't yet bear it.
func (f *Fnode) multiplyScore(t Type, factor float64) {
	sn := f.ensureType(t)
	sn.Score *= factor
}

// setNote sets the fnode's note for t, enforcing the at-most-once
// overwrite invariant from spec §3: a nil note is a no-op, and a
// non-nil note may not replace an existing non-nil note.
func (f *Fnode) setNote(t Type, note any) error {
	if note == nil {
		return nil
	}
	sn := f.ensureType(t)
	if sn.Note != nil {
		return ErrNoteOverwrite
	}
	sn.Note = note
	return nil
}
