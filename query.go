package fathom

import (
	"fmt"

	"github.com/domtree/fathom/dom"
)

// Get runs query against the bound ruleset, executing exactly the
// prerequisite rules not yet run, and returns the query's result (spec
// §4, "Querying"). query may be:
//
//   - a string naming an outward rule's Key, returning that outward
//     rule's AllThrough result over every fnode its LHS currently
//     matches once its prerequisites have run;
//   - an LHS value, returning the matched, predicate-filtered *Fnode
//     slice directly (no outward Through/AllThrough applied);
//   - a dom.Element, returning that element's *Fnode directly with no
//     rule execution at all (a pure lookup, spec §4's "direct element
//     queries never trigger planning").
//
// Anything else fails with ErrBadGetArgument.
func (br *BoundRuleset) Get(query any) (any, error) {
	switch q := query.(type) {
	case dom.Element:
		return br.fnodeFor(q), nil
	case string:
		r, ok := br.ruleset.outwardByKey[q]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingOutKey, q)
		}
		return br.getOutward(r)
	case LHS:
		return br.getLHS(q)
	default:
		return nil, ErrBadGetArgument
	}
}

func (br *BoundRuleset) getLHS(l LHS) ([]*Fnode, error) {
	plan, err := br.planFor(l.mentionedTypes())
	if err != nil {
		return nil, err
	}
	for _, r := range plan {
		if err := br.runInward(r); err != nil {
			return nil, err
		}
	}
	return l.matches(br)
}

func (br *BoundRuleset) getOutward(r *Rule) (any, error) {
	plan, err := br.planFor(r.lhs.mentionedTypes())
	if err != nil {
		return nil, err
	}
	for _, p := range plan {
		if err := br.runInward(p); err != nil {
			return nil, err
		}
	}
	fnodes, err := r.lhs.matches(br)
	if err != nil {
		return nil, err
	}
	items := make([]any, 0, len(fnodes))
	for _, f := range fnodes {
		v, err := r.outward.through(f)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return r.outward.allThrough(items)
}
