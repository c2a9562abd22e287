package fathom

import "github.com/domtree/fathom/dom"

// LHS selects input fnodes for a rule (spec §4.3). Each variant exposes
// matches (run against a bound ruleset), the type it guarantees present
// on every match (if any), the types it mentions (for prerequisite
// computation), whether it aggregates its type (and so finalizes it),
// and an optional post-match predicate installed by When.
type LHS interface {
	matches(br *BoundRuleset) ([]*Fnode, error)
	guaranteedType() (Type, bool)
	mentionedTypes() []Type
	isAggregate() bool
	predicate() func(*Fnode) bool
}

func combinePredicate(existing, next func(*Fnode) bool) func(*Fnode) bool {
	if existing == nil {
		return next
	}
	if next == nil {
		return existing
	}
	return func(f *Fnode) bool { return existing(f) && next(f) }
}

func filterByPredicate(fnodes []*Fnode, pred func(*Fnode) bool) []*Fnode {
	if pred == nil {
		return fnodes
	}
	out := make([]*Fnode, 0, len(fnodes))
	for _, f := range fnodes {
		if pred(f) {
			out = append(out, f)
		}
	}
	return out
}

// DomLHS selects elements by a CSS-selector-like expression. It
// guarantees no type; a rule built on it must have an RHS that assigns
// one (enforced at construction, ErrDomRuleMustAssignType).
type DomLHS struct {
	selector string
	pred     func(*Fnode) bool
}

// Dom selects elements matching selector, in document order.
func Dom(selector string) *DomLHS { return &DomLHS{selector: selector} }

// When returns a clone of l with an additional post-match predicate.
func (l *DomLHS) When(pred func(*Fnode) bool) *DomLHS {
	c := *l
	c.pred = combinePredicate(l.pred, pred)
	return &c
}

func (l *DomLHS) guaranteedType() (Type, bool)  { return "", false }
func (l *DomLHS) mentionedTypes() []Type        { return nil }
func (l *DomLHS) isAggregate() bool             { return false }
func (l *DomLHS) predicate() func(*Fnode) bool  { return l.pred }

func (l *DomLHS) matches(br *BoundRuleset) ([]*Fnode, error) {
	elements, err := br.domMatches(l.selector)
	if err != nil {
		return nil, err
	}
	out := make([]*Fnode, 0, len(elements))
	seen := make(map[dom.Element]bool, len(elements))
	for _, el := range elements {
		if seen[el] {
			continue
		}
		seen[el] = true
		out = append(out, br.fnodeFor(el))
	}
	return filterByPredicate(out, l.pred), nil
}

// OfTypeLHS selects every fnode currently bearing t. It guarantees t.
type OfTypeLHS struct {
	t    Type
	pred func(*Fnode) bool
}

// OfType selects every fnode currently bearing t.
func OfType(t Type) *OfTypeLHS { return &OfTypeLHS{t: t} }

func (l *OfTypeLHS) When(pred func(*Fnode) bool) *OfTypeLHS {
	c := *l
	c.pred = combinePredicate(l.pred, pred)
	return &c
}

func (l *OfTypeLHS) guaranteedType() (Type, bool) { return l.t, true }
func (l *OfTypeLHS) mentionedTypes() []Type       { return []Type{l.t} }
func (l *OfTypeLHS) isAggregate() bool            { return false }
func (l *OfTypeLHS) predicate() func(*Fnode) bool { return l.pred }

func (l *OfTypeLHS) matches(br *BoundRuleset) ([]*Fnode, error) {
	return filterByPredicate(br.fnodesOfType(l.t), l.pred), nil
}

// MaxLHS selects the fnode(s) of type t with the maximum ScoreFor(t);
// ties return all tied fnodes. It aggregates (and so finalizes) t.
type MaxLHS struct {
	t    Type
	pred func(*Fnode) bool
}

// Max selects the maximum-scoring fnode(s) of type t.
func Max(t Type) *MaxLHS { return &MaxLHS{t: t} }

func (l *MaxLHS) When(pred func(*Fnode) bool) *MaxLHS {
	c := *l
	c.pred = combinePredicate(l.pred, pred)
	return &c
}

func (l *MaxLHS) guaranteedType() (Type, bool) { return l.t, true }
func (l *MaxLHS) mentionedTypes() []Type       { return []Type{l.t} }
func (l *MaxLHS) isAggregate() bool            { return true }
func (l *MaxLHS) predicate() func(*Fnode) bool { return l.pred }

func (l *MaxLHS) matches(br *BoundRuleset) ([]*Fnode, error) {
	return filterByPredicate(br.maxOfType(l.t), l.pred), nil
}

// BestClusterLHS clusters every fnode of type t (spec §4.4) and selects
// the members of whichever cluster's summed ScoreFor(t) is greatest. It
// aggregates (and so finalizes) t.
type BestClusterLHS struct {
	t    Type
	opts ClusterOptions
	pred func(*Fnode) bool
}

// BestCluster selects the highest-scoring cluster of type-t fnodes.
// opts is optional; when it is omitted, DefaultClusterOptions is used.
func BestCluster(t Type, opts ...ClusterOptions) *BestClusterLHS {
	o := DefaultClusterOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	return &BestClusterLHS{t: t, opts: o}
}

func (l *BestClusterLHS) When(pred func(*Fnode) bool) *BestClusterLHS {
	c := *l
	c.pred = combinePredicate(l.pred, pred)
	return &c
}

func (l *BestClusterLHS) guaranteedType() (Type, bool) { return l.t, true }
func (l *BestClusterLHS) mentionedTypes() []Type       { return []Type{l.t} }
func (l *BestClusterLHS) isAggregate() bool            { return true }
func (l *BestClusterLHS) predicate() func(*Fnode) bool { return l.pred }

func (l *BestClusterLHS) matches(br *BoundRuleset) ([]*Fnode, error) {
	return filterByPredicate(br.bestClusterOfType(l.t, l.opts), l.pred), nil
}

// AndLHS selects every fnode bearing all of a set of types. It mentions
// every one of them but, unlike Max/BestCluster, does not aggregate, so
// And by itself finalizes none of them (spec §4.1): And only reads
// existing type membership, so the same commutativity argument that
// exempts OfType applies to it too. The rule-level finalization in
// Rule.finalizedTypes still applies: an And rule whose RHS could change
// type, or an outward And rule, finalizes every type And mentions.
type AndLHS struct {
	types []Type
	pred  func(*Fnode) bool
}

// And selects fnodes bearing every one of the given types. Each item
// must be a Type or a plain string naming one; anything else (in
// particular, another LHS) fails with ErrUnsupportedAnd.
func And(items ...any) (*AndLHS, error) {
	types := make([]Type, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case Type:
			types = append(types, v)
		case string:
			types = append(types, Type(v))
		default:
			return nil, ErrUnsupportedAnd
		}
	}
	return &AndLHS{types: types}, nil
}

func (l *AndLHS) When(pred func(*Fnode) bool) *AndLHS {
	c := *l
	c.pred = combinePredicate(l.pred, pred)
	return &c
}

func (l *AndLHS) guaranteedType() (Type, bool) { return "", false }
func (l *AndLHS) mentionedTypes() []Type       { return append([]Type(nil), l.types...) }
func (l *AndLHS) isAggregate() bool            { return false }
func (l *AndLHS) predicate() func(*Fnode) bool { return l.pred }

func (l *AndLHS) matches(br *BoundRuleset) ([]*Fnode, error) {
	if len(l.types) == 0 {
		return nil, nil
	}
	// Iterate the smallest candidate set, per spec §4.3's implementation hint.
	smallest := br.fnodesOfType(l.types[0])
	for _, t := range l.types[1:] {
		cand := br.fnodesOfType(t)
		if len(cand) < len(smallest) {
			smallest = cand
		}
	}
	out := make([]*Fnode, 0, len(smallest))
	for _, f := range smallest {
		all := true
		for _, t := range l.types {
			if !f.HasType(t) {
				all = false
				break
			}
		}
		if all {
			out = append(out, f)
		}
	}
	return filterByPredicate(out, l.pred), nil
}
