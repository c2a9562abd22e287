package fathom

import "fmt"

// Ruleset is an immutable, unordered collection of rules plus the two
// indices the planner needs (spec §3, "Ruleset (unbound)"):
// emittersByType and addersByType.
type Ruleset struct {
	rules          []*Rule
	emittersByType map[Type][]*Rule
	addersByType   map[Type][]*Rule
	outwardByKey   map[string]*Rule
}

// Rules returns every rule in this ruleset, in builder insertion order.
// Passing the result to a fresh Builder (via AddRule) and Build()ing it
// reproduces a ruleset that behaves identically on all queries.
func (rs *Ruleset) Rules() []*Rule {
	return append([]*Rule(nil), rs.rules...)
}

// LHS returns the rule's left-hand side.
func (r *Rule) LHS() LHS { return r.lhs }

// RHS returns the rule's right-hand side.
func (r *Rule) RHS() RHS { return r.rhs }

// Outward returns the rule's outward sink, or nil for an inward rule.
func (r *Rule) Outward() *OutwardRHS { return r.outward }

// Builder accumulates rules before producing an immutable Ruleset. A
// Builder cannot be reused to mutate a Ruleset after Build: this mirrors
// the corpus's two-pass "accumulate, then index" construction (see
// compiler/parser.go's parse-then-decode shape in the teacher repo), and
// matches the core's "no mutation of a ruleset after construction"
// non-goal (spec §1).
type Builder struct {
	rules []*Rule
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Inward adds an inward rule (lhs → rhs) to the builder.
func (b *Builder) Inward(lhs LHS, rhs RHS) *Builder {
	b.rules = append(b.rules, &Rule{lhs: lhs, rhs: rhs, order: len(b.rules)})
	return b
}

// Outward adds an outward rule (lhs → named sink) to the builder.
func (b *Builder) Outward(lhs LHS, rhs OutwardRHS) *Builder {
	rhsCopy := rhs
	b.rules = append(b.rules, &Rule{lhs: lhs, rhs: rhs.RHS, outward: &rhsCopy, order: len(b.rules)})
	return b
}

// AddRule re-adds an existing rule (inward or outward) to the builder,
// preserving its kind. Used to round-trip Ruleset.Rules() through a new
// Builder.
func (b *Builder) AddRule(r *Rule) *Builder {
	if r.isOutward() {
		return b.Outward(r.lhs, *r.outward)
	}
	return b.Inward(r.lhs, r.rhs)
}

// Build computes the could-emit/could-add metadata for every inward rule
// (spec §4.1), indexes rules by type, and returns the immutable Ruleset.
// Construction fails with ErrUnderspecifiedEmission or
// ErrDomRuleMustAssignType if any rule's emission can't be determined.
func (b *Builder) Build() (*Ruleset, error) {
	rs := &Ruleset{
		rules:          append([]*Rule(nil), b.rules...),
		emittersByType: make(map[Type][]*Rule),
		addersByType:   make(map[Type][]*Rule),
		outwardByKey:   make(map[string]*Rule),
	}
	for _, r := range rs.rules {
		if r.isOutward() {
			if r.outward.Key != "" {
				rs.outwardByKey[r.outward.Key] = r
			}
			continue
		}
		if err := r.computeEmission(); err != nil {
			return nil, fmt.Errorf("rule %d (%T): %w", r.order, r.lhs, err)
		}
		for t := range r.couldEmit {
			rs.emittersByType[t] = append(rs.emittersByType[t], r)
		}
		for t := range r.couldAdd {
			rs.addersByType[t] = append(rs.addersByType[t], r)
		}
	}
	return rs, nil
}
