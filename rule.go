package fathom

// Rule pairs an LHS with an RHS (spec §3). A Rule built with an
// OutwardRHS is outward (its RHS is a named sink, never re-entering the
// fnode store); otherwise it is inward.
type Rule struct {
	lhs     LHS
	rhs     RHS
	outward *OutwardRHS // non-nil for outward rules

	// order is this rule's position in the builder's insertion order,
	// used to name the rule in error messages. The planner does not read
	// it; its tie-break (spec §4.1, "Tie-breaking") comes from the
	// emitter/adder index slices, which Build fills in insertion order.
	order int

	// couldEmit / couldAdd are computed once at Ruleset.Build time
	// (spec §4.1, "Emit/add metadata").
	couldEmit map[Type]bool
	couldAdd  map[Type]bool
}

func (r *Rule) isOutward() bool { return r.outward != nil }

// computeEmission fills in couldEmit/couldAdd from the RHS's declared
// Emissions and the LHS's guaranteed type, per spec §4.1.
func (r *Rule) computeEmission() error {
	guaranteed, hasGuaranteed := r.lhs.guaranteedType()
	em := r.rhs.PossibleEmissions()

	if isDomLHS(r.lhs) && len(em.PossibleTypes) == 0 {
		// A Dom() rule's RHS must always assign a type explicitly; since
		// Dom guarantees none, "emitted" can only ever come from the
		// RHS's declared PossibleTypes.
		return ErrDomRuleMustAssignType
	}

	var emitted map[Type]bool
	if !em.CouldChangeType {
		if hasGuaranteed {
			emitted = map[Type]bool{guaranteed: true}
		} else if len(em.PossibleTypes) > 0 {
			emitted = em.PossibleTypes
		} else {
			return ErrUnderspecifiedEmission
		}
	} else {
		emitted = em.PossibleTypes
		if len(emitted) == 0 {
			if hasGuaranteed {
				emitted = map[Type]bool{guaranteed: true}
			} else {
				return ErrUnderspecifiedEmission
			}
		}
	}

	couldAdd := make(map[Type]bool, len(emitted))
	for t := range emitted {
		if !(hasGuaranteed && t == guaranteed) {
			couldAdd[t] = true
		}
	}

	r.couldEmit = emitted
	r.couldAdd = couldAdd
	return nil
}

func isDomLHS(l LHS) bool {
	_, ok := l.(*DomLHS)
	return ok
}

// finalizedTypes computes F(R) ⊆ mentionedTypes(R), per spec §4.1's three
// finalization rules (aggregate LHS, outward RHS, and could-change-type).
func (r *Rule) finalizedTypes() []Type {
	mentioned := r.lhs.mentionedTypes()

	if r.isOutward() {
		// An outward rule finalizes every type its LHS mentions: its
		// results leave the system, so scores must be complete.
		return mentioned
	}

	finalized := make(map[Type]bool)
	if r.lhs.isAggregate() {
		for _, t := range mentioned {
			finalized[t] = true
		}
	}

	// Could-change-type finalization: if this rule's RHS might retarget a
	// fnode away from the LHS's guaranteed type(s), then every type the
	// LHS guarantees present on a match must be finalized before this
	// rule can run, since after it runs those types' membership could
	// still be growing from this rule's own effect.
	guaranteedSet := guaranteedTypeCombo(r.lhs)
	if len(guaranteedSet) > 0 && couldChangeType(r, guaranteedSet) {
		for _, t := range guaranteedSet {
			finalized[t] = true
		}
	}

	out := make([]Type, 0, len(finalized))
	for t := range finalized {
		out = append(out, t)
	}
	return out
}

// guaranteedTypeCombo returns the set of types an LHS guarantees present
// together on every match: the single guaranteed type for OfType/Max/
// BestCluster, all of them for And, none for Dom. And's guaranteed type
// is deliberately not surfaced through guaranteedType() (which answers
// "the single effective type for an unqualified fact", ambiguous for
// And) but its combo is still every type it mentions, since a match is
// defined as bearing every one of them.
func guaranteedTypeCombo(l LHS) []Type {
	if t, ok := l.guaranteedType(); ok {
		return []Type{t}
	}
	if _, ok := l.(*AndLHS); ok {
		return l.mentionedTypes()
	}
	return nil
}

func couldChangeType(r *Rule, combo []Type) bool {
	em := r.rhs.PossibleEmissions()
	if em.CouldChangeType {
		return true
	}
	for t := range em.PossibleTypes {
		if !containsType(combo, t) {
			return true
		}
	}
	return false
}

func containsType(types []Type, t Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
