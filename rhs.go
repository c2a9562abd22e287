package fathom

// Emissions is the static metadata an RHS declares about what types it
// might produce (spec §4.1): whether it could retarget a fnode to a type
// other than the LHS's guaranteed type, and, when it could, the static
// set of types it might emit.
type Emissions struct {
	CouldChangeType bool
	PossibleTypes   map[Type]bool
}

// RHS is the right-hand side of an inward rule: a function from an input
// fnode (plus the LHS's guaranteed type, if any) to a Fact, together with
// the static Emissions metadata the ruleset builder needs to compute
// could-emit/could-add indices (spec §4.1) without running any rule.
type RHS struct {
	// Func produces the fact for one input fnode.
	Func func(in *Fnode, guaranteedType Type) (Fact, error)

	// CouldChangeType and PossibleTypes are Emissions, inlined so RHS
	// values can be built as plain struct literals.
	CouldChangeType bool
	PossibleTypes   map[Type]bool
}

// PossibleEmissions returns the RHS's static emission metadata.
func (r RHS) PossibleEmissions() Emissions {
	return Emissions{CouldChangeType: r.CouldChangeType, PossibleTypes: r.PossibleTypes}
}

// Fact runs the RHS's function for one input fnode.
func (r RHS) Fact(in *Fnode, guaranteedType Type) (Fact, error) {
	return r.Func(in, guaranteedType)
}

// OutwardRHS is the right-hand side of an outward rule: a named sink that
// does not mutate the fnode store. Through runs once per matched fnode;
// AllThrough runs once over the whole ordered sequence of Through
// results. Both default to identity when left nil.
type OutwardRHS struct {
	RHS
	Key        string
	Through    func(f *Fnode) (any, error)
	AllThrough func(items []any) (any, error)
}

func (o OutwardRHS) through(f *Fnode) (any, error) {
	if o.Through == nil {
		return f, nil
	}
	return o.Through(f)
}

func (o OutwardRHS) allThrough(items []any) (any, error) {
	if o.AllThrough == nil {
		return items, nil
	}
	return o.AllThrough(items)
}

// possibleTypeSet is a convenience constructor for an Emissions-only RHS
// metadata set, used when building rules that could change type.
func possibleTypeSet(types ...Type) map[Type]bool {
	m := make(map[Type]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	return m
}
