package fathom

import "fmt"

// planFor computes the ordered list of inward rules that must run
// before the query's own types can be evaluated, per spec §4.1's
// prerequisite rule: for each finalized type (Rule.finalizedTypes),
// every emitter of that type is a prerequisite; for each merely
// mentioned, non-finalized type, only adders are (see prerequisitesOf).
// The query itself is treated as fully finalizing every type it
// mentions, matching an outward rule's finalization rule. Rules already
// in doneInwardRules are dropped from the returned order, not from
// traversal — they still contribute their own prerequisites to the walk
// so transitively-required rules aren't skipped, but the done filter at
// the bottom of visit keeps them out of what gets executed again.
//
// The returned slice is in leaves-first (dependency-first) execution
// order: running it front-to-back is always valid.
func (br *BoundRuleset) planFor(mentioned []Type) ([]*Rule, error) {
	visiting := make(map[*Rule]bool)
	visited := make(map[*Rule]bool)
	var order []*Rule

	var visit func(r *Rule) error
	visit = func(r *Rule) error {
		if visited[r] {
			return nil
		}
		if visiting[r] {
			return fmt.Errorf("rule %d (%T): %w", r.order, r.lhs, ErrCycle)
		}
		visiting[r] = true

		prereqs, ok := br.planCache[r]
		if !ok {
			prereqs = br.prerequisitesOf(r)
			br.planCache[r] = prereqs
		}
		for _, p := range prereqs {
			if err := visit(p); err != nil {
				return err
			}
		}

		visiting[r] = false
		visited[r] = true
		if !br.doneInwardRules[r] {
			order = append(order, r)
		}
		return nil
	}

	seedRules := br.rulesMentioning(mentioned)
	for _, r := range seedRules {
		if err := visit(r); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// rulesMentioning returns every inward rule that could emit or add any
// of the given types, de-duplicated. Rules are grouped type by type, in
// the order types is given, and in builder order within each type.
func (br *BoundRuleset) rulesMentioning(types []Type) []*Rule {
	seen := make(map[*Rule]bool)
	var out []*Rule
	add := func(rs []*Rule) {
		for _, r := range rs {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	for _, t := range types {
		add(br.ruleset.emittersByType[t])
		add(br.ruleset.addersByType[t])
	}
	return out
}

// prerequisitesOf returns the rules that must run before r, per spec
// §4.1's prerequisite relation: for each finalized type t ∈ F(R), every
// rule in emittersByType[t] is a prerequisite; for each non-finalized
// type t ∈ M(R)\F(R), only the rules in addersByType[t] are (a plain
// OfType(t) match doesn't need every scorer/note-setter of t to have
// already run — those effects are immutable or commutative — it only
// needs t to already exist on some fnode). r is never its own
// prerequisite, even if it reads and writes the same type, per the
// "no self-recursion" reading of spec §4.1's prerequisite rule.
func (br *BoundRuleset) prerequisitesOf(r *Rule) []*Rule {
	mentioned := r.lhs.mentionedTypes()
	finalized := make(map[Type]bool)
	for _, t := range r.finalizedTypes() {
		finalized[t] = true
	}

	seen := make(map[*Rule]bool)
	var out []*Rule
	add := func(rs []*Rule) {
		for _, c := range rs {
			if c == r || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, t := range mentioned {
		if finalized[t] {
			add(br.ruleset.emittersByType[t])
		} else {
			add(br.ruleset.addersByType[t])
		}
	}
	return out
}
