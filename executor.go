package fathom

import "fmt"

// runInward executes r against every fnode its LHS currently matches,
// merging each resulting Fact into the fnode store (spec §4.2). Errors
// from the RHS function are returned unchanged; structural errors from
// fact merging are wrapped with the offending rule.
func (br *BoundRuleset) runInward(r *Rule) error {
	if br.doneInwardRules[r] {
		return fmt.Errorf("rule %d (%T): %w", r.order, r.lhs, ErrDoubleExecution)
	}
	guaranteed, hasGuaranteed := r.lhs.guaranteedType()
	inputs, err := r.lhs.matches(br)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		fact, err := r.rhs.Fact(in, guaranteed)
		if err != nil {
			return err
		}
		if err := br.mergeFact(fact, in, guaranteed, hasGuaranteed); err != nil {
			return fmt.Errorf("rule %d (%T): %w", r.order, r.lhs, err)
		}
	}
	br.doneInwardRules[r] = true
	return nil
}

// mergeFact applies one Fact to the fnode store (spec §4.2, "Fact
// merging"): the fact's type is either stated explicitly or inferred
// from the LHS's guaranteed type; a score multiplies onto the existing
// score for that type (default 1.0), ConserveScore additionally folds
// in the source fnode's own score for the LHS's guaranteed type, and a
// note is set once and never silently overwritten.
func (br *BoundRuleset) mergeFact(fact Fact, in *Fnode, guaranteed Type, hasGuaranteed bool) error {
	if fact.ConserveScore && !hasGuaranteed {
		return ErrConserveScoreWithoutType
	}

	t := fact.Type
	if t == "" {
		if hasGuaranteed {
			t = guaranteed
		} else if fact.HasScore {
			return ErrScoreWithoutInferableType
		} else if fact.Note != nil {
			return ErrNoteWithoutInferableType
		} else {
			// No type, no score, no note: a pure no-op fact.
			return nil
		}
	}

	target := fact.Element
	f := in
	if target != nil {
		f = br.fnodeFor(target)
	}
	if f == nil {
		return nil
	}

	_, hadType := f.byType[t]
	if fact.HasScore || fact.ConserveScore {
		factor := 1.0
		if fact.ConserveScore {
			factor *= in.ScoreFor(guaranteed)
		}
		if fact.HasScore {
			factor *= fact.Score
		}
		f.multiplyScore(t, factor)
	} else {
		f.ensureType(t)
	}
	if fact.Note != nil {
		if err := f.setNote(t, fact.Note); err != nil {
			return err
		}
	}
	if !hadType {
		br.addToTypeIndex(t, f)
	}
	return nil
}
