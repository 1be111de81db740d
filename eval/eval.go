package eval

import (
	"fmt"

	"mozartcheck/model"
	"mozartcheck/rules"
	"mozartcheck/sat"
	"mozartcheck/util"
)

// Strategy selects how fact predicates are checked.
type Strategy int

const (
	// StrategyDirect evaluates each predicate as a plain boolean.
	StrategyDirect Strategy = iota

	// StrategySolver asserts each fact into a fresh constraint context
	// and queries satisfiability of the predicate's negation. Facts are
	// always checked in isolation, never as one joint formula; a joint
	// query could not localize blame to a single fact. Both strategies
	// classify every fact identically.
	StrategySolver
)

// CheckVoiceLeading classifies every melodic fact against the leap model.
func CheckVoiceLeading(pairs []model.VoicePairFact, strategy Strategy) ([]model.ConstraintResult, error) {
	res := make([]model.ConstraintResult, 0, len(pairs))
	for i, f := range pairs {
		var satisfied bool
		if strategy == StrategySolver {
			var err error
			satisfied, err = leapHoldsViaSolver(i, f)
			if err != nil {
				return nil, err
			}
		} else {
			satisfied = rules.AcceptableLeap(f)
		}

		r := model.ConstraintResult{Index: i, Satisfied: satisfied}
		if !satisfied {
			r.Diagnostic = fmt.Sprintf("Unusual leap (%d semitones) at position %d", f.Interval(), i)
		}
		res = append(res, r)
	}
	return res, nil
}

// CheckHarmony classifies every harmonic fact against the dissonance model.
func CheckHarmony(facts []model.HarmonicFact, tonicPC int, strategy Strategy) ([]model.ConstraintResult, error) {
	res := make([]model.ConstraintResult, 0, len(facts))
	for i, f := range facts {
		var satisfied bool
		if strategy == StrategySolver {
			var err error
			satisfied, err = sonorityHoldsViaSolver(i, f, tonicPC)
			if err != nil {
				return nil, err
			}
		} else {
			satisfied = rules.AcceptableSonority(f, tonicPC)
		}

		r := model.ConstraintResult{Index: i, Satisfied: satisfied}
		if !satisfied {
			r.Diagnostic = fmt.Sprintf("Highly unusual dissonance in measure %d", i)
		}
		res = append(res, r)
	}
	return res, nil
}

// Violations filters a result list down to its diagnostics, in order.
func Violations(results []model.ConstraintResult) []string {
	var diags []string
	for _, r := range results {
		if !r.Satisfied {
			diags = append(diags, r.Diagnostic)
		}
	}
	return diags
}

// leapHoldsViaSolver runs one isolated satisfiability query: pin the
// pitches, define the acceptance predicate as a boolean alias, and ask
// whether its negation is satisfiable. Sat under negation means the
// fact is a violation.
func leapHoldsViaSolver(i int, f model.VoicePairFact) (bool, error) {
	ctx := sat.NewContext()
	n1 := sat.Var(fmt.Sprintf("note_%d_1", i))
	n2 := sat.Var(fmt.Sprintf("note_%d_2", i))
	interval := sat.Var(fmt.Sprintf("interval_%d", i))

	ctx.Assert(sat.Eq(n1, sat.Int(f.First)))
	ctx.Assert(sat.Eq(n2, sat.Int(f.Second)))
	ctx.Assert(sat.Eq(interval, sat.Abs(sat.Sub(n2, n1))))

	name := fmt.Sprintf("voice_leading_%d", i)
	ctx.Assert(sat.Iff(name, leapFormula(interval, f.Duration)))
	ctx.Assert(sat.Not(sat.Bool(name)))

	violated, err := ctx.Check()
	if err != nil {
		return false, err
	}
	return !violated, nil
}

// leapFormula encodes rules.AcceptableLeap over a symbolic interval. The
// duration regime is known at build time, so it folds into the formula
// shape rather than becoming a variable.
func leapFormula(interval sat.Term, duration float64) sat.Formula {
	regime := rules.RegimeFor(duration)

	var base sat.Formula
	if regime == rules.RegimeLong {
		base = sat.Or(
			sat.Le(interval, sat.Int(12)),
			sat.Eq(interval, sat.Int(19)),
			sat.And(
				sat.Eq(interval, sat.Int(24)),
				membership(interval, rules.ArpeggioContextIntervals),
			),
		)
	} else {
		base = sat.Or(
			sat.Le(interval, sat.Int(24)),
			sat.Eq(interval, sat.Int(31)),
			membership(interval, rules.DramaticIntervals),
		)
	}

	exception := sat.Or(
		membership(interval, rules.ArpeggioIntervals),
		membership(interval, rules.DramaticIntervals),
	)
	if duration < rules.VirtuosicQuarterLength {
		exception = sat.True()
	}
	widened := sat.And(
		sat.Not(sat.Le(interval, sat.Int(rules.MaxLeap(regime)))),
		exception,
	)

	return sat.Or(base, widened)
}

// sonorityHoldsViaSolver mirrors leapHoldsViaSolver for one harmonic
// fact. The harsh-dissonance signature is membership of 1, 6 and 10 in
// the set of pairwise interval variables, one disjunction per target,
// not three equalities on a single variable.
func sonorityHoldsViaSolver(i int, f model.HarmonicFact, tonicPC int) (bool, error) {
	ctx := sat.NewContext()

	pcVars := make([]sat.Term, len(f.PitchClasses))
	for j, pc := range f.PitchClasses {
		v := sat.Var(fmt.Sprintf("chord_%d_pc_%d", i, j))
		ctx.Assert(sat.Eq(v, sat.Int(pc)))
		pcVars[j] = v
	}

	allowed := make([]sat.Formula, len(pcVars))
	for j, v := range pcVars {
		allowed[j] = membership(v, rules.AllowedPitchClasses(tonicPC))
	}

	var intervalVars []sat.Term
	for a := 0; a < len(pcVars); a++ {
		for b := a + 1; b < len(pcVars); b++ {
			v := sat.Var(fmt.Sprintf("interval_%d_%d_%d", i, a, b))
			ctx.Assert(sat.Eq(v, sat.Mod(sat.Sub(pcVars[b], pcVars[a]), 12)))
			intervalVars = append(intervalVars, v)
		}
	}

	harsh := sat.False()
	if len(f.PitchClasses) >= 3 {
		harsh = sat.And(
			containsInterval(intervalVars, 1),
			containsInterval(intervalVars, 6),
			containsInterval(intervalVars, 10),
		)
	}

	name := fmt.Sprintf("harmony_%d", i)
	ctx.Assert(sat.Iff(name, sat.And(sat.And(allowed...), sat.Not(harsh))))
	ctx.Assert(sat.Not(sat.Bool(name)))

	violated, err := ctx.Check()
	if err != nil {
		return false, err
	}
	return !violated, nil
}

func containsInterval(intervalVars []sat.Term, target int) sat.Formula {
	alts := make([]sat.Formula, len(intervalVars))
	for i, v := range intervalVars {
		alts[i] = sat.Eq(v, sat.Int(target))
	}
	return sat.Or(alts...)
}

func membership(t sat.Term, set map[int]bool) sat.Formula {
	var alts []sat.Formula
	for _, v := range util.SortedKeys(set) {
		alts = append(alts, sat.Eq(t, sat.Int(v)))
	}
	return sat.Or(alts...)
}
