package verdict

import (
	"fmt"

	"mozartcheck/constants"
	"mozartcheck/eval"
	"mozartcheck/facts"
	"mozartcheck/key"
	"mozartcheck/model"
)

// VerifyPiece runs the whole pipeline over one parsed score: extract
// melodic and harmonic facts, classify each against the style model,
// and aggregate diagnostics against the violation threshold. Melodic
// diagnostics come first, then harmonic, each stream in its own order.
// Any failure along the way becomes an analysis-error verdict instead
// of propagating.
func VerifyPiece(s *model.Score, strategy eval.Strategy) (v model.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			v = analysisError(fmt.Sprintf("%v", r))
		}
	}()

	pairs, err := facts.ExtractVoicePairs(s)
	if err != nil {
		return analysisError(err.Error())
	}
	harmonies, err := facts.ExtractHarmonies(s)
	if err != nil {
		return analysisError(err.Error())
	}

	tonicPC := key.EstimateKey(s).TonicPC

	melodic, err := eval.CheckVoiceLeading(pairs, strategy)
	if err != nil {
		return analysisError(err.Error())
	}
	harmonic, err := eval.CheckHarmony(harmonies, tonicPC, strategy)
	if err != nil {
		return analysisError(err.Error())
	}

	var violations []string
	violations = append(violations, eval.Violations(melodic)...)
	violations = append(violations, eval.Violations(harmonic)...)

	return model.Verdict{
		Valid:      len(violations) <= constants.ViolationThreshold,
		Violations: violations,
	}
}

func analysisError(msg string) model.Verdict {
	return model.Verdict{
		Valid:      false,
		Violations: []string{"Analysis error: " + msg},
	}
}
