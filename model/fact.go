package model

// VoicePairFact is one melodic step: two temporally adjacent pitches
// within one part (or the outer voices of a chord), carrying the
// duration of the first pitch.
type VoicePairFact struct {
	First    Pitch
	Second   Pitch
	Duration float64
}

// Interval is the absolute distance between the two pitches in semitones.
func (f VoicePairFact) Interval() int {
	d := f.Second - f.First
	if d < 0 {
		d = -d
	}
	return d
}

// HarmonicFact is the set of pitch classes sounding together in one
// chordal event. PitchClasses is sorted and duplicate-free.
type HarmonicFact struct {
	PitchClasses []int
}

// ConstraintResult is the outcome of checking one fact. Diagnostic is
// empty when Satisfied is true.
type ConstraintResult struct {
	Index      int
	Satisfied  bool
	Diagnostic string
}

// Verdict is the overall result for one piece. Valid holds iff the
// violation count is within the configured threshold.
type Verdict struct {
	Valid      bool
	Violations []string
}
