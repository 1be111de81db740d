package rules

import "mozartcheck/model"

// Interval vocabularies behind the style model. Named sets keep the
// acceptance formula auditable instead of burying literals in the
// predicates.
var (
	// ArpeggioIntervals are leaps that outline a chord: octave,
	// compound fifth, two octaves, two octaves plus a third or fifth.
	ArpeggioIntervals = map[int]bool{12: true, 19: true, 24: true, 28: true, 31: true}

	// ArpeggioContextIntervals is the narrower vocabulary that lets a
	// two-octave leap through on a long note.
	ArpeggioContextIntervals = map[int]bool{12: true, 19: true, 24: true}

	// DramaticIntervals are wide expressive leaps the style tolerates.
	DramaticIntervals = map[int]bool{29: true, 31: true, 36: true, 41: true}
)

const (
	// LongQuarterLength splits the two duration regimes.
	LongQuarterLength = 1.0

	// VirtuosicQuarterLength marks sixteenth-note-or-faster passages,
	// which are exempt from leap limits entirely.
	VirtuosicQuarterLength = 0.25

	MaxLeapLong  = 19
	MaxLeapShort = 24
)

// Regime is the duration context a melodic fact is judged under.
type Regime int

const (
	RegimeLong Regime = iota
	RegimeShort
)

func RegimeFor(quarterLength float64) Regime {
	if quarterLength >= LongQuarterLength {
		return RegimeLong
	}
	return RegimeShort
}

func MaxLeap(r Regime) int {
	if r == RegimeLong {
		return MaxLeapLong
	}
	return MaxLeapShort
}

// IsArpeggiationContext reports whether the pair reads as chord
// outlining. Only the interval matters; the concrete pitches don't.
func IsArpeggiationContext(first, second model.Pitch) bool {
	d := second - first
	if d < 0 {
		d = -d
	}
	return ArpeggioContextIntervals[d]
}

func IsDramaticGesture(interval int) bool {
	return DramaticIntervals[interval]
}

// AcceptableLeap is the melodic predicate: the regime's base allowance,
// widened by the exception bands for recognized arpeggio and dramatic
// intervals and for virtuosic passages.
func AcceptableLeap(f model.VoicePairFact) bool {
	interval := f.Interval()
	regime := RegimeFor(f.Duration)

	var base bool
	if regime == RegimeLong {
		base = interval <= 12 ||
			interval == 19 ||
			(interval == 24 && IsArpeggiationContext(f.First, f.Second))
	} else {
		base = interval <= 24 ||
			interval == 31 ||
			IsDramaticGesture(interval)
	}
	if base {
		return true
	}

	if interval > MaxLeap(regime) {
		if ArpeggioIntervals[interval] || DramaticIntervals[interval] {
			return true
		}
		if f.Duration < VirtuosicQuarterLength {
			return true
		}
	}
	return false
}

// AllowedPitchClasses returns the chromatic degrees admitted over a
// tonic. Every alteration is admitted, so membership never rejects on
// its own; rejection comes from the harsh-dissonance signature alone.
func AllowedPitchClasses(tonicPC int) map[int]bool {
	res := make(map[int]bool, 12)
	for step := 0; step < 12; step++ {
		res[(tonicPC+step)%12] = true
	}
	return res
}

// PairwiseIntervals is the set of mod-12 intervals between every
// unordered pair of pitch classes. PitchClasses is sorted, so the
// differences are already in 0..11.
func PairwiseIntervals(pcs []int) map[int]bool {
	res := make(map[int]bool)
	for i := 0; i < len(pcs); i++ {
		for j := i + 1; j < len(pcs); j++ {
			res[((pcs[j]-pcs[i])%12+12)%12] = true
		}
	}
	return res
}

// AcceptableSonority is the harmonic predicate: a sonority fails only
// when it has at least three distinct pitch classes whose pairwise
// intervals contain the semitone, tritone and minor seventh at once.
func AcceptableSonority(f model.HarmonicFact, tonicPC int) bool {
	allowed := AllowedPitchClasses(tonicPC)
	for _, pc := range f.PitchClasses {
		if !allowed[pc] {
			return false
		}
	}

	if len(f.PitchClasses) < 3 {
		return true
	}
	intervals := PairwiseIntervals(f.PitchClasses)
	return !(intervals[1] && intervals[6] && intervals[10])
}
