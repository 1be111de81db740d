package key

import (
	"fmt"
	"math"

	"mozartcheck/model"
)

var pitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Krumhansl-Kessler major and minor key profiles.
var majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
var minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}

// Estimate is a best-guess key for a whole piece. Strength is the
// profile correlation of the winning candidate.
type Estimate struct {
	TonicPC  int
	Major    bool
	Strength float64
}

func (e Estimate) Name() string {
	mode := "major"
	if !e.Major {
		mode = "minor"
	}
	return fmt.Sprintf("%s %s", pitchClassNames[e.TonicPC], mode)
}

// EstimateKey correlates the score's duration-weighted pitch-class
// profile against all 24 rotated key profiles and returns the best
// match. An empty score comes back as C major with zero strength.
func EstimateKey(s *model.Score) Estimate {
	profile := pitchClassProfile(s)

	best := Estimate{TonicPC: 0, Major: true, Strength: 0}
	found := false
	for tonic := 0; tonic < 12; tonic++ {
		for _, major := range []bool{true, false} {
			r := correlation(profile, rotatedProfile(tonic, major))
			if !found || r > best.Strength {
				best = Estimate{TonicPC: tonic, Major: major, Strength: r}
				found = true
			}
		}
	}
	return best
}

// pitchClassProfile sums quarter lengths per pitch class. If every event
// somehow has zero duration it falls back to plain counts.
func pitchClassProfile(s *model.Score) [12]float64 {
	var byDuration [12]float64
	var byCount [12]float64
	total := 0.0

	add := func(p model.Pitch, d float64) {
		pc := ((p % 12) + 12) % 12
		byDuration[pc] += d
		byCount[pc]++
		total += d
	}

	for _, part := range s.Parts {
		for _, ev := range part.Events {
			switch e := ev.(type) {
			case model.Note:
				add(e.Pitch, e.Duration)
			case model.Chord:
				for _, p := range e.Pitches {
					add(p, e.Duration)
				}
			}
		}
	}

	if total == 0 {
		return byCount
	}
	return byDuration
}

func rotatedProfile(tonic int, major bool) [12]float64 {
	src := minorProfile
	if major {
		src = majorProfile
	}
	var res [12]float64
	for pc := 0; pc < 12; pc++ {
		res[pc] = src[((pc-tonic)%12+12)%12]
	}
	return res
}

func correlation(a, b [12]float64) float64 {
	var meanA, meanB float64
	for i := 0; i < 12; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= 12
	meanB /= 12

	var num, denA, denB float64
	for i := 0; i < 12; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		num += da * db
		denA += da * da
		denB += db * db
	}
	if denA == 0 || denB == 0 {
		return 0
	}
	return num / math.Sqrt(denA*denB)
}
