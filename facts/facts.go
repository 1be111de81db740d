package facts

import (
	"fmt"
	"sort"

	"mozartcheck/model"
)

type effectiveNote struct {
	pitch    model.Pitch
	duration float64
}

// ExtractVoicePairs builds the melodic fact stream: one fact per pair of
// temporally adjacent effective notes within a part. A chord contributes
// its outer voices, bass then soprano, both with the chord's duration.
// No pair spans a part boundary.
func ExtractVoicePairs(s *model.Score) ([]model.VoicePairFact, error) {
	var pairs []model.VoicePairFact
	for _, part := range s.Parts {
		notes, err := effectiveNotes(part)
		if err != nil {
			return nil, err
		}
		for i := 0; i+1 < len(notes); i++ {
			pairs = append(pairs, model.VoicePairFact{
				First:    notes[i].pitch,
				Second:   notes[i+1].pitch,
				Duration: notes[i].duration,
			})
		}
	}
	return pairs, nil
}

func effectiveNotes(part model.Part) ([]effectiveNote, error) {
	var notes []effectiveNote
	for _, ev := range part.Events {
		switch e := ev.(type) {
		case model.Note:
			notes = append(notes, effectiveNote{pitch: e.Pitch, duration: e.Duration})
		case model.Chord:
			if len(e.Pitches) == 0 {
				continue
			}
			if len(e.Pitches) == 1 {
				notes = append(notes, effectiveNote{pitch: e.Pitches[0], duration: e.Duration})
				continue
			}
			lowest := e.Pitches[0]
			highest := e.Pitches[len(e.Pitches)-1]
			notes = append(notes,
				effectiveNote{pitch: lowest, duration: e.Duration},
				effectiveNote{pitch: highest, duration: e.Duration},
			)
		default:
			return nil, fmt.Errorf("unexpected event type %T in %s", ev, part.Name)
		}
	}
	return notes, nil
}

// ExtractHarmonies builds the harmonic fact stream: one pitch-class set
// per chordal event, measure by measure in document order.
func ExtractHarmonies(s *model.Score) ([]model.HarmonicFact, error) {
	var res []model.HarmonicFact
	for _, measure := range s.Measures {
		for _, ev := range measure.Events {
			switch e := ev.(type) {
			case model.Note:
				// melodic events carry no vertical sonority
			case model.Chord:
				pcs := pitchClassSet(e.Pitches)
				if len(pcs) == 0 {
					continue
				}
				res = append(res, model.HarmonicFact{PitchClasses: pcs})
			default:
				return nil, fmt.Errorf("unexpected event type %T in measure", ev)
			}
		}
	}
	return res, nil
}

func pitchClassSet(pitches []model.Pitch) []int {
	seen := make(map[int]bool)
	for _, p := range pitches {
		seen[((p%12)+12)%12] = true
	}
	pcs := make([]int, 0, len(seen))
	for pc := range seen {
		pcs = append(pcs, pc)
	}
	sort.Ints(pcs)
	return pcs
}
