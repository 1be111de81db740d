package score

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"mozartcheck/model"
)

// ReadScoreFile parses a standard MIDI file into a Score.
func ReadScoreFile(filepath string) (*model.Score, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		errText := fmt.Sprintf("Error reading score file... %s", err.Error())
		return nil, errors.New(errText)
	}
	return ReadScore(bytes.NewReader(dat))
}

// ReadScore parses SMF bytes from r.
func ReadScore(r io.Reader) (s *model.Score, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = fmt.Errorf("Error parsing score file... %v", rec)
		}
	}()

	mf, err := smf.ReadFrom(r)
	if err != nil {
		errText := fmt.Sprintf("Error parsing score file... %s", err.Error())
		return nil, errors.New(errText)
	}

	return convert(mf)
}

// noteSpan is one sounding note pinned to absolute ticks.
type noteSpan struct {
	start    int64
	durTicks int64
	pitch    model.Pitch
}

type timedEvent struct {
	tick int64
	ev   model.Event
}

type meterChange struct {
	tick int64
	sig  model.TimeSignature
}

func convert(mf *smf.SMF) (*model.Score, error) {
	ticksPerQuarter := float64(960)
	if mt, ok := mf.TimeFormat.(smf.MetricTicks); ok && mt > 0 {
		ticksPerQuarter = float64(mt.Ticks4th())
	}

	var meters []meterChange
	var parts [][]timedEvent

	for _, track := range mf.Tracks {
		spans, trackMeters := reduceTrack(track)
		meters = append(meters, trackMeters...)
		events := groupSimultaneous(spans, ticksPerQuarter)
		if len(events) > 0 {
			parts = append(parts, events)
		}
	}

	sort.Slice(meters, func(i, j int) bool {
		return meters[i].tick < meters[j].tick
	})

	res := &model.Score{}
	for i, events := range parts {
		part := model.Part{Name: fmt.Sprintf("Part %d", i+1)}
		for _, te := range events {
			part.Events = append(part.Events, te.ev)
		}
		res.Parts = append(res.Parts, part)
	}
	for _, m := range meters {
		res.TimeSignatures = append(res.TimeSignatures, m.sig)
	}

	res.Measures = buildMeasures(parts, meters, ticksPerQuarter)
	return res, nil
}

// reduceTrack pairs note ons with their offs and collects meter changes.
// A note on with velocity 0 counts as a note off.
func reduceTrack(track smf.Track) ([]noteSpan, []meterChange) {
	var spans []noteSpan
	var meters []meterChange
	pending := make(map[uint8][]int64)

	var absTicks int64
	for _, event := range track {
		absTicks += int64(event.Delta)
		var channel uint8
		var key uint8
		var velocity uint8
		var num uint8
		var denom uint8
		switch {
		case event.Message.GetNoteOn(&channel, &key, &velocity):
			if velocity == 0 {
				spans = closeSpan(spans, pending, key, absTicks)
			} else {
				pending[key] = append(pending[key], absTicks)
			}
		case event.Message.GetNoteOff(&channel, &key, &velocity):
			spans = closeSpan(spans, pending, key, absTicks)
		case event.Message.GetMetaMeter(&num, &denom):
			if denom != 0 {
				meters = append(meters, meterChange{
					tick: absTicks,
					sig:  model.TimeSignature{Numerator: num, Denominator: denom},
				})
			}
		}
	}
	return spans, meters
}

func closeSpan(spans []noteSpan, pending map[uint8][]int64, key uint8, end int64) []noteSpan {
	starts := pending[key]
	if len(starts) == 0 {
		// stray note off
		return spans
	}
	start := starts[0]
	if len(starts) == 1 {
		delete(pending, key)
	} else {
		pending[key] = starts[1:]
	}
	return append(spans, noteSpan{start: start, durTicks: end - start, pitch: model.Pitch(key)})
}

// groupSimultaneous turns note spans into a part's event sequence: spans
// starting on the same tick become one Chord, everything else a Note.
func groupSimultaneous(spans []noteSpan, ticksPerQuarter float64) []timedEvent {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].pitch < spans[j].pitch
	})

	var events []timedEvent
	for i := 0; i < len(spans); {
		j := i
		var maxDur int64
		pitchSet := make(map[model.Pitch]bool)
		for j < len(spans) && spans[j].start == spans[i].start {
			pitchSet[spans[j].pitch] = true
			if spans[j].durTicks > maxDur {
				maxDur = spans[j].durTicks
			}
			j++
		}

		duration := float64(maxDur) / ticksPerQuarter
		pitches := sortedPitches(pitchSet)
		var ev model.Event
		if len(pitches) == 1 {
			ev = model.Note{Pitch: pitches[0], Duration: duration}
		} else {
			ev = model.Chord{Pitches: pitches, Duration: duration}
		}
		events = append(events, timedEvent{tick: spans[i].start, ev: ev})
		i = j
	}
	return events
}

func sortedPitches(set map[model.Pitch]bool) []model.Pitch {
	pitches := make([]model.Pitch, 0, len(set))
	for p := range set {
		pitches = append(pitches, p)
	}
	sort.Ints(pitches)
	return pitches
}

// buildMeasures buckets every part's events into measures using the
// meter changes, defaulting to 4/4.
func buildMeasures(parts [][]timedEvent, meters []meterChange, ticksPerQuarter float64) []model.Measure {
	var all []timedEvent
	for _, events := range parts {
		all = append(all, events...)
	}
	if len(all) == 0 {
		return nil
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].tick < all[j].tick
	})

	byIndex := make(map[int][]model.Event)
	maxIndex := 0
	for _, te := range all {
		idx := measureIndexAt(te.tick, meters, ticksPerQuarter)
		byIndex[idx] = append(byIndex[idx], te.ev)
		if idx > maxIndex {
			maxIndex = idx
		}
	}

	measures := make([]model.Measure, maxIndex+1)
	for idx, events := range byIndex {
		measures[idx] = model.Measure{Events: events}
	}
	return measures
}

func measureIndexAt(tick int64, meters []meterChange, ticksPerQuarter float64) int {
	// segments between meter changes, 4/4 before the first one
	sig := model.TimeSignature{Numerator: 4, Denominator: 4}
	var segStart int64
	index := 0

	for _, m := range meters {
		if m.tick > tick {
			break
		}
		index += measuresIn(m.tick-segStart, sig, ticksPerQuarter)
		segStart = m.tick
		sig = m.sig
	}
	index += measuresIn(tick-segStart, sig, ticksPerQuarter)
	return index
}

func measuresIn(ticks int64, sig model.TimeSignature, ticksPerQuarter float64) int {
	measureLen := float64(sig.Numerator) * ticksPerQuarter * 4 / float64(sig.Denominator)
	if measureLen <= 0 {
		return 0
	}
	return int(float64(ticks) / measureLen)
}
