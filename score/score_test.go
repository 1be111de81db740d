package score

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"mozartcheck/model"
)

func writeSMF(t *testing.T, build func(quarter uint32, tr *smf.Track)) []byte {
	t.Helper()

	s := smf.New()
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		t.Fatal("expected metric ticks time format")
	}
	quarter := mt.Ticks4th()

	var tr smf.Track
	build(quarter, &tr)
	tr.Close(0)
	s.Add(tr)

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err.Error())
	}
	return buf.Bytes()
}

func TestReadScoreSingleMelody(t *testing.T) {
	data := writeSMF(t, func(q uint32, tr *smf.Track) {
		tr.Add(0, smf.MetaMeter(4, 4))
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(q, midi.NoteOff(0, 60))
		tr.Add(0, midi.NoteOn(0, 64, 100))
		tr.Add(q/2, midi.NoteOff(0, 64))
	})

	s, err := ReadScore(bytes.NewReader(data))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(s.Parts, 1)
	assert.Equal([]model.Event{
		model.Note{Pitch: 60, Duration: 1.0},
		model.Note{Pitch: 64, Duration: 0.5},
	}, s.Parts[0].Events)
	assert.Equal([]model.TimeSignature{{Numerator: 4, Denominator: 4}}, s.TimeSignatures)
	assert.Len(s.Measures, 1)
}

func TestReadScoreGroupsSimultaneousNotesIntoChords(t *testing.T) {
	data := writeSMF(t, func(q uint32, tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 64, 100))
		tr.Add(0, midi.NoteOn(0, 48, 100))
		tr.Add(0, midi.NoteOn(0, 72, 100))
		tr.Add(q, midi.NoteOff(0, 48))
		tr.Add(0, midi.NoteOff(0, 64))
		tr.Add(0, midi.NoteOff(0, 72))
	})

	s, err := ReadScore(bytes.NewReader(data))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(s.Parts, 1)
	assert.Equal([]model.Event{
		model.Chord{Pitches: []model.Pitch{48, 64, 72}, Duration: 1.0},
	}, s.Parts[0].Events)
	assert.Len(s.Measures, 1)
	assert.Equal(s.Parts[0].Events, s.Measures[0].Events)
}

func TestVelocityZeroNoteOnEndsTheNote(t *testing.T) {
	data := writeSMF(t, func(q uint32, tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(q, midi.NoteOn(0, 60, 0))
	})

	s, err := ReadScore(bytes.NewReader(data))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(s.Parts, 1)
	assert.Equal([]model.Event{
		model.Note{Pitch: 60, Duration: 1.0},
	}, s.Parts[0].Events)
}

func TestMeasureBucketing(t *testing.T) {
	data := writeSMF(t, func(q uint32, tr *smf.Track) {
		tr.Add(0, smf.MetaMeter(4, 4))
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(4*q, midi.NoteOff(0, 60))
		tr.Add(0, midi.NoteOn(0, 62, 100))
		tr.Add(4*q, midi.NoteOff(0, 62))
	})

	s, err := ReadScore(bytes.NewReader(data))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(s.Measures, 2)
	assert.Equal([]model.Event{model.Note{Pitch: 60, Duration: 4.0}}, s.Measures[0].Events)
	assert.Equal([]model.Event{model.Note{Pitch: 62, Duration: 4.0}}, s.Measures[1].Events)
}

func TestThreeFourMetersMakeShorterMeasures(t *testing.T) {
	data := writeSMF(t, func(q uint32, tr *smf.Track) {
		tr.Add(0, smf.MetaMeter(3, 4))
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(3*q, midi.NoteOff(0, 60))
		tr.Add(0, midi.NoteOn(0, 62, 100))
		tr.Add(q, midi.NoteOff(0, 62))
	})

	s, err := ReadScore(bytes.NewReader(data))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.TimeSignature{{Numerator: 3, Denominator: 4}}, s.TimeSignatures)
	assert.Len(s.Measures, 2)
}

func TestEachTrackBecomesItsOwnPart(t *testing.T) {
	s := smf.New()
	mt := s.TimeFormat.(smf.MetricTicks)
	q := mt.Ticks4th()

	var first smf.Track
	first.Add(0, midi.NoteOn(0, 60, 100))
	first.Add(q, midi.NoteOff(0, 60))
	first.Close(0)

	var second smf.Track
	second.Add(0, midi.NoteOn(1, 40, 100))
	second.Add(2*q, midi.NoteOff(1, 40))
	second.Close(0)

	s.Add(first)
	s.Add(second)

	assert := assert.New(t)
	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	assert.NoError(err)

	parsed, err := ReadScore(bytes.NewReader(buf.Bytes()))
	assert.NoError(err)
	assert.Len(parsed.Parts, 2)
	assert.Equal("Part 1", parsed.Parts[0].Name)
	assert.Equal("Part 2", parsed.Parts[1].Name)
}

func TestReadScoreRejectsGarbage(t *testing.T) {
	_, err := ReadScore(bytes.NewReader([]byte("definitely not a midi file")))
	assert.Error(t, err)
}
