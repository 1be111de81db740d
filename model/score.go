package model

import "fmt"

// Pitch is an absolute MIDI pitch (0-127).
type Pitch = int

// Event is a single sounding element within a part. The only variants
// are Note and Chord; anything else in a part is a malformed score.
type Event interface {
	QuarterLength() float64
	event()
}

type Note struct {
	Pitch    Pitch
	Duration float64
}

// Chord holds simultaneous pitches in ascending order.
type Chord struct {
	Pitches  []Pitch
	Duration float64
}

func (n Note) QuarterLength() float64  { return n.Duration }
func (c Chord) QuarterLength() float64 { return c.Duration }

func (Note) event()  {}
func (Chord) event() {}

type Part struct {
	Name   string
	Events []Event
}

// Measure holds the events of every part that start within one measure,
// in tick order.
type Measure struct {
	Events []Event
}

type TimeSignature struct {
	Numerator   uint8
	Denominator uint8
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Numerator, ts.Denominator)
}

type Score struct {
	Parts          []Part
	Measures       []Measure
	TimeSignatures []TimeSignature
}
