package cmd

import (
	"fmt"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"mozartcheck/model"
	"mozartcheck/rules"
	"mozartcheck/util"
)

func init() {
	rootCmd.AddCommand(liveCmd)
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Checks live MIDI input against the style model",
	Long:  `Checks live MIDI input against the style model`,
	Run: func(cmd *cobra.Command, args []string) {
		live()
	},
}

func live() {
	defer midi.CloseDriver()
	in, err := midi.InPort(0)
	if err != nil {
		fmt.Println("can't find a MIDI in port")
		return
	}

	onNotes := make(map[uint8]bool)
	lastPitch := model.Pitch(-1)
	var lastStart time.Time

	// held chords settle over a few events, so wait for the hands to land
	settled := debounce.New(150 * time.Millisecond)

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, k, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &k, &vel):
			pitch := model.Pitch(k)
			now := time.Now()
			if lastPitch >= 0 {
				// previous note's length in quarters, read at 120bpm
				quarters := now.Sub(lastStart).Seconds() * 2
				f := model.VoicePairFact{First: lastPitch, Second: pitch, Duration: quarters}
				if !rules.AcceptableLeap(f) {
					fmt.Printf("Unusual leap (%v semitones)\n", f.Interval())
				}
			}
			lastPitch = pitch
			lastStart = now

			onNotes[k] = true
			held := util.SortedKeys(onNotes)
			settled(func() { checkSonority(held) })
		case msg.GetNoteEnd(&ch, &k):
			delete(onNotes, k)
		default:
			// ignore
		}
	})
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	time.Sleep(time.Second * 5000)
	stop()
}

func checkSonority(held []uint8) {
	pcs := make(map[int]bool)
	for _, k := range held {
		pcs[int(k)%12] = true
	}
	f := model.HarmonicFact{PitchClasses: util.SortedKeys(pcs)}

	// the allowed set admits every chromatic degree, so the tonic
	// doesn't matter for a live check
	if !rules.AcceptableSonority(f, 0) {
		fmt.Printf("Highly unusual dissonance: %v\n", f.PitchClasses)
	}
}
