package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mozartcheck/eval"
	"mozartcheck/facts"
	"mozartcheck/key"
	"mozartcheck/score"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspects the facts extracted from one score",
	Long:  `Inspects the facts extracted from one score`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	s, err := score.ReadScoreFile(path)
	if err != nil {
		panic("Could not read score: " + err.Error())
	}

	est := key.EstimateKey(s)
	fmt.Printf("key: %v (strength %.2f)\n", est.Name(), est.Strength)
	fmt.Printf("parts: %v\n", len(s.Parts))
	fmt.Printf("measures: %v\n", len(s.Measures))

	pairs, err := facts.ExtractVoicePairs(s)
	if err != nil {
		panic("Could not extract voice pairs: " + err.Error())
	}
	melodic, err := eval.CheckVoiceLeading(pairs, eval.StrategyDirect)
	if err != nil {
		panic(err.Error())
	}
	fmt.Printf("\nvoice pairs: %v\n", len(pairs))
	for i, f := range pairs {
		status := "ok"
		if !melodic[i].Satisfied {
			status = "VIOLATION"
		}
		fmt.Printf("  %v -> %v  interval=%v  dur=%v  %v\n", f.First, f.Second, f.Interval(), f.Duration, status)
	}

	harmonies, err := facts.ExtractHarmonies(s)
	if err != nil {
		panic("Could not extract harmonies: " + err.Error())
	}
	tonicPC := est.TonicPC
	harmonic, err := eval.CheckHarmony(harmonies, tonicPC, eval.StrategyDirect)
	if err != nil {
		panic(err.Error())
	}
	fmt.Printf("\nsonorities: %v\n", len(harmonies))
	for i, f := range harmonies {
		status := "ok"
		if !harmonic[i].Satisfied {
			status = "VIOLATION"
		}
		fmt.Printf("  %v  %v\n", f.PitchClasses, status)
	}
}
