package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mozartcheck",
	Short: "Mozart style checker",
	Long:  `Checks MIDI scores against a model of Mozart's melodic and harmonic practice.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
