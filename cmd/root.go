package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "midiscore",
	Short: "MIDI <-> symbolic score conversion",
	Long:  `Converts between MIDI files and a measure-quantized symbolic score model.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
