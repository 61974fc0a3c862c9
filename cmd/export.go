package cmd

import (
	"fmt"

	"github.com/jsphweid/midiscore/archive"
	"github.com/jsphweid/midiscore/convert"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <in.song> <out.mid>",
	Short: "Exports a song archive to a MIDI file",
	Long:  `Exports a song archive to a MIDI file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			panic("Need 2 args...")
		}
		runExport(args[0], args[1])
	},
}

func runExport(in, out string) {
	s, err := archive.Load(in)
	if err != nil {
		panic("Could not load song archive: " + err.Error())
	}
	if err := convert.ExportFile(s, out); err != nil {
		panic("Could not write midi file: " + err.Error())
	}
	fmt.Printf("Wrote %v\n", out)
}
