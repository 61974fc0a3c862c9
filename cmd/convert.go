package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/jsphweid/midiscore/archive"
	"github.com/jsphweid/midiscore/constants"
	"github.com/jsphweid/midiscore/convert"
	"github.com/jsphweid/midiscore/db"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <in.mid> <out.song>",
	Short: "Converts a MIDI file to a song archive",
	Long:  `Converts a MIDI file to a song archive`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			panic("Need 2 args...")
		}
		runConvert(args[0], args[1])
	},
}

func runConvert(in, out string) {
	s := convert.ImportFile(in)
	s.Name = nameForFile(in)
	if err := archive.Save(s, out); err != nil {
		panic("Could not save song archive: " + err.Error())
	}
	fmt.Printf("Wrote %v (%v)\n", out, s)
}

// nameForFile prefers stored metadata over the bare filename.
func nameForFile(path string) string {
	base := filepath.Base(path)
	if constants.GetMetadataEndpoint() == "" {
		return base
	}
	metadatas := db.GetSongMetadatas([]string{base})
	if m, ok := metadatas[base]; ok {
		return m.Artist + " - " + m.Title
	}
	return base
}
