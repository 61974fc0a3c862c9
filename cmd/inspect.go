package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/midiscore/archive"
	"github.com/jsphweid/midiscore/convert"
	"github.com/jsphweid/midiscore/song"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Prints the tracks of a .mid or .song file",
	Long:  `Prints the tracks of a .mid or .song file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	var s *song.Song
	if strings.HasSuffix(path, ".mid") || strings.HasSuffix(path, ".midi") {
		s = convert.ImportFile(path)
	} else {
		loaded, err := archive.Load(path)
		if err != nil {
			panic("Could not load song archive: " + err.Error())
		}
		s = loaded
	}
	fmt.Println(s)
	s.PrintTracks(true, 4)
}
