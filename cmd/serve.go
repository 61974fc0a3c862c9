package cmd

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/midiscore/analysis"
	"github.com/jsphweid/midiscore/convert"
	"github.com/jsphweid/midiscore/midifile"
	"github.com/jsphweid/midiscore/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `serves`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// HandleConvert accepts a raw MIDI file body and responds with a JSON
// summary of the converted song.
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		writeError(w, 400, "Kindly POST a midi file as the request body")
		return
	}

	// The codec reads from disk, so spool the upload to a temp file.
	tmp := filepath.Join(os.TempDir(), uuid.New().String()+".mid")
	if err := os.WriteFile(tmp, body, 0666); err != nil {
		writeError(w, 500, "Could not spool upload: "+err.Error())
		return
	}
	defer os.Remove(tmp)

	sm, err := midifile.Read(tmp)
	if err != nil {
		writeError(w, 400, "Could not parse midi: "+err.Error())
		return
	}

	instruments := midifile.Instruments(sm)
	s := convert.FromSMF(sm, "")

	var res model.ConvertResponse
	res.Name = s.Name
	res.TicksPerBeat = s.TicksPerBeat
	res.DurationSeconds = midifile.DurationSeconds(sm)
	for i, t := range s.Tracks {
		res.Tracks = append(res.Tracks, model.TrackSummary{
			Name:        t.Name,
			Program:     t.Program,
			Channel:     t.Channel,
			Type:        t.Type.String(),
			NumMeasures: len(t.Measures),
			Monophonic:  analysis.IsMonophonic(instruments[i]),
		})
	}
	json.NewEncoder(w).Encode(res)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(":8080", handler))
}
