//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/midiscore/cmd"
	"github.com/jsphweid/midiscore/convert"
	"github.com/jsphweid/midiscore/model"
	"github.com/jsphweid/midiscore/song"
	"github.com/stretchr/testify/assert"
)

func createMidiReqBody(s *song.Song) io.Reader {
	var buf bytes.Buffer
	if _, err := convert.Export(s).WriteTo(&buf); err != nil {
		panic(err.Error())
	}
	return &buf
}

func TestConvertE2E(t *testing.T) {
	s := song.New("")
	lead := s.NewTrack("Lead", 5, 0, song.TypeMelody)
	m := lead.NewMeasure()
	m.NewEvent(480).NewNote(60, 100)
	m.NewEvent(480).NewNote(62, 100)
	pad := s.NewTrack("Pad", 48, 1, song.TypeHarmony)
	pad.NewMeasure().NewEvent(960).NewNote(48, 80).NewNote(55, 80)

	req := httptest.NewRequest(http.MethodPost, "/convert", createMidiReqBody(s))
	w := httptest.NewRecorder()
	cmd.HandleConvert(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var convertResponse model.ConvertResponse
	err := json.Unmarshal(respBody, &convertResponse)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(480, convertResponse.TicksPerBeat)
	assert.Len(convertResponse.Tracks, 2)

	assert.Equal("Lead", convertResponse.Tracks[0].Name)
	assert.Equal(uint8(5), convertResponse.Tracks[0].Program)
	assert.Equal(uint8(0), convertResponse.Tracks[0].Channel)
	assert.Equal(1, convertResponse.Tracks[0].NumMeasures)
	assert.True(convertResponse.Tracks[0].Monophonic)

	assert.Equal("Pad", convertResponse.Tracks[1].Name)
	assert.False(convertResponse.Tracks[1].Monophonic)

	assert.Greater(convertResponse.DurationSeconds, 0.0)
}

func TestConvertE2EEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/convert", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	cmd.HandleConvert(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 400)

	var errorResponse model.ErrorResponse
	err := json.Unmarshal(respBody, &errorResponse)
	if err != nil {
		panic(err.Error())
	}
	assert.NotEmpty(errorResponse.Error)
}

func TestConvertE2EGarbageBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/convert", bytes.NewReader([]byte("not a midi file")))
	w := httptest.NewRecorder()
	cmd.HandleConvert(w, req)

	assert.Equal(t, w.Result().StatusCode, 400)
}
