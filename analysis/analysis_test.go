package analysis

import (
	"testing"

	"github.com/jsphweid/midiscore/convert"
	"github.com/jsphweid/midiscore/midifile"
	"github.com/jsphweid/midiscore/model"
	"github.com/jsphweid/midiscore/song"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMonophonicIntervals(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsMonophonic(model.Instrument{}))

	// Touching endpoints do not overlap.
	assert.True(IsMonophonic(model.Instrument{Notes: []model.NoteInterval{
		{StartTick: 0, EndTick: 480, Pitch: 60},
		{StartTick: 480, EndTick: 960, Pitch: 62},
	}}))

	assert.False(IsMonophonic(model.Instrument{Notes: []model.NoteInterval{
		{StartTick: 0, EndTick: 480, Pitch: 60},
		{StartTick: 240, EndTick: 720, Pitch: 62},
	}}))

	// Order of the input must not matter.
	assert.False(IsMonophonic(model.Instrument{Notes: []model.NoteInterval{
		{StartTick: 240, EndTick: 720, Pitch: 62},
		{StartTick: 0, EndTick: 480, Pitch: 60},
	}}))
}

func makeMonophonicSong() *song.Song {
	s := song.New("Mono")
	track := s.NewTrack("Lead", 0, 0, song.TypeMelody)
	for j := 0; j < 7; j++ {
		m := track.NewMeasure()
		for k := 0; k < 4; k++ {
			e := m.NewEvent(480)
			if k%3 == 0 {
				e.NewNote(uint8(41+j), 64)
			}
		}
	}
	return s
}

func makePolyphonicSong() *song.Song {
	s := song.New("Poly")
	track := s.NewTrack("Pad", 0, 0, song.TypeHarmony)
	m := track.NewMeasure()
	m.NewEvent(960).NewNote(60, 100).NewNote(64, 100)
	m.NewEvent(960).NewNote(67, 100)
	return s
}

func TestIsMonophonicThroughExport(t *testing.T) {
	mono := midifile.Instruments(convert.Export(makeMonophonicSong()))
	require.Len(t, mono, 1)
	assert.True(t, IsMonophonic(mono[0]))

	poly := midifile.Instruments(convert.Export(makePolyphonicSong()))
	require.Len(t, poly, 1)
	assert.False(t, IsMonophonic(poly[0]))
}
