// Package song holds the hierarchical symbolic score model: a Song owns
// Tracks, which own Measures, which own Events, which hold Notes. The model
// is built strictly by appending; every element derives its position from
// the previous sibling.
package song

import (
	"fmt"

	"github.com/jsphweid/midiscore/constants"
)

// Song is an entire symbolic score.
type Song struct {
	Name          string
	TimeSignature TimeSignature
	Key           Key
	Tracks        []*Track

	// TicksPerBeat is the finest granularity of time the song can
	// represent. When imported from a transport file it matches the
	// source resolution.
	TicksPerBeat int
}

// New returns an empty song at the default resolution, in common time and
// C major.
func New(name string) *Song {
	return NewWithResolution(name, constants.DefaultTicksPerBeat)
}

// NewWithResolution returns an empty song with an explicit tick resolution.
func NewWithResolution(name string, ticksPerBeat int) *Song {
	key, _ := NewKey(0, Major)
	return &Song{
		Name:          name,
		TimeSignature: DefaultTimeSignature(),
		Key:           key,
		TicksPerBeat:  ticksPerBeat,
	}
}

// NewTrack appends a track and returns it. The song's resolution and
// default time signature are copied in so the track never needs a pointer
// back to the song.
func (s *Song) NewTrack(name string, program uint8, channel uint8, tt TrackType) *Track {
	t := &Track{
		Name:             name,
		Program:          program,
		Channel:          channel,
		Type:             tt,
		TicksPerBeat:     s.TicksPerBeat,
		DefaultSignature: s.TimeSignature,
	}
	s.Tracks = append(s.Tracks, t)
	return t
}

func (s *Song) String() string {
	plural := "s"
	if len(s.Tracks) == 1 {
		plural = ""
	}
	return fmt.Sprintf("Song: %s. %d track%s. Time signature: %s. Key: %s",
		s.Name, len(s.Tracks), plural, s.TimeSignature, s.Key)
}

// PrintTracks prints every track, and if verbose is set the first
// maxMeasures measures of each.
func (s *Song) PrintTracks(verbose bool, maxMeasures int) {
	for _, t := range s.Tracks {
		fmt.Println(t)
		if !verbose {
			continue
		}
		for i, m := range t.Measures {
			if i >= maxMeasures {
				break
			}
			fmt.Println(m)
		}
		fmt.Println()
	}
}

// CleanTies drops the tie flag from any note whose pitch was not sounding
// in the previous event.
func (s *Song) CleanTies() {
	s.adjustTies(true, false)
}

// SmoothHarmony ties repeated pitches on harmony tracks so the harmony
// part rearticulates as little as possible. Stray ties are cleaned as a
// side effect.
func (s *Song) SmoothHarmony() {
	s.adjustTies(true, true)
}

func (s *Song) adjustTies(cleanUp, smoothHarmony bool) {
	for _, track := range s.Tracks {
		if smoothHarmony && track.Type != TypeHarmony {
			continue
		}
		prevSounding := make(map[uint8]bool)
		for _, measure := range track.Measures {
			for _, event := range measure.Events {
				sounding := make(map[uint8]bool)
				for i := range event.Notes {
					note := &event.Notes[i]
					if prevSounding[note.Pitch] {
						if smoothHarmony && !note.TieFromPrevious {
							note.TieFromPrevious = true
							note.Velocity = -1
						}
					} else if cleanUp && note.TieFromPrevious {
						note.TieFromPrevious = false
						note.Velocity = 0
					}
					sounding[note.Pitch] = true
				}
				prevSounding = sounding
			}
		}
	}
}
