package convert

import (
	"fmt"
	"sort"

	"github.com/jsphweid/midiscore/constants"
	"github.com/jsphweid/midiscore/midifile"
	"github.com/jsphweid/midiscore/model"
	"github.com/jsphweid/midiscore/song"
	"github.com/jsphweid/midiscore/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

// instantKind orders simultaneous instants: a note ending exactly on a
// boundary closes before the boundary opens the next measure, and a note
// starting on a boundary starts after it. This is what turns a note that
// crosses a measure boundary into two tied pieces.
type instantKind int8

const (
	kindNoteOff instantKind = iota + 1
	kindMeasureStart
	kindNoteOn
)

type instant struct {
	tick     int64
	kind     instantKind
	pitch    uint8
	velocity uint8
}

// ImportFile reads a MIDI file into a Song. A file the codec cannot decode
// yields an empty Song and a printed diagnostic rather than an error.
func ImportFile(filepath string) *song.Song {
	sm, err := midifile.Read(filepath)
	if err != nil {
		fmt.Printf("Skipping decode of %v because: %v\n", filepath, err)
		return song.New("")
	}
	return FromSMF(sm, "")
}

// FromSMF converts a decoded SMF into a Song, deriving the instrument list
// and the measure grid from the file itself.
func FromSMF(sm *smf.SMF, name string) *song.Song {
	downbeats, sigs := midifile.Grid(sm)
	return FromInstruments(name, midifile.Resolution(sm), midifile.Instruments(sm), downbeats, sigs)
}

// FromInstruments builds a Song from per-instrument note intervals and a
// measure grid: one downbeat tick per measure, ascending, with time
// signatures aligned 1:1. Tracks are created in input order; drums are
// forced onto the reserved drum channel and melodic tracks take ascending
// channels around it.
func FromInstruments(name string, ticksPerBeat int, instruments []model.Instrument, downbeats []int64, sigs []song.TimeSignature) *song.Song {
	s := song.NewWithResolution(name, ticksPerBeat)

	var channel uint8
	for _, inst := range instruments {
		ch := channel
		tt := song.TypeUnknown
		if inst.IsDrum {
			ch = constants.DrumChannel
			tt = song.TypeDrums
		}
		track := s.NewTrack(inst.Name, inst.Program, ch, tt)
		sweep(track, inst.Notes, downbeats, sigs)

		channel++
		if channel == constants.DrumChannel {
			channel++
		}
		if channel > constants.MaxChannel {
			fmt.Printf("Warning: too many tracks. Using channel %v for song %v\n", channel, name)
		}
	}

	return s
}

// mergeInstants flattens note intervals and downbeats into one chronological
// list, ordered by (tick, kind, pitch).
func mergeInstants(notes []model.NoteInterval, downbeats []int64) []instant {
	instants := make([]instant, 0, 2*len(notes)+len(downbeats))
	for _, n := range notes {
		instants = append(instants,
			instant{tick: n.StartTick, kind: kindNoteOn, pitch: n.Pitch, velocity: n.Velocity},
			instant{tick: n.EndTick, kind: kindNoteOff, pitch: n.Pitch})
	}
	for _, db := range downbeats {
		instants = append(instants, instant{tick: db, kind: kindMeasureStart})
	}
	sort.Slice(instants, func(i, j int) bool {
		if instants[i].tick != instants[j].tick {
			return instants[i].tick < instants[j].tick
		}
		if instants[i].kind != instants[j].kind {
			return instants[i].kind < instants[j].kind
		}
		return instants[i].pitch < instants[j].pitch
	})
	return instants
}

// sweep runs the merged instant list through one linear pass, appending
// measures and events to the track. An event is cut at every point the set
// of sounding notes changes or a measure boundary is crossed; pitches that
// sound through a cut reappear as tie-from-previous notes.
func sweep(track *song.Track, notes []model.NoteInterval, downbeats []int64, sigs []song.TimeSignature) {
	sounding := make(map[uint8]bool)
	var pending []song.Note
	var prevTick int64
	var measure *song.Measure
	measureIdx := -1
	firstOffAtTick := true

	for _, in := range mergeInstants(notes, downbeats) {
		if in.tick > prevTick {
			// Moved to a new tick: the span since the previous one becomes
			// an event in the current measure.
			writeEvent(measure, in.tick-prevTick, pending, sounding)
			pending = pending[:0]
			firstOffAtTick = true
		}

		switch in.kind {
		case kindNoteOff:
			if firstOffAtTick {
				firstOffAtTick = false
				// Snapshot everything sounding as tie continuations, then
				// strike out each pitch as its off is processed. Works just
				// like a measure break.
				for _, pitch := range util.SortedKeys(sounding) {
					pending = append(pending, song.Note{Pitch: pitch, Velocity: -1, TieFromPrevious: true})
				}
			}
			pending = removePitch(pending, in.pitch)
			delete(sounding, in.pitch)

		case kindMeasureStart:
			measureIdx++
			if measureIdx >= len(sigs) {
				panic(fmt.Sprintf("no time signature aligned to measure %d (have %d)", measureIdx, len(sigs)))
			}
			measure = track.NewMeasureWithSignature(sigs[measureIdx])

		case kindNoteOn:
			// A fresh onset supersedes any pending tie or onset for the
			// same pitch.
			pending = removePitch(pending, in.pitch)
			pending = append(pending, song.Note{Pitch: in.pitch, Velocity: int16(in.velocity)})
			sounding[in.pitch] = true
		}

		prevTick = in.tick
	}

	if len(sounding) > 0 {
		panic(fmt.Sprintf("track %v has unterminated notes: %v", track.Name, util.SortedKeys(sounding)))
	}
}

func writeEvent(measure *song.Measure, duration int64, pending []song.Note, sounding map[uint8]bool) {
	if measure == nil {
		panic("event occurs before the first downbeat")
	}
	event := measure.NewEvent(duration)
	for _, n := range pending {
		event.AppendNote(n)
	}
	for _, pitch := range util.SortedKeys(sounding) {
		if !event.HasPitch(pitch) {
			event.AppendNote(song.Note{Pitch: pitch, Velocity: -1, TieFromPrevious: true})
		}
	}
}

func removePitch(notes []song.Note, pitch uint8) []song.Note {
	for i, n := range notes {
		if n.Pitch == pitch {
			return append(notes[:i], notes[i+1:]...)
		}
	}
	return notes
}
