// Package midifile wraps the SMF transport codec: reading and writing
// standard MIDI files, flattening tracks to per-instrument note intervals,
// and deriving the measure grid (downbeat ticks plus time signatures) that
// the importer aligns against.
package midifile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jsphweid/midiscore/constants"
	"github.com/jsphweid/midiscore/model"
	"github.com/jsphweid/midiscore/song"
	"github.com/jsphweid/midiscore/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Read parses a standard MIDI file from disk.
func Read(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file... %s", err.Error())
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file... %s", err.Error())
	}

	return res, nil
}

// Write saves an SMF to disk.
func Write(sm *smf.SMF, filepath string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = sm.WriteTo(f)
	return err
}

// Resolution returns the file's ticks per quarter note.
func Resolution(sm *smf.SMF) int {
	mt, ok := sm.TimeFormat.(smf.MetricTicks)
	if !ok {
		panic(fmt.Sprintf("unsupported SMF time format: %v", sm.TimeFormat))
	}
	return int(mt)
}

type openNote struct {
	startTick int64
	velocity  uint8
}

// Instruments flattens every (track, channel) pair that plays notes into a
// chronological list of note intervals. A note on with velocity 0 closes
// the note like a note off; a re-onset of a pitch that is still open closes
// the previous interval at the new onset. Channel-9 instruments are drums.
// Unterminated notes at end of track are discarded.
func Instruments(sm *smf.SMF) []model.Instrument {
	var res []model.Instrument

	for _, track := range sm.Tracks {
		var trackName string
		builders := make(map[uint8]*model.Instrument)
		open := make(map[uint8]map[uint8]openNote)

		builderFor := func(ch uint8) *model.Instrument {
			b, ok := builders[ch]
			if !ok {
				b = &model.Instrument{Channel: ch, IsDrum: ch == constants.DrumChannel}
				builders[ch] = b
				open[ch] = make(map[uint8]openNote)
			}
			return b
		}
		closeNote := func(ch, key uint8, tick int64) {
			b := builderFor(ch)
			on, ok := open[ch][key]
			if !ok {
				return
			}
			delete(open[ch], key)
			if tick == on.startTick {
				return
			}
			b.Notes = append(b.Notes, model.NoteInterval{
				StartTick: on.startTick,
				EndTick:   tick,
				Pitch:     key,
				Velocity:  on.velocity,
			})
		}

		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			var name string
			var channel, key, velocity, program uint8
			switch {
			case evt.Message.GetNoteOn(&channel, &key, &velocity):
				if velocity == 0 {
					closeNote(channel, key, absTicks)
					break
				}
				closeNote(channel, key, absTicks)
				open[channel][key] = openNote{startTick: absTicks, velocity: velocity}
			case evt.Message.GetNoteOff(&channel, &key, &velocity):
				closeNote(channel, key, absTicks)
			case evt.Message.GetProgramChange(&channel, &program):
				builderFor(channel).Program = program
			case evt.Message.GetMetaTrackName(&name):
				trackName = name
			}
		}

		for _, ch := range util.SortedKeys(builders) {
			b := builders[ch]
			if len(b.Notes) == 0 {
				continue
			}
			b.Name = trackName
			res = append(res, *b)
		}
	}

	return res
}


type meterChange struct {
	tick int64
	sig  song.TimeSignature
}

// Grid derives the measure grid from the file's time signature metas: the
// ascending downbeat ticks, and the time signature governing each downbeat,
// aligned 1:1. Downbeats are generated from tick 0 (4/4 when the file
// declares nothing) up to, but not including, the last note event tick. A
// signature change restarts the grid at its own tick.
func Grid(sm *smf.SMF) ([]int64, []song.TimeSignature) {
	tpb := Resolution(sm)
	changes := meterChanges(sm)
	maxTick := LastNoteTick(sm)

	var downbeats []int64
	var sigs []song.TimeSignature

	for i, ch := range changes {
		segEnd := maxTick
		if i+1 < len(changes) {
			segEnd = changes[i+1].tick
		}
		dur := measureTicks(ch.sig, tpb)
		for db := ch.tick; db < segEnd && db < maxTick; db += dur {
			downbeats = append(downbeats, db)
			sigs = append(sigs, ch.sig)
		}
	}

	return downbeats, sigs
}

func meterChanges(sm *smf.SMF) []meterChange {
	var changes []meterChange
	for _, track := range sm.Tracks {
		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			var num, denom uint8
			if evt.Message.GetMetaMeter(&num, &denom) {
				changes = append(changes, meterChange{
					tick: absTicks,
					sig:  song.TimeSignature{Numerator: num, Denominator: denom},
				})
			}
		}
	}

	// stable order by tick; a later meta at the same tick wins
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].tick < changes[j].tick
	})
	var dedup []meterChange
	for _, c := range changes {
		if n := len(dedup); n > 0 && dedup[n-1].tick == c.tick {
			dedup[n-1] = c
			continue
		}
		dedup = append(dedup, c)
	}

	if len(dedup) == 0 || dedup[0].tick != 0 {
		dedup = append([]meterChange{{tick: 0, sig: song.DefaultTimeSignature()}}, dedup...)
	}
	return dedup
}

func measureTicks(sig song.TimeSignature, ticksPerBeat int) int64 {
	return int64(sig.Numerator) * 4 * int64(ticksPerBeat) / int64(sig.Denominator)
}

// LastNoteTick returns the absolute tick of the last note on/off in the
// file, 0 if it has none.
func LastNoteTick(sm *smf.SMF) int64 {
	var max int64
	for _, track := range sm.Tracks {
		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			var channel, key, velocity uint8
			switch {
			case evt.Message.GetNoteOn(&channel, &key, &velocity),
				evt.Message.GetNoteOff(&channel, &key, &velocity):
				if absTicks > max {
					max = absTicks
				}
			}
		}
	}
	return max
}

// DurationSeconds converts the tick of the last note event to seconds,
// honouring tempo changes.
func DurationSeconds(sm *smf.SMF) float64 {
	micros := int64(sm.TimeAt(LastNoteTick(sm)))
	return float64(micros) / 1e6
}
