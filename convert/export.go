// Package convert holds the two directions of the score/transport
// conversion: walking a song into a flat delta-timed SMF message sequence,
// and sweeping a flat chronological event stream back into a song. The two
// are independent, but exporting then importing reproduces the same note
// intervals, and importing then exporting reproduces the same messages.
package convert

import (
	"fmt"
	"sort"

	"github.com/jsphweid/midiscore/constants"
	"github.com/jsphweid/midiscore/midifile"
	"github.com/jsphweid/midiscore/song"
	"github.com/jsphweid/midiscore/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Export renders the song as an in-memory SMF.
func Export(s *song.Song) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = smf.MetricTicks(s.TicksPerBeat)
	for trackIdx, track := range s.Tracks {
		res.Tracks = append(res.Tracks, exportTrack(s, track, trackIdx))
	}
	return &res
}

// ExportFile renders the song and saves it as a MIDI file.
func ExportFile(s *song.Song, filepath string) error {
	return midifile.Write(Export(s), filepath)
}

func exportTrack(s *song.Song, t *song.Track, trackIdx int) smf.Track {
	var mt smf.Track
	if t.Name != "" {
		mt = append(mt, smf.Event{Message: smf.MetaTrackSequenceName(t.Name)})
	}
	if t.Channel > constants.MaxChannel {
		fmt.Printf("Warning: too many channels for song %v. Skipping extra channel #%v.\n", s.Name, t.Channel)
		mt.Close(0)
		return mt
	}
	mt = append(mt, smf.Event{Message: smf.Message(midi.ProgramChange(t.Channel, t.Program))})

	var tick, prevTick int64
	sounding := make(map[uint8]bool)

	// Only genuine departures from the currently active signature are
	// written, so a song in its default meter carries no meter metas.
	prevSig := s.TimeSignature

	for _, measure := range t.Measures {
		tick = measure.StartTick

		// Signature changes live on track 0 only.
		if trackIdx == 0 && measure.TimeSignature != prevSig {
			prevSig = measure.TimeSignature
			mt = append(mt, smf.Event{
				Delta:   uint32(tick - prevTick),
				Message: smf.MetaMeter(measure.TimeSignature.Numerator, measure.TimeSignature.Denominator),
			})
			prevTick = tick
		}

		for _, event := range measure.Events {
			tied := make(map[uint8]bool)
			for _, n := range event.Notes {
				if n.TieFromPrevious {
					tied[n.Pitch] = true
				}
			}

			// Close every sounding note that does not carry through this
			// event.
			mt, prevTick = turnOffNotes(mt, t.Channel, tick, prevTick, sounding, tied)

			next := make(map[uint8]bool)
			for _, note := range notesByPitch(event) {
				if note.Pitch > 127 {
					panic(fmt.Sprintf("pitch out of range: %d", note.Pitch))
				}
				if !note.TieFromPrevious && (note.Velocity < 0 || note.Velocity > 127) {
					panic(fmt.Sprintf("velocity out of range on non-tied note: %d", note.Velocity))
				}

				switch {
				case note.TieFromPrevious:
					// Continues sounding silently.
					next[note.Pitch] = true
				case note.Velocity > 0:
					mt = append(mt, smf.Event{
						Delta:   uint32(tick - prevTick),
						Message: smf.Message(midi.NoteOn(t.Channel, note.Pitch, uint8(note.Velocity))),
					})
					prevTick = tick
					next[note.Pitch] = true
				default:
					// Explicit note off, stored as a velocity-0 note.
					mt = append(mt, smf.Event{
						Delta:   uint32(tick - prevTick),
						Message: smf.Message(midi.NoteOff(t.Channel, note.Pitch)),
					})
					prevTick = tick
				}
			}
			sounding = next
			tick += event.Duration
		}

		// The measure's events stopped short of its nominal end: the rest
		// was omitted from storage, so everything stops sounding here.
		if tick < measure.StartTick+measure.DurationTicks() {
			mt, prevTick = turnOffNotes(mt, t.Channel, tick, prevTick, sounding, nil)
			sounding = make(map[uint8]bool)
		}
	}

	mt, _ = turnOffNotes(mt, t.Channel, tick, prevTick, sounding, nil)
	mt.Close(0)
	return mt
}

// turnOffNotes emits a note off for every sounding pitch not in ignore,
// in ascending pitch order.
func turnOffNotes(mt smf.Track, channel uint8, tick, prevTick int64, sounding, ignore map[uint8]bool) (smf.Track, int64) {
	for _, pitch := range util.SortedKeys(sounding) {
		if ignore[pitch] {
			continue
		}
		mt = append(mt, smf.Event{
			Delta:   uint32(tick - prevTick),
			Message: smf.Message(midi.NoteOff(channel, pitch)),
		})
		prevTick = tick
	}
	return mt, prevTick
}

// notesByPitch returns the event's notes in ascending pitch order, so the
// emitted message sequence is independent of insertion order.
func notesByPitch(e *song.Event) []song.Note {
	notes := make([]song.Note, len(e.Notes))
	copy(notes, e.Notes)
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Pitch < notes[j].Pitch
	})
	return notes
}
