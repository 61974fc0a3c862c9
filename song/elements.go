package song

import (
	"fmt"
	"strings"
)

// TrackType is a coarse musical role for a track.
type TrackType uint8

const (
	TypeUnknown TrackType = iota
	TypeMelody
	TypeHarmony
	TypeBass
	TypeDrums
	TypeFx
)

func (tt TrackType) String() string {
	switch tt {
	case TypeMelody:
		return "MELODY"
	case TypeHarmony:
		return "HARMONY"
	case TypeBass:
		return "BASS"
	case TypeDrums:
		return "DRUMS"
	case TypeFx:
		return "FX"
	}
	return "UNKNOWN"
}

// Note is either a new onset or the continuation of an already-sounding
// pitch. Note offs are implicit: a pitch stops sounding at the first later
// event that does not contain it. TieFromPrevious implies Velocity == -1;
// a non-tied note carries a velocity in [0, 127].
type Note struct {
	Pitch           uint8
	Velocity        int16
	TieFromPrevious bool
}

func (n Note) String() string {
	tie := ""
	if n.TieFromPrevious {
		tie = "TIE"
	}
	return fmt.Sprintf("%d[v=%d %s]", n.Pitch, n.Velocity, tie)
}

// Event is everything sounding over one span of time within a measure: a
// duration in ticks and the set of notes sounding through it. An Event with
// no notes is a rest. At most one Note per pitch; appending a pitch that is
// already present replaces it.
type Event struct {
	Duration int64
	Notes    []Note
}

// NewNote appends an onset note and returns the event for chaining.
func (e *Event) NewNote(pitch uint8, velocity int16) *Event {
	e.AppendNote(Note{Pitch: pitch, Velocity: velocity})
	return e
}

// NewTiedNote appends a continuation of an already-sounding pitch.
func (e *Event) NewTiedNote(pitch uint8) *Event {
	e.AppendNote(Note{Pitch: pitch, Velocity: -1, TieFromPrevious: true})
	return e
}

// AppendNote adds n to the event, replacing any existing note of the same
// pitch (last write wins).
func (e *Event) AppendNote(n Note) {
	for i := range e.Notes {
		if e.Notes[i].Pitch == n.Pitch {
			e.Notes[i] = n
			return
		}
	}
	e.Notes = append(e.Notes, n)
}

// HasPitch reports whether the event already contains the given pitch.
func (e *Event) HasPitch(pitch uint8) bool {
	for _, n := range e.Notes {
		if n.Pitch == pitch {
			return true
		}
	}
	return false
}

func (e *Event) String() string {
	parts := make([]string, 0, len(e.Notes))
	for _, n := range e.Notes {
		parts = append(parts, n.String())
	}
	return fmt.Sprintf("Event duration: %d [%s]", e.Duration, strings.Join(parts, ", "))
}

// Measure is one measure of one track: an ordered list of Events starting
// at an absolute tick. Events need not fill the measure; the gap after the
// last event is an implicit trailing rest.
type Measure struct {
	StartTick     int64
	TimeSignature TimeSignature
	Events        []*Event

	// TicksPerBeat is copied from the owning song at construction so that
	// duration arithmetic needs no back-reference.
	TicksPerBeat int
}

// NewEvent appends an event of the given duration and returns it.
func (m *Measure) NewEvent(duration int64) *Event {
	e := &Event{Duration: duration}
	m.Events = append(m.Events, e)
	return e
}

// DurationTicks returns the nominal length of the measure in ticks, from
// its time signature and resolution.
func (m *Measure) DurationTicks() int64 {
	return int64(m.TimeSignature.Numerator) * 4 * int64(m.TicksPerBeat) / int64(m.TimeSignature.Denominator)
}

func (m *Measure) String() string {
	var b strings.Builder
	b.WriteString("Measure:")
	for _, e := range m.Events {
		b.WriteString("\n\t")
		b.WriteString(e.String())
	}
	return b.String()
}

// Track is a single instrument in a Song, an ordered list of Measures.
type Track struct {
	Name    string
	Program uint8
	Channel uint8
	Type    TrackType

	Measures []*Measure

	// Context copied from the owning song at construction.
	TicksPerBeat     int
	DefaultSignature TimeSignature
}

// NewMeasure appends a measure carrying the song's default time signature.
// Its start tick is derived from the previous measure.
func (t *Track) NewMeasure() *Measure {
	return t.NewMeasureWithSignature(t.DefaultSignature)
}

// NewMeasureWithSignature appends a measure with an explicit time
// signature.
func (t *Track) NewMeasureWithSignature(ts TimeSignature) *Measure {
	var next int64
	if n := len(t.Measures); n > 0 {
		prev := t.Measures[n-1]
		next = prev.StartTick + prev.DurationTicks()
	}
	m := &Measure{
		StartTick:     next,
		TimeSignature: ts,
		TicksPerBeat:  t.TicksPerBeat,
	}
	t.Measures = append(t.Measures, m)
	return m
}

func (t *Track) String() string {
	return fmt.Sprintf("%s (program:%d, channel=%d, type=%s)", t.Name, t.Program, t.Channel, t.Type)
}
