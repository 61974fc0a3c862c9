package model

// NoteInterval is one sounded note in absolute ticks. The note sounds from
// StartTick (inclusive) to EndTick (exclusive).
type NoteInterval struct {
	StartTick int64
	EndTick   int64
	Pitch     uint8
	Velocity  uint8
}

// Instrument is a flat chronological view of one source instrument, as
// decoded from a transport file or built programmatically.
type Instrument struct {
	Name    string
	Program uint8
	Channel uint8
	IsDrum  bool
	Notes   []NoteInterval
}
