package song

// Structural equality for round-trip comparison, one dedicated function
// per entity. These are looser than plain struct equality: track order in a
// song is irrelevant, trailing rests at the end of a measure are ignored,
// and the notes of an event compare as an unordered set.

// Equal reports structural equality with s2. Any permutation of equal
// tracks matches.
func (s *Song) Equal(s2 *Song) bool {
	if s == nil || s2 == nil {
		return s == s2
	}
	if s.Name != s2.Name ||
		s.TimeSignature != s2.TimeSignature ||
		!s.Key.Equal(s2.Key) ||
		s.TicksPerBeat != s2.TicksPerBeat ||
		len(s.Tracks) != len(s2.Tracks) {
		return false
	}
	for _, t := range s.Tracks {
		found := false
		for _, t2 := range s2.Tracks {
			if t.Equal(t2) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Equal reports structural equality with t2: same metadata and pairwise
// equal measures.
func (t *Track) Equal(t2 *Track) bool {
	if t.Name != t2.Name || t.Program != t2.Program || t.Channel != t2.Channel ||
		t.Type != t2.Type || len(t.Measures) != len(t2.Measures) {
		return false
	}
	for i, m := range t.Measures {
		if !m.Equal(t2.Measures[i]) {
			return false
		}
	}
	return true
}

// Equal compares the events of two measures, ignoring any trailing rests.
// A measure that stores an explicit trailing rest equals one that omits
// it.
func (m *Measure) Equal(m2 *Measure) bool {
	events1 := m.Events[:trimTrailingRests(m.Events)]
	events2 := m2.Events[:trimTrailingRests(m2.Events)]
	if len(events1) != len(events2) {
		return false
	}
	for i, e := range events1 {
		if !e.Equal(events2[i]) {
			return false
		}
	}
	return true
}

// trimTrailingRests returns the length of events once note-less events at
// the tail are dropped.
func trimTrailingRests(events []*Event) int {
	n := len(events)
	for n > 0 && len(events[n-1].Notes) == 0 {
		n--
	}
	return n
}

// Equal reports whether two events have the same duration and the same
// notes, in any order.
func (e *Event) Equal(e2 *Event) bool {
	if e.Duration != e2.Duration || len(e.Notes) != len(e2.Notes) {
		return false
	}
	for _, n := range e.Notes {
		found := false
		for _, n2 := range e2.Notes {
			if n == n2 {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
