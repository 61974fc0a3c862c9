// Package analysis holds small checks over flattened instrument streams.
package analysis

import (
	"sort"

	"github.com/jsphweid/midiscore/model"
)

// IsMonophonic reports whether at most one pitch sounds at any tick. Notes
// that meet exactly at a boundary do not count as overlapping.
func IsMonophonic(inst model.Instrument) bool {
	notes := make([]model.NoteInterval, len(inst.Notes))
	copy(notes, inst.Notes)
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].StartTick != notes[j].StartTick {
			return notes[i].StartTick < notes[j].StartTick
		}
		return notes[i].EndTick < notes[j].EndTick
	})

	var end int64
	for i, n := range notes {
		if i > 0 && n.StartTick < end {
			return false
		}
		if n.EndTick > end {
			end = n.EndTick
		}
	}
	return true
}
