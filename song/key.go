package song

import "fmt"

// TimeSignature is a plain numerator/denominator pair with value equality.
type TimeSignature struct {
	Numerator   uint8
	Denominator uint8
}

// DefaultTimeSignature returns common time, 4/4.
func DefaultTimeSignature() TimeSignature {
	return TimeSignature{Numerator: 4, Denominator: 4}
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Numerator, ts.Denominator)
}

// Mode distinguishes major from minor keys.
type Mode uint8

const (
	Major Mode = iota
	Minor
)

func (m Mode) String() string {
	if m == Minor {
		return "MINOR"
	}
	return "MAJOR"
}

// Pitch class spellings, matching conventional key names per mode.
var pcNamesMajor = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
var pcNamesMinor = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}

// Key is a musical key signature: a tonic pitch class (0-11, 0=C) plus a
// mode. It converts to and from a signed sharps count in [-6, 6] (negative
// means flats), as in MIDI key signature metas. A Key is built from exactly
// one of {tonic pitch class, sharps count}; the sharps count is remembered
// so that the sharps round trip survives the Gb/F# enharmonic collision.
type Key struct {
	TonicPitchClass int
	Mode            Mode
	NumSharps       int
}

// NewKey builds a Key from a tonic pitch class in [0, 12).
func NewKey(tonicPitchClass int, mode Mode) (Key, error) {
	if tonicPitchClass < 0 || tonicPitchClass > 11 {
		return Key{}, fmt.Errorf("tonic pitch class must be in [0, 11], got %d", tonicPitchClass)
	}
	return Key{
		TonicPitchClass: tonicPitchClass,
		Mode:            mode,
		NumSharps:       sharpsForTonic(tonicPitchClass, mode),
	}, nil
}

// KeyFromSharps builds a Key from a sharps count in [-6, 6]. Walking the
// circle of fifths, each sharp raises the tonic by a fifth; minor tonics
// sit a minor third below their relative major.
func KeyFromSharps(numSharps int, mode Mode) (Key, error) {
	if numSharps < -6 || numSharps > 6 {
		return Key{}, fmt.Errorf("sharps count must be in [-6, 6], got %d", numSharps)
	}
	return Key{
		TonicPitchClass: tonicForSharps(numSharps, mode),
		Mode:            mode,
		NumSharps:       numSharps,
	}, nil
}

func tonicForSharps(numSharps int, mode Mode) int {
	tonic := 7 * numSharps
	if mode == Minor {
		tonic -= 3
	}
	return ((tonic % 12) + 12) % 12
}

func sharpsForTonic(tonic int, mode Mode) int {
	for s := 6; s >= -6; s-- {
		if tonicForSharps(s, mode) == tonic {
			return s
		}
	}
	panic(fmt.Sprintf("no sharps count for tonic pitch class %d", tonic))
}

// Equal reports whether two keys name the same tonality. Enharmonic
// spellings (Gb major vs F# major) are considered equal.
func (k Key) Equal(k2 Key) bool {
	return k.TonicPitchClass == k2.TonicPitchClass && k.Mode == k2.Mode
}

func (k Key) String() string {
	names := pcNamesMajor
	if k.Mode == Minor {
		names = pcNamesMinor
	}
	return fmt.Sprintf("%s %s", names[k.TonicPitchClass], k.Mode)
}
