package song

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharpsRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for _, mode := range []Mode{Major, Minor} {
		for s := -6; s <= 6; s++ {
			k, err := KeyFromSharps(s, mode)
			assert.NoError(err)
			assert.Equal(s, k.NumSharps, "mode %v sharps %v", mode, s)
		}
	}
}

func TestTonicRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for _, mode := range []Mode{Major, Minor} {
		for pc := 0; pc < 12; pc++ {
			k, err := NewKey(pc, mode)
			assert.NoError(err)
			k2, err := KeyFromSharps(k.NumSharps, mode)
			assert.NoError(err)
			assert.Equal(pc, k2.TonicPitchClass)
		}
	}
}

func TestEnharmonicKeysAreEqual(t *testing.T) {
	flatSide, _ := KeyFromSharps(-6, Major)
	sharpSide, _ := KeyFromSharps(6, Major)

	assert := assert.New(t)
	assert.Equal(6, flatSide.TonicPitchClass)
	assert.Equal(6, sharpSide.TonicPitchClass)
	assert.True(flatSide.Equal(sharpSide))
	assert.NotEqual(flatSide.NumSharps, sharpSide.NumSharps)
}

func TestKeyArgumentErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := NewKey(12, Major)
	assert.Error(err)
	_, err = NewKey(-1, Minor)
	assert.Error(err)
	_, err = KeyFromSharps(7, Major)
	assert.Error(err)
	_, err = KeyFromSharps(-7, Minor)
	assert.Error(err)
}

func TestKeyString(t *testing.T) {
	assert := assert.New(t)

	gMinor, _ := KeyFromSharps(-2, Minor)
	assert.Equal("G MINOR", gMinor.String())

	cMajor, _ := NewKey(0, Major)
	assert.Equal("C MAJOR", cMajor.String())

	dFlatMajor, _ := KeyFromSharps(-5, Major)
	assert.Equal("Db MAJOR", dFlatMajor.String())
}

func TestTimeSignatureString(t *testing.T) {
	assert.Equal(t, "3/8", TimeSignature{Numerator: 3, Denominator: 8}.String())
}
