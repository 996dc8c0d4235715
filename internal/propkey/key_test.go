package propkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareGUIDFollowsFieldOrder(t *testing.T) {
	// Data1 decides before anything else
	a := MustGUID("14B81DA1-0135-4D31-96D9-6CBFC9671A99")
	b := MustGUID("2E4B640D-5019-46D8-8881-55414CC5CAA0")
	assert.Equal(t, -1, CompareGUID(a, b))
	assert.Equal(t, 1, CompareGUID(b, a))
	assert.Equal(t, 0, CompareGUID(a, a))

	// same Data1..Data3, Data4 breaks the tie
	c := MustGUID("64440492-4C8B-11D1-8B70-080036B11A03")
	d := MustGUID("64440492-4C8B-11D1-8B70-080036B11A04")
	assert.Equal(t, -1, CompareGUID(c, d))

	// Data2 outranks Data4
	e := MustGUID("64440492-4C8A-11D1-FFFF-FFFFFFFFFFFF")
	assert.Equal(t, -1, CompareGUID(e, c))
}

func TestCompareKey(t *testing.T) {
	f := MustGUID("56A3372E-CE9C-11D2-9F0E-006097C686F6")
	g := MustGUID("64440492-4C8B-11D1-8B70-080036B11A03")

	assert.Equal(t, -1, Compare(Key{f, 38}, Key{g, 5}))
	assert.Equal(t, -1, Compare(Key{f, 5}, Key{f, 38}))
	assert.Equal(t, 1, Compare(Key{f, 38}, Key{f, 5}))
	assert.Equal(t, 0, Compare(Key{g, 13}, Key{g, 13}))
}

func TestParseGUID(t *testing.T) {
	g, err := ParseGUID("{f7db74b4-4287-4103-afba-f1b13dcd75cf}")
	require.NoError(t, err)
	assert.Equal(t, MustGUID("F7DB74B4-4287-4103-AFBA-F1B13DCD75CF"), g)

	_, err = ParseGUID("not-a-guid")
	assert.Error(t, err)
}

func TestKeyString(t *testing.T) {
	k := Key{Format: MustGUID("56a3372e-ce9c-11d2-9f0e-006097c686f6"), ID: 5}
	assert.Equal(t, "{56A3372E-CE9C-11D2-9F0E-006097C686F6} 5", k.String())
}
