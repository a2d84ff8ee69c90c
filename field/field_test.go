package field

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestHashDeterministic(t *testing.T) {
	c := qt.New(t)

	a, err := Random()
	c.Assert(err, qt.IsNil)
	b, err := Random()
	c.Assert(err, qt.IsNil)

	h1 := Hash(a, b)
	h2 := Hash(a, b)
	c.Assert(h1.Equal(h2), qt.IsTrue)
}

func TestHashOrderSensitive(t *testing.T) {
	c := qt.New(t)

	a, err := Random()
	c.Assert(err, qt.IsNil)
	b, err := Random()
	c.Assert(err, qt.IsNil)

	c.Assert(Hash(a, b).Equal(Hash(b, a)), qt.IsFalse)
}

func TestQuadBytesRoundTrip(t *testing.T) {
	c := qt.New(t)

	q, err := Random()
	c.Assert(err, qt.IsNil)

	decoded, err := QuadFromBytes(q.Bytes())
	c.Assert(err, qt.IsNil)
	c.Assert(decoded.Equal(q), qt.IsTrue)
}

func TestQuadFromBytesRejectsWrongLength(t *testing.T) {
	c := qt.New(t)

	_, err := QuadFromBytes([]byte{1, 2, 3})
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestZeroIsAllZeroLimbs(t *testing.T) {
	c := qt.New(t)

	z := Zero()
	var zeroElem F
	for _, limb := range z {
		c.Assert(limb.Equal(&zeroElem), qt.IsTrue)
	}
}
