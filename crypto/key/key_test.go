package key

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/zksocial/dos-voucher/field"
)

func TestGenerateDeriveRoundTrip(t *testing.T) {
	c := qt.New(t)

	pair, err := Generate()
	c.Assert(err, qt.IsNil)
	c.Assert(DeriveFrom(pair.Private), qt.Equals, pair.Public)
}

func TestDistinctKeysDeriveDistinctPublicKeys(t *testing.T) {
	c := qt.New(t)

	a, err := Generate()
	c.Assert(err, qt.IsNil)
	b, err := Generate()
	c.Assert(err, qt.IsNil)

	c.Assert(a.Public, qt.Not(qt.Equals), b.Public)
}

func TestSignVerify(t *testing.T) {
	c := qt.New(t)

	pair, err := Generate()
	c.Assert(err, qt.IsNil)

	message := Digest(field.Zero())
	sig := Sign(pair.Public, message)
	c.Assert(Verify(pair.Private, pair.Public, message, sig), qt.IsTrue)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	c := qt.New(t)

	a, err := Generate()
	c.Assert(err, qt.IsNil)
	b, err := Generate()
	c.Assert(err, qt.IsNil)

	message := Digest(field.Zero())
	sig := Sign(a.Public, message)
	c.Assert(Verify(b.Private, a.Public, message, sig), qt.IsFalse)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	c := qt.New(t)

	pair, err := Generate()
	c.Assert(err, qt.IsNil)

	message := Digest(field.Zero())
	sig := Sign(pair.Public, message)
	sig[0] = pair.Private[0] // corrupt the signature with unrelated data
	c.Assert(Verify(pair.Private, pair.Public, message, sig), qt.IsFalse)
}
