package eddsa

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	c := qt.New(t)

	kp, err := Generate()
	c.Assert(err, qt.IsNil)

	message := []byte("extend to bob")
	sig := kp.Sign(message)
	c.Assert(Verify(kp.Public, message, sig), qt.IsTrue)
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	c := qt.New(t)

	kp, err := Generate()
	c.Assert(err, qt.IsNil)

	sig := kp.Sign([]byte("extend to bob"))
	c.Assert(Verify(kp.Public, []byte("extend to mallory"), sig), qt.IsFalse)
}
