// Package field provides the prime-field element type and the algebraic
// sponge hash the rest of the voucher system is built on. All keys, digests
// and degrees are vectors of F.
package field

import (
	"crypto/rand"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// F is a single element of the BN254 scalar field, the native field of the
// gnark circuits in this repository.
type F = fr.Element

// Width is the number of field elements in a PrivateKey, PublicKey, Digest
// or Signature: a fixed-width "ordered tuple of 4 F" data model.
const Width = 4

// Quad is a fixed-width vector of 4 field elements — the shape shared by
// PrivateKey, PublicKey, Digest and Signature throughout this repository.
type Quad [Width]F

// Random samples a Quad uniformly, used only for private-key generation.
func Random() (Quad, error) {
	var q Quad
	for i := range q {
		if _, err := q[i].SetRandom(); err != nil {
			return Quad{}, fmt.Errorf("sample random field element: %w", err)
		}
	}
	return q, nil
}

// Zero returns the all-zero Quad, used as the key-derivation domain tag
// DOMAIN_PK.
func Zero() Quad {
	return Quad{}
}

// Equal reports whether two Quads hold the same field elements.
func (q Quad) Equal(o Quad) bool {
	for i := range q {
		if !q[i].Equal(&o[i]) {
			return false
		}
	}
	return true
}

// Interfaces returns the Quad as a []any suitable for passing into
// gnark witness assignment (frontend.Variable accepts fr.Element values).
func (q Quad) Interfaces() []any {
	out := make([]any, Width)
	for i := range q {
		out[i] = q[i]
	}
	return out
}

// Bytes returns the big-endian byte encoding of the 4 elements concatenated,
// used for the on-wire voucher format.
func (q Quad) Bytes() []byte {
	out := make([]byte, 0, Width*fr.Bytes)
	for i := range q {
		b := q[i].Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// QuadFromBytes decodes a Quad from the encoding produced by Quad.Bytes.
func QuadFromBytes(b []byte) (Quad, error) {
	if len(b) != Width*fr.Bytes {
		return Quad{}, fmt.Errorf("field: expected %d bytes, got %d", Width*fr.Bytes, len(b))
	}
	var q Quad
	for i := range q {
		q[i].SetBytes(b[i*fr.Bytes : (i+1)*fr.Bytes])
	}
	return q, nil
}
