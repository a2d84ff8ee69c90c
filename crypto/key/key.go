// Package key implements the DoS voucher key scheme: a private key is 4
// field elements, sampled uniformly; the corresponding public key is the
// algebraic sponge hash of the private key under the DOMAIN_PK tag. Signing
// is native algebraic commitment — its unforgeability comes from the
// accompanying zero-knowledge proof of private-key knowledge, not from the
// hash alone.
package key

import (
	"fmt"

	"github.com/zksocial/dos-voucher/field"
)

// PrivateKey is a secret, uniformly sampled Quad. Never serialized, never
// logged.
type PrivateKey field.Quad

// PublicKey is H(private_key ‖ DOMAIN_PK).
type PublicKey field.Quad

// Digest is an ordered tuple of 4 field elements — the shape shared by
// public keys and signatures.
type Digest field.Quad

// Signature is a Digest produced by signing a message.
type Signature = Digest

// domainPK is DOMAIN_PK, the all-zero Quad tag that separates key
// derivation from message signing.
var domainPK = field.Zero()

// Pair is a freshly generated (PrivateKey, PublicKey).
type Pair struct {
	Private PrivateKey
	Public  PublicKey
}

// Generate samples a new key pair: sk uniformly at random, pk = H(sk ‖ 0^4).
func Generate() (Pair, error) {
	sk, err := field.Random()
	if err != nil {
		return Pair{}, fmt.Errorf("sample private key: %w", err)
	}
	pk := DeriveFrom(PrivateKey(sk))
	return Pair{Private: PrivateKey(sk), Public: pk}, nil
}

// DeriveFrom computes the public key for a given private key.
func DeriveFrom(sk PrivateKey) PublicKey {
	return PublicKey(field.Hash(field.Quad(sk), domainPK))
}

// Sign produces σ = H(pk ‖ M), the signature of holder-of-sk (with public
// key pk) over message M. The caller must already know pk = DeriveFrom(sk);
// Sign does not recompute it (the in-circuit constraint recomputes pk
// separately).
func Sign(pk PublicKey, message Digest) Signature {
	return Signature(field.Hash(field.Quad(pk), field.Quad(message)))
}

// Verify recomputes pk from sk and σ from (pk, message) and checks both
// against the claimed values — the native-side counterpart of the circuit
// constraints. It is provided for completeness (e.g. a caller sanity-checking
// inputs before proving); the actual security guarantee comes from the
// zero-knowledge proof, not this function.
func Verify(sk PrivateKey, pk PublicKey, message Digest, sig Signature) bool {
	if DeriveFrom(sk) != pk {
		return false
	}
	return Sign(pk, message) == sig
}
