// Package eddsa implements an optional native-only signature back-end: a
// voucher holder may additionally sign external messages (outside any
// circuit) with a conventional EdDSA key, for integration with systems that
// expect a standard signature rather than an algebraic sponge digest. This
// back-end is never used inside a circuit — gnark's in-circuit EdDSA gadget
// (std/signature/eddsa) targets the BabyJubJub curve, not Curve25519, and
// lifting a real Curve25519 signature into a circuit would require a much
// more expensive emulated non-native curve gadget — so this stays a
// native-only convenience.
package eddsa

import (
	"crypto/ed25519"
	"fmt"
)

// KeyPair is a conventional Ed25519 key pair, independent of the voucher
// key scheme in package key.
type KeyPair struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// Generate samples a fresh Ed25519 key pair using the operating system's
// CSPRNG.
func Generate() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate ed25519 key pair: %w", err)
	}
	return KeyPair{Public: pub, Private: priv}, nil
}

// Sign signs message with the holder's private key.
func (k KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(k.Private, message)
}

// Verify reports whether sig is a valid Ed25519 signature over message under
// pub.
func Verify(pub ed25519.PublicKey, message, sig []byte) bool {
	return ed25519.Verify(pub, message, sig)
}
