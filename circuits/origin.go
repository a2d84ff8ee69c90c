// origin.go implements the origin voucher circuit: it proves knowledge of a
// private key whose derived public key equals the declared origin, and that
// the origin's self-signature is well-formed. It is a leaf circuit with no
// recursive verifier inside it, later consumed by the Extend circuits one
// level up.
package circuits

import (
	"github.com/consensys/gnark/frontend"
)

// OriginCircuit proves that a self-signed, degree-0 voucher is well-formed.
// Public inputs are registered in a fixed order: origin[4], locus[4],
// signature[4], degree — 13 field elements total.
type OriginCircuit struct {
	Origin    Quad             `gnark:",public"`
	Locus     Quad             `gnark:",public"`
	Signature Quad             `gnark:",public"`
	Degree    frontend.Variable `gnark:",public"`

	PrivateKey Quad
	TopicPK    Quad
}

// Define wires the origin-voucher constraints.
func (c *OriginCircuit) Define(api frontend.API) error {
	// topic_pk[i] = 0 for all i.
	c.TopicPK.AssertAllZero(api)

	// origin = locus.
	c.Origin.AssertEqual(api, c.Locus)

	// degree = 0.
	api.AssertIsEqual(c.Degree, 0)

	// origin = H(private_key ‖ topic_pk) — proof of knowledge of sk.
	derivedOrigin, err := SpongeHash(api, c.PrivateKey, c.TopicPK)
	if err != nil {
		FrontendError(api, "failed to derive origin public key", err)
		return nil
	}
	c.Origin.AssertEqual(api, derivedOrigin)

	// signature = H(origin ‖ locus).
	expectedSignature, err := SpongeHash(api, c.Origin, c.Locus)
	if err != nil {
		FrontendError(api, "failed to derive self-signature", err)
		return nil
	}
	c.Signature.AssertEqual(api, expectedSignature)

	return nil
}

// OriginAssignment holds the witness for an OriginCircuit.
type OriginAssignment struct {
	Origin     Quad
	Locus      Quad
	Signature  Quad
	Degree     frontend.Variable
	PrivateKey Quad
	TopicPK    Quad
}

// Circuit converts an OriginAssignment into a new OriginCircuit value, which
// implements frontend.Circuit.
func (a OriginAssignment) Circuit() *OriginCircuit {
	return &OriginCircuit{
		Origin:     a.Origin,
		Locus:      a.Locus,
		Signature:  a.Signature,
		Degree:     a.Degree,
		PrivateKey: a.PrivateKey,
		TopicPK:    a.TopicPK,
	}
}

// OriginPlaceholder returns an empty OriginCircuit suitable for
// frontend.Compile — a circuit struct with all fields left at their zero
// value carries no witness and is only used to derive its shape.
func OriginPlaceholder() *OriginCircuit {
	return &OriginCircuit{}
}
