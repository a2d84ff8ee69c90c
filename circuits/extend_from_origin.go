// extend_from_origin.go implements the Extend<Origin> specialization of the
// extension voucher circuit: the hop being extended is itself an Origin
// voucher, so the recursively verified inner proof is an OriginCircuit proof
// and its public witness is the 13-wide vector origin, locus, signature,
// degree. This circuit embeds a recursive verifier for that fixed leaf
// circuit shape.
package circuits

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/emulated/sw_bn254"
	stdgroth16 "github.com/consensys/gnark/std/recursion/groth16"
)

// ExtendFromOriginCircuit verifies that a new hop correctly extends an
// Origin voucher. Public inputs are the fixed 22-element Path layout; the
// inner proof being recursively verified is an OriginCircuit proof.
type ExtendFromOriginCircuit struct {
	ExtendPublic
	ExtendPrivate

	InnerProof stdgroth16.Proof[sw_bn254.G1Affine, sw_bn254.G2Affine]
	InnerVK    stdgroth16.VerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl] `gnark:"-"`
}

// Define wires the extension constraints for the Extend<Origin>
// specialization.
func (c *ExtendFromOriginCircuit) Define(api frontend.API) error {
	if err := checkExtensionConstraints(api, c.ExtendPublic, c.ExtendPrivate); err != nil {
		return err
	}

	// The inner voucher is an Origin, so its own self-signature is fully
	// determined by its origin and locus (signature = H(origin, locus)), and
	// for an Origin voucher origin = locus. No extra private witness is
	// needed to reconstruct it.
	innerSignature, err := SpongeHash(api, c.InnerOrigin, c.InnerLocus)
	if err != nil {
		return fmt.Errorf("derive inner origin self-signature: %w", err)
	}

	innerWires := append(append(append(
		flattenQuad(c.InnerOrigin),
		flattenQuad(c.InnerLocus)...),
		flattenQuad(innerSignature)...),
		c.InnerDegree)

	witness, err := packWitness(api, innerWires)
	if err != nil {
		return fmt.Errorf("pack inner origin witness: %w", err)
	}

	verifier, err := stdgroth16.NewVerifier[sw_bn254.ScalarField, sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl](api)
	if err != nil {
		return fmt.Errorf("new recursive verifier: %w", err)
	}
	return verifier.AssertProof(c.InnerVK, c.InnerProof, witness, stdgroth16.WithCompleteArithmetic())
}

// ExtendFromOriginAssignment holds the witness for an ExtendFromOriginCircuit.
type ExtendFromOriginAssignment struct {
	Public  ExtendPublic
	Private ExtendPrivate

	InnerProof stdgroth16.Proof[sw_bn254.G1Affine, sw_bn254.G2Affine]
	InnerVK    stdgroth16.VerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl]
}

// Circuit converts the assignment into the gnark circuit struct.
func (a ExtendFromOriginAssignment) Circuit() *ExtendFromOriginCircuit {
	return &ExtendFromOriginCircuit{
		ExtendPublic:  a.Public,
		ExtendPrivate: a.Private,
		InnerProof:    a.InnerProof,
		InnerVK:       a.InnerVK,
	}
}

// ExtendFromOriginPlaceholder returns a circuit shaped for frontend.Compile,
// with the inner verifying key placeholder sized to the origin circuit's
// fixed public-input count (13 elements: origin, locus, signature, degree).
func ExtendFromOriginPlaceholder(innerCCS OriginConstraintSystem) (*ExtendFromOriginCircuit, error) {
	innerVK, err := stdgroth16.PlaceholderVerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl](innerCCS)
	if err != nil {
		return nil, fmt.Errorf("placeholder inner verifying key: %w", err)
	}
	innerProof := stdgroth16.PlaceholderProof[sw_bn254.G1Affine, sw_bn254.G2Affine](innerCCS)
	return &ExtendFromOriginCircuit{
		InnerProof: innerProof,
		InnerVK:    innerVK,
	}, nil
}
