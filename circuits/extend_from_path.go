// extend_from_path.go implements the Extend<Path> specialization of the
// extension voucher circuit: the hop being extended is itself a Path
// (Extend) voucher, so the recursively verified inner proof is an
// ExtendFromOrigin-or-ExtendFromPath proof — either way its public witness
// is the fixed 22-wide Path vector outer_origin, outer_locus,
// outer_signature, outer_degree, inner_origin, inner_locus, inner_degree.
// This is why the public interface does not grow with chain depth: each
// extension only ever recursively verifies one hop's proof, whatever that
// hop's own specialization was.
package circuits

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/emulated/sw_bn254"
	stdgroth16 "github.com/consensys/gnark/std/recursion/groth16"
)

// ExtendFromPathCircuit verifies that a new hop correctly extends a Path
// voucher. The fields prefixed Prev reconstruct the previous hop's own
// public-input vector for the recursive verifier: PrevSignature and
// PrevInnerLocus are witnessed directly (the extender holds the full
// previous voucher and can supply them); PrevInnerOrigin and PrevInnerDegree
// are not free — they are pinned by the origin-preservation and
// degree-increment invariants already enforced one level up, so they are
// derived in-circuit instead of trusted as witness.
type ExtendFromPathCircuit struct {
	ExtendPublic
	ExtendPrivate

	PrevSignature Quad
	PrevInnerLocus Quad

	InnerProof stdgroth16.Proof[sw_bn254.G1Affine, sw_bn254.G2Affine]
	InnerVK    stdgroth16.VerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl] `gnark:"-"`
}

// Define wires the extension constraints for the Extend<Path>
// specialization.
func (c *ExtendFromPathCircuit) Define(api frontend.API) error {
	if err := checkExtensionConstraints(api, c.ExtendPublic, c.ExtendPrivate); err != nil {
		return err
	}

	// The previous hop's own outer_origin/outer_locus/outer_degree are this
	// circuit's inner_origin/inner_locus/inner_degree; its outer_signature and
	// inner_locus (one level further back) are witnessed directly; its
	// inner_origin is pinned to inner_origin by origin preservation one level
	// up, and its inner_degree is inner_degree - 1 by the degree-increment
	// invariant one level up.
	prevInnerOrigin := c.InnerOrigin
	prevInnerDegree := api.Sub(c.InnerDegree, 1)

	innerWires := append(append(append(append(append(append(
		flattenQuad(c.InnerOrigin),
		flattenQuad(c.InnerLocus)...),
		flattenQuad(c.PrevSignature)...),
		c.InnerDegree),
		flattenQuad(prevInnerOrigin)...),
		flattenQuad(c.PrevInnerLocus)...),
		prevInnerDegree)

	witness, err := packWitness(api, innerWires)
	if err != nil {
		return fmt.Errorf("pack inner path witness: %w", err)
	}

	verifier, err := stdgroth16.NewVerifier[sw_bn254.ScalarField, sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl](api)
	if err != nil {
		return fmt.Errorf("new recursive verifier: %w", err)
	}
	return verifier.AssertProof(c.InnerVK, c.InnerProof, witness, stdgroth16.WithCompleteArithmetic())
}

// ExtendFromPathAssignment holds the witness for an ExtendFromPathCircuit.
type ExtendFromPathAssignment struct {
	Public  ExtendPublic
	Private ExtendPrivate

	PrevSignature  Quad
	PrevInnerLocus Quad

	InnerProof stdgroth16.Proof[sw_bn254.G1Affine, sw_bn254.G2Affine]
	InnerVK    stdgroth16.VerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl]
}

// Circuit converts the assignment into the gnark circuit struct.
func (a ExtendFromPathAssignment) Circuit() *ExtendFromPathCircuit {
	return &ExtendFromPathCircuit{
		ExtendPublic:   a.Public,
		ExtendPrivate:  a.Private,
		PrevSignature:  a.PrevSignature,
		PrevInnerLocus: a.PrevInnerLocus,
		InnerProof:     a.InnerProof,
		InnerVK:        a.InnerVK,
	}
}

// ExtendFromPathPlaceholder returns a circuit shaped for frontend.Compile,
// with the inner verifying key placeholder sized to a Path circuit's own
// fixed public-input count (22 elements).
func ExtendFromPathPlaceholder(innerCCS PathConstraintSystem) (*ExtendFromPathCircuit, error) {
	innerVK, err := stdgroth16.PlaceholderVerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl](innerCCS)
	if err != nil {
		return nil, fmt.Errorf("placeholder inner verifying key: %w", err)
	}
	innerProof := stdgroth16.PlaceholderProof[sw_bn254.G1Affine, sw_bn254.G2Affine](innerCCS)
	return &ExtendFromPathCircuit{
		InnerProof: innerProof,
		InnerVK:    innerVK,
	}, nil
}
