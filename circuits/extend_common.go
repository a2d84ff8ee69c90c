package circuits

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/emulated/sw_bn254"
	"github.com/consensys/gnark/std/math/emulated"
	stdgroth16 "github.com/consensys/gnark/std/recursion/groth16"
)

// ExtendPublic is the public-input layout shared by both extension circuit
// specializations: 22 field elements in the fixed order outer_origin,
// outer_locus, outer_signature, outer_degree, inner_origin, inner_locus,
// inner_degree.
type ExtendPublic struct {
	OuterOrigin    Quad              `gnark:",public"`
	OuterLocus     Quad              `gnark:",public"`
	OuterSignature Quad              `gnark:",public"`
	OuterDegree    frontend.Variable `gnark:",public"`
	InnerOrigin    Quad              `gnark:",public"`
	InnerLocus     Quad              `gnark:",public"`
	InnerDegree    frontend.Variable `gnark:",public"`
}

// ExtendPrivate is the witness-only half shared by both specializations: the
// extender's private key (must hash to InnerLocus) and the fixed
// key-derivation domain tag.
type ExtendPrivate struct {
	PrivateKey Quad
	TopicPK    Quad
}

// checkExtensionConstraints wires the constraints common to both Extend
// specializations, everything except the recursive verification of the
// inner proof, which differs in witness shape between Extend<Origin> and
// Extend<Path>.
func checkExtensionConstraints(api frontend.API, pub ExtendPublic, priv ExtendPrivate) error {
	// topic_pk[i] = 0 for all i.
	priv.TopicPK.AssertAllZero(api)

	// origin preservation: outer_origin = inner_origin.
	pub.OuterOrigin.AssertEqual(api, pub.InnerOrigin)

	// outer_degree = inner_degree + 1.
	api.AssertIsEqual(pub.OuterDegree, api.Add(pub.InnerDegree, 1))

	// locus distinctness: not all coordinates of outer_locus equal
	// outer_origin's.
	allEqual := pub.OuterLocus.IsEqual(api)(pub.OuterOrigin)
	api.AssertIsEqual(allEqual, 0)

	// inner_locus = H(private_key ‖ topic_pk): the extender knows the
	// private key of the party the previous hop named as locus.
	derivedInnerLocus, err := SpongeHash(api, priv.PrivateKey, priv.TopicPK)
	if err != nil {
		return fmt.Errorf("derive inner locus public key: %w", err)
	}
	pub.InnerLocus.AssertEqual(api, derivedInnerLocus)

	// outer_signature = H(inner_locus ‖ outer_locus): the extender signed the
	// new locus.
	expectedSignature, err := SpongeHash(api, pub.InnerLocus, pub.OuterLocus)
	if err != nil {
		return fmt.Errorf("derive outer signature: %w", err)
	}
	pub.OuterSignature.AssertEqual(api, expectedSignature)

	return nil
}

// packWitness lifts a flat list of native field-element wires into the
// emulated public-witness shape gnark's recursive Groth16 verifier expects,
// used to reconstruct the inner circuit's exact public-input vector (in its
// own registration order) for AssertProof. Both inner and outer circuits in
// this repository share the same scalar field (BN254, see consts.go), so
// this lift is a same-field re-typing rather than a cross-curve limb split.
func packWitness(api frontend.API, wires []frontend.Variable) (stdgroth16.Witness[sw_bn254.ScalarField], error) {
	f, err := emulated.NewField[sw_bn254.ScalarField](api)
	if err != nil {
		return stdgroth16.Witness[sw_bn254.ScalarField]{}, fmt.Errorf("new emulated field: %w", err)
	}
	public := make([]emulated.Element[sw_bn254.ScalarField], len(wires))
	for i, w := range wires {
		public[i] = *f.NewElement(w)
	}
	return stdgroth16.Witness[sw_bn254.ScalarField]{Public: public}, nil
}

func flattenQuad(q Quad) []frontend.Variable {
	return []frontend.Variable{q[0], q[1], q[2], q[3]}
}
