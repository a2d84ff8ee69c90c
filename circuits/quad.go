package circuits

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
	"github.com/zksocial/dos-voucher/field"
)

// Quad is the in-circuit counterpart of field.Quad: a public key, digest or
// signature represented as 4 wires instead of 4 field elements.
type Quad [Width]frontend.Variable

// QuadOf builds a circuit Quad assignment from a native field.Quad, for use
// when constructing a witness.
func QuadOf(q field.Quad) Quad {
	var out Quad
	for i := range q {
		out[i] = q[i]
	}
	return out
}

// AssertEqual constrains every limb of q to equal the corresponding limb of
// o.
func (q Quad) AssertEqual(api frontend.API, o Quad) {
	for i := range q {
		api.AssertIsEqual(q[i], o[i])
	}
}

// AssertAllZero constrains every limb of q to be zero, used to pin the
// key-derivation domain tag to its required all-zero value.
func (q Quad) AssertAllZero(api frontend.API) {
	for i := range q {
		api.AssertIsEqual(q[i], 0)
	}
}

// IsEqual returns a boolean wire that is 1 iff every limb of q equals the
// corresponding limb of o — the building block for the extension circuit's
// locus-distinctness check.
func (q Quad) IsEqual(api frontend.API) func(o Quad) frontend.Variable {
	return func(o Quad) frontend.Variable {
		allEqual := frontend.Variable(1)
		for i := range q {
			allEqual = api.And(allEqual, api.IsZero(api.Sub(q[i], o[i])))
		}
		return allEqual
	}
}

// SpongeHash is the in-circuit algebraic sponge hash H : F* -> F^4, built
// from gnark's MiMC gadget (gnark/std/hash/mimc). MiMC produces a single
// field element per Sum() call; to recover a Quad, the single digest is fed
// back through MiMC four times under four distinct small constants. This
// mirrors field.Hash's native construction limb-for-limb, which is required
// for a voucher's native signing step and in-circuit verification to agree.
func SpongeHash(api frontend.API, parts ...Quad) (Quad, error) {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return Quad{}, fmt.Errorf("new mimc hasher: %w", err)
	}
	for _, p := range parts {
		for _, limb := range p {
			h.Write(limb)
		}
	}
	sum := h.Sum()

	var out Quad
	for i := range out {
		hi, err := mimc.NewMiMC(api)
		if err != nil {
			return Quad{}, fmt.Errorf("new mimc hasher: %w", err)
		}
		hi.Write(sum)
		hi.Write(i)
		out[i] = hi.Sum()
	}
	return out, nil
}
