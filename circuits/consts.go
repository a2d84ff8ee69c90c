package circuits

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/constraint"
)

// OriginConstraintSystem and PathConstraintSystem name the compiled-circuit
// type the recursive verifier needs to size its placeholder proof and
// verifying key. Both are plain constraint.ConstraintSystem values; the
// two names exist only to document, at each call site, which leaf shape
// (Origin's 13-wide public input, or Path's 22-wide one) is being sized for.
type OriginConstraintSystem = constraint.ConstraintSystem
type PathConstraintSystem = constraint.ConstraintSystem

// Curve is the scalar field every Origin and Extension circuit is compiled
// over. A single curve is used throughout, rather than a cross-curve cycle,
// so that an extension circuit can recursively verify a proof produced by
// another extension circuit of the same shape via emulated (same-curve)
// verification.
var Curve = ecc.BN254

// LocusDomainSeparator is a reserved-but-unwired domain separator for the
// signed locus message. No constraint in this package references it; it is
// kept as a named constant so a future wire-format version can turn it on
// without guessing the value.
const LocusDomainSeparator uint32 = 0x73afcf84

// KeyDerivationDomainTag is the value of the all-zero key-derivation domain
// tag that separates key derivation from the signature hash. No circuit reads
// it: the circuits take the tag as the TopicPK witness and constrain every
// limb of it to zero.
var KeyDerivationDomainTag = [Width]uint64{0, 0, 0, 0}

// Width mirrors field.Width: every public key, digest and signature is a
// 4-wide vector of field elements.
const Width = 4
