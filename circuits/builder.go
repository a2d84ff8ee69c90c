// builder.go implements the circuit-builder facade: lazy, cached compilation
// and Groth16 setup for each of the three circuit shapes this repository
// defines (Origin, Extend<Origin>, Extend<Path>). There is no trusted
// third-party artifact to download here — this domain's circuits are small
// enough to compile and set up in-process, so each shape is cached by a
// sync.Once guard the first time it's needed.
package circuits

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/zksocial/dos-voucher/log"
)

// Artifacts bundles everything derived from compiling and setting up a
// single circuit shape: the constraint system (needed to size placeholder
// proofs/verifying keys for any circuit that recursively verifies this one)
// and the Groth16 proving/verifying key pair.
type Artifacts struct {
	CCS constraint.ConstraintSystem
	PK  groth16.ProvingKey
	VK  groth16.VerifyingKey
}

// Builder lazily compiles and sets up each of the three circuit shapes at
// most once, regardless of how many proofs are produced or verified against
// it over the Builder's lifetime. The zero value is ready to use.
type Builder struct {
	originOnce sync.Once
	origin     Artifacts
	originErr  error

	extendFromOriginOnce sync.Once
	extendFromOrigin     Artifacts
	extendFromOriginErr  error

	extendFromPathOnce sync.Once
	extendFromPath     Artifacts
	extendFromPathErr  error
}

// Origin returns the compiled OriginCircuit's artifacts, compiling and
// running Groth16 setup on first call and serving the cached result on every
// call thereafter.
func (b *Builder) Origin() (Artifacts, error) {
	b.originOnce.Do(func() {
		b.origin, b.originErr = compileAndSetup(OriginPlaceholder())
	})
	return b.origin, b.originErr
}

// ExtendFromOrigin returns the compiled ExtendFromOriginCircuit's artifacts.
// It first resolves the Origin circuit's artifacts, since the extension
// circuit's shape depends on the inner circuit it recursively verifies.
func (b *Builder) ExtendFromOrigin() (Artifacts, error) {
	b.extendFromOriginOnce.Do(func() {
		innerArtifacts, err := b.Origin()
		if err != nil {
			b.extendFromOriginErr = fmt.Errorf("compile inner origin circuit: %w", err)
			return
		}
		placeholder, err := ExtendFromOriginPlaceholder(innerArtifacts.CCS)
		if err != nil {
			b.extendFromOriginErr = fmt.Errorf("build extend<origin> placeholder: %w", err)
			return
		}
		b.extendFromOrigin, b.extendFromOriginErr = compileAndSetup(placeholder)
	})
	return b.extendFromOrigin, b.extendFromOriginErr
}

// ExtendFromPath returns the compiled ExtendFromPathCircuit's artifacts. The
// inner circuit it recursively verifies is itself an Extend<Path>, so a
// Builder proves or verifies a chain of any depth using a single pair of
// ExtendFromPath proving/verifying keys, compiled once.
func (b *Builder) ExtendFromPath() (Artifacts, error) {
	b.extendFromPathOnce.Do(func() {
		placeholder, err := extendFromPathPlaceholderSelfReferential()
		if err != nil {
			b.extendFromPathErr = fmt.Errorf("build extend<path> placeholder: %w", err)
			return
		}
		b.extendFromPath, b.extendFromPathErr = compileAndSetup(placeholder)
	})
	return b.extendFromPath, b.extendFromPathErr
}

// extendFromPathPlaceholderSelfReferential compiles a throwaway
// ExtendFromPathCircuit against an empty inner verifying key shape first, to
// obtain the constraint system needed to size the real placeholder's inner
// verifying key and proof — the circuit recursively verifies its own shape,
// so its constraint system depends on itself. This two-pass bootstrap
// mirrors how a self-recursive verifier is always built: the first pass
// fixes the shape, the second pass is the one actually used for setup.
func extendFromPathPlaceholderSelfReferential() (*ExtendFromPathCircuit, error) {
	bootstrap, err := ExtendFromPathPlaceholder(nil)
	if err != nil {
		return nil, fmt.Errorf("bootstrap extend<path> shape: %w", err)
	}
	bootstrapCCS, err := frontend.Compile(Curve.ScalarField(), r1cs.NewBuilder, bootstrap)
	if err != nil {
		return nil, fmt.Errorf("compile bootstrap extend<path> shape: %w", err)
	}
	return ExtendFromPathPlaceholder(bootstrapCCS)
}

func compileAndSetup(circuit frontend.Circuit) (Artifacts, error) {
	ccs, err := frontend.Compile(Curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return Artifacts{}, fmt.Errorf("compile circuit: %w", err)
	}
	log.Debugw("compiled circuit", "constraints", ccs.GetNbConstraints())

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return Artifacts{}, fmt.Errorf("groth16 setup: %w", err)
	}
	log.Debugf("groth16 setup complete for circuit with %d constraints", ccs.GetNbConstraints())
	return Artifacts{CCS: ccs, PK: pk, VK: vk}, nil
}

// CheckCurve is a defensive sanity check for callers that source a curve ID
// from configuration (see config.Curve): every circuit in this repository is
// fixed to Curve, so any other value is a caller error, not something a
// Builder can route around.
func CheckCurve(curve ecc.ID) error {
	if curve != Curve {
		return fmt.Errorf("circuits: unsupported curve %s, this repository only compiles over %s", curve, Curve)
	}
	return nil
}
