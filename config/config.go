// Package config holds the fixed, compile-time circuit and logging
// parameters this repository uses. There is no CDN of prebuilt
// proving/verifying keys here, since circuits.Builder compiles and runs
// Groth16 setup in-process (see circuits/builder.go), so this package keeps
// only the parameters callers might reasonably want to tune — log
// level/output and the advisory chain-depth cap.
package config

import (
	"github.com/consensys/gnark-crypto/ecc"

	"github.com/zksocial/dos-voucher/circuits"
)

// Curve is the single curve every circuit in this repository compiles over.
const Curve = ecc.BN254

func init() {
	if err := circuits.CheckCurve(Curve); err != nil {
		panic(err)
	}
}

// DefaultLogLevel and DefaultLogOutput are suggested log.Init arguments for
// library callers. Nothing passes them automatically: until log.Init is
// called, the log package writes to stderr with no level filter.
const (
	DefaultLogLevel  = "info"
	DefaultLogOutput = "stderr"
)

// DefaultMaxChainDepth is the advisory cap voucher.MaxChainDepth defaults to.
// Zero means unbounded: depth policy is left external to the circuit, to be
// enforced by a verifier or topic operator rather than baked into the proof
// system itself. A topic operator with a proving-time budget should set
// voucher.MaxChainDepth to a nonzero value appropriate to that budget.
const DefaultMaxChainDepth uint32 = 0

// VoucherVersion is the wire-format version byte every serialized Voucher
// carries, reserved for future use. Version 0 is the only format this
// repository produces or accepts; a future format change increments this and
// Voucher.UnmarshalBinary rejects anything else.
const VoucherVersion byte = 0
