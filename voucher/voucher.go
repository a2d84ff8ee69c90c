// Package voucher implements the Voucher object: the user-facing value this
// repository exists to produce and check. A Voucher is either an Origin
// (degree 0, self-signed) or a Path (degree >= 1, extending a previous
// voucher one hop further from it), each backed by a Groth16 proof over one
// of the three circuit shapes in package circuits — the single object client
// code constructs, serializes and hands across a wire.
package voucher

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	gnarkgroth16 "github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/emulated/sw_bn254"
	stdgroth16 "github.com/consensys/gnark/std/recursion/groth16"

	"github.com/zksocial/dos-voucher/circuits"
	"github.com/zksocial/dos-voucher/config"
	"github.com/zksocial/dos-voucher/crypto/key"
	"github.com/zksocial/dos-voucher/field"
	"github.com/zksocial/dos-voucher/log"
	"github.com/zksocial/dos-voucher/types"
)

// MaxChainDepth is the advisory cap on voucher degree this package enforces
// in Extend before even attempting to prove: nothing inside the circuit
// itself bounds chain depth, leaving any depth policy to be enforced
// externally by a verifier, but every extra hop folds one more recursive
// Groth16 verification into the new proof, so a policy cap protects proving
// time. Zero (the default) means unbounded. Callers that need a cap only for
// a single call can use ExtendWithMaxDepth instead of changing this package
// variable.
var MaxChainDepth uint32 = 0

// Kind distinguishes the two voucher shapes: a self-signed Origin and a
// chain-extending Path.
type Kind int

const (
	// KindOrigin is a self-signed, degree-0 voucher.
	KindOrigin Kind = iota
	// KindPath is a degree >= 1 voucher extending a previous one.
	KindPath
)

func (k Kind) String() string {
	if k == KindOrigin {
		return "origin"
	}
	return "path"
}

// Voucher is a proven DoS voucher. Degree 0 is an Origin; degree >= 1 is a
// Path. InnerLocus is only meaningful for a Path voucher: it is the locus of
// the voucher this one extends, carried so that extending this voucher one
// hop further can reconstruct the inner proof's own public-input vector
// without re-deriving it from the proof itself.
type Voucher struct {
	Origin     key.PublicKey
	Locus      key.PublicKey
	Signature  key.Signature
	Degree     uint32
	InnerLocus key.PublicKey
	Proof      gnarkgroth16.Proof

	// issuedAt is an out-of-band bookkeeping hook, not a circuit input and
	// not part of MarshalBinary/MarshalJSON: a caller may stamp it to track
	// when a voucher was produced for its own expiry policy, but the proof
	// itself attests to nothing about time. Zero value means unset.
	issuedAt int64
}

// SetIssuedAt stamps v with a caller-chosen timestamp for external
// bookkeeping. It is never serialized and never checked by Verify.
func (v *Voucher) SetIssuedAt(unixSeconds int64) {
	v.issuedAt = unixSeconds
}

// IssuedAt returns the timestamp set by SetIssuedAt, or 0 if unset.
func (v *Voucher) IssuedAt() int64 {
	return v.issuedAt
}

// Kind reports whether v is an Origin or a Path voucher. Degree alone
// determines this: an Origin always has degree 0, and Extend always
// increments degree by exactly 1, so no separate tag is needed or stored.
func (v *Voucher) Kind() Kind {
	if v.Degree == 0 {
		return KindOrigin
	}
	return KindPath
}

// circuitKind reports whether v's proof was produced by the Origin circuit
// or one of the two Extend specializations, used to pick the right
// top-level branch in Verify and to pick the right Extend specialization
// when v becomes somebody else's inner voucher. It is binary, not three-way:
// it cannot distinguish Extend<Origin> (degree 1) from Extend<Path> (degree
// >= 2) proofs — callers that need that finer distinction (e.g. selecting
// the verifying key for v's own proof when v is itself an inner voucher)
// must branch on v.Degree directly, the way verifyExtend and
// proveExtendFromPath do.
func (v *Voucher) circuitKind() Kind {
	return v.Kind()
}

// NewOrigin builds a fresh, self-signed Origin voucher for the holder of sk:
// origin = locus = H(sk ‖ 0^4), signature = H(origin, locus), degree = 0.
func NewOrigin(b *circuits.Builder, sk key.PrivateKey) (*Voucher, error) {
	pk := key.DeriveFrom(sk)
	sig := key.Signature(field.Hash(field.Quad(pk), field.Quad(pk)))

	artifacts, err := b.Origin()
	if err != nil {
		return nil, fmt.Errorf("compile origin circuit: %w", err)
	}

	assignment := circuits.OriginAssignment{
		Origin:     circuits.QuadOf(field.Quad(pk)),
		Locus:      circuits.QuadOf(field.Quad(pk)),
		Signature:  circuits.QuadOf(field.Quad(sig)),
		Degree:     0,
		PrivateKey: circuits.QuadOf(field.Quad(sk)),
		TopicPK:    circuits.QuadOf(field.Zero()),
	}
	proof, err := prove(artifacts, assignment.Circuit())
	if err != nil {
		return nil, fmt.Errorf("prove origin voucher: %w", err)
	}

	return &Voucher{
		Origin:    pk,
		Locus:     pk,
		Signature: sig,
		Degree:    0,
		Proof:     proof,
	}, nil
}

// Extend extends inner one hop further: the caller must hold the private key
// matching inner.Locus, and names newLocus as the next party in the chain.
// It enforces MaxChainDepth as a policy cap.
func (v *Voucher) Extend(b *circuits.Builder, extenderSK key.PrivateKey, newLocus key.PublicKey) (*Voucher, error) {
	return v.ExtendWithMaxDepth(b, extenderSK, newLocus, MaxChainDepth)
}

// ExtendWithMaxDepth is Extend with an explicit depth cap, for callers that
// need a policy different from the package default.
func (v *Voucher) ExtendWithMaxDepth(b *circuits.Builder, extenderSK key.PrivateKey, newLocus key.PublicKey, maxDepth uint32) (*Voucher, error) {
	if maxDepth != 0 && v.Degree+1 > maxDepth {
		return nil, fmt.Errorf("voucher: extending would reach degree %d, exceeding policy cap %d", v.Degree+1, maxDepth)
	}
	if derived := key.DeriveFrom(extenderSK); derived != v.Locus {
		return nil, fmt.Errorf("voucher: private key does not match inner voucher's locus")
	}

	outerOrigin := v.Origin
	outerLocus := newLocus
	outerDegree := v.Degree + 1
	outerSignature := key.Signature(field.Hash(field.Quad(v.Locus), field.Quad(newLocus)))
	log.Debugw("extending voucher", "fromDegree", v.Degree, "toDegree", outerDegree)

	pub := circuits.ExtendPublic{
		OuterOrigin:    circuits.QuadOf(field.Quad(outerOrigin)),
		OuterLocus:     circuits.QuadOf(field.Quad(outerLocus)),
		OuterSignature: circuits.QuadOf(field.Quad(outerSignature)),
		OuterDegree:    outerDegree,
		InnerOrigin:    circuits.QuadOf(field.Quad(v.Origin)),
		InnerLocus:     circuits.QuadOf(field.Quad(v.Locus)),
		InnerDegree:    v.Degree,
	}
	priv := circuits.ExtendPrivate{
		PrivateKey: circuits.QuadOf(field.Quad(extenderSK)),
		TopicPK:    circuits.QuadOf(field.Zero()),
	}

	var proof gnarkgroth16.Proof
	var err error
	switch v.circuitKind() {
	case KindOrigin:
		proof, err = proveExtendFromOrigin(b, pub, priv, v)
	default:
		proof, err = proveExtendFromPath(b, pub, priv, v)
	}
	if err != nil {
		return nil, fmt.Errorf("prove extended voucher: %w", err)
	}

	return &Voucher{
		Origin:     outerOrigin,
		Locus:      outerLocus,
		Signature:  outerSignature,
		Degree:     outerDegree,
		InnerLocus: v.Locus,
		Proof:      proof,
	}, nil
}

func proveExtendFromOrigin(b *circuits.Builder, pub circuits.ExtendPublic, priv circuits.ExtendPrivate, inner *Voucher) (gnarkgroth16.Proof, error) {
	innerArtifacts, err := b.Origin()
	if err != nil {
		return nil, fmt.Errorf("compile inner origin circuit: %w", err)
	}
	outerArtifacts, err := b.ExtendFromOrigin()
	if err != nil {
		return nil, fmt.Errorf("compile extend<origin> circuit: %w", err)
	}

	innerProof, err := stdgroth16.ValueOfProof[sw_bn254.G1Affine, sw_bn254.G2Affine](inner.Proof)
	if err != nil {
		return nil, fmt.Errorf("lift inner proof: %w", err)
	}
	innerVK, err := stdgroth16.ValueOfVerifyingKeyFixed[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl](innerArtifacts.VK)
	if err != nil {
		return nil, fmt.Errorf("lift inner verifying key: %w", err)
	}

	assignment := circuits.ExtendFromOriginAssignment{
		Public:     pub,
		Private:    priv,
		InnerProof: innerProof,
		InnerVK:    innerVK,
	}
	return prove(outerArtifacts, assignment.Circuit())
}

func proveExtendFromPath(b *circuits.Builder, pub circuits.ExtendPublic, priv circuits.ExtendPrivate, inner *Voucher) (gnarkgroth16.Proof, error) {
	var innerArtifacts circuits.Artifacts
	var err error
	if inner.Degree == 1 {
		innerArtifacts, err = b.ExtendFromOrigin()
	} else {
		innerArtifacts, err = b.ExtendFromPath()
	}
	if err != nil {
		return nil, fmt.Errorf("compile inner extend circuit: %w", err)
	}
	outerArtifacts, err := b.ExtendFromPath()
	if err != nil {
		return nil, fmt.Errorf("compile extend<path> circuit: %w", err)
	}

	innerProof, err := stdgroth16.ValueOfProof[sw_bn254.G1Affine, sw_bn254.G2Affine](inner.Proof)
	if err != nil {
		return nil, fmt.Errorf("lift inner proof: %w", err)
	}
	innerVK, err := stdgroth16.ValueOfVerifyingKeyFixed[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GTEl](innerArtifacts.VK)
	if err != nil {
		return nil, fmt.Errorf("lift inner verifying key: %w", err)
	}

	assignment := circuits.ExtendFromPathAssignment{
		Public:         pub,
		Private:        priv,
		PrevSignature:  circuits.QuadOf(field.Quad(inner.Signature)),
		PrevInnerLocus: circuits.QuadOf(field.Quad(inner.InnerLocus)),
		InnerProof:     innerProof,
		InnerVK:        innerVK,
	}
	return prove(outerArtifacts, assignment.Circuit())
}

func prove(artifacts circuits.Artifacts, assignment frontend.Circuit) (gnarkgroth16.Proof, error) {
	witness, err := frontend.NewWitness(assignment, circuits.Curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("build witness: %w", err)
	}
	proof, err := gnarkgroth16.Prove(artifacts.CCS, artifacts.PK, witness)
	if err != nil {
		return nil, fmt.Errorf("groth16 prove: %w", err)
	}
	return proof, nil
}

// Verify checks v's proof against the voucher's own claimed public fields.
// It does not re-derive Degree, Origin, Locus or Signature from anything
// external — those are exactly the claims the proof attests to.
func (v *Voucher) Verify(b *circuits.Builder) error {
	switch v.circuitKind() {
	case KindOrigin:
		return v.verifyOrigin(b)
	default:
		return v.verifyExtend(b)
	}
}

func (v *Voucher) verifyOrigin(b *circuits.Builder) error {
	artifacts, err := b.Origin()
	if err != nil {
		return fmt.Errorf("compile origin circuit: %w", err)
	}
	assignment := circuits.OriginAssignment{
		Origin:    circuits.QuadOf(field.Quad(v.Origin)),
		Locus:     circuits.QuadOf(field.Quad(v.Locus)),
		Signature: circuits.QuadOf(field.Quad(v.Signature)),
		Degree:    v.Degree,
	}
	return verifyPublic(v.Proof, artifacts, assignment.Circuit())
}

func (v *Voucher) verifyExtend(b *circuits.Builder) error {
	pub := circuits.ExtendPublic{
		OuterOrigin:    circuits.QuadOf(field.Quad(v.Origin)),
		OuterLocus:     circuits.QuadOf(field.Quad(v.Locus)),
		OuterSignature: circuits.QuadOf(field.Quad(v.Signature)),
		OuterDegree:    v.Degree,
		InnerOrigin:    circuits.QuadOf(field.Quad(v.Origin)),
		InnerLocus:     circuits.QuadOf(field.Quad(v.InnerLocus)),
		InnerDegree:    v.Degree - 1,
	}

	var artifacts circuits.Artifacts
	var err error
	if v.Degree == 1 {
		artifacts, err = b.ExtendFromOrigin()
	} else {
		artifacts, err = b.ExtendFromPath()
	}
	if err != nil {
		return fmt.Errorf("compile extend circuit: %w", err)
	}

	switch v.Degree {
	case 1:
		assignment := circuits.ExtendFromOriginAssignment{Public: pub}
		return verifyPublic(v.Proof, artifacts, assignment.Circuit())
	default:
		assignment := circuits.ExtendFromPathAssignment{Public: pub}
		return verifyPublic(v.Proof, artifacts, assignment.Circuit())
	}
}

func verifyPublic(proof gnarkgroth16.Proof, artifacts circuits.Artifacts, assignment frontend.Circuit) error {
	witness, err := frontend.NewWitness(assignment, circuits.Curve.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("build public witness: %w", err)
	}
	if err := gnarkgroth16.Verify(proof, artifacts.VK, witness); err != nil {
		return fmt.Errorf("groth16 verify: %w", err)
	}
	return nil
}

// MarshalBinary encodes v into this package's wire format: a version byte
// (config.VoucherVersion), origin/locus/signature/inner_locus (4 field
// elements each), degree as a big-endian uint32, and the serialized Groth16
// proof.
func (v *Voucher) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(config.VoucherVersion)
	buf.Write(field.Quad(v.Origin).Bytes())
	buf.Write(field.Quad(v.Locus).Bytes())
	buf.Write(field.Quad(v.Signature).Bytes())
	buf.Write(field.Quad(v.InnerLocus).Bytes())

	var degreeBytes [4]byte
	binary.BigEndian.PutUint32(degreeBytes[:], v.Degree)
	buf.Write(degreeBytes[:])

	if v.Proof != nil {
		if _, err := v.Proof.WriteTo(&buf); err != nil {
			return nil, fmt.Errorf("serialize proof: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes v from the format MarshalBinary produces. Fields
// are read in the same order MarshalBinary writes them, with the proof last
// since Groth16 proofs for every circuit shape in this repository share the
// same curve and serialize with a self-describing reader.
func (v *Voucher) UnmarshalBinary(data []byte) error {
	const fixedLen = 1 + field.Width*4*32 + 4
	if len(data) < fixedLen {
		return fmt.Errorf("voucher: truncated wire data, got %d bytes", len(data))
	}
	if data[0] != config.VoucherVersion {
		return fmt.Errorf("voucher: unsupported wire version %d", data[0])
	}
	r := bytes.NewReader(data[1:])

	readQuad := func() (field.Quad, error) {
		buf := make([]byte, field.Width*32)
		if _, err := io.ReadFull(r, buf); err != nil {
			return field.Quad{}, err
		}
		return field.QuadFromBytes(buf)
	}

	origin, err := readQuad()
	if err != nil {
		return fmt.Errorf("decode origin: %w", err)
	}
	locus, err := readQuad()
	if err != nil {
		return fmt.Errorf("decode locus: %w", err)
	}
	signature, err := readQuad()
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	innerLocus, err := readQuad()
	if err != nil {
		return fmt.Errorf("decode inner locus: %w", err)
	}

	var degreeBytes [4]byte
	if _, err := io.ReadFull(r, degreeBytes[:]); err != nil {
		return fmt.Errorf("decode degree: %w", err)
	}
	degree := binary.BigEndian.Uint32(degreeBytes[:])

	*v = Voucher{
		Origin:     key.PublicKey(origin),
		Locus:      key.PublicKey(locus),
		Signature:  key.Signature(signature),
		Degree:     degree,
		InnerLocus: key.PublicKey(innerLocus),
	}

	proof := gnarkgroth16.NewProof(circuits.Curve)
	if _, err := proof.ReadFrom(r); err != nil {
		return fmt.Errorf("decode proof: %w", err)
	}
	v.Proof = proof
	return nil
}

// jsonVoucher is the HTTP/API wire shape for a Voucher: the whole
// MarshalBinary payload carried as a single hex blob (types.HexBytes).
type jsonVoucher struct {
	Kind string         `json:"kind"`
	Data types.HexBytes `json:"data"`
}

// MarshalJSON implements json.Marshaler, encoding v as its MarshalBinary
// payload under a hex-encoded "data" field plus a human-readable "kind" tag.
func (v *Voucher) MarshalJSON() ([]byte, error) {
	data, err := v.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal voucher for json: %w", err)
	}
	return json.Marshal(jsonVoucher{Kind: v.Kind().String(), Data: data})
}

// UnmarshalJSON implements json.Unmarshaler, the inverse of MarshalJSON. The
// "kind" field is informational only — Degree (inside Data) is what actually
// determines circuitKind, so a mismatched "kind" tag is not itself an error.
func (v *Voucher) UnmarshalJSON(data []byte) error {
	var wire jsonVoucher
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("unmarshal voucher json: %w", err)
	}
	return v.UnmarshalBinary(wire.Data)
}
