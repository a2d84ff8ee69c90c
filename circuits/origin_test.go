package circuits

import (
	"os"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"

	"github.com/zksocial/dos-voucher/field"
)

func skipUnlessCircuitTestsEnabled(t *testing.T) {
	if v := os.Getenv("RUN_CIRCUIT_TESTS"); v == "" || v == "false" {
		t.Skip("skipping circuit test, set RUN_CIRCUIT_TESTS=1 to run")
	}
}

func TestOriginCircuitValidWitness(t *testing.T) {
	skipUnlessCircuitTestsEnabled(t)
	assert := test.NewAssert(t)

	sk, err := field.Random()
	if err != nil {
		t.Fatal(err)
	}
	pk := field.Hash(sk, field.Zero())
	sig := field.Hash(pk, pk)

	assignment := OriginAssignment{
		Origin:     QuadOf(pk),
		Locus:      QuadOf(pk),
		Signature:  QuadOf(sig),
		Degree:     0,
		PrivateKey: QuadOf(sk),
		TopicPK:    QuadOf(field.Zero()),
	}

	assert.SolvingSucceeded(OriginPlaceholder(), assignment.Circuit(),
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestOriginCircuitRejectsWrongKey(t *testing.T) {
	skipUnlessCircuitTestsEnabled(t)
	assert := test.NewAssert(t)

	sk, err := field.Random()
	if err != nil {
		t.Fatal(err)
	}
	otherSK, err := field.Random()
	if err != nil {
		t.Fatal(err)
	}
	pk := field.Hash(sk, field.Zero())
	sig := field.Hash(pk, pk)

	assignment := OriginAssignment{
		Origin:     QuadOf(pk),
		Locus:      QuadOf(pk),
		Signature:  QuadOf(sig),
		Degree:     0,
		PrivateKey: QuadOf(otherSK), // does not derive to pk
		TopicPK:    QuadOf(field.Zero()),
	}

	assert.SolvingFailed(OriginPlaceholder(), assignment.Circuit(),
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestOriginCircuitRejectsNonzeroDegree(t *testing.T) {
	skipUnlessCircuitTestsEnabled(t)
	assert := test.NewAssert(t)

	sk, err := field.Random()
	if err != nil {
		t.Fatal(err)
	}
	pk := field.Hash(sk, field.Zero())
	sig := field.Hash(pk, pk)

	assignment := OriginAssignment{
		Origin:     QuadOf(pk),
		Locus:      QuadOf(pk),
		Signature:  QuadOf(sig),
		Degree:     1, // must be 0 for an origin voucher
		PrivateKey: QuadOf(sk),
		TopicPK:    QuadOf(field.Zero()),
	}

	assert.SolvingFailed(OriginPlaceholder(), assignment.Circuit(),
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}
