package sumcheck

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noirverify/go-ultrahonk/field"
	"github.com/noirverify/go-ultrahonk/honk"
	"github.com/noirverify/go-ultrahonk/transcript"
)

func TestVerifyZeroProof(t *testing.T) {
	// the all-zero proof is a satisfying instance of the empty circuit:
	// every round sums to zero and the relations vanish identically
	err := Verify(&honk.Proof{}, &transcript.Transcript{})
	require.NoError(t, err)
}

func TestVerifyFirstRoundMismatch(t *testing.T) {
	proof := &honk.Proof{}
	proof.SumcheckUnivariates[0][0] = field.FromUint64(1)

	err := Verify(proof, &transcript.Transcript{})
	require.ErrorIs(t, err, ErrSumcheckFailed)

	var roundErr *RoundError
	require.ErrorAs(t, err, &roundErr)
	assert.Equal(t, 0, roundErr.Round)
}

func TestVerifyLaterRoundMismatch(t *testing.T) {
	proof := &honk.Proof{}
	proof.SumcheckUnivariates[13][1] = field.FromUint64(7)

	err := Verify(proof, &transcript.Transcript{})
	var roundErr *RoundError
	require.ErrorAs(t, err, &roundErr)
	assert.Equal(t, 13, roundErr.Round)
}

func TestVerifyEvaluationMismatch(t *testing.T) {
	// a proof whose rounds are consistent but whose claimed evaluations do
	// not satisfy the relations must fail the final check
	proof := &honk.Proof{}
	proof.SumcheckEvaluations[honk.QArith] = field.FromUint64(1)
	proof.SumcheckEvaluations[honk.QC] = field.FromUint64(1)

	err := Verify(proof, &transcript.Transcript{})
	require.ErrorIs(t, err, ErrEvaluationMismatch)
}

func TestExtendUnivariateConstant(t *testing.T) {
	var u [honk.BatchedRelationPartialLength]fr.Element
	c := field.FromUint64(42)
	for i := range u {
		u[i] = c
	}

	got, err := extendUnivariate(&u, field.FromUint64(123456789))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestExtendUnivariateLinear(t *testing.T) {
	// u(i) = 3 + 5i extends to 3 + 5x anywhere
	var u [honk.BatchedRelationPartialLength]fr.Element
	for i := range u {
		u[i] = field.Add(field.FromUint64(3), field.Mul(field.FromUint64(5), field.FromUint64(uint64(i))))
	}

	x := field.FromUint64(987654321)
	want := field.Add(field.FromUint64(3), field.Mul(field.FromUint64(5), x))
	got, err := extendUnivariate(&u, x)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExtendUnivariateQuadraticAtLargePoint(t *testing.T) {
	// u(i) = i^2, checked at a point far outside the domain
	var u [honk.BatchedRelationPartialLength]fr.Element
	for i := range u {
		u[i] = field.FromUint64(uint64(i * i))
	}

	x := field.Neg(field.FromUint64(1)) // x = r - 1
	want := field.Sqr(x)
	got, err := extendUnivariate(&u, x)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExtendUnivariateOnDomainNode(t *testing.T) {
	var u [honk.BatchedRelationPartialLength]fr.Element
	for i := range u {
		u[i] = field.FromUint64(uint64(10 + i))
	}

	got, err := extendUnivariate(&u, field.FromUint64(3))
	require.NoError(t, err)
	assert.Equal(t, u[3], got)
}
