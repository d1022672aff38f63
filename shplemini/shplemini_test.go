package shplemini

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noirverify/go-ultrahonk/field"
	"github.com/noirverify/go-ultrahonk/honk"
	"github.com/noirverify/go-ultrahonk/pairing"
	"github.com/noirverify/go-ultrahonk/transcript"
)

func zeroFixture(t *testing.T) (*honk.Proof, *honk.VerificationKey, *transcript.Transcript) {
	t.Helper()
	proof := &honk.Proof{}
	vk := &honk.VerificationKey{CircuitSize: 1 << 5, LogCircuitSize: 5}
	tp, err := transcript.Generate(proof, nil, vk, transcript.SHA256Hasher{})
	require.NoError(t, err)
	return proof, vk, tp
}

func TestVerifyZeroFixture(t *testing.T) {
	// identity commitments and all-zero evaluations satisfy every opening
	// claim: both multi-exp inputs collapse to the identity
	proof, vk, tp := zeroFixture(t)
	for _, b := range []pairing.Backend{pairing.Software{}, pairing.Precompile{}} {
		require.NoError(t, Verify(proof, vk, tp, b))
	}
}

func TestVerifyTamperedEvaluation(t *testing.T) {
	proof, vk, tp := zeroFixture(t)
	// tamper after challenge generation, as a cheating prover would have to
	proof.SumcheckEvaluations[honk.WL] = field.FromUint64(1)

	err := Verify(proof, vk, tp, pairing.Software{})
	require.ErrorIs(t, err, pairing.ErrPairingCheckFailed)
}

func TestVerifyTamperedGeminiEvaluation(t *testing.T) {
	proof, vk, tp := zeroFixture(t)
	proof.GeminiAEvaluations[5] = field.FromUint64(1)

	err := Verify(proof, vk, tp, pairing.Software{})
	require.ErrorIs(t, err, pairing.ErrPairingCheckFailed)
}

func TestVerifyDegenerateChallenges(t *testing.T) {
	// an all-zero transcript makes z - r vanish
	proof := &honk.Proof{}
	vk := &honk.VerificationKey{CircuitSize: 1 << 5, LogCircuitSize: 5}
	err := Verify(proof, vk, &transcript.Transcript{}, pairing.Software{})
	require.ErrorIs(t, err, ErrShpleminiFailed)
}

func TestVerifyRejectsOffCurveCommitment(t *testing.T) {
	proof, vk, tp := zeroFixture(t)
	proof.W1.X0 = field.FromUint64(1)
	proof.W1.Y0 = field.FromUint64(3)

	err := Verify(proof, vk, tp, pairing.Software{})
	require.ErrorIs(t, err, honk.ErrInvalidProofFormat)
}
