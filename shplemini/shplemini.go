// Package shplemini reduces the batch of polynomial opening claims left by
// sumcheck to a single KZG pairing check. It combines the Gemini fold
// commitments and evaluations with the Shplonk batching trick: one
// multi-scalar multiplication over 70 points produces the left pairing input,
// and the KZG quotient commitment the right one.
package shplemini

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"

	"github.com/noirverify/go-ultrahonk/field"
	"github.com/noirverify/go-ultrahonk/honk"
	"github.com/noirverify/go-ultrahonk/pairing"
	"github.com/noirverify/go-ultrahonk/transcript"
)

// ErrShpleminiFailed is returned when the opening claim batch is degenerate,
// which only happens for adversarially chosen proofs.
var ErrShpleminiFailed = errors.New("shplemini batch opening failed")

// msmSize is the fixed width of the batch multiplication: the Shplonk
// commitment, one slot per entity, the Gemini folds, the group generator and
// the KZG quotient.
const msmSize = 1 + honk.NumberOfEntities + (honk.ConstProofSizeLogN - 1) + 2

// Verify runs the batched opening reduction and the final pairing check.
func Verify(proof *honk.Proof, vk *honk.VerificationKey, tp *transcript.Transcript, backend pairing.Backend) error {
	one := field.FromUint64(1)
	r := tp.GeminiR
	z := tp.ShplonkZ
	nu := tp.ShplonkNu

	// successive squares of the Gemini challenge, r^(2^i)
	var rPowers [honk.ConstProofSizeLogN]fr.Element
	rPowers[0] = r
	for i := 1; i < honk.ConstProofSizeLogN; i++ {
		rPowers[i] = field.Sqr(rPowers[i-1])
	}

	// 1/(z - r) and 1/(z + r^(2^i)): the vanishing denominators of the
	// Shplonk quotient at each opening point
	var invVanishing [honk.ConstProofSizeLogN + 1]fr.Element
	v, err := field.Inverse(field.Sub(z, r))
	if err != nil {
		return errors.Wrap(ErrShpleminiFailed, "shplonk z collides with gemini r")
	}
	invVanishing[0] = v
	for i := 0; i < honk.ConstProofSizeLogN; i++ {
		v, err = field.Inverse(field.Add(z, rPowers[i]))
		if err != nil {
			return errors.Wrap(ErrShpleminiFailed, "degenerate vanishing denominator")
		}
		invVanishing[i+1] = v
	}

	unshiftedScalar := field.Add(invVanishing[0], field.Mul(nu, invVanishing[1]))
	rInv, err := field.Inverse(r)
	if err != nil {
		return errors.Wrap(ErrShpleminiFailed, "gemini challenge is zero")
	}
	shiftedScalar := field.Mul(rInv, field.Sub(invVanishing[0], field.Mul(nu, invVanishing[1])))

	scalars := make([]fr.Element, msmSize)
	points := make([]bn254.G1Affine, msmSize)

	scalars[0] = one
	if points[0], err = proof.ShplonkQ.ToAffine(); err != nil {
		return errors.Wrapf(honk.ErrInvalidProofFormat, "shplonk commitment: %v", err)
	}

	commitments, err := entityCommitments(proof, vk)
	if err != nil {
		return err
	}

	// batch the per-entity claims with powers of rho; shifted entities
	// reuse the unshifted commitment scaled for the shifted opening point
	batchingChallenge := one
	var batchedEvaluation fr.Element
	for i := 0; i < honk.NumberOfEntities; i++ {
		scalar := unshiftedScalar
		if i >= honk.NumberUnshifted {
			scalar = shiftedScalar
		}
		scalars[1+i] = field.Neg(field.Mul(scalar, batchingChallenge))
		points[1+i] = commitments[i]
		batchedEvaluation = field.Add(batchedEvaluation, field.Mul(proof.SumcheckEvaluations[i], batchingChallenge))
		batchingChallenge = field.Mul(batchingChallenge, tp.Rho)
	}

	a0Pos, err := foldPositiveEvaluation(proof, tp, &rPowers, batchedEvaluation)
	if err != nil {
		return err
	}

	// constant term: the claimed evaluations folded into the scalar on the
	// group generator
	constantTerm := field.Add(
		field.Mul(a0Pos, invVanishing[0]),
		field.Mul(field.Mul(proof.GeminiAEvaluations[0], nu), invVanishing[1]),
	)

	batchingChallenge = field.Sqr(nu)
	for i := 0; i < honk.ConstProofSizeLogN-1; i++ {
		scaling := field.Mul(batchingChallenge, invVanishing[i+2])
		scalars[1+honk.NumberOfEntities+i] = field.Neg(scaling)
		if points[1+honk.NumberOfEntities+i], err = proof.GeminiFoldComms[i].ToAffine(); err != nil {
			return errors.Wrapf(honk.ErrInvalidProofFormat, "gemini fold commitment %d: %v", i, err)
		}
		constantTerm = field.Add(constantTerm, field.Mul(scaling, proof.GeminiAEvaluations[i+1]))
		batchingChallenge = field.Mul(batchingChallenge, nu)
	}

	_, _, g1, _ := bn254.Generators()
	scalars[msmSize-2] = constantTerm
	points[msmSize-2] = g1

	kzgQuotient, err := proof.KZGQuotient.ToAffine()
	if err != nil {
		return errors.Wrapf(honk.ErrInvalidProofFormat, "kzg quotient commitment: %v", err)
	}
	scalars[msmSize-1] = z
	points[msmSize-1] = kzgQuotient

	var p0 bn254.G1Affine
	if _, err = p0.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return errors.Wrap(ErrShpleminiFailed, err.Error())
	}
	var p1 bn254.G1Affine
	p1.Neg(&kzgQuotient)

	ok, err := backend.Check(
		[]bn254.G1Affine{p0, p1},
		[]bn254.G2Affine{g2Generator, srsX2},
	)
	if err != nil {
		return err
	}
	if !ok {
		return pairing.ErrPairingCheckFailed
	}
	return nil
}

// foldPositiveEvaluation reconstructs A_0(r) from the batched evaluation and
// the negative-point Gemini evaluations, unwinding the folds from the last
// round back to the first.
func foldPositiveEvaluation(
	proof *honk.Proof,
	tp *transcript.Transcript,
	rPowers *[honk.ConstProofSizeLogN]fr.Element,
	batchedEvaluation fr.Element,
) (fr.Element, error) {
	one := field.FromUint64(1)
	acc := batchedEvaluation
	for i := honk.ConstProofSizeLogN; i > 0; i-- {
		rPow := rPowers[i-1]
		u := tp.SumcheckUChallenges[i-1]
		evalNeg := proof.GeminiAEvaluations[i-1]

		posTerm := field.Mul(rPow, field.Sub(one, u))
		numerator := field.Sub(
			field.Mul(field.Add(rPow, rPow), acc),
			field.Mul(evalNeg, field.Sub(posTerm, u)),
		)
		next, err := field.Div(numerator, field.Add(posTerm, u))
		if err != nil {
			return fr.Element{}, errors.Wrap(ErrShpleminiFailed, "degenerate fold denominator")
		}
		acc = next
	}
	return acc, nil
}

// entityCommitments assembles the 40 commitments in entity order: the
// verification key selectors first, then the proof's wire commitments, with
// the shifted slots reusing the unshifted wire commitments.
func entityCommitments(proof *honk.Proof, vk *honk.VerificationKey) ([honk.NumberOfEntities]bn254.G1Affine, error) {
	var out [honk.NumberOfEntities]bn254.G1Affine

	out[honk.QM] = vk.Qm
	out[honk.QC] = vk.Qc
	out[honk.QL] = vk.Ql
	out[honk.QR] = vk.Qr
	out[honk.QO] = vk.Qo
	out[honk.Q4] = vk.Q4
	out[honk.QArith] = vk.QArith
	out[honk.QDeltaRange] = vk.QDeltaRange
	out[honk.QElliptic] = vk.QElliptic
	out[honk.QAux] = vk.QAux
	out[honk.QLookup] = vk.QLookup
	out[honk.QPoseidon2External] = vk.QPoseidon2External
	out[honk.QPoseidon2Internal] = vk.QPoseidon2Internal
	out[honk.Sigma1] = vk.S1
	out[honk.Sigma2] = vk.S2
	out[honk.Sigma3] = vk.S3
	out[honk.Sigma4] = vk.S4
	out[honk.ID1] = vk.Id1
	out[honk.ID2] = vk.Id2
	out[honk.ID3] = vk.Id3
	out[honk.ID4] = vk.Id4
	out[honk.Table1] = vk.T1
	out[honk.Table2] = vk.T2
	out[honk.Table3] = vk.T3
	out[honk.Table4] = vk.T4
	out[honk.LagrangeFirst] = vk.LagrangeFirst
	out[honk.LagrangeLast] = vk.LagrangeLast

	wires := map[honk.Entity]*honk.G1ProofPoint{
		honk.WL:               &proof.W1,
		honk.WR:               &proof.W2,
		honk.WO:               &proof.W3,
		honk.W4:               &proof.W4,
		honk.ZPerm:            &proof.ZPerm,
		honk.LookupInverses:   &proof.LookupInverses,
		honk.LookupReadCounts: &proof.LookupReadCounts,
		honk.LookupReadTags:   &proof.LookupReadTags,
		honk.WLShift:          &proof.W1,
		honk.WRShift:          &proof.W2,
		honk.WOShift:          &proof.W3,
		honk.W4Shift:          &proof.W4,
		honk.ZPermShift:       &proof.ZPerm,
	}
	for entity, pt := range wires {
		affine, err := pt.ToAffine()
		if err != nil {
			return out, errors.Wrapf(honk.ErrInvalidProofFormat, "wire commitment for entity %d: %v", entity, err)
		}
		out[entity] = affine
	}
	return out, nil
}
