package honk

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
)

// G1ProofPoint is a proof-side commitment with each affine coordinate split
// into two 136-bit limbs (x = x0 + x1*2^136), the calling convention of the
// external pairing primitive. The all-zero encoding denotes the group
// identity.
type G1ProofPoint struct {
	X0, X1, Y0, Y1 fr.Element
}

// limbShift is 2^136, the split point between coordinate limbs.
var limbShift = new(big.Int).Lsh(big.NewInt(1), 136)

// IsZero reports whether the point is the identity encoding.
func (p *G1ProofPoint) IsZero() bool {
	return p.X0.IsZero() && p.X1.IsZero() && p.Y0.IsZero() && p.Y1.IsZero()
}

// ToAffine reassembles the limbs into an affine point and checks it lies on
// the curve. The identity encoding maps to the affine point at infinity.
func (p *G1ProofPoint) ToAffine() (bn254.G1Affine, error) {
	var point bn254.G1Affine
	if p.IsZero() {
		return point, nil
	}

	x, err := glueLimbs(p.X0, p.X1)
	if err != nil {
		return point, err
	}
	y, err := glueLimbs(p.Y0, p.Y1)
	if err != nil {
		return point, err
	}
	point.X = x
	point.Y = y
	if !point.IsOnCurve() {
		return bn254.G1Affine{}, errors.New("proof point is not on the curve")
	}
	return point, nil
}

func glueLimbs(lo, hi fr.Element) (fp.Element, error) {
	var loInt, hiInt big.Int
	lo.BigInt(&loInt)
	hi.BigInt(&hiInt)
	if loInt.Cmp(limbShift) >= 0 {
		return fp.Element{}, errors.New("proof point limb exceeds 136 bits")
	}
	hiInt.Mul(&hiInt, limbShift).Add(&hiInt, &loInt)
	if hiInt.Cmp(fp.Modulus()) >= 0 {
		return fp.Element{}, errors.New("proof point coordinate exceeds the base field")
	}
	var coord fp.Element
	coord.SetBigInt(&hiInt)
	return coord, nil
}

// VerificationKey is the circuit's immutable metadata and precomputed
// commitments. It is loaded once and shared read-only across calls.
type VerificationKey struct {
	CircuitSize      uint64
	LogCircuitSize   uint64
	PublicInputsSize uint64

	// arithmetic selectors
	Ql, Qr, Qo, Q4, Qm, Qc bn254.G1Affine
	// gate-type selectors
	QArith, QDeltaRange, QElliptic, QAux, QLookup bn254.G1Affine
	QPoseidon2External, QPoseidon2Internal        bn254.G1Affine
	// permutation sigmas and copy-identity ids
	S1, S2, S3, S4, Id1, Id2, Id3, Id4 bn254.G1Affine
	// lookup table columns
	T1, T2, T3, T4 bn254.G1Affine
	// boundary Lagrange commitments
	LagrangeFirst, LagrangeLast bn254.G1Affine
}

// Proof holds one parsed UltraHonk proof. It is scoped to a single
// verification call and never persisted.
type Proof struct {
	W1, W2, W3, W4   G1ProofPoint
	ZPerm            G1ProofPoint
	LookupReadCounts G1ProofPoint
	LookupReadTags   G1ProofPoint
	LookupInverses   G1ProofPoint

	SumcheckUnivariates [ConstProofSizeLogN][BatchedRelationPartialLength]fr.Element
	SumcheckEvaluations [NumberOfEntities]fr.Element

	GeminiFoldComms    [ConstProofSizeLogN - 1]G1ProofPoint
	GeminiAEvaluations [ConstProofSizeLogN]fr.Element

	ShplonkQ    G1ProofPoint
	KZGQuotient G1ProofPoint
}
