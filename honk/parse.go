package honk

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"

	"github.com/noirverify/go-ultrahonk/field"
)

// vkReader walks the fixed-layout verification key blob.
type vkReader struct {
	buf []byte
	off int
}

func (r *vkReader) next() []byte {
	b := r.buf[r.off : r.off+FieldSize]
	r.off += FieldSize
	return b
}

func (r *vkReader) uint64Field() (uint64, error) {
	v := new(big.Int).SetBytes(r.next())
	if !v.IsUint64() {
		return 0, errors.Wrap(ErrInvalidVerificationKey, "metadata field out of range")
	}
	return v.Uint64(), nil
}

func (r *vkReader) point() (bn254.G1Affine, error) {
	var p bn254.G1Affine
	x, err := fp.BigEndian.Element((*[FieldSize]byte)(r.next()))
	if err != nil {
		return p, errors.Wrap(ErrInvalidVerificationKey, "x coordinate is not a canonical base field element")
	}
	y, err := fp.BigEndian.Element((*[FieldSize]byte)(r.next()))
	if err != nil {
		return p, errors.Wrap(ErrInvalidVerificationKey, "y coordinate is not a canonical base field element")
	}
	p.X, p.Y = x, y
	// the zero encoding is the group identity; anything else must be on curve
	if !(p.X.IsZero() && p.Y.IsZero()) && !p.IsOnCurve() {
		return bn254.G1Affine{}, errors.Wrap(ErrInvalidVerificationKey, "commitment is not on the curve")
	}
	return p, nil
}

// ParseVerificationKey decodes a verification key blob: exactly 128 32-byte
// big-endian field elements, three metadata fields followed by 28 affine
// commitments, trailing slots reserved.
func ParseVerificationKey(b []byte) (*VerificationKey, error) {
	if len(b) != VKSize {
		return nil, errors.Wrapf(ErrInvalidVerificationKey, "expected %d bytes, got %d", VKSize, len(b))
	}

	r := &vkReader{buf: b}
	var vk VerificationKey
	var err error

	if vk.CircuitSize, err = r.uint64Field(); err != nil {
		return nil, err
	}
	if vk.LogCircuitSize, err = r.uint64Field(); err != nil {
		return nil, err
	}
	if vk.PublicInputsSize, err = r.uint64Field(); err != nil {
		return nil, err
	}
	if vk.LogCircuitSize > ConstProofSizeLogN || vk.CircuitSize != 1<<vk.LogCircuitSize {
		return nil, errors.Wrap(ErrInvalidVerificationKey, "circuit size does not match its log")
	}

	points := []*bn254.G1Affine{
		&vk.Ql, &vk.Qr, &vk.Qo, &vk.Q4, &vk.Qm, &vk.Qc,
		&vk.QArith, &vk.QDeltaRange, &vk.QElliptic, &vk.QAux, &vk.QLookup,
		&vk.QPoseidon2External, &vk.QPoseidon2Internal,
		&vk.S1, &vk.S2, &vk.S3, &vk.S4,
		&vk.Id1, &vk.Id2, &vk.Id3, &vk.Id4,
		&vk.T1, &vk.T2, &vk.T3, &vk.T4,
		&vk.LagrangeFirst, &vk.LagrangeLast,
	}
	for _, p := range points {
		if *p, err = r.point(); err != nil {
			return nil, err
		}
	}
	return &vk, nil
}

// proofReader walks the fixed-layout proof, rejecting any non-canonical
// scalar on the way.
type proofReader struct {
	buf []byte
	off int
	idx int
}

func (r *proofReader) fr() (fr.Element, error) {
	b := r.buf[r.off : r.off+FieldSize]
	r.off += FieldSize
	r.idx++
	e, err := field.FromBytes(b)
	if err != nil {
		return e, errors.Wrapf(err, "proof field %d", r.idx-1)
	}
	return e, nil
}

func (r *proofReader) point() (G1ProofPoint, error) {
	var p G1ProofPoint
	var err error
	if p.X0, err = r.fr(); err != nil {
		return p, err
	}
	if p.X1, err = r.fr(); err != nil {
		return p, err
	}
	if p.Y0, err = r.fr(); err != nil {
		return p, err
	}
	if p.Y1, err = r.fr(); err != nil {
		return p, err
	}
	return p, nil
}

// ParseProof decodes proof bytes into the fixed UltraHonk layout. Length is
// validated before any field decoding; a wrong total length means the caller
// assembled the wrong object, not a corrupt scalar.
func ParseProof(b []byte) (*Proof, error) {
	if len(b) != ProofSize {
		return nil, errors.Wrapf(ErrInvalidProofFormat, "expected %d bytes, got %d", ProofSize, len(b))
	}

	r := &proofReader{buf: b}
	var proof Proof
	var err error

	commitments := []*G1ProofPoint{
		&proof.W1, &proof.W2, &proof.W3, &proof.W4,
		&proof.ZPerm, &proof.LookupReadCounts, &proof.LookupReadTags, &proof.LookupInverses,
	}
	for _, c := range commitments {
		if *c, err = r.point(); err != nil {
			return nil, err
		}
	}

	for i := 0; i < ConstProofSizeLogN; i++ {
		for j := 0; j < BatchedRelationPartialLength; j++ {
			if proof.SumcheckUnivariates[i][j], err = r.fr(); err != nil {
				return nil, err
			}
		}
	}
	for i := 0; i < NumberOfEntities; i++ {
		if proof.SumcheckEvaluations[i], err = r.fr(); err != nil {
			return nil, err
		}
	}
	for i := 0; i < ConstProofSizeLogN-1; i++ {
		if proof.GeminiFoldComms[i], err = r.point(); err != nil {
			return nil, err
		}
	}
	for i := 0; i < ConstProofSizeLogN; i++ {
		if proof.GeminiAEvaluations[i], err = r.fr(); err != nil {
			return nil, err
		}
	}
	if proof.ShplonkQ, err = r.point(); err != nil {
		return nil, err
	}
	if proof.KZGQuotient, err = r.point(); err != nil {
		return nil, err
	}
	return &proof, nil
}

// ParsePublicInputs validates the count against the key's declared size and
// decodes each 32-byte big-endian input as a canonical scalar.
func ParsePublicInputs(inputs [][]byte, expected int) ([]fr.Element, error) {
	if len(inputs) != expected {
		return nil, &PublicInputsLengthError{Expected: expected, Got: len(inputs)}
	}
	out := make([]fr.Element, len(inputs))
	for i, in := range inputs {
		e, err := field.FromBytes(in)
		if err != nil {
			return nil, &PublicInputFormatError{Index: i, Cause: err}
		}
		out[i] = e
	}
	return out, nil
}
