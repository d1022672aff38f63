// Package honk defines the UltraHonk data model: the verification key, the
// proof, the fixed entity ordering shared by the relation evaluator and the
// opening verifier, and the parsers that turn untrusted bytes into both.
package honk

// Protocol-wide constants. The proof is padded to a fixed maximum number of
// sumcheck rounds so verification cost is uniform regardless of circuit size.
const (
	// ConstProofSizeLogN is the padded number of sumcheck rounds.
	ConstProofSizeLogN = 28
	// NumberOfSubrelations is the total count of batched gate subrelations.
	NumberOfSubrelations = 26
	// NumberOfAlphas is the count of batching challenges (subrelations - 1).
	NumberOfAlphas = NumberOfSubrelations - 1
	// BatchedRelationPartialLength is the number of evaluations in each
	// sumcheck round univariate.
	BatchedRelationPartialLength = 8
	// NumberOfEntities is the size of the evaluation vector the prover
	// claims at the sumcheck point.
	NumberOfEntities = 40
	// NumberUnshifted is the count of entities opened at the point itself;
	// the remaining ones are openings of the shifted polynomials.
	NumberUnshifted = 35
	// NumberToBeShifted is the count of shifted entities.
	NumberToBeShifted = NumberOfEntities - NumberUnshifted

	// PubInputsOffset is where public input rows start in the trace.
	PubInputsOffset = 1

	// FieldSize is the byte width of one encoded field element.
	FieldSize = 32

	// VKNumFields is the fixed field-element count of a verification key
	// blob. The structured fields occupy the first 59 slots; the remainder
	// is reserved.
	VKNumFields = 128
	// VKSize is the exact byte length of a verification key blob.
	VKSize = VKNumFields * FieldSize

	// ProofNumFields is the fixed field-element count of a proof:
	// 8 commitments x 4 limbs, the 28x8 sumcheck univariate grid, 40
	// claimed evaluations, 27 Gemini fold commitments x 4 limbs, 28 Gemini
	// evaluations, and 2 final commitments x 4 limbs.
	ProofNumFields = 8*4 + ConstProofSizeLogN*BatchedRelationPartialLength +
		NumberOfEntities + (ConstProofSizeLogN-1)*4 + ConstProofSizeLogN + 2*4
	// ProofSize is the exact byte length of a proof.
	ProofSize = ProofNumFields * FieldSize
)

// Entity indexes the 40-slot evaluation vector. The order is a protocol
// invariant: it fixes both the meaning of Proof.SumcheckEvaluations and the
// commitment ordering inside the Shplemini batch multiplication. Unshifted
// entities come first, the five shifts last.
type Entity int

const (
	QM Entity = iota
	QC
	QL
	QR
	QO
	Q4
	QArith
	QDeltaRange
	QElliptic
	QAux
	QLookup
	QPoseidon2External
	QPoseidon2Internal
	Sigma1
	Sigma2
	Sigma3
	Sigma4
	ID1
	ID2
	ID3
	ID4
	Table1
	Table2
	Table3
	Table4
	LagrangeFirst
	LagrangeLast
	WL
	WR
	WO
	W4
	ZPerm
	LookupInverses
	LookupReadCounts
	LookupReadTags
	WLShift
	WRShift
	WOShift
	W4Shift
	ZPermShift
)
