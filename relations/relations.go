// Package relations evaluates the batched UltraHonk gate identities at the
// sumcheck challenge point. Eight gate families contribute 26 subrelations;
// each is scaled by the pow partial evaluation and batched with the alpha
// challenges into a single accumulator that must equal the final sumcheck
// round target.
package relations

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/noirverify/go-ultrahonk/field"
	"github.com/noirverify/go-ultrahonk/honk"
	"github.com/noirverify/go-ultrahonk/transcript"
)

var (
	// negHalf is -(2^-1) mod r, the factor completing the 3-w_m correction
	// term of the first arithmetic subrelation.
	negHalf fr.Element
	// grumpkinBNeg is -b of the Grumpkin curve equation y^2 = x^3 - 17,
	// folded into the doubling identity.
	grumpkinBNeg = field.FromUint64(17)
	// limbSize and sublimbShift are the 68-bit limb and 14-bit sublimb
	// radices of the bigfield gadgets checked by the auxiliary relation.
	limbSize     fr.Element
	sublimbShift = field.FromUint64(1 << 14)
	// poseidonInternalDiag is the diagonal of the Poseidon2 internal-round
	// matrix for state width 4.
	poseidonInternalDiag [4]fr.Element
)

func init() {
	setHex := func(e *fr.Element, s string) {
		v, ok := new(big.Int).SetString(s, 0)
		if !ok {
			panic("relations: bad constant " + s)
		}
		e.SetBigInt(v)
	}
	setHex(&negHalf, "10944121435919637611123202872628637544274182200208017171849102093287904247808")
	setHex(&limbSize, "0x100000000000000000")
	setHex(&poseidonInternalDiag[0], "0x10dc6e9c006ea38b04b1e03b4bd9490c0d03f98929ca1d7fb56821fd19d3b6e7")
	setHex(&poseidonInternalDiag[1], "0x0c28145b6a44df3e0149b3d0a30b3bb599df9756d4dd9b84a86b38cfb45a740b")
	setHex(&poseidonInternalDiag[2], "0x00544b8338791518b2c7645a50392798b21f75bb60e3596170067d00141cac15")
	setHex(&poseidonInternalDiag[3], "0x222c01175718386f2e2e82eb122789e352e105a3b8fa852613bc534433ee428b")
}

// evaluations aliases the claimed entity vector with index-by-name access.
type evaluations [honk.NumberOfEntities]fr.Element

func (e *evaluations) at(w honk.Entity) fr.Element {
	return e[w]
}

// Accumulate evaluates all subrelations at the claimed entity evaluations and
// batches them with the alpha challenges. powPartialEval is the accumulated
// pow polynomial value acting as the domain separator.
func Accumulate(
	purportedEvals *[honk.NumberOfEntities]fr.Element,
	params *transcript.RelationParameters,
	alphas *[honk.NumberOfAlphas]fr.Element,
	powPartialEval fr.Element,
) fr.Element {
	p := (*evaluations)(purportedEvals)
	var evals [honk.NumberOfSubrelations]fr.Element

	accumulateArithmetic(p, &evals, powPartialEval)
	accumulatePermutation(p, params, &evals, powPartialEval)
	accumulateLogDerivativeLookup(p, params, &evals, powPartialEval)
	accumulateDeltaRange(p, &evals, powPartialEval)
	accumulateElliptic(p, &evals, powPartialEval)
	accumulateAuxiliary(p, params, &evals, powPartialEval)
	accumulatePoseidonExternal(p, &evals, powPartialEval)
	accumulatePoseidonInternal(p, &evals, powPartialEval)

	acc := evals[0]
	for i := 1; i < honk.NumberOfSubrelations; i++ {
		acc = field.Add(acc, field.Mul(evals[i], alphas[i-1]))
	}
	return acc
}

// accumulateArithmetic handles the base Ultra arithmetic gate, subrelations
// 0 and 1.
func accumulateArithmetic(p *evaluations, evals *[honk.NumberOfSubrelations]fr.Element, domainSep fr.Element) {
	qArith := p.at(honk.QArith)

	acc := field.Sub(qArith, field.FromUint64(3))
	acc = field.Mul(acc, p.at(honk.QM))
	acc = field.Mul(acc, p.at(honk.WR))
	acc = field.Mul(acc, p.at(honk.WL))
	acc = field.Mul(acc, negHalf)
	acc = field.Add(acc, field.Mul(p.at(honk.QL), p.at(honk.WL)))
	acc = field.Add(acc, field.Mul(p.at(honk.QR), p.at(honk.WR)))
	acc = field.Add(acc, field.Mul(p.at(honk.QO), p.at(honk.WO)))
	acc = field.Add(acc, field.Mul(p.at(honk.Q4), p.at(honk.W4)))
	acc = field.Add(acc, p.at(honk.QC))
	acc = field.Add(acc, field.Mul(field.Sub(qArith, field.FromUint64(1)), p.at(honk.W4Shift)))
	acc = field.Mul(acc, qArith)
	evals[0] = field.Mul(acc, domainSep)

	acc = field.Add(p.at(honk.WL), p.at(honk.W4))
	acc = field.Sub(acc, p.at(honk.WLShift))
	acc = field.Add(acc, p.at(honk.QM))
	acc = field.Mul(acc, field.Sub(qArith, field.FromUint64(2)))
	acc = field.Mul(acc, field.Sub(qArith, field.FromUint64(1)))
	acc = field.Mul(acc, qArith)
	evals[1] = field.Mul(acc, domainSep)
}

// accumulatePermutation handles the copy-constraint grand product,
// subrelations 2 and 3.
func accumulatePermutation(p *evaluations, rp *transcript.RelationParameters, evals *[honk.NumberOfSubrelations]fr.Element, domainSep fr.Element) {
	gpTerm := func(wire, perm honk.Entity) fr.Element {
		t := field.Add(p.at(wire), field.Mul(p.at(perm), rp.Beta))
		return field.Add(t, rp.Gamma)
	}

	num := gpTerm(honk.WL, honk.ID1)
	num = field.Mul(num, gpTerm(honk.WR, honk.ID2))
	num = field.Mul(num, gpTerm(honk.WO, honk.ID3))
	num = field.Mul(num, gpTerm(honk.W4, honk.ID4))

	den := gpTerm(honk.WL, honk.Sigma1)
	den = field.Mul(den, gpTerm(honk.WR, honk.Sigma2))
	den = field.Mul(den, gpTerm(honk.WO, honk.Sigma3))
	den = field.Mul(den, gpTerm(honk.W4, honk.Sigma4))

	acc := field.Mul(field.Add(p.at(honk.ZPerm), p.at(honk.LagrangeFirst)), num)
	boundary := field.Add(p.at(honk.ZPermShift), field.Mul(p.at(honk.LagrangeLast), rp.PublicInputsDelta))
	acc = field.Sub(acc, field.Mul(boundary, den))
	evals[2] = field.Mul(acc, domainSep)

	evals[3] = field.Mul(field.Mul(p.at(honk.LagrangeLast), p.at(honk.ZPermShift)), domainSep)
}

// accumulateLogDerivativeLookup handles the log-derivative lookup argument,
// subrelations 4 and 5. Subrelation 5 is linearly independent per row and is
// deliberately not scaled by the domain separator.
func accumulateLogDerivativeLookup(p *evaluations, rp *transcript.RelationParameters, evals *[honk.NumberOfSubrelations]fr.Element, domainSep fr.Element) {
	writeTerm := field.Add(p.at(honk.Table1), rp.Gamma)
	writeTerm = field.Add(writeTerm, field.Mul(p.at(honk.Table2), rp.Eta))
	writeTerm = field.Add(writeTerm, field.Mul(p.at(honk.Table3), rp.EtaTwo))
	writeTerm = field.Add(writeTerm, field.Mul(p.at(honk.Table4), rp.EtaThree))

	derived1 := field.Add(p.at(honk.WL), rp.Gamma)
	derived1 = field.Add(derived1, field.Mul(p.at(honk.QR), p.at(honk.WLShift)))
	derived2 := field.Add(p.at(honk.WR), field.Mul(p.at(honk.QM), p.at(honk.WRShift)))
	derived3 := field.Add(p.at(honk.WO), field.Mul(p.at(honk.QC), p.at(honk.WOShift)))

	readTerm := field.Add(derived1, field.Mul(derived2, rp.Eta))
	readTerm = field.Add(readTerm, field.Mul(derived3, rp.EtaTwo))
	readTerm = field.Add(readTerm, field.Mul(p.at(honk.QO), rp.EtaThree))

	readInverse := field.Mul(p.at(honk.LookupInverses), writeTerm)
	writeInverse := field.Mul(p.at(honk.LookupInverses), readTerm)

	inverseExists := field.Add(p.at(honk.LookupReadTags), p.at(honk.QLookup))
	inverseExists = field.Sub(inverseExists, field.Mul(p.at(honk.LookupReadTags), p.at(honk.QLookup)))

	acc := field.Mul(field.Mul(readTerm, writeTerm), p.at(honk.LookupInverses))
	acc = field.Sub(acc, inverseExists)
	evals[4] = field.Mul(acc, domainSep)

	evals[5] = field.Sub(
		field.Mul(p.at(honk.QLookup), readInverse),
		field.Mul(p.at(honk.LookupReadCounts), writeInverse),
	)
}

// accumulateDeltaRange handles the sorted-list range gate, subrelations 6-9:
// each wire-to-wire delta must lie in {0,1,2,3}.
func accumulateDeltaRange(p *evaluations, evals *[honk.NumberOfSubrelations]fr.Element, domainSep fr.Element) {
	qRange := p.at(honk.QDeltaRange)
	deltas := [4]fr.Element{
		field.Sub(p.at(honk.WR), p.at(honk.WL)),
		field.Sub(p.at(honk.WO), p.at(honk.WR)),
		field.Sub(p.at(honk.W4), p.at(honk.WO)),
		field.Sub(p.at(honk.WLShift), p.at(honk.W4)),
	}

	for i, delta := range deltas {
		acc := field.Mul(delta, field.Sub(delta, field.FromUint64(1)))
		acc = field.Mul(acc, field.Sub(delta, field.FromUint64(2)))
		acc = field.Mul(acc, field.Sub(delta, field.FromUint64(3)))
		acc = field.Mul(acc, qRange)
		evals[6+i] = field.Mul(acc, domainSep)
	}
}

// accumulateElliptic handles Grumpkin point addition and doubling,
// subrelations 10 and 11. QL carries the sign of y2, QM selects doubling.
func accumulateElliptic(p *evaluations, evals *[honk.NumberOfSubrelations]fr.Element, domainSep fr.Element) {
	x1, y1 := p.at(honk.WR), p.at(honk.WO)
	x2, y2 := p.at(honk.WLShift), p.at(honk.W4Shift)
	x3, y3 := p.at(honk.WRShift), p.at(honk.WOShift)

	qSign := p.at(honk.QL)
	qIsDouble := p.at(honk.QM)
	qElliptic := p.at(honk.QElliptic)

	xDiff := field.Sub(x2, x1)
	y1Sqr := field.Sqr(y1)

	// addition branch
	y2Sqr := field.Sqr(y2)
	y1y2 := field.Mul(field.Mul(y1, y2), qSign)

	xAdd := field.Add(field.Add(x3, x2), x1)
	xAdd = field.Mul(xAdd, field.Sqr(xDiff))
	xAdd = field.Sub(xAdd, y2Sqr)
	xAdd = field.Sub(xAdd, y1Sqr)
	xAdd = field.Add(xAdd, field.Add(y1y2, y1y2))

	notDouble := field.Sub(field.FromUint64(1), qIsDouble)
	evals[10] = field.Mul(field.Mul(field.Mul(xAdd, domainSep), qElliptic), notDouble)

	yAdd := field.Mul(field.Add(y1, y3), xDiff)
	yAdd = field.Add(yAdd, field.Mul(field.Sub(x3, x1), field.Sub(field.Mul(y2, qSign), y1)))
	evals[11] = field.Mul(field.Mul(field.Mul(yAdd, domainSep), qElliptic), notDouble)

	// doubling branch
	xPow4 := field.Mul(field.Add(y1Sqr, grumpkinBNeg), x1)
	y1Sqr4 := field.Mul(field.FromUint64(4), y1Sqr)
	xPow4Times9 := field.Mul(xPow4, field.FromUint64(9))

	xDouble := field.Mul(field.Add(field.Add(x3, x1), x1), y1Sqr4)
	xDouble = field.Sub(xDouble, xPow4Times9)
	evals[10] = field.Add(evals[10], field.Mul(field.Mul(field.Mul(xDouble, domainSep), qElliptic), qIsDouble))

	x1Sqr3 := field.Mul(field.Mul(field.FromUint64(3), x1), x1)
	yDouble := field.Mul(x1Sqr3, field.Sub(x1, x3))
	yDouble = field.Sub(yDouble, field.Mul(field.Add(y1, y1), field.Add(y1, y3)))
	evals[11] = field.Add(evals[11], field.Mul(field.Mul(field.Mul(yDouble, domainSep), qElliptic), qIsDouble))
}

// accumulateAuxiliary handles the bigfield limb gadgets and RAM/ROM memory
// consistency checks, subrelations 12-17. The sub-gates share one selector
// (QAux) and are routed by products of the arithmetic selectors.
func accumulateAuxiliary(p *evaluations, rp *transcript.RelationParameters, evals *[honk.NumberOfSubrelations]fr.Element, domainSep fr.Element) {
	one := field.FromUint64(1)
	auxSep := field.Mul(p.at(honk.QAux), domainSep)

	// bigfield multiplication: cross-limb subproducts at the 68-bit radix
	limbSubproduct := field.Add(
		field.Mul(p.at(honk.WL), p.at(honk.WRShift)),
		field.Mul(p.at(honk.WLShift), p.at(honk.WR)),
	)

	nnfGate2 := field.Add(
		field.Mul(p.at(honk.WL), p.at(honk.W4)),
		field.Mul(p.at(honk.WR), p.at(honk.WO)),
	)
	nnfGate2 = field.Sub(nnfGate2, p.at(honk.WOShift))
	nnfGate2 = field.Mul(nnfGate2, limbSize)
	nnfGate2 = field.Sub(nnfGate2, p.at(honk.W4Shift))
	nnfGate2 = field.Add(nnfGate2, limbSubproduct)
	nnfGate2 = field.Mul(nnfGate2, p.at(honk.Q4))

	limbSubproduct = field.Mul(limbSubproduct, limbSize)
	limbSubproduct = field.Add(limbSubproduct, field.Mul(p.at(honk.WLShift), p.at(honk.WRShift)))

	nnfGate1 := field.Sub(limbSubproduct, field.Add(p.at(honk.WO), p.at(honk.W4)))
	nnfGate1 = field.Mul(nnfGate1, p.at(honk.QO))

	nnfGate3 := field.Add(limbSubproduct, p.at(honk.W4))
	nnfGate3 = field.Sub(nnfGate3, field.Add(p.at(honk.WOShift), p.at(honk.W4Shift)))
	nnfGate3 = field.Mul(nnfGate3, p.at(honk.QM))

	nnfIdentity := field.Add(field.Add(nnfGate1, nnfGate2), nnfGate3)
	nnfIdentity = field.Mul(nnfIdentity, p.at(honk.QR))

	// limb accumulation: 14-bit sublimbs recombined into one value
	limbAcc1 := field.Mul(p.at(honk.WRShift), sublimbShift)
	limbAcc1 = field.Add(limbAcc1, p.at(honk.WLShift))
	limbAcc1 = field.Mul(limbAcc1, sublimbShift)
	limbAcc1 = field.Add(limbAcc1, p.at(honk.WO))
	limbAcc1 = field.Mul(limbAcc1, sublimbShift)
	limbAcc1 = field.Add(limbAcc1, p.at(honk.WR))
	limbAcc1 = field.Mul(limbAcc1, sublimbShift)
	limbAcc1 = field.Add(limbAcc1, p.at(honk.WL))
	limbAcc1 = field.Sub(limbAcc1, p.at(honk.W4))
	limbAcc1 = field.Mul(limbAcc1, p.at(honk.Q4))

	limbAcc2 := field.Mul(p.at(honk.WOShift), sublimbShift)
	limbAcc2 = field.Add(limbAcc2, p.at(honk.WRShift))
	limbAcc2 = field.Mul(limbAcc2, sublimbShift)
	limbAcc2 = field.Add(limbAcc2, p.at(honk.WLShift))
	limbAcc2 = field.Mul(limbAcc2, sublimbShift)
	limbAcc2 = field.Add(limbAcc2, p.at(honk.W4))
	limbAcc2 = field.Mul(limbAcc2, sublimbShift)
	limbAcc2 = field.Add(limbAcc2, p.at(honk.WO))
	limbAcc2 = field.Sub(limbAcc2, p.at(honk.W4Shift))
	limbAcc2 = field.Mul(limbAcc2, p.at(honk.QM))

	limbAccIdentity := field.Mul(field.Add(limbAcc1, limbAcc2), p.at(honk.QO))

	// memory record: w4 must equal the eta-compressed (index, ts, value)
	memoryRecordCheck := field.Mul(p.at(honk.WO), rp.EtaThree)
	memoryRecordCheck = field.Add(memoryRecordCheck, field.Mul(p.at(honk.WR), rp.EtaTwo))
	memoryRecordCheck = field.Add(memoryRecordCheck, field.Mul(p.at(honk.WL), rp.Eta))
	memoryRecordCheck = field.Add(memoryRecordCheck, p.at(honk.QC))
	partialRecordCheck := memoryRecordCheck
	memoryRecordCheck = field.Sub(memoryRecordCheck, p.at(honk.W4))

	// ROM: sorted by index, adjacent equal-index records must agree
	indexDelta := field.Sub(p.at(honk.WLShift), p.at(honk.WL))
	recordDelta := field.Sub(p.at(honk.W4Shift), p.at(honk.W4))
	indexIsMonotonic := field.Sub(field.Sqr(indexDelta), indexDelta)
	adjacentValuesMatch := field.Mul(field.Sub(one, indexDelta), recordDelta)

	romSelector := field.Mul(p.at(honk.QL), p.at(honk.QR))
	evals[13] = field.Mul(field.Mul(adjacentValuesMatch, romSelector), auxSep)
	evals[14] = field.Mul(field.Mul(indexIsMonotonic, romSelector), auxSep)
	romConsistency := field.Mul(memoryRecordCheck, romSelector)

	// RAM: records also carry an access type bit folded into w4
	accessType := field.Sub(p.at(honk.W4), partialRecordCheck)
	accessCheck := field.Sub(field.Sqr(accessType), accessType)

	nextGateAccessType := field.Mul(p.at(honk.WOShift), rp.EtaThree)
	nextGateAccessType = field.Add(nextGateAccessType, field.Mul(p.at(honk.WRShift), rp.EtaTwo))
	nextGateAccessType = field.Add(nextGateAccessType, field.Mul(p.at(honk.WLShift), rp.Eta))
	nextGateAccessType = field.Sub(p.at(honk.W4Shift), nextGateAccessType)

	valueDelta := field.Sub(p.at(honk.WOShift), p.at(honk.WO))
	adjacentValuesMatchIfNotWrite := field.Mul(
		field.Mul(field.Sub(one, indexDelta), valueDelta),
		field.Sub(one, nextGateAccessType),
	)
	nextGateAccessIsBoolean := field.Sub(field.Sqr(nextGateAccessType), nextGateAccessType)

	ramSelector := p.at(honk.QArith)
	evals[15] = field.Mul(field.Mul(adjacentValuesMatchIfNotWrite, ramSelector), auxSep)
	evals[16] = field.Mul(field.Mul(indexIsMonotonic, ramSelector), auxSep)
	evals[17] = field.Mul(field.Mul(nextGateAccessIsBoolean, ramSelector), auxSep)
	ramConsistency := field.Mul(accessCheck, ramSelector)

	// RAM timestamps: equal-index rows must have the claimed ts difference
	timestampDelta := field.Sub(p.at(honk.WRShift), p.at(honk.WR))
	ramTimestampCheck := field.Sub(field.Mul(field.Sub(one, indexDelta), timestampDelta), p.at(honk.WO))

	memoryIdentity := romConsistency
	memoryIdentity = field.Add(memoryIdentity, field.Mul(ramTimestampCheck, field.Mul(p.at(honk.Q4), p.at(honk.QL))))
	memoryIdentity = field.Add(memoryIdentity, field.Mul(memoryRecordCheck, field.Mul(p.at(honk.QM), p.at(honk.QL))))
	memoryIdentity = field.Add(memoryIdentity, ramConsistency)

	auxiliaryIdentity := field.Add(field.Add(memoryIdentity, nnfIdentity), limbAccIdentity)
	evals[12] = field.Mul(auxiliaryIdentity, auxSep)
}

// accumulatePoseidonExternal handles the Poseidon2 full rounds, subrelations
// 18-21: quintic S-box on all four state elements followed by the external
// MDS mix.
func accumulatePoseidonExternal(p *evaluations, evals *[honk.NumberOfSubrelations]fr.Element, domainSep fr.Element) {
	sbox := func(wire, rc honk.Entity) fr.Element {
		s := field.Add(p.at(wire), p.at(rc))
		return field.Mul(field.Sqr(field.Sqr(s)), s)
	}
	u1 := sbox(honk.WL, honk.QL)
	u2 := sbox(honk.WR, honk.QR)
	u3 := sbox(honk.WO, honk.QO)
	u4 := sbox(honk.W4, honk.Q4)

	t0 := field.Add(u1, u2)
	t1 := field.Add(u3, u4)
	t2 := field.Add(field.Add(u2, u2), t1)
	t3 := field.Add(field.Add(u4, u4), t0)

	v4 := field.Add(field.Add(field.Add(t1, t1), field.Add(t1, t1)), t3)
	v2 := field.Add(field.Add(field.Add(t0, t0), field.Add(t0, t0)), t2)
	v1 := field.Add(t3, v2)
	v3 := field.Add(t2, v4)

	qPos := field.Mul(p.at(honk.QPoseidon2External), domainSep)
	evals[18] = field.Mul(qPos, field.Sub(v1, p.at(honk.WLShift)))
	evals[19] = field.Mul(qPos, field.Sub(v2, p.at(honk.WRShift)))
	evals[20] = field.Mul(qPos, field.Sub(v3, p.at(honk.WOShift)))
	evals[21] = field.Mul(qPos, field.Sub(v4, p.at(honk.W4Shift)))
}

// accumulatePoseidonInternal handles the Poseidon2 partial rounds,
// subrelations 22-25: S-box on the first state element only, then the
// internal diagonal matrix.
func accumulatePoseidonInternal(p *evaluations, evals *[honk.NumberOfSubrelations]fr.Element, domainSep fr.Element) {
	s1 := field.Add(p.at(honk.WL), p.at(honk.QL))
	u1 := field.Mul(field.Sqr(field.Sqr(s1)), s1)
	u2 := p.at(honk.WR)
	u3 := p.at(honk.WO)
	u4 := p.at(honk.W4)

	uSum := field.Add(field.Add(field.Add(u1, u2), u3), u4)
	qPos := field.Mul(p.at(honk.QPoseidon2Internal), domainSep)

	shifts := [4]honk.Entity{honk.WLShift, honk.WRShift, honk.WOShift, honk.W4Shift}
	us := [4]fr.Element{u1, u2, u3, u4}
	for i := 0; i < 4; i++ {
		v := field.Add(field.Mul(us[i], poseidonInternalDiag[i]), uSum)
		evals[22+i] = field.Mul(qPos, field.Sub(v, p.at(shifts[i])))
	}
}
