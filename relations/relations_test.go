package relations

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"

	"github.com/noirverify/go-ultrahonk/field"
	"github.com/noirverify/go-ultrahonk/honk"
	"github.com/noirverify/go-ultrahonk/transcript"
)

func testParams() *transcript.RelationParameters {
	return &transcript.RelationParameters{
		Eta:               field.FromUint64(3),
		EtaTwo:            field.FromUint64(5),
		EtaThree:          field.FromUint64(7),
		Beta:              field.FromUint64(11),
		Gamma:             field.FromUint64(13),
		PublicInputsDelta: field.FromUint64(17),
	}
}

func testAlphas() *[honk.NumberOfAlphas]fr.Element {
	var alphas [honk.NumberOfAlphas]fr.Element
	for i := range alphas {
		alphas[i] = field.FromUint64(uint64(100 + i))
	}
	return &alphas
}

func TestAccumulateZeroVector(t *testing.T) {
	var evals [honk.NumberOfEntities]fr.Element
	got := Accumulate(&evals, testParams(), testAlphas(), field.FromUint64(19))
	assert.True(t, got.IsZero())
}

func TestAccumulateSatisfiedArithmeticGate(t *testing.T) {
	// 1*wl + 1*wr - 1*wo with wl=2, wr=3, wo=5 is a satisfied add gate
	var evals [honk.NumberOfEntities]fr.Element
	evals[honk.QArith] = field.FromUint64(1)
	evals[honk.QL] = field.FromUint64(1)
	evals[honk.QR] = field.FromUint64(1)
	evals[honk.QO] = field.Neg(field.FromUint64(1))
	evals[honk.WL] = field.FromUint64(2)
	evals[honk.WR] = field.FromUint64(3)
	evals[honk.WO] = field.FromUint64(5)

	got := Accumulate(&evals, testParams(), testAlphas(), field.FromUint64(19))
	assert.True(t, got.IsZero())

	// breaking the gate output must surface in the accumulator
	evals[honk.WO] = field.FromUint64(6)
	got = Accumulate(&evals, testParams(), testAlphas(), field.FromUint64(19))
	assert.False(t, got.IsZero())
}

func TestAccumulatePermutationBalanced(t *testing.T) {
	// identical id and sigma evaluations make numerator and denominator
	// equal, so a constant grand product satisfies the relation
	var evals [honk.NumberOfEntities]fr.Element
	evals[honk.WL] = field.FromUint64(2)
	evals[honk.WR] = field.FromUint64(3)
	evals[honk.WO] = field.FromUint64(5)
	evals[honk.W4] = field.FromUint64(7)
	for i := 0; i < 4; i++ {
		v := field.FromUint64(uint64(20 + i))
		evals[honk.ID1+honk.Entity(i)] = v
		evals[honk.Sigma1+honk.Entity(i)] = v
	}
	evals[honk.ZPerm] = field.FromUint64(9)
	evals[honk.ZPermShift] = field.FromUint64(9)

	got := Accumulate(&evals, testParams(), testAlphas(), field.FromUint64(19))
	assert.True(t, got.IsZero())
}

func TestAccumulateAlphaBatching(t *testing.T) {
	// a live lookup row makes subrelation 5 nonzero, so its alpha matters
	var evals [honk.NumberOfEntities]fr.Element
	evals[honk.QLookup] = field.FromUint64(1)
	evals[honk.LookupInverses] = field.FromUint64(1)

	a := testAlphas()
	base := Accumulate(&evals, testParams(), a, field.FromUint64(19))

	a[4] = field.Add(a[4], field.FromUint64(1))
	moved := Accumulate(&evals, testParams(), a, field.FromUint64(19))
	assert.NotEqual(t, base, moved)
}

func TestAccumulateLookupIndependentOfDomainSep(t *testing.T) {
	// subrelation 5 is not scaled by the pow value: with everything else
	// quiet, changing the separator must not move the accumulator
	var evals [honk.NumberOfEntities]fr.Element
	evals[honk.QLookup] = field.FromUint64(1)
	evals[honk.LookupInverses] = field.FromUint64(1)
	params := testParams()

	// neutralize subrelation 4 by making inverses consistent:
	// read*write*inv == inverseExists requires gamma^2 * inv == 1
	inv, err := field.Inverse(field.Mul(params.Gamma, params.Gamma))
	assert.NoError(t, err)
	evals[honk.LookupInverses] = inv

	a := Accumulate(&evals, params, testAlphas(), field.FromUint64(19))
	b := Accumulate(&evals, params, testAlphas(), field.FromUint64(23))
	assert.Equal(t, a, b)
}
