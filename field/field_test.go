package field

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomElement(t *testing.T) fr.Element {
	t.Helper()
	n, err := rand.Int(rand.Reader, Modulus())
	require.NoError(t, err)
	var e fr.Element
	e.SetBigInt(n)
	return e
}

func TestFromBytesRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := randomElement(t)
		b := ToBytes(a)
		back, err := FromBytes(b[:])
		require.NoError(t, err)
		assert.True(t, a.Equal(&back))
	}
}

func TestFromBytesRejectsNonCanonical(t *testing.T) {
	// the modulus itself is the smallest non-canonical value
	m := Modulus()
	b := make([]byte, Bytes)
	m.FillBytes(b)
	_, err := FromBytes(b)
	assert.ErrorIs(t, err, ErrInvalidFieldElement)

	// all 0xff is well above the modulus
	for i := range b {
		b[i] = 0xff
	}
	_, err = FromBytes(b)
	assert.ErrorIs(t, err, ErrInvalidFieldElement)
}

func TestFromBytesRejectsWrongLength(t *testing.T) {
	_, err := FromBytes(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidFieldElement)
	_, err = FromBytes(make([]byte, 33))
	assert.ErrorIs(t, err, ErrInvalidFieldElement)
}

func TestAdditiveInverse(t *testing.T) {
	for i := 0; i < 20; i++ {
		a := randomElement(t)
		sum := Add(a, Neg(a))
		assert.True(t, sum.IsZero())
	}
}

func TestMultiplicativeInverse(t *testing.T) {
	for i := 0; i < 20; i++ {
		a := randomElement(t)
		if a.IsZero() {
			continue
		}
		inv, err := Inverse(a)
		require.NoError(t, err)
		prod := Mul(a, inv)
		assert.True(t, prod.IsOne())
	}
}

func TestInverseOfZero(t *testing.T) {
	var zero fr.Element
	_, err := Inverse(zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Div(FromUint64(5), zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
}

func TestDiv(t *testing.T) {
	a := FromUint64(20)
	b := FromUint64(5)
	q, err := Div(a, b)
	require.NoError(t, err)
	four := FromUint64(4)
	assert.True(t, q.Equal(&four))

	// (a/b)*b == a for random pairs
	for i := 0; i < 20; i++ {
		x, y := randomElement(t), randomElement(t)
		if y.IsZero() {
			continue
		}
		q, err := Div(x, y)
		require.NoError(t, err)
		back := Mul(q, y)
		assert.True(t, back.Equal(&x))
	}
}

func TestFieldAxioms(t *testing.T) {
	a, b, c := randomElement(t), randomElement(t), randomElement(t)

	left := Add(Add(a, b), c)
	right := Add(a, Add(b, c))
	assert.True(t, left.Equal(&right))

	ab, ba := Mul(a, b), Mul(b, a)
	assert.True(t, ab.Equal(&ba))

	distL := Mul(a, Add(b, c))
	distR := Add(Mul(a, b), Mul(a, c))
	assert.True(t, distL.Equal(&distR))

	sq := Sqr(a)
	aa := Mul(a, a)
	assert.True(t, sq.Equal(&aa))
}

func TestPow(t *testing.T) {
	two := FromUint64(2)
	got := Pow(two, big.NewInt(10))
	want := FromUint64(1024)
	assert.True(t, got.Equal(&want))

	// Fermat: a^(p-1) == 1 for a != 0
	a := randomElement(t)
	if a.IsZero() {
		a.SetOne()
	}
	exp := new(big.Int).Sub(Modulus(), big.NewInt(1))
	got = Pow(a, exp)
	assert.True(t, got.IsOne())
}

func TestModulusBoundary(t *testing.T) {
	var pMinusOne fr.Element
	pMinusOne.SetBigInt(new(big.Int).Sub(Modulus(), big.NewInt(1)))

	wrapped := Add(pMinusOne, FromUint64(1))
	assert.True(t, wrapped.IsZero())

	var zero fr.Element
	under := Sub(zero, FromUint64(1))
	assert.True(t, under.Equal(&pMinusOne))
}
